//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"errors"
	"regexp"
	"time"
)

// Well-known setting keys. The settings table is a free-form key/value
// store; these are the keys the application itself reads.
const (
	SettingHeroImage      = "hero_image"
	SettingFeatureToggles = "feature_toggles"
)

var settingKeyPattern = regexp.MustCompile(`^[a-z0-9_.-]{1,64}$`)

// Setting is one key/value row. Values are arbitrary JSON documents.
type Setting struct {
	Key       string          `json:"key"        db:"key"`
	Value     json.RawMessage `json:"value"      db:"value"`
	UpdatedBy *string         `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// UpsertSettingRequest represents parameters to create or replace a Setting.
type UpsertSettingRequest struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedBy *string         `json:"updated_by,omitempty"`
}

// Validate validates UpsertSettingRequest.
func (r *UpsertSettingRequest) Validate() error {
	if !settingKeyPattern.MatchString(r.Key) {
		return errors.New("key must be 1-64 chars of [a-z0-9_.-]")
	}
	if len(r.Value) == 0 {
		return errors.New("value is required")
	}
	if !json.Valid(r.Value) {
		return errors.New("value must be valid JSON")
	}
	return nil
}
