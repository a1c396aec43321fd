//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMenuItemRequest_Validate(t *testing.T) {
	valid := CreateMenuItemRequest{
		Name:       "Tagliatelle al ragù",
		PriceCents: 1650,
		Category:   MenuCategoryMain,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateMenuItemRequest)
	}{
		{"empty name", func(r *CreateMenuItemRequest) { r.Name = "  " }},
		{"long name", func(r *CreateMenuItemRequest) { r.Name = strings.Repeat("x", maxMenuItemNameLen+1) }},
		{"negative price", func(r *CreateMenuItemRequest) { r.PriceCents = -1 }},
		{"bad category", func(r *CreateMenuItemRequest) { r.Category = "brunch" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestParseMenuCategory(t *testing.T) {
	c, ok := ParseMenuCategory("  Main ")
	require.True(t, ok)
	assert.Equal(t, MenuCategoryMain, c)

	_, ok = ParseMenuCategory("brunch")
	assert.False(t, ok)
}

func TestCreateFAQRequest_Validate(t *testing.T) {
	valid := CreateFAQRequest{Question: "Do you take reservations?", Answer: "Yes, online or by phone."}
	require.NoError(t, valid.Validate())

	missingAnswer := valid
	missingAnswer.Answer = " "
	assert.Error(t, missingAnswer.Validate())

	missingQuestion := valid
	missingQuestion.Question = ""
	assert.Error(t, missingQuestion.Validate())
}

func TestNewsPost_Published(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&NewsPost{}).Published(now))
	assert.True(t, (&NewsPost{PublishedAt: &past}).Published(now))
	assert.False(t, (&NewsPost{PublishedAt: &future}).Published(now))
}

func TestUpdateNewsPostRequest_Validate(t *testing.T) {
	now := time.Now()
	conflicting := UpdateNewsPostRequest{PublishedAt: &now, Unpublish: true}
	assert.Error(t, conflicting.Validate())

	empty := UpdateNewsPostRequest{Title: strPtr(" ")}
	assert.Error(t, empty.Validate())

	ok := UpdateNewsPostRequest{Title: strPtr("Summer hours"), Unpublish: true}
	assert.NoError(t, ok.Validate())
}

func TestUpsertSettingRequest_Validate(t *testing.T) {
	valid := UpsertSettingRequest{Key: SettingHeroImage, Value: json.RawMessage(`{"url":"/img/hero.jpg"}`)}
	require.NoError(t, valid.Validate())

	badKey := valid
	badKey.Key = "Hero Image!"
	assert.Error(t, badKey.Validate())

	badJSON := valid
	badJSON.Value = json.RawMessage(`{"url":`)
	assert.Error(t, badJSON.Validate())

	noValue := valid
	noValue.Value = nil
	assert.Error(t, noValue.Validate())
}

func strPtr(s string) *string { return &s }
