//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxQuestionLen = 500
	maxAnswerLen   = 5000
)

// FAQEntry is one question/answer pair shown on the public FAQ page.
type FAQEntry struct {
	ID        string    `json:"id"         db:"id"`
	Question  string    `json:"question"   db:"question"`
	Answer    string    `json:"answer"     db:"answer"`
	Position  int       `json:"position"   db:"position"`
	Published bool      `json:"published"  db:"published"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateFAQRequest represents parameters to create an FAQEntry.
type CreateFAQRequest struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Position  int    `json:"position"`
	Published *bool  `json:"published,omitempty"`
}

// UpdateFAQRequest represents parameters to update an FAQEntry.
type UpdateFAQRequest struct {
	Question  *string `json:"question,omitempty"`
	Answer    *string `json:"answer,omitempty"`
	Position  *int    `json:"position,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// Validate validates CreateFAQRequest.
func (r *CreateFAQRequest) Validate() error {
	q := strings.TrimSpace(r.Question)
	if q == "" {
		return errors.New("question is required and cannot be empty")
	}
	if utf8.RuneCountInString(q) > maxQuestionLen {
		return errors.New("question exceeds maximum length")
	}
	if strings.TrimSpace(r.Answer) == "" {
		return errors.New("answer is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Answer) > maxAnswerLen {
		return errors.New("answer exceeds maximum length")
	}
	return nil
}

// Validate validates UpdateFAQRequest.
func (r *UpdateFAQRequest) Validate() error {
	if r.Question != nil {
		q := strings.TrimSpace(*r.Question)
		if q == "" {
			return errors.New("question cannot be empty")
		}
		if utf8.RuneCountInString(q) > maxQuestionLen {
			return errors.New("question exceeds maximum length")
		}
	}
	if r.Answer != nil {
		if strings.TrimSpace(*r.Answer) == "" {
			return errors.New("answer cannot be empty")
		}
		if utf8.RuneCountInString(*r.Answer) > maxAnswerLen {
			return errors.New("answer exceeds maximum length")
		}
	}
	return nil
}
