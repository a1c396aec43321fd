package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/casaluna/casaluna/internal/domain/model"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// SettingsServiceOptions groups dependencies for SettingsService.
type SettingsServiceOptions struct {
	Repo      SettingsRepository
	Evaluator JMESPathEvaluator
}

// SettingsService manages the JSON key-value settings table (hero image,
// feature toggles) and supports JMESPath extraction on reads.
type SettingsService struct {
	repo SettingsRepository
	jems JMESPathEvaluator
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(opts SettingsServiceOptions) *SettingsService {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	return &SettingsService{repo: opts.Repo, jems: jems}
}

// Get returns the setting for key. A non-empty path applies a JMESPath
// expression to the JSON value and replaces it with the extracted result.
func (s *SettingsService) Get(ctx context.Context, key, path string) (*model.Setting, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return setting, nil
	}

	if validateErr := s.jems.Validate(path); validateErr != nil {
		return nil, fmt.Errorf("invalid path expression: %w", validateErr)
	}

	var doc any
	if unmarshalErr := json.Unmarshal(setting.Value, &doc); unmarshalErr != nil {
		return nil, fmt.Errorf("decode setting value: %w", unmarshalErr)
	}

	result, err := s.jems.Evaluate(path, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluate path expression: %w", err)
	}

	extracted, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode extracted value: %w", err)
	}

	out := *setting
	out.Value = extracted
	return &out, nil
}

// List returns all settings.
func (s *SettingsService) List(ctx context.Context) ([]*model.Setting, error) {
	return s.repo.List(ctx)
}

// Upsert creates or replaces a setting.
func (s *SettingsService) Upsert(ctx context.Context, req *model.UpsertSettingRequest) (*model.Setting, error) {
	return s.repo.Upsert(ctx, req)
}

// Delete removes a setting. Missing keys surface the repo's not-found error.
func (s *SettingsService) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}
