package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/casaluna/casaluna/internal/data"
	"github.com/casaluna/casaluna/internal/domain/model"
)

const sitePayloadCacheKey = "site"

// PayloadCache caches the rendered site payload. Misses and write failures
// are tolerated; the payload is always reproducible from the database.
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte) error
	Invalidate(ctx context.Context, keys ...string) error
}

// SitePayload is the public content bundle the marketing site renders from.
type SitePayload struct {
	Menu      []*model.MenuItem `json:"menu"`
	FAQ       []*model.FAQEntry `json:"faq"`
	News      []*model.NewsPost `json:"news"`
	HeroImage json.RawMessage   `json:"hero_image,omitempty"`
}

// SiteServiceOptions groups dependencies for SiteService.
type SiteServiceOptions struct {
	Menu     MenuRepository
	FAQ      FAQRepository
	News     NewsRepository
	Settings SettingsRepository
	Cache    PayloadCache
	Logger   *slog.Logger
}

// SiteService assembles the public site payload from published content.
type SiteService struct {
	menu     MenuRepository
	faq      FAQRepository
	news     NewsRepository
	settings SettingsRepository
	cache    PayloadCache
	logger   *slog.Logger
}

// NewSiteService constructs a new SiteService.
func NewSiteService(opts SiteServiceOptions) *SiteService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SiteService{
		menu:     opts.Menu,
		faq:      opts.FAQ,
		news:     opts.News,
		settings: opts.Settings,
		cache:    opts.Cache,
		logger:   logger,
	}
}

// Payload returns the rendered site bundle as JSON, serving from cache when
// possible. The four content sections are fetched concurrently.
func (s *SiteService) Payload(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, sitePayloadCacheKey); ok {
			return cached, nil
		}
	}

	payload, err := s.assemble(ctx)
	if err != nil {
		return nil, err
	}

	rendered, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode site payload: %w", err)
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, sitePayloadCacheKey, rendered); cacheErr != nil {
			s.logger.WarnContext(ctx, "site payload cache write failed", "error", cacheErr)
		}
	}

	return rendered, nil
}

// InvalidateCache drops the cached payload after a content write.
func (s *SiteService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, sitePayloadCacheKey); err != nil {
		s.logger.WarnContext(ctx, "site payload cache invalidation failed", "error", err)
	}
}

func (s *SiteService) assemble(ctx context.Context) (*SitePayload, error) {
	var payload SitePayload

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.menu.List(gctx, data.MenuListOptions{Limit: 200, PublishedOnly: true})
		if err != nil {
			return fmt.Errorf("list menu: %w", err)
		}
		payload.Menu = items
		return nil
	})

	g.Go(func() error {
		entries, err := s.faq.List(gctx, 200, 0, true)
		if err != nil {
			return fmt.Errorf("list faq: %w", err)
		}
		payload.FAQ = entries
		return nil
	})

	g.Go(func() error {
		posts, err := s.news.List(gctx, 20, 0, true)
		if err != nil {
			return fmt.Errorf("list news: %w", err)
		}
		payload.News = posts
		return nil
	})

	g.Go(func() error {
		setting, err := s.settings.Get(gctx, model.SettingHeroImage)
		if err != nil {
			// A missing hero image is normal for a fresh install.
			if errors.Is(err, data.ErrSettingNotFound) {
				return nil
			}
			return fmt.Errorf("get hero image: %w", err)
		}
		payload.HeroImage = setting.Value
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if payload.Menu == nil {
		payload.Menu = []*model.MenuItem{}
	}
	if payload.FAQ == nil {
		payload.FAQ = []*model.FAQEntry{}
	}
	if payload.News == nil {
		payload.News = []*model.NewsPost{}
	}

	return &payload, nil
}
