package service

// Repository interfaces consumed by the content services. The pgx-backed
// implementations live in internal/data; tests substitute generated mocks.

import (
	"context"

	"github.com/casaluna/casaluna/internal/data"
	"github.com/casaluna/casaluna/internal/domain/model"
)

// MenuRepository persists menu items.
type MenuRepository interface {
	Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error)
	GetByID(ctx context.Context, id string) (*model.MenuItem, error)
	List(ctx context.Context, opts data.MenuListOptions) ([]*model.MenuItem, error)
	Update(ctx context.Context, id string, req *model.UpdateMenuItemRequest) (*model.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

// FAQRepository persists FAQ entries.
type FAQRepository interface {
	Create(ctx context.Context, req *model.CreateFAQRequest) (*model.FAQEntry, error)
	GetByID(ctx context.Context, id string) (*model.FAQEntry, error)
	List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*model.FAQEntry, error)
	Update(ctx context.Context, id string, req *model.UpdateFAQRequest) (*model.FAQEntry, error)
	Delete(ctx context.Context, id string) error
}

// NewsRepository persists news posts.
type NewsRepository interface {
	Create(ctx context.Context, req *model.CreateNewsPostRequest) (*model.NewsPost, error)
	GetByID(ctx context.Context, id string) (*model.NewsPost, error)
	List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*model.NewsPost, error)
	Update(ctx context.Context, id string, req *model.UpdateNewsPostRequest) (*model.NewsPost, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository persists site settings as JSON values.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]*model.Setting, error)
	Upsert(ctx context.Context, req *model.UpsertSettingRequest) (*model.Setting, error)
	Delete(ctx context.Context, key string) error
}

var (
	_ MenuRepository     = (*data.MenuRepo)(nil)
	_ FAQRepository      = (*data.FAQRepo)(nil)
	_ NewsRepository     = (*data.NewsRepo)(nil)
	_ SettingsRepository = (*data.SettingsRepo)(nil)
)
