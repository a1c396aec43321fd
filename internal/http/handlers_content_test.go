package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/casaluna/casaluna/internal/data"
	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
	"github.com/casaluna/casaluna/internal/domain/model"
	"github.com/casaluna/casaluna/internal/mocks"
	"github.com/casaluna/casaluna/internal/service"
)

func newMenuHandlers(repo *mocks.MockMenuRepository) *MenuHandlers {
	return &MenuHandlers{Svc: service.NewMenuService(service.MenuServiceOptions{Repo: repo})}
}

func TestMenuCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMenuRepository(ctrl)
	h := newMenuHandlers(repo)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *model.CreateMenuItemRequest) (*model.MenuItem, error) {
			require.Equal(t, "Paella", req.Name)
			return &model.MenuItem{ID: "m1", Name: req.Name, Category: req.Category}, nil
		})

	body := strings.NewReader(`{"name":"Paella","price_cents":2400,"category":"main"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/menu", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got model.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "m1", got.ID)
}

func TestMenuCreate_ValidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMenuRepository(ctrl)
	h := newMenuHandlers(repo)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, (&model.CreateMenuItemRequest{}).Validate())

	body := strings.NewReader(`{"name":"","category":"main"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/menu", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_failed")
}

func TestMenuCreate_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMenuRepository(ctrl)
	h := newMenuHandlers(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, data.ErrMenuItemExists)

	body := strings.NewReader(`{"name":"Paella","category":"main"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/menu", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMenuCreate_RejectsUnknownFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newMenuHandlers(mocks.NewMockMenuRepository(ctrl))

	body := strings.NewReader(`{"name":"Paella","surprise":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/menu", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestMenuList_FiltersAndPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMenuRepository(ctrl)
	h := newMenuHandlers(repo)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, opts data.MenuListOptions) ([]*model.MenuItem, error) {
			assert.Equal(t, 10, opts.Limit)
			assert.Equal(t, 20, opts.Offset)
			assert.True(t, opts.PublishedOnly)
			require.NotNil(t, opts.Category)
			assert.Equal(t, model.MenuCategoryDessert, *opts.Category)
			return []*model.MenuItem{}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/menu?limit=10&offset=20&published=true&category=dessert", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMenuList_InvalidCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newMenuHandlers(mocks.NewMockMenuRepository(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/menu?category=breakfast", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_category")
}

func TestMenuGetByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMenuRepository(ctrl)
	h := newMenuHandlers(repo)

	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, data.ErrMenuItemNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/menu/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "menu_item_not_found")
}

func TestSettingsGet_WithPathExtraction(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	h := &SettingsHandlers{Svc: service.NewSettingsService(service.SettingsServiceOptions{Repo: repo})}

	repo.EXPECT().Get(gomock.Any(), "hero_image").Return(&model.Setting{
		Key:   "hero_image",
		Value: json.RawMessage(`{"url":"https://cdn.casaluna.example/hero.jpg","alt":"patio"}`),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/settings/hero_image?path=url", nil)
	req.SetPathValue("key", "hero_image")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"value":"https://cdn.casaluna.example/hero.jpg"`)
}

func TestSettingsUpsert_FeatureTogglesRequireSuperadmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	h := &SettingsHandlers{Svc: service.NewSettingsService(service.SettingsServiceOptions{Repo: repo})}

	newReq := func(user *domainauth.User) *http.Request {
		req := httptest.NewRequest(
			http.MethodPut,
			"/api/settings/feature_toggles",
			strings.NewReader(`{"value":{"online_ordering":true}}`),
		)
		req.SetPathValue("key", model.SettingFeatureToggles)
		if user != nil {
			req = req.WithContext(SetUserInContext(req.Context(), user))
		}
		return req
	}

	// Admin is enough for ordinary settings routes but not for toggles.
	rec := httptest.NewRecorder()
	h.Upsert(rec, newReq(&domainauth.User{ID: "a1", Role: domainauth.RoleAdmin}))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	repo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *model.UpsertSettingRequest) (*model.Setting, error) {
			assert.Equal(t, model.SettingFeatureToggles, req.Key)
			require.NotNil(t, req.UpdatedBy)
			assert.Equal(t, "s1", *req.UpdatedBy)
			return &model.Setting{Key: req.Key, Value: req.Value}, nil
		})

	rec = httptest.NewRecorder()
	h.Upsert(rec, newReq(&domainauth.User{ID: "s1", Role: domainauth.RoleSuperadmin}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSettingsDelete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	h := &SettingsHandlers{Svc: service.NewSettingsService(service.SettingsServiceOptions{Repo: repo})}

	repo.EXPECT().Delete(gomock.Any(), "gone").Return(data.ErrSettingNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/settings/gone", nil)
	req.SetPathValue("key", "gone")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
