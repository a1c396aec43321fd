package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/casaluna/casaluna/internal/data"
	"github.com/casaluna/casaluna/internal/domain/model"
	"github.com/casaluna/casaluna/internal/mocks"
)

func TestMenuService_List_NormalizesOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMenuRepository(ctrl)
	svc := NewMenuService(MenuServiceOptions{Repo: repo})

	repo.EXPECT().List(gomock.Any(), data.MenuListOptions{Limit: 100, Offset: 0}).Return(nil, nil)
	_, err := svc.List(context.Background(), data.MenuListOptions{Limit: -5, Offset: -1})
	require.NoError(t, err)

	repo.EXPECT().List(gomock.Any(), data.MenuListOptions{Limit: 100, Offset: 40}).Return(nil, nil)
	_, err = svc.List(context.Background(), data.MenuListOptions{Limit: 9999, Offset: 40})
	require.NoError(t, err)
}

func TestMenuService_Create_PassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMenuRepository(ctrl)
	svc := NewMenuService(MenuServiceOptions{Repo: repo})

	req := &model.CreateMenuItemRequest{
		Name:       "Gnocchi",
		PriceCents: 1850,
		Category:   model.MenuCategoryMain,
	}
	created := &model.MenuItem{ID: "m1", Name: "Gnocchi"}
	repo.EXPECT().Create(gomock.Any(), req).Return(created, nil)

	got, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}
