// Package mocks provides mock implementations for testing the content services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces consumed by internal/service.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockMenuRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(item, nil)
package mocks

// Generate mocks for the content repository interfaces from internal/service.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=content_repository_mock.go github.com/casaluna/casaluna/internal/service MenuRepository,FAQRepository,NewsRepository,SettingsRepository
