package session

import (
	"context"
	"sync"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
)

type mockEditor struct {
	editFunc func(ctx context.Context, req domain.GenerationRequest) (*domain.ImageAsset, error)

	mu       sync.Mutex
	requests []domain.GenerationRequest
}

func (m *mockEditor) EditImage(ctx context.Context, req domain.GenerationRequest) (*domain.ImageAsset, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.editFunc != nil {
		return m.editFunc(ctx, req)
	}
	return &domain.ImageAsset{Data: []byte("generated"), MimeType: domain.MimeTypePNG}, nil
}

func (m *mockEditor) lastRequest() domain.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

// failingGalleryStore は保存時に必ず失敗するストアです。
type failingGalleryStore struct{}

func (failingGalleryStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (failingGalleryStore) Set(context.Context, string, string) error {
	return errSaveFailed
}
