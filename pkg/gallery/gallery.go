package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultKey はギャラリーを保存するストアのキーです。
const DefaultKey = "inBananaPhotos"

// Gallery は生成画像（data URL）の一覧を新しい順に保持し、Store に永続化します。
// エントリは位置と内容以外の識別子を持ちません。
type Gallery struct {
	store Store
	key   string
	mu    sync.Mutex
}

// New は Store を注入して Gallery を作成します。key が空なら DefaultKey を使います。
func New(store Store, key string) (*Gallery, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if key == "" {
		key = DefaultKey
	}
	return &Gallery{store: store, key: key}, nil
}

// Load は保存済みの一覧を返します。
// 保存値が壊れている場合はログを残して空の一覧として扱います。
func (g *Gallery) Load(ctx context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.load(ctx)
}

// Add は data URL を先頭に追加して保存し、更新後の一覧を返します。
func (g *Gallery) Add(ctx context.Context, dataURL string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	photos := make([]string, 0, len(current)+1)
	photos = append(photos, dataURL)
	photos = append(photos, current...)

	encoded, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("ギャラリーのエンコードに失敗しました: %w", err)
	}
	if err := g.store.Set(ctx, g.key, string(encoded)); err != nil {
		return photos, fmt.Errorf("ギャラリーの保存に失敗しました: %w", err)
	}
	return photos, nil
}

// Get は index 番目（0 が最新）のエントリを返します。
func (g *Gallery) Get(ctx context.Context, index int) (string, error) {
	photos, err := g.Load(ctx)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(photos) {
		return "", fmt.Errorf("ギャラリーに %d 番目の画像はありません (件数: %d)", index, len(photos))
	}
	return photos[index], nil
}

func (g *Gallery) load(ctx context.Context) ([]string, error) {
	raw, found, err := g.store.Get(ctx, g.key)
	if err != nil {
		return nil, fmt.Errorf("ギャラリーの読み込みに失敗しました: %w", err)
	}
	if !found || raw == "" {
		return []string{}, nil
	}

	var photos []string
	if err := json.Unmarshal([]byte(raw), &photos); err != nil {
		log.Warn().Err(err).Str("key", g.key).Msg("保存済みギャラリーを読み込めないため空として扱います")
		return []string{}, nil
	}
	if photos == nil {
		photos = []string{}
	}
	return photos, nil
}
