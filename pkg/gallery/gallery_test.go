package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore は読み書きでエラーを返す Store です。
type failingStore struct {
	getErr error
	setErr error
	value  string
	found  bool
}

func (f *failingStore) Get(_ context.Context, _ string) (string, bool, error) {
	return f.value, f.found, f.getErr
}

func (f *failingStore) Set(_ context.Context, _, _ string) error {
	return f.setErr
}

func TestNew(t *testing.T) {
	t.Run("store が nil ならエラー", func(t *testing.T) {
		g, err := New(nil, "")
		assert.Error(t, err)
		assert.Nil(t, g)
	})

	t.Run("キー未指定ならデフォルトキー", func(t *testing.T) {
		g, err := New(NewMemoryStore(), "")
		require.NoError(t, err)
		assert.Equal(t, DefaultKey, g.key)
	})
}

func TestGallery_LoadAndAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("未保存なら空の一覧", func(t *testing.T) {
		g, _ := New(NewMemoryStore(), "")
		photos, err := g.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, photos)
		assert.NotNil(t, photos)
	})

	t.Run("新しいものが先頭に並ぶ", func(t *testing.T) {
		store := NewMemoryStore()
		g, _ := New(store, "")

		_, err := g.Add(ctx, "data:image/png;base64,AAA")
		require.NoError(t, err)
		photos, err := g.Add(ctx, "data:image/png;base64,BBB")
		require.NoError(t, err)

		assert.Equal(t, []string{"data:image/png;base64,BBB", "data:image/png;base64,AAA"}, photos)

		raw, found, _ := store.Get(ctx, DefaultKey)
		assert.True(t, found)
		assert.JSONEq(t, `["data:image/png;base64,BBB","data:image/png;base64,AAA"]`, raw)
	})

	t.Run("別インスタンスからも読み出せる", func(t *testing.T) {
		store := NewMemoryStore()
		g1, _ := New(store, "")
		_, err := g1.Add(ctx, "data:image/png;base64,AAA")
		require.NoError(t, err)

		g2, _ := New(store, "")
		photos, err := g2.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"data:image/png;base64,AAA"}, photos)
	})

	t.Run("壊れた保存値は空として扱う", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, DefaultKey, "{not json"))
		g, _ := New(store, "")

		photos, err := g.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, photos)

		photos, err = g.Add(ctx, "data:image/png;base64,CCC")
		require.NoError(t, err)
		assert.Equal(t, []string{"data:image/png;base64,CCC"}, photos)
	})

	t.Run("null は空として扱う", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, DefaultKey, "null"))
		g, _ := New(store, "")

		photos, err := g.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, photos)
		assert.Empty(t, photos)
	})

	t.Run("読み込みエラーは伝播する", func(t *testing.T) {
		cause := errors.New("boom")
		g, _ := New(&failingStore{getErr: cause}, "")
		_, err := g.Load(ctx)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("保存エラーでも更新後の一覧を返す", func(t *testing.T) {
		cause := errors.New("quota exceeded")
		g, _ := New(&failingStore{setErr: cause}, "")
		photos, err := g.Add(ctx, "data:image/png;base64,AAA")
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, []string{"data:image/png;base64,AAA"}, photos)
	})
}

func TestGallery_Get(t *testing.T) {
	ctx := context.Background()
	g, _ := New(NewMemoryStore(), "")
	_, _ = g.Add(ctx, "first")
	_, _ = g.Add(ctx, "second")

	v, err := g.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	v, err = g.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	_, err = g.Get(ctx, 2)
	assert.Error(t, err)
	_, err = g.Get(ctx, -1)
	assert.Error(t, err)
}
