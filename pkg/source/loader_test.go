package source

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newTestLoader は httptest サーバー（ループバック）へのアクセスを許可した Loader を返します。
func newTestLoader() *Loader {
	opts := append([]httpkit.ClientOption{httpkit.WithSkipNetworkValidation(true)}, fastRetry...)
	l := NewLoader(httpkit.New(time.Second, opts...), nil)
	l.validateURL = func(string) (bool, error) { return true, nil }
	return l
}

// mockReader は remoteio.InputReader のテスト用モックです。
type mockReader struct {
	openFunc func(ctx context.Context, path string) (io.ReadCloser, error)
	opened   []string
}

func (m *mockReader) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	m.opened = append(m.opened, path)
	return m.openFunc(ctx, path)
}

func (m *mockReader) List(context.Context, string, func(string) error) error { return nil }

func TestLoader_LocalFile(t *testing.T) {
	ctx := context.Background()
	data := pngBytes(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "main.png")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Run("内容からMIMEを判定する", func(t *testing.T) {
		asset, err := NewLoader(nil, nil).Load(ctx, path, "")
		require.NoError(t, err)
		assert.Equal(t, data, asset.Data)
		assert.Equal(t, "image/png", asset.MimeType)
	})

	t.Run("宣言されたMIMEを優先する", func(t *testing.T) {
		asset, err := NewLoader(nil, nil).Load(ctx, path, "image/webp")
		require.NoError(t, err)
		assert.Equal(t, "image/webp", asset.MimeType)
	})

	t.Run("画像以外は拒否", func(t *testing.T) {
		txt := filepath.Join(dir, "note.txt")
		require.NoError(t, os.WriteFile(txt, []byte("hello world"), 0o600))
		_, err := NewLoader(nil, nil).Load(ctx, txt, "")
		assert.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("存在しないファイル", func(t *testing.T) {
		_, err := NewLoader(nil, nil).Load(ctx, filepath.Join(dir, "missing.png"), "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("空ファイル", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.png")
		require.NoError(t, os.WriteFile(empty, nil, 0o600))
		_, err := NewLoader(nil, nil).Load(ctx, empty, "")
		assert.Error(t, err)
	})

	t.Run("上限サイズ超過", func(t *testing.T) {
		l := NewLoader(nil, nil)
		l.maxBytes = 8
		_, err := l.Load(ctx, path, "")
		assert.Error(t, err)
	})

	t.Run("空の指定", func(t *testing.T) {
		_, err := NewLoader(nil, nil).Load(ctx, "  ", "")
		assert.Error(t, err)
	})
}

func TestLoader_Reader(t *testing.T) {
	ctx := context.Background()
	data := pngBytes(t)

	t.Run("パスはリーダーに委譲する", func(t *testing.T) {
		reader := &mockReader{openFunc: func(context.Context, string) (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}}
		asset, err := NewLoader(nil, reader).Load(ctx, "gs://bucket/main.png", "")
		require.NoError(t, err)
		assert.Equal(t, data, asset.Data)
		assert.Equal(t, []string{"gs://bucket/main.png"}, reader.opened)
	})

	t.Run("リーダーのエラーは伝播する", func(t *testing.T) {
		cause := errors.New("denied")
		reader := &mockReader{openFunc: func(context.Context, string) (io.ReadCloser, error) {
			return nil, cause
		}}
		_, err := NewLoader(nil, reader).Load(ctx, "s3://bucket/main.png", "")
		assert.ErrorIs(t, err, cause)
	})
}

func TestLoader_DataURL(t *testing.T) {
	data := pngBytes(t)
	dataURL := domain.ImageAsset{Data: data, MimeType: "image/png"}.DataURL()

	asset, err := NewLoader(nil, nil).Load(context.Background(), dataURL, "")
	require.NoError(t, err)
	assert.Equal(t, data, asset.Data)
	assert.Equal(t, "image/png", asset.MimeType)
}

func TestLoader_URL(t *testing.T) {
	ctx := context.Background()
	data := pngBytes(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/a.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(data)
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>hi</body></html>"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Run("内容からMIMEを判定する", func(t *testing.T) {
		asset, err := newTestLoader().Load(ctx, srv.URL+"/a.png", "")
		require.NoError(t, err)
		assert.Equal(t, data, asset.Data)
		assert.Equal(t, "image/png", asset.MimeType)
	})

	t.Run("HTMLは拒否", func(t *testing.T) {
		_, err := newTestLoader().Load(ctx, srv.URL+"/page", "")
		assert.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("ステータスエラー", func(t *testing.T) {
		_, err := newTestLoader().Load(ctx, srv.URL+"/missing", "")
		assert.True(t, httpkit.IsNonRetryableError(err))
	})

	t.Run("デフォルトではループバックを拒否する", func(t *testing.T) {
		_, err := NewLoader(nil, nil).Load(ctx, srv.URL+"/a.png", "")
		assert.ErrorIs(t, err, ErrUnsafeURL)
	})
}
