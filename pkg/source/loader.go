package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
)

// DefaultMaxBytes は1枚の入力画像として受け付ける最大サイズです。
const DefaultMaxBytes = 20 << 20

// Loader は http(s) URL、data URL、ローカルファイル（および remoteio が扱える gs:// / s3://）から
// ImageAsset を読み込みます。
type Loader struct {
	client      httpkit.ClientInterface
	reader      remoteio.InputReader
	maxBytes    int64
	validateURL func(rawURL string) (bool, error)
}

// NewLoader は HTTP クライアントとファイルリーダーを注入して Loader を作成します。
// nil の場合は NewHTTPClient と、クラウドクライアントなしの UniversalInputReader を使います。
func NewLoader(client httpkit.ClientInterface, reader remoteio.InputReader) *Loader {
	if client == nil {
		client = NewHTTPClient(DefaultHTTPTimeout)
	}
	if reader == nil {
		reader = remoteio.NewUniversalInputReader(nil, nil)
	}
	return &Loader{
		client:      client,
		reader:      reader,
		maxBytes:    DefaultMaxBytes,
		validateURL: IsSafeURL,
	}
}

// Load は location から画像を読み込みます。
// declaredMIME が空でなければそれを採用し、空なら内容から判定します。画像以外は ErrNotImage を返します。
func (l *Loader) Load(ctx context.Context, location, declaredMIME string) (*domain.ImageAsset, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("画像の指定が空です")
	}

	if strings.HasPrefix(location, "data:") {
		asset, err := domain.ParseDataURL(location)
		if err != nil {
			return nil, err
		}
		return finalize(asset.Data, firstNonEmpty(declaredMIME, asset.MimeType), "data URL")
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		data, err := l.fetch(ctx, location)
		if err != nil {
			return nil, err
		}
		return finalize(data, declaredMIME, location)
	}

	data, err := l.open(ctx, location)
	if err != nil {
		return nil, err
	}
	return finalize(data, declaredMIME, location)
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if safe, err := l.validateURL(rawURL); !safe || err != nil {
		log.Warn().Err(err).Str("url", rawURL).Msg("SSRFの可能性がある、または不正なURLをブロックしました")
		return nil, fmt.Errorf("%w: %v", ErrUnsafeURL, err)
	}

	data, err := l.client.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("画像のダウンロードに失敗しました: %w", err)
	}
	if err := l.checkSize(data); err != nil {
		return nil, err
	}

	log.Debug().Str("url", rawURL).Int("bytes", len(data)).Msg("参照画像をダウンロードしました")
	return data, nil
}

func (l *Loader) open(ctx context.Context, path string) ([]byte, error) {
	rc, err := l.reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("画像ファイルを開けませんでした: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("画像の読み込みに失敗しました: %w", err)
	}
	if err := l.checkSize(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (l *Loader) checkSize(data []byte) error {
	if int64(len(data)) > l.maxBytes {
		return fmt.Errorf("画像が大きすぎます (上限: %d bytes)", l.maxBytes)
	}
	if len(data) == 0 {
		return fmt.Errorf("画像が空です")
	}
	return nil
}

func finalize(data []byte, mimeType, location string) (*domain.ImageAsset, error) {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
		if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
			mimeType = mt
		}
	}
	if !strings.HasPrefix(mimeType, "image/") {
		log.Warn().Str("source", location).Str("mime_type", mimeType).Msg("MIMEタイプが画像ではありません")
		return nil, fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}
	return &domain.ImageAsset{Data: data, MimeType: mimeType}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
