package generator

import (
	"context"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
	"google.golang.org/genai"
)

// ContentGenerator は Gemini へのマルチモーダル呼び出しを抽象化するインターフェースです。
// *genai.Models がそのまま満たすため、本番では client.Models を渡し、テストではモックを渡します。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImageEditor はビジネスロジック層が利用する画像編集の窓口です。
// 成功時は生成画像を、画像も説明文も返らなかった場合は ErrNoImage を、
// それ以外の失敗は *GenerationError を返します。
type ImageEditor interface {
	EditImage(ctx context.Context, req domain.GenerationRequest) (*domain.ImageAsset, error)
}
