package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
	"github.com/shouni/gemini-photo-kit/pkg/prompts"
)

// GeminiEditor はメイン画像・要素画像・追加指示を1回のマルチモーダル呼び出しにまとめ、
// 返ってきた最初のインライン画像を取り出す ImageEditor 実装です。
type GeminiEditor struct {
	aiClient           ContentGenerator
	model              string
	compressInputs     bool
	compressionQuality int
}

// NewGeminiEditor は GeminiEditor を初期化します。
func NewGeminiEditor(aiClient ContentGenerator, model string, opts ...Option) (*GeminiEditor, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (ContentGenerator) is required")
	}
	if model == "" {
		model = DefaultModel
	}

	g := &GeminiEditor{
		aiClient:           aiClient,
		model:              model,
		compressionQuality: DefaultCompressionQuality,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// EditImage はリクエストを Gemini API の形式に変換して実行します。
// 通信やレスポンスの失敗はすべて汎用文言の *GenerationError にまとめ、原因はログにのみ残します。
func (g *GeminiEditor) EditImage(ctx context.Context, req domain.GenerationRequest) (*domain.ImageAsset, error) {
	if req.MainImage == nil || len(req.MainImage.Data) == 0 {
		return nil, &GenerationError{Message: GenericFailureMessage, Err: errors.New("main image is required")}
	}

	requestID := ensureRequestID(req.RequestID)
	elements := req.Elements.Populated()
	prompt := prompts.BuildEditPrompt(domain.Categories(elements), req.Instruction)
	contents := g.buildContents(req.MainImage, elements, prompt)

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage), string(genai.ModalityText)},
	}

	start := time.Now()
	log.Info().
		Str("request_id", requestID).
		Str("model", g.model).
		Int("elements", len(elements)).
		Int("parts", len(contents[0].Parts)).
		Msg("Geminiに画像編集をリクエストします")

	resp, err := g.aiClient.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("Gemini API の呼び出しに失敗しました")
		return nil, &GenerationError{Message: GenericFailureMessage, Err: err}
	}

	out, err := parseResponse(resp)
	if err != nil {
		if !errors.Is(err, ErrNoImage) {
			log.Warn().Err(err).Str("request_id", requestID).Msg("画像を取得できませんでした")
		}
		return nil, err
	}

	log.Info().
		Str("request_id", requestID).
		Int("output_bytes", len(out.Data)).
		Dur("duration", time.Since(start)).
		Msg("画像編集が完了しました")
	return out, nil
}
