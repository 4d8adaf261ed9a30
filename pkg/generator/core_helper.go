package generator

import (
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
)

// buildContents はメイン画像、要素画像（カテゴリ順）、指示文の順にパーツを並べた
// 1件のユーザーコンテンツを組み立てます。
func (g *GeminiEditor) buildContents(main *domain.ImageAsset, elements []domain.ElementImage, prompt string) []*genai.Content {
	parts := make([]*genai.Part, 0, len(elements)+2)
	parts = append(parts, g.toPart(main))
	for _, el := range elements {
		parts = append(parts, g.toPart(el.Image))
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func (g *GeminiEditor) toPart(asset *domain.ImageAsset) *genai.Part {
	if g.compressInputs {
		asset = compressAsset(asset, g.compressionQuality)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: asset.MimeType, Data: asset.Data}}
}

// parseResponse は最初の候補からインライン画像を探します。
// 画像がなく文章がある場合はその文章を含む *GenerationError、
// どちらもない場合は ErrNoImage を返します。
func parseResponse(resp *genai.GenerateContentResponse) (*domain.ImageAsset, error) {
	if resp == nil {
		return nil, &GenerationError{Message: GenericFailureMessage, Err: errors.New("empty response")}
	}

	// 最初の候補 (Candidate) のみを利用する。
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, ErrNoImage
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &domain.ImageAsset{Data: part.InlineData.Data, MimeType: domain.MimeTypePNG}, nil
			}
		}
	}

	// 安全フィルター等によるブロックはログにのみ残す
	switch candidate.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
	default:
		log.Warn().Str("finish_reason", string(candidate.FinishReason)).Msg("画像生成が異常終了しました")
	}

	if text := resp.Text(); text != "" {
		return nil, &GenerationError{Message: textResponsePrefix + text}
	}

	return nil, ErrNoImage
}
