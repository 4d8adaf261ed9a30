package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
	"github.com/shouni/gemini-photo-kit/pkg/gallery"
	"github.com/shouni/gemini-photo-kit/pkg/generator"
	"github.com/shouni/gemini-photo-kit/pkg/imgutil"
)

// Session は1人のユーザーの編集状態を保持します。
// メイン画像、要素スロット、指示文、生成結果、表示比率、原画表示トグル、直近のエラー文言を持ち、
// 生成結果はギャラリーへ永続化されます。
type Session struct {
	editor  generator.ImageEditor
	gallery *gallery.Gallery

	mu           sync.Mutex
	mainImage    *domain.ImageAsset
	elements     domain.ElementImages
	instruction  string
	generated    *domain.ImageAsset
	aspectRatio  string
	showOriginal bool
	lastError    string
	generating   bool
}

// New は依存関係を注入して空の Session を作成します。
func New(editor generator.ImageEditor, g *gallery.Gallery) (*Session, error) {
	if editor == nil {
		return nil, fmt.Errorf("image editor is required")
	}
	if g == nil {
		return nil, fmt.Errorf("gallery is required")
	}
	return &Session{
		editor:      editor,
		gallery:     g,
		elements:    make(domain.ElementImages),
		aspectRatio: domain.DefaultAspectRatio,
	}, nil
}

// SetMainImage はメイン画像を差し替え、前回の生成結果・エラー・トグル・比率をリセットします。
func (s *Session) SetMainImage(img *domain.ImageAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mainImage = img
	s.generated = nil
	s.lastError = ""
	s.showOriginal = false
	s.aspectRatio = domain.DefaultAspectRatio
}

func (s *Session) MainImage() *domain.ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mainImage
}

// SetElement はカテゴリのスロットに画像を設定します。nil を渡すとスロットを空にします。
func (s *Session) SetElement(category domain.ElementCategory, img *domain.ImageAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if img == nil {
		delete(s.elements, category)
		return
	}
	s.elements[category] = img
}

// Elements は要素スロットのコピーを返します。
func (s *Session) Elements() domain.ElementImages {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(domain.ElementImages, len(s.elements))
	for k, v := range s.elements {
		out[k] = v
	}
	return out
}

func (s *Session) SetInstruction(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instruction = text
}

func (s *Session) Instruction() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.instruction
}

// SetAspectRatio は表示・出力用の比率を設定します。プリセット以外は ErrUnknownAspectRatio です。
func (s *Session) SetAspectRatio(ratio string) error {
	if !slices.Contains(domain.AspectRatioPresets, ratio) {
		return fmt.Errorf("%w: %q", ErrUnknownAspectRatio, ratio)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aspectRatio = ratio
	return nil
}

func (s *Session) AspectRatio() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aspectRatio
}

// Generate は現在の入力で画像を編集し、成功すれば結果を保持してギャラリーの先頭に追加します。
//
// 失敗時はユーザー向け文言を LastError に残したうえでエラーを返します。
// モデルが画像を返さなかった場合は generator.ErrNoImage を返し、文言は NoImageMessage になります。
// ギャラリーへの保存失敗はログに残すだけで、生成自体は成功として扱います。
func (s *Session) Generate(ctx context.Context) (*domain.ImageAsset, error) {
	s.mu.Lock()
	if s.mainImage == nil {
		s.mu.Unlock()
		return nil, ErrNoMainImage
	}
	if s.generating {
		s.mu.Unlock()
		return nil, ErrGenerationInProgress
	}
	s.generating = true
	s.generated = nil
	s.lastError = ""
	s.showOriginal = false
	s.aspectRatio = domain.DefaultAspectRatio

	req := domain.GenerationRequest{
		MainImage:   s.mainImage,
		Elements:    make(domain.ElementImages, len(s.elements)),
		Instruction: s.instruction,
		RequestID:   uuid.NewString(),
	}
	for k, v := range s.elements {
		req.Elements[k] = v
	}
	s.mu.Unlock()

	start := time.Now()
	result, err := s.editor.EditImage(ctx, req)
	if err == nil && result == nil {
		err = generator.ErrNoImage
	}

	s.mu.Lock()
	s.generating = false
	if err != nil {
		s.lastError = userMessage(err)
		s.mu.Unlock()
		log.Warn().
			Err(err).
			Str("request_id", req.RequestID).
			Dur("elapsed", time.Since(start)).
			Msg("画像の生成に失敗しました")
		return nil, err
	}
	s.generated = result
	s.mu.Unlock()

	if _, err := s.gallery.Add(ctx, result.DataURL()); err != nil {
		log.Warn().Err(err).Str("request_id", req.RequestID).Msg("ギャラリーへの保存に失敗しました")
	}

	log.Info().
		Str("request_id", req.RequestID).
		Int("bytes", len(result.Data)).
		Dur("elapsed", time.Since(start)).
		Msg("画像を生成しました")
	return result, nil
}

// Generating は生成処理の実行中かどうかを返します。
func (s *Session) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

func (s *Session) GeneratedImage() *domain.ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generated
}

// LastError は直近の生成失敗のユーザー向け文言です。失敗していなければ空です。
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ToggleOriginal は生成結果と原画の表示を切り替え、切り替え後の状態を返します。
// 生成結果が無い間は何もしません。
func (s *Session) ToggleOriginal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generated == nil {
		return s.showOriginal
	}
	s.showOriginal = !s.showOriginal
	return s.showOriginal
}

func (s *Session) ShowingOriginal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showOriginal
}

// DisplayedImage は現在表示すべき画像を返します。
// 生成結果があればトグルに従って生成結果か原画を、無ければ原画を返します。
func (s *Session) DisplayedImage() *domain.ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generated != nil && !s.showOriginal {
		return s.generated
	}
	return s.mainImage
}

// FinalImage は生成結果をセッションの比率で切り出したダウンロード用の画像を返します。
func (s *Session) FinalImage() (*domain.ImageAsset, error) {
	s.mu.Lock()
	generated, ratio := s.generated, s.aspectRatio
	s.mu.Unlock()

	if generated == nil {
		return nil, ErrNoGeneratedImage
	}
	return imgutil.CropAsset(generated, ratio)
}

// Reset はセッションを初期状態に戻します。ギャラリーは保持されます。
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mainImage = nil
	s.elements = make(domain.ElementImages)
	s.instruction = ""
	s.generated = nil
	s.aspectRatio = domain.DefaultAspectRatio
	s.showOriginal = false
	s.lastError = ""
}

// Gallery は保存済みの生成画像（新しい順）を返します。
func (s *Session) Gallery(ctx context.Context) ([]string, error) {
	return s.gallery.Load(ctx)
}

func userMessage(err error) string {
	if errors.Is(err, generator.ErrNoImage) {
		return NoImageMessage
	}
	var genErr *generator.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Message
	}
	return generator.GenericFailureMessage
}
