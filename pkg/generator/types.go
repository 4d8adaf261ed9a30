package generator

const (
	// DefaultModel は画像編集に使用する既定のモデル名です。
	DefaultModel = "gemini-2.5-flash-image-preview"
	// DefaultCompressionQuality は入力画像を JPEG 圧縮する場合の既定品質です。
	DefaultCompressionQuality = 75

	// GenericFailureMessage は通信・サービス側の失敗時にユーザーへ見せる文言です。
	GenericFailureMessage = "Failed to generate image. Please check your inputs and try again."
	// textResponsePrefix はモデルが画像の代わりに文章を返したときの文言の接頭辞です。
	textResponsePrefix = "Model responded with text: "
)

// Option は GeminiEditor の任意設定です。
type Option func(*GeminiEditor)

// WithInputCompression は送信前に入力画像を指定品質の JPEG へ再エンコードします。
// 再エンコードに失敗した画像は元のまま送信します。
func WithInputCompression(quality int) Option {
	return func(g *GeminiEditor) {
		g.compressInputs = true
		g.compressionQuality = quality
	}
}
