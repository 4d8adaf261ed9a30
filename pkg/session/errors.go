package session

import "errors"

var (
	// ErrNoMainImage はメイン画像が未設定のまま生成しようとしたことを示します。
	ErrNoMainImage = errors.New("main image is not set")
	// ErrGenerationInProgress は生成中に次の生成を要求したことを示します。
	ErrGenerationInProgress = errors.New("generation already in progress")
	// ErrNoGeneratedImage は生成結果がまだ無いことを示します。
	ErrNoGeneratedImage = errors.New("no generated image")
	// ErrUnknownAspectRatio はプリセットにない比率を指定したことを示します。
	ErrUnknownAspectRatio = errors.New("unknown aspect ratio")
)

// NoImageMessage はモデルが画像を返さなかったときにユーザーへ見せる文言です。
const NoImageMessage = "The model did not return an image. Please try again."
