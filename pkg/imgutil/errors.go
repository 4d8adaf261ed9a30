package imgutil

import "fmt"

// LoadError は元画像をデコードできなかったことを表します（入力画像側の問題）。
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// RenderError は切り出し結果を描画・エンコードできなかったことを表します（環境側の問題）。
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("could not render image: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
