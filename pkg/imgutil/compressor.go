package imgutil

import (
	"bytes"
	"image/jpeg"
)

// CompressToJPEG は画像データ（PNG, GIF, JPEG, WebP 等）を JPEG 形式に再エンコードします。
// Decode がサポートするフォーマットに対応しています。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}
