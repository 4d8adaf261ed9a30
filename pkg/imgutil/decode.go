package imgutil

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Decode は PNG / JPEG / GIF / WebP / BMP / TIFF の画像をデコードします。
// EXIF の回転情報は適用済みの向きで返します。
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return img, nil
}

// Dimensions は画像の幅と高さを返します。
func Dimensions(data []byte) (int, int, error) {
	img, err := Decode(data)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}
