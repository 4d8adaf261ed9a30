package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

// createDummyImageData は単色の画像を指定フォーマットでエンコードして返すヘルパーです。
func createDummyImageData(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, red)
		}
	}
	return encode(t, format, img)
}

// createBandedImage は外側 margin ピクセルを赤、中央を緑、反対側を青に塗った画像を返します。
// horizontal=true なら左右方向、false なら上下方向に帯を並べます。
func createBandedImage(t *testing.T, w, h, margin int, horizontal bool) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			pos, size := y, h
			if horizontal {
				pos, size = x, w
			}
			switch {
			case pos < margin:
				img.Set(x, y, red)
			case pos >= size-margin:
				img.Set(x, y, blue)
			default:
				img.Set(x, y, green)
			}
		}
	}
	return encode(t, "png", img)
}

func encode(t *testing.T, format string, img image.Image) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	var err error
	switch format {
	case "png":
		err = png.Encode(buf, img)
	case "jpeg":
		err = jpeg.Encode(buf, img, nil)
	default:
		t.Fatalf("unsupported format: %s", format)
	}
	if err != nil {
		t.Fatalf("failed to encode dummy image: %v", err)
	}
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
