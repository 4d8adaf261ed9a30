package imgutil

import (
	"bytes"
	"errors"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
)

// CropToAspectRatio は画像を指定比率の中央矩形で切り出し、PNG として返します。
// 拡大縮小は行わず、元画像のピクセルをそのまま写します。
// ratioSpec が "full" の場合は入力をそのまま返します。
//
// デコードに失敗した場合は *LoadError、描画やエンコードに失敗した場合は *RenderError を返します。
func CropToAspectRatio(data []byte, ratioSpec string) ([]byte, error) {
	target, full := ParseAspectRatio(ratioSpec)
	if full {
		return data, nil
	}

	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rect := CropRect(bounds.Dx(), bounds.Dy(), target)
	if rect.Empty() {
		return nil, &RenderError{Err: errors.New("描画領域が空です")}
	}

	log.Debug().
		Str("ratio", ratioSpec).
		Int("src_width", bounds.Dx()).
		Int("src_height", bounds.Dy()).
		Int("x", rect.Min.X).
		Int("y", rect.Min.Y).
		Int("crop_width", rect.Dx()).
		Int("crop_height", rect.Dy()).
		Msg("画像をクロップします")

	cropped := imaging.Crop(img, rect.Add(bounds.Min))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.PNG); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

// CropAsset は ImageAsset 版の CropToAspectRatio です。
// "full" の場合は同じ値を返し、それ以外は常に PNG になります。
func CropAsset(asset *domain.ImageAsset, ratioSpec string) (*domain.ImageAsset, error) {
	if asset == nil {
		return nil, &LoadError{Err: errors.New("画像がありません")}
	}
	if _, full := ParseAspectRatio(ratioSpec); full {
		return asset, nil
	}

	out, err := CropToAspectRatio(asset.Data, ratioSpec)
	if err != nil {
		return nil, err
	}
	return &domain.ImageAsset{Data: out, MimeType: domain.MimeTypePNG}, nil
}

// CropDataURL は data URL を受け取り、切り出した結果を PNG の data URL で返します。
// "full" の場合は入力文字列をそのまま返します。
func CropDataURL(dataURL, ratioSpec string) (string, error) {
	if _, full := ParseAspectRatio(ratioSpec); full {
		return dataURL, nil
	}

	asset, err := domain.ParseDataURL(dataURL)
	if err != nil {
		return "", &LoadError{Err: err}
	}

	cropped, err := CropAsset(asset, ratioSpec)
	if err != nil {
		return "", err
	}
	return cropped.DataURL(), nil
}
