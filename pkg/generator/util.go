package generator

import (
	"github.com/google/uuid"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
	"github.com/shouni/gemini-photo-kit/pkg/imgutil"
)

// ensureRequestID はリクエストIDが空なら採番して返します。
func ensureRequestID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// compressAsset は画像を JPEG に再エンコードします。失敗時は元の画像を返します。
func compressAsset(asset *domain.ImageAsset, quality int) *domain.ImageAsset {
	compressed, err := imgutil.CompressToJPEG(asset.Data, quality)
	if err != nil {
		return asset
	}
	return &domain.ImageAsset{Data: compressed, MimeType: "image/jpeg"}
}
