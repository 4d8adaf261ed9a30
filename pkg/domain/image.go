package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MimeTypePNG は生成結果およびクロップ結果で常に使用される MIME タイプです。
const MimeTypePNG = "image/png"

// ImageAsset は画像のバイナリと MIME タイプの組です。
// UI から受け取る画像、Gemini に送る画像、Gemini から返る画像はすべてこの型で扱います。
type ImageAsset struct {
	Data     []byte
	MimeType string
}

// NewImageAssetFromBase64 は base64 文字列と MIME タイプから ImageAsset を復元します。
func NewImageAssetFromBase64(encoded, mimeType string) (*ImageAsset, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("base64のデコードに失敗しました: %w", err)
	}
	return &ImageAsset{Data: data, MimeType: mimeType}, nil
}

// Base64 はワイヤ表現（標準 base64）を返します。
func (a ImageAsset) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// DataURL は "data:<mime>;base64,<payload>" 形式の文字列を返します。
// ギャラリーへの保存や表示用の表現です。
func (a ImageAsset) DataURL() string {
	return "data:" + a.MimeType + ";base64," + a.Base64()
}

// ParseDataURL は data URL を MIME タイプとペイロードに分解して ImageAsset を返します。
// base64 エンコードされた data URL のみを受け付けます。
func ParseDataURL(dataURL string) (*ImageAsset, error) {
	header, payload, found := strings.Cut(dataURL, ",")
	if !found || !strings.HasPrefix(header, "data:") {
		return nil, fmt.Errorf("data URLの形式が不正です")
	}

	meta := strings.TrimPrefix(header, "data:")
	mimeType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return nil, fmt.Errorf("base64以外のdata URLには対応していません: %q", encoding)
	}

	return NewImageAssetFromBase64(payload, mimeType)
}

// GenerationRequest は1回の生成操作に必要な入力一式です。
// 生成のたびに作り直され、使用後は破棄されます。
type GenerationRequest struct {
	MainImage   *ImageAsset
	Elements    ElementImages
	Instruction string
	// RequestID はログ相関用の識別子です。空の場合は生成側で採番します。
	RequestID string
}
