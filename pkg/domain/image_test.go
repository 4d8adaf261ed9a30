package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageAsset_DataURL(t *testing.T) {
	t.Run("DataURL と ParseDataURL で元のバイト列に戻る", func(t *testing.T) {
		original := ImageAsset{Data: []byte{0x89, 'P', 'N', 'G', 0x00, 0xFF}, MimeType: MimeTypePNG}

		parsed, err := ParseDataURL(original.DataURL())

		require.NoError(t, err)
		assert.Equal(t, original.Data, parsed.Data)
		assert.Equal(t, MimeTypePNG, parsed.MimeType)
	})

	t.Run("data URL のプレフィックス形式", func(t *testing.T) {
		a := ImageAsset{Data: []byte("abc"), MimeType: "image/jpeg"}
		assert.Equal(t, "data:image/jpeg;base64,YWJj", a.DataURL())
	})

	t.Run("不正な data URL はエラー", func(t *testing.T) {
		for _, in := range []string{"", "not a data url", "data:image/png,YWJj", "data:image/png;base64,@@@"} {
			_, err := ParseDataURL(in)
			assert.Error(t, err, "input: %q", in)
		}
	})
}

func TestNewImageAssetFromBase64(t *testing.T) {
	a, err := NewImageAssetFromBase64("aGVsbG8=", "image/webp")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(a.Data))
	assert.Equal(t, "aGVsbG8=", a.Base64())
}
