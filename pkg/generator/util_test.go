package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
)

func TestEnsureRequestID(t *testing.T) {
	t.Run("指定があればそのまま返す", func(t *testing.T) {
		assert.Equal(t, "req-1", ensureRequestID("req-1"))
	})

	t.Run("空なら採番する", func(t *testing.T) {
		a, b := ensureRequestID(""), ensureRequestID("")
		assert.NotEmpty(t, a)
		assert.NotEqual(t, a, b)
	})
}

func TestCompressAsset(t *testing.T) {
	t.Run("画像でなければ元のまま", func(t *testing.T) {
		in := &domain.ImageAsset{Data: []byte("not-image"), MimeType: "image/png"}
		assert.Same(t, in, compressAsset(in, 75))
	})
}

func TestWithInputCompression(t *testing.T) {
	ai := &mockAIClient{}
	editor, err := NewGeminiEditor(ai, "m", WithInputCompression(50))
	assert.NoError(t, err)
	assert.True(t, editor.compressInputs)
	assert.Equal(t, 50, editor.compressionQuality)
}
