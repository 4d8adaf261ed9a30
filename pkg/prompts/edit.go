package prompts

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
)

const (
	// FallbackPrompt は要素も追加指示もないときに使う既定の指示文です。
	FallbackPrompt = "Slightly enhance the provided image."

	editPrefix        = "Edit the main reference image. "
	elementsLead      = "Incorporate the following elements from the other images provided: "
	instructionFormat = `Additionally, follow this specific instruction: "%s".`
)

// BuildEditPrompt は要素カテゴリと自由記述から、生成モデルへの指示文を組み立てます。
// 純粋関数であり、同じ入力には常に同じ文字列を返します。
// 追加指示は前後の空白と BOM を除いてそのまま埋め込み、引用符のエスケープは行いません。
func BuildEditPrompt(elements []domain.ElementCategory, additional string) string {
	trimmed := strings.TrimFunc(additional, isTrimmable)
	if len(elements) == 0 && trimmed == "" {
		return FallbackPrompt
	}

	var sb strings.Builder
	sb.WriteString(editPrefix)

	if len(elements) > 0 {
		descriptions := make([]string, 0, len(elements))
		for _, el := range elements {
			descriptions = append(descriptions, fmt.Sprintf("a new '%s'", el))
		}
		sb.WriteString(elementsLead)
		sb.WriteString(strings.Join(descriptions, ", "))
		sb.WriteString(". ")
	}

	if trimmed != "" {
		sb.WriteString(fmt.Sprintf(instructionFormat, trimmed))
	}

	return sb.String()
}

func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
