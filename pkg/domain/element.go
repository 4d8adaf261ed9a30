package domain

import (
	"fmt"
	"strings"
)

// ElementCategory は参照画像に付与する意味カテゴリです。
// UI のスロットキーであり、プロンプトに埋め込まれるラベルでもあります。
type ElementCategory string

const (
	Expression ElementCategory = "expression"
	Gesture    ElementCategory = "gesture"
	Action     ElementCategory = "action"
	Object     ElementCategory = "object"
	Style      ElementCategory = "style"
	Location   ElementCategory = "location"
)

// ElementCategories は全カテゴリを固定順で保持します。
// リクエスト構築時はこの順序で走査するため、プロンプトの文言が決定的になります。
var ElementCategories = []ElementCategory{
	Expression,
	Gesture,
	Action,
	Object,
	Style,
	Location,
}

// ParseElementCategory は文字列をカテゴリに変換します。大文字小文字は区別しません。
func ParseElementCategory(s string) (ElementCategory, error) {
	candidate := ElementCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range ElementCategories {
		if c == candidate {
			return c, nil
		}
	}
	return "", fmt.Errorf("未知の要素カテゴリです: %q", s)
}

// Label は表示用のラベル（先頭大文字）を返します。
func (c ElementCategory) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ElementImage は値が入っている要素スロット1件です。
type ElementImage struct {
	Category ElementCategory
	Image    *ImageAsset
}

// ElementImages はカテゴリから任意の参照画像へのマッピングです。
// nil のエントリは「未設定」として扱われます。
type ElementImages map[ElementCategory]*ImageAsset

// Populated は値が入っているスロットだけを ElementCategories の順序で返します。
func (e ElementImages) Populated() []ElementImage {
	var out []ElementImage
	for _, c := range ElementCategories {
		if img, ok := e[c]; ok && img != nil {
			out = append(out, ElementImage{Category: c, Image: img})
		}
	}
	return out
}

// Categories は Populated の結果からカテゴリだけを取り出します。
func Categories(elements []ElementImage) []ElementCategory {
	cats := make([]ElementCategory, 0, len(elements))
	for _, el := range elements {
		cats = append(cats, el.Category)
	}
	return cats
}
