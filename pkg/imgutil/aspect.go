package imgutil

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
)

// fallbackRatio は解釈できない比率指定のときに使う正方形の比率です。
const fallbackRatio = 1.0

// ParseAspectRatio は "幅:高さ" 形式の比率を解釈します。
// "full" の場合は full=true を返し、呼び出し側はクロップを行いません。
// 要素数が2でない、数値でない、正でない値を含む場合はエラーにせず 1:1 に倒します。
func ParseAspectRatio(spec string) (ratio float64, full bool) {
	if spec == domain.AspectRatioFull {
		return 0, true
	}

	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return fallbackRatio, false
	}

	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil || !isPositiveFinite(w) || !isPositiveFinite(h) {
		return fallbackRatio, false
	}

	return w / h, false
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// CropRect は width×height の画像から target 比率で切り出せる最大の中央矩形を返します。
// 矩形の原点は画像左上 (0,0) 基準です。
//
// 画像が既に target 比率に丸め誤差の範囲で一致している場合は全体を返すため、
// 同じ比率での再クロップは同じ寸法になります。
func CropRect(width, height int, target float64) image.Rectangle {
	full := image.Rect(0, 0, width, height)
	if width <= 0 || height <= 0 || !isPositiveFinite(target) {
		return full
	}

	widthForHeight := floorPixels(float64(height) * target)
	heightForWidth := floorPixels(float64(width) / target)
	if widthForHeight == width || heightForWidth == height {
		return full
	}

	source := float64(width) / float64(height)
	switch {
	case source > target:
		// 横長すぎるので幅を削る
		cropW := clamp(widthForHeight, 1, width)
		x := (width - cropW) / 2
		return image.Rect(x, 0, x+cropW, height)
	case source < target:
		// 縦長すぎるので高さを削る
		cropH := clamp(heightForWidth, 1, height)
		y := (height - cropH) / 2
		return image.Rect(0, y, width, y+cropH)
	default:
		return full
	}
}

// pixelEpsilon は 16:9 のように2進で表せない比率の積が整数の直下に落ちるのを吸収します。
const pixelEpsilon = 1e-9

// floorPixels は切り出し寸法を切り捨てで求めます。元画像からはみ出さない最大の整数寸法になります。
func floorPixels(v float64) int {
	return int(math.Floor(v + pixelEpsilon))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
