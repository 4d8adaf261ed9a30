package domain

// AspectRatioFull はクロップしないことを表す特別値です。
const AspectRatioFull = "full"

// DefaultAspectRatio は新しい画像を選んだときや生成開始時に戻される比率です。
const DefaultAspectRatio = "1:1"

// AspectRatioPresets はツールバーが提示する比率の一覧です。
var AspectRatioPresets = []string{"1:1", "3:4", "9:16", "9:22", AspectRatioFull}
