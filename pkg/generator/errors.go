package generator

import (
	"errors"
	"fmt"
)

// ErrNoImage はモデルが画像も説明文も返さなかったことを表します。
// 例外的な失敗ではなく、呼び出し側が扱い方を決める「結果なし」です。
var ErrNoImage = errors.New("no image produced")

// GenerationError は画像生成の失敗をユーザー向けの文言で表します。
// Err には原因を保持しますが、Error() には含めません（ログ専用）。
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ConfigurationError は外部サービスに必要な設定値が欠けていることを表します。
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.Key)
}
