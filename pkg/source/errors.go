package source

import "errors"

// ErrUnsafeURL は SSRF の可能性がある URL を拒否したことを示します。
var ErrUnsafeURL = errors.New("unsafe url")

// ErrNotImage は読み込んだデータが画像ではないことを示します。
var ErrNotImage = errors.New("not an image")
