package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelEnv は設定ファイルを読む前でもログレベルを指定できる環境変数です。
const LevelEnv = "INBANANA_LOG_LEVEL"

// Init はグローバルロガーを初期化します。
// level は debug, info, warn, error のいずれかで、それ以外は info として扱います。
func Init(level string) {
	InitWithWriter(level, os.Stderr)
}

// InitWithWriter は出力先を指定してグローバルロガーを初期化します。
func InitWithWriter(level string, out io.Writer) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})
}

// ParseLevel はログレベル文字列を zerolog のレベルに変換します。
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
