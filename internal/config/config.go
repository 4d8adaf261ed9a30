// Package config はアプリケーション設定を読み込みます。
// 優先順位は 既定値 < 設定ファイル(inbanana.yaml) < 環境変数 です。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix は INBANANA_GEMINI_MODEL のような環境変数の接頭辞です。
	EnvPrefix = "INBANANA"

	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Gallery GalleryConfig `mapstructure:"gallery"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

type GeminiConfig struct {
	APIKey             string `mapstructure:"api_key"`
	Model              string `mapstructure:"model"`
	CompressInputs     bool   `mapstructure:"compress_inputs"`
	CompressionQuality int    `mapstructure:"compression_quality"`
}

type GalleryConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load は .env、設定ファイル、環境変数から設定を読み込みます。
// configFile が空の場合はカレントディレクトリと $HOME/.inbanana の inbanana.yaml を探し、
// 見つからなくてもエラーにはしません。
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".envの読み込みに失敗しました: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// API キーは一般的な環境変数名でも受け付ける
	if err := v.BindEnv("gemini.api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("環境変数のバインドに失敗しました: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
	} else {
		v.SetConfigName("inbanana")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := homeConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定のデコードに失敗しました: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は値の組み合わせを検証します。API キーの有無は生成時に検証するためここでは見ません。
func (c *Config) Validate() error {
	switch c.Gallery.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("不明なギャラリーバックエンドです: %q", c.Gallery.Backend)
	}
	if c.Gallery.Backend == BackendFile && c.Gallery.Path == "" {
		return fmt.Errorf("gallery.path が空です")
	}
	if c.Gallery.Backend == BackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr が空です")
	}
	if c.Gemini.CompressionQuality < 1 || c.Gemini.CompressionQuality > 100 {
		return fmt.Errorf("gemini.compression_quality は 1〜100 で指定してください: %d", c.Gemini.CompressionQuality)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash-image-preview")
	v.SetDefault("gemini.compress_inputs", false)
	v.SetDefault("gemini.compression_quality", 75)

	v.SetDefault("gallery.backend", BackendFile)
	v.SetDefault("gallery.path", defaultGalleryPath())
	v.SetDefault("gallery.key", "inBananaPhotos")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "inbanana:")

	v.SetDefault("log.level", "info")
}

func homeConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".inbanana")
}

func defaultGalleryPath() string {
	if dir := homeConfigDir(); dir != "" {
		return filepath.Join(dir, "gallery.json")
	}
	return filepath.Join(".inbanana", "gallery.json")
}
