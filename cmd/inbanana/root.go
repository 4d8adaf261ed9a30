package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/shouni/gemini-photo-kit/internal/config"
	"github.com/shouni/gemini-photo-kit/internal/logging"
	"github.com/shouni/gemini-photo-kit/pkg/gallery"
	"github.com/shouni/gemini-photo-kit/pkg/generator"
	"github.com/shouni/gemini-photo-kit/pkg/source"
)

// deps はコマンドが使う外部依存の生成方法です。テストで差し替えます。
type deps struct {
	newEditor func(ctx context.Context, cfg *config.Config) (generator.ImageEditor, error)
	loader    *source.Loader
}

func defaultDeps() deps {
	return deps{
		newEditor: newGeminiEditor,
		loader:    source.NewLoader(nil, nil),
	}
}

// app は1回のコマンド実行で共有される状態です。
type app struct {
	deps
	configFile string
	cfg        *config.Config
	closers    []func() error
}

func newApp(d deps) *app {
	return &app{deps: d}
}

// execute はコマンドを実行し、成否にかかわらず実行中に開いた接続を閉じます。
func execute(ctx context.Context, a *app, root *cobra.Command) (err error) {
	defer func() {
		err = errors.Join(err, a.close())
	}()
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "inbanana",
		Short: "Gemini で写真を編集するコマンドラインツール",
		Long: `inbanana はメイン画像と任意の要素画像（表情・ジェスチャー・動作・物・画風・場所）、
指示文を Gemini に送り、編集後の画像を書き出します。生成結果はギャラリーに保存されます。

例:
  inbanana edit --main photo.jpg --style ghibli.png --prompt "make it sunset" --ratio 9:16
  inbanana crop --in photo.png --ratio 3:4 --out photo-3x4.png
  inbanana gallery list
  inbanana gallery export --index 0`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Init(os.Getenv(logging.LevelEnv))
			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			logging.InitWithWriter(cfg.Log.Level, cmd.ErrOrStderr())
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "設定ファイルのパス（既定: ./inbanana.yaml または $HOME/.inbanana/inbanana.yaml）")

	root.AddCommand(newEditCmd(a), newCropCmd(), newGalleryCmd(a))
	return root
}

// openGallery は設定されたバックエンドでギャラリーを開きます。
func (a *app) openGallery(ctx context.Context) (*gallery.Gallery, error) {
	var store gallery.Store
	switch a.cfg.Gallery.Backend {
	case config.BackendMemory:
		store = gallery.NewMemoryStore()
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:        a.cfg.Redis.Addr,
			Password:    a.cfg.Redis.Password,
			DB:          a.cfg.Redis.DB,
			DialTimeout: 10 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redisに接続できませんでした (%s): %w", a.cfg.Redis.Addr, err)
		}
		a.closers = append(a.closers, client.Close)

		rs, err := gallery.NewRedisStore(client, a.cfg.Redis.Prefix)
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		fs, err := gallery.NewFileStore(a.cfg.Gallery.Path)
		if err != nil {
			return nil, err
		}
		store = fs
	}
	return gallery.New(store, a.cfg.Gallery.Key)
}

func (a *app) close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// newGeminiEditor は設定から Gemini の編集クライアントを組み立てます。
func newGeminiEditor(ctx context.Context, cfg *config.Config) (generator.ImageEditor, error) {
	client, err := generator.NewGenAIClient(ctx, cfg.Gemini.APIKey)
	if err != nil {
		return nil, err
	}

	var opts []generator.Option
	if cfg.Gemini.CompressInputs {
		opts = append(opts, generator.WithInputCompression(cfg.Gemini.CompressionQuality))
	}
	return generator.NewGeminiEditor(client.Models, cfg.Gemini.Model, opts...)
}

func writeFile(w io.Writer, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ファイルの書き込みに失敗しました: %w", err)
	}
	_, _ = fmt.Fprintf(w, "%s (%d bytes) を書き出しました\n", path, len(data))
	return nil
}
