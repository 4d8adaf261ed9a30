package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
	"github.com/shouni/gemini-photo-kit/pkg/session"
)

// DefaultEditOutput は編集結果の既定の出力ファイル名です。
const DefaultEditOutput = "in-banana-edit.png"

func newEditCmd(a *app) *cobra.Command {
	var (
		mainSrc  string
		mainMIME string
		prompt   string
		ratio    string
		out      string
		elements = make(map[domain.ElementCategory]*string, len(domain.ElementCategories))
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "メイン画像を要素画像と指示文で編集します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !slices.Contains(domain.AspectRatioPresets, ratio) {
				return fmt.Errorf("%w: %q", session.ErrUnknownAspectRatio, ratio)
			}

			editor, err := a.newEditor(ctx, a.cfg)
			if err != nil {
				return err
			}
			g, err := a.openGallery(ctx)
			if err != nil {
				return err
			}
			sess, err := session.New(editor, g)
			if err != nil {
				return err
			}

			mainImg, err := a.loader.Load(ctx, mainSrc, mainMIME)
			if err != nil {
				return fmt.Errorf("メイン画像を読み込めませんでした: %w", err)
			}
			sess.SetMainImage(mainImg)

			for _, c := range domain.ElementCategories {
				src := *elements[c]
				if src == "" {
					continue
				}
				img, err := a.loader.Load(ctx, src, "")
				if err != nil {
					return fmt.Errorf("%s の画像を読み込めませんでした: %w", c.Label(), err)
				}
				sess.SetElement(c, img)
			}
			sess.SetInstruction(prompt)

			if _, err := sess.Generate(ctx); err != nil {
				log.Debug().Err(err).Msg("生成エラーの詳細")
				return errors.New(sess.LastError())
			}

			if err := sess.SetAspectRatio(ratio); err != nil {
				return err
			}
			final, err := sess.FinalImage()
			if err != nil {
				return err
			}
			return writeFile(cmd.OutOrStdout(), out, final.Data)
		},
	}

	cmd.Flags().StringVar(&mainSrc, "main", "", "メイン画像（ファイルパス、http(s) URL、data URL）")
	cmd.Flags().StringVar(&mainMIME, "main-mime", "", "メイン画像の MIME タイプ（省略時は内容から判定）")
	for _, c := range domain.ElementCategories {
		elements[c] = cmd.Flags().String(string(c), "", c.Label()+" の参照画像")
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "追加の指示文")
	cmd.Flags().StringVar(&ratio, "ratio", domain.DefaultAspectRatio, "出力の縦横比 (1:1, 3:4, 9:16, 9:22, full)")
	cmd.Flags().StringVarP(&out, "out", "o", DefaultEditOutput, "出力ファイル")
	_ = cmd.MarkFlagRequired("main")

	return cmd
}
