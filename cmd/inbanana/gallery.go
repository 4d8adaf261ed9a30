package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shouni/gemini-photo-kit/pkg/domain"
	"github.com/shouni/gemini-photo-kit/pkg/imgutil"
)

func newGalleryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "保存済みの生成画像を扱います",
	}
	cmd.AddCommand(newGalleryListCmd(a), newGalleryExportCmd(a))
	return cmd
}

func newGalleryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "ギャラリーの画像を新しい順に一覧表示します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.openGallery(cmd.Context())
			if err != nil {
				return err
			}
			photos, err := g.Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(photos) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ギャラリーは空です")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "INDEX\tMIME\tBYTES\tSIZE")
			for i, p := range photos {
				asset, err := domain.ParseDataURL(p)
				if err != nil {
					_, _ = fmt.Fprintf(w, "%d\t-\t-\t(読み込めません)\n", i)
					continue
				}
				size := "-"
				if width, height, err := imgutil.Dimensions(asset.Data); err == nil {
					size = fmt.Sprintf("%dx%d", width, height)
				}
				_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i, asset.MimeType, len(asset.Data), size)
			}
			return w.Flush()
		},
	}
}

func newGalleryExportCmd(a *app) *cobra.Command {
	var (
		index int
		ratio string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "ギャラリーの画像をファイルに書き出します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.openGallery(cmd.Context())
			if err != nil {
				return err
			}
			dataURL, err := g.Get(cmd.Context(), index)
			if err != nil {
				return err
			}
			cropped, err := imgutil.CropDataURL(dataURL, ratio)
			if err != nil {
				return err
			}
			asset, err := domain.ParseDataURL(cropped)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = fmt.Sprintf("in-banana-gallery-%d.png", index)
			}
			return writeFile(cmd.OutOrStdout(), path, asset.Data)
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "書き出す画像の番号（0 が最新）")
	cmd.Flags().StringVar(&ratio, "ratio", domain.AspectRatioFull, "書き出し時の縦横比")
	cmd.Flags().StringVarP(&out, "out", "o", "", "出力ファイル（既定: in-banana-gallery-<index>.png）")

	return cmd
}
