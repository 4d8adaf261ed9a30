package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/gemini-photo-kit/pkg/imgutil"
)

func newCropCmd() *cobra.Command {
	var in, ratio, out string

	cmd := &cobra.Command{
		Use:   "crop",
		Short: "画像を指定した縦横比で中央から切り出します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("入力画像を読み込めませんでした: %w", err)
			}
			cropped, err := imgutil.CropToAspectRatio(data, ratio)
			if err != nil {
				return err
			}
			return writeFile(cmd.OutOrStdout(), out, cropped)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "入力画像ファイル")
	cmd.Flags().StringVar(&ratio, "ratio", "1:1", "縦横比 (例: 3:4, full)")
	cmd.Flags().StringVarP(&out, "out", "o", DefaultEditOutput, "出力ファイル")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
