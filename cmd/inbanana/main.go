package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(defaultDeps())
	if err := execute(ctx, a, newRootCmd(a)); err != nil {
		log.Error().Err(err).Msg("コマンドの実行に失敗しました")
		stop()
		os.Exit(1)
	}
}
