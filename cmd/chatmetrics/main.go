package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"chatmetrics/cmd/chatmetrics/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			os.Exit(130) // 128 + SIGINT, mirrors shell convention
		}
		os.Exit(1)
	}
}
