package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vallentin/textmation/cli"
	"github.com/Vallentin/textmation/log"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, os.Exit, os.Args[1:]...); err != nil {
		// slog renders the command error through its LogValue.
		log.Error("run failed", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}
