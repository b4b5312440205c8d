package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"transcript/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, os.Args, version); err != nil {
		stop()
		os.Exit(1)
	}
}
