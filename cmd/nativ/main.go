// Package main is the entrypoint for the nativ CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/usenativ/nativ-go/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.New().Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
