// Command qk runs query pipelines over command-line input.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/querykit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
