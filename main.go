package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/deanrtaylor1/gobow/cli"
	"github.com/deanrtaylor1/gobow/util"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, util.TerminalRed+"Error: "+err.Error()+util.TerminalReset)
		}
		stop()
		os.Exit(1)
	}
}
