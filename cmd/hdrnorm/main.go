// Package main provides the CLI entrypoint for hdrnorm.
//
// hdrnorm normalizes the metadata header of a tabular data file so it can be
// written to formats with short key limits:
//   - Resolves the observed object to RA/DEC from an offline catalog
//   - Hoists header values into table columns
//   - Flattens nested header sections into composite keys
//   - Shortens overlong keys, keeping SUBS_ records to undo it
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
