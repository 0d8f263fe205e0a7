package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(errs.ExitCode(err))
	}
}
