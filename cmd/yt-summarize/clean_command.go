package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/yt-summarize/internal/processor"
)

func newCleanTempCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clean-temp",
		Short: "Remove leftover files from the temp directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			proc := processor.New(processor.Config{TempDir: cfg.Paths.Temp}, processor.Deps{Logger: ctx.logger})
			n, err := proc.CleanTemp(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Temp directory is already clean.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d file(s) from %s\n", n, cfg.Paths.Temp)
			return nil
		},
	}
}
