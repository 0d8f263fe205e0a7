package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/yt-summarize/internal/config"
	"github.com/nguyentantai21042004/yt-summarize/internal/media"
	"github.com/nguyentantai21042004/yt-summarize/pkg/executor"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify external tools and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := media.CheckTools(executor.New(), toolRequirements(cfg))
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Status", "Detail"}, checkRows(cfg, statuses)))

			if err := cfg.CheckCredentials(); err != nil {
				return err
			}
			return checkRequiredTools(cfg)
		},
	}
}

func checkRows(cfg *config.Config, statuses []media.Status) [][]string {
	rows := make([][]string, 0, len(statuses)+1)
	for _, st := range statuses {
		status := "ok"
		switch {
		case st.Available:
		case st.Optional:
			status = "optional"
		default:
			status = "missing"
		}
		rows = append(rows, []string{st.Name, status, st.Detail})
	}

	creds := "ok"
	detail := fmt.Sprintf("llm=%s transcription=%s", cfg.LLM.Provider, cfg.Transcription.Backend)
	if err := cfg.CheckCredentials(); err != nil {
		creds = "missing"
		detail = err.Error()
	}
	return append(rows, []string{"Credentials", creds, detail})
}
