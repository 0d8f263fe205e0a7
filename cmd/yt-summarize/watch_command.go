package main

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/yt-summarize/internal/config"
	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/processor"
	"github.com/nguyentantai21042004/yt-summarize/internal/summarizer"
	"github.com/nguyentantai21042004/yt-summarize/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Summarize every video dropped into a directory",
		Long: `watch monitors a directory (default paths.watch) and summarizes each new
video file, one at a time. Summary options come from the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.Paths.Watch
			if len(args) == 1 {
				dir = args[0]
			}
			if strings.TrimSpace(dir) == "" {
				return errs.Wrap(errs.ErrInput, "cli", "watch", "no directory given and paths.watch is not set", nil)
			}
			base, err := requestFromConfig(cfg)
			if err != nil {
				return err
			}
			if err := cfg.CheckCredentials(); err != nil {
				return err
			}
			if err := checkRequiredTools(cfg); err != nil {
				return err
			}

			log := ctx.logger
			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			p := buildPipeline(cfg, log)
			defer p.Close()

			if addr := cfg.Metrics.ListenAddr; addr != "" {
				go func() {
					if err := p.metrics.Serve(runCtx, addr, log); err != nil {
						log.Error(runCtx, "Metrics server stopped: %v", err)
					}
				}()
			}

			handler := func(fileCtx context.Context, path string) error {
				req := base
				req.Input = path
				_, err := p.processor.Process(fileCtx, req)
				return err
			}
			w, err := watcher.New(dir, handler, log, watcher.Options{})
			if err != nil {
				return err
			}
			defer w.Stop()

			log.Info(runCtx, "Output: %s", cfg.Paths.Output)
			log.Info(runCtx, "Press Ctrl+C to stop")

			if err := w.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// requestFromConfig builds the per-file request used in watch mode.
func requestFromConfig(cfg *config.Config) (processor.Request, error) {
	style, err := summarizer.ParseStyle(cfg.Summary.Style)
	if err != nil {
		return processor.Request{}, err
	}
	return processor.Request{
		Style:             style,
		Language:          cfg.Transcription.Language,
		IncludeTranscript: cfg.Summary.IncludeTranscript,
		Chapters:          cfg.Summary.Chapters,
		Audio:             !cfg.Speech.Disabled,
		Docx:              cfg.Output.Docx,
	}, nil
}
