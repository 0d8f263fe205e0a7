package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/yt-summarize/internal/config"
	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/media"
	"github.com/nguyentantai21042004/yt-summarize/internal/output"
	"github.com/nguyentantai21042004/yt-summarize/internal/processor"
	"github.com/nguyentantai21042004/yt-summarize/internal/summarizer"
	"github.com/nguyentantai21042004/yt-summarize/internal/textutil"
	"github.com/nguyentantai21042004/yt-summarize/pkg/executor"
)

type runFlags struct {
	style             string
	includeTranscript bool
	noAudio           bool
	voice             string
	language          string
	chapters          bool
	docx              bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <youtube-url|video-path>",
		Short: "Summarize one video",
		Example: `  yt-summarize run "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  yt-summarize run /path/to/video.mp4 --style brief
  yt-summarize run "https://youtu.be/..." --include-transcript --no-audio`,
		Args: exactlyOneInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := applyRunFlags(cfg, flags, args[0])
			if err != nil {
				return err
			}
			if err := cfg.CheckCredentials(); err != nil {
				return err
			}
			if err := checkRequiredTools(cfg); err != nil {
				return err
			}

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			runCtx = logger.WithRunID(runCtx, uuid.NewString())

			p := buildPipeline(cfg, ctx.logger)
			defer p.Close()

			out, err := p.processor.Process(runCtx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderOutcome(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.style, "style", "s", "", "Summary style: brief, detailed or bullet (default from config)")
	cmd.Flags().BoolVarP(&flags.includeTranscript, "include-transcript", "t", false, "Include the full transcript in the markdown")
	cmd.Flags().BoolVar(&flags.noAudio, "no-audio", false, "Skip audio summary generation")
	cmd.Flags().StringVarP(&flags.voice, "voice", "v", "", "Voice for the audio summary ("+strings.Join(output.Voices, ", ")+")")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "Language code for transcription (e.g. en, es, fr)")
	cmd.Flags().BoolVar(&flags.chapters, "chapters", false, "Add a chapter table of contents")
	cmd.Flags().BoolVar(&flags.docx, "docx", false, "Also write a .docx copy of the summary")

	return cmd
}

func exactlyOneInput(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return errs.Wrap(errs.ErrInput, "cli", "", "a YouTube URL or video path is required", nil)
	}
	return nil
}

// applyRunFlags merges command-line flags over cfg and builds the request.
// The voice flag is written back into cfg so the synthesizer picks it up.
func applyRunFlags(cfg *config.Config, flags runFlags, input string) (processor.Request, error) {
	styleName := cfg.Summary.Style
	if flags.style != "" {
		styleName = flags.style
	}
	style, err := summarizer.ParseStyle(styleName)
	if err != nil {
		return processor.Request{}, err
	}

	if flags.voice != "" {
		voice, err := output.ParseVoice(flags.voice)
		if err != nil {
			return processor.Request{}, err
		}
		cfg.Speech.Voice = voice
	}

	lang := cfg.Transcription.Language
	if flags.language != "" {
		if lang, err = config.NormalizeLanguage(flags.language); err != nil {
			return processor.Request{}, err
		}
	}

	req := processor.Request{
		Input:             input,
		Style:             style,
		Language:          lang,
		IncludeTranscript: cfg.Summary.IncludeTranscript || flags.includeTranscript,
		Chapters:          cfg.Summary.Chapters || flags.chapters,
		Audio:             !cfg.Speech.Disabled && !flags.noAudio,
		Docx:              cfg.Output.Docx || flags.docx,
	}
	return req, nil
}

func checkRequiredTools(cfg *config.Config) error {
	missing := media.MissingRequired(media.CheckTools(executor.New(), toolRequirements(cfg)))
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for _, st := range missing {
		names = append(names, fmt.Sprintf("%s (%s)", st.Name, st.Detail))
	}
	return errs.Wrap(errs.ErrConfiguration, "cli", "check tools", "missing "+strings.Join(names, ", "), nil)
}

func renderOutcome(out processor.Outcome) string {
	rows := [][]string{
		{"Title", out.Title},
		{"Markdown", out.MarkdownPath},
	}
	if out.DocxPath != "" {
		rows = append(rows, []string{"Docx", out.DocxPath})
	}
	if out.AudioPath != "" {
		rows = append(rows, []string{"Audio", out.AudioPath})
	}
	rows = append(rows,
		[]string{"Summary words", humanize.Comma(int64(out.Summary.WordCount))},
		[]string{"Transcript words", humanize.Comma(int64(textutil.WordCount(out.Transcript.Text)))},
	)
	if out.Transcript.Duration > 0 {
		length := time.Duration(out.Transcript.Duration * float64(time.Second)).Round(time.Second)
		rows = append(rows, []string{"Video length", length.String()})
	}
	if out.Summary.Degraded() {
		rows = append(rows, []string{"Note", out.Summary.Note})
	}
	rows = append(rows,
		[]string{"Run", out.RunID},
		[]string{"Elapsed", out.Elapsed.Round(time.Second).String()},
	)
	return renderTable([]string{"Output", "Value"}, rows)
}
