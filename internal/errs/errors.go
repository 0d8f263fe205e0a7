// Package errs defines the failure markers shared by every pipeline stage.
//
// Callers classify errors with errors.Is against the exported markers; the
// stage/operation detail produced by Wrap is only for humans.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInput marks an invalid URL, path, or argument.
	ErrInput = errors.New("invalid input")
	// ErrNotFound marks a missing file.
	ErrNotFound = errors.New("not found")
	// ErrEmptyInput marks an empty transcript handed to the summarizer.
	ErrEmptyInput = errors.New("empty input")
	// ErrService marks a failed transcription, summarization, or download call.
	ErrService = errors.New("service error")
	// ErrContextLengthExceeded marks a model rejecting input larger than its
	// context window. The summarizer reacts to it with one fallback attempt.
	ErrContextLengthExceeded = errors.New("context length exceeded")
	// ErrExternalTool marks a failing ffmpeg, ffprobe, yt-dlp, or whisper binary.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error that carries stage context and is tagged with marker for
// later classification. A nil marker defaults to ErrService.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrService
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsInput reports whether err was caused by bad user input rather than a
// failing service.
func IsInput(err error) bool {
	return errors.Is(err, ErrInput) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmptyInput)
}

// ExitCode maps an error to the CLI process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsInput(err), errors.Is(err, ErrConfiguration):
		return 2
	default:
		return 1
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
