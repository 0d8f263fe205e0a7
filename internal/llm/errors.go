package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
)

var contextLengthHints = []string{
	"context_length_exceeded",
	"maximum context length",
	"input token count",
	"exceeds the maximum number of tokens",
	"too many tokens",
}

func mentionsContextLength(msg string) bool {
	msg = strings.ToLower(msg)
	for _, hint := range contextLengthHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

// classify tags a backend failure with the matching errs marker. Context
// errors pass through untouched so cancellation is never mistaken for a
// service failure.
func classify(ctx context.Context, backend, model string, err error, contextLength bool) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if contextLength {
		return errs.Wrap(errs.ErrContextLengthExceeded, "llm", backend, model, err)
	}
	return errs.Wrap(errs.ErrService, "llm", backend, model, err)
}
