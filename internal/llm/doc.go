// Package llm provides text-generation backends used by the summarizer.
//
// Every backend reports a prompt that does not fit the model context window
// as errs.ErrContextLengthExceeded so callers never inspect provider messages.
package llm
