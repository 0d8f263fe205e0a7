// Package textutil holds the text shaping used around language-model calls:
// sentence-bounded chunking of long transcripts, keyword classification of
// generated summaries into sections, chapter listing parsing, and small
// helpers for word counts and file-safe titles.
package textutil
