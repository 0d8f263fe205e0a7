// Package output renders summaries as markdown, docx, and synthesized speech
// and writes them to the output directory.
package output
