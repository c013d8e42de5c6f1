// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext turns PDF documents into cleaned plain text with pluggable
// page-reading backends.
package pdftext

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reader opens documents for page-by-page text extraction. Different
// backends (in-process parser, pdftotext container) implement this interface.
type Reader interface {
	// Open prepares the document at path. The caller must Close the result.
	Open(path string) (Document, error)
}

// Document is an opened PDF.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// PageText returns the raw text of page i (1-based). A page without
	// extractable text returns "" and a nil error.
	PageText(i int) (string, error)

	// Close releases any handle held by the document.
	Close() error
}

// Extractor produces cleaned document bodies using a Reader.
type Extractor struct {
	reader Reader
}

// NewExtractor returns an Extractor reading documents through r.
func NewExtractor(r Reader) *Extractor {
	return &Extractor{reader: r}
}

// Extract opens the document at path and returns its cleaned text. Page texts
// are trimmed, empty pages dropped, and the rest joined with a blank line so
// page boundaries stay visible. Open and page read errors are returned
// unhandled; an empty result means the document had no extractable text.
func (e *Extractor) Extract(path string) (string, error) {
	doc, err := e.reader.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	var pages []string
	for i := 1; i <= doc.NumPages(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	return Clean(strings.Join(pages, "\n\n")), nil
}

// Clean right-trims every line, normalizes line endings to "\n", and trims
// leading and trailing whitespace from the whole text. Indentation is kept.
// Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	lines := splitLines(text)
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// splitLines splits on "\r\n" and on any single line-boundary rune, the same
// set of separators Unicode-aware line splitting recognizes.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	return append(lines, s[start:])
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
