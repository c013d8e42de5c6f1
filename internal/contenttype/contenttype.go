// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contenttype derives human-readable content-type labels for
// knowledge base documents from their filenames.
//
// A Resolver consults an override table first and falls back to a label
// built from the filename itself ("student_visa-2024.pdf" becomes
// "Student Visa 2024").
package contenttype

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Table maps an exact filename (base name, case-sensitive) to its label.
type Table map[string]string

// Resolver maps filenames to content-type labels. It is safe for concurrent
// use; the table must not be modified after New returns.
type Resolver struct {
	overrides Table
}

// New returns a Resolver backed by overrides. A nil table is valid and
// means every label is derived from the filename.
func New(overrides Table) *Resolver {
	return &Resolver{overrides: overrides}
}

// Resolve returns the content-type label for filename. Overrides are matched
// against the base name and returned verbatim.
func (r *Resolver) Resolve(filename string) string {
	if filename == "" {
		return ""
	}
	base := filepath.Base(filename)
	if label, ok := r.overrides[base]; ok {
		return label
	}
	return DeriveLabel(base)
}

// DeriveLabel builds a label from a filename: the extension is dropped,
// underscores and hyphens become spaces, and each whitespace-separated word
// gets an upper-case first character and lower-case remainder. Only the
// first character of a word is raised, so "x(y)z" becomes "X(y)z" and "2b"
// stays "2b". Leading dots do not start an extension, so ".pdf" stays ".pdf".
func DeriveLabel(filename string) string {
	name := stripExt(filename)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return titleWords(name)
}

func stripExt(name string) string {
	lead := len(name) - len(strings.TrimLeft(name, "."))
	ext := filepath.Ext(name[lead:])
	return name[:len(name)-len(ext)]
}

// titleWords recases every run of non-space characters and leaves the
// whitespace between them untouched.
func titleWords(s string) string {
	title := cases.Title(language.Und)
	lower := cases.Lower(language.Und)

	var b strings.Builder
	b.Grow(len(s))
	word := func(w string) {
		_, size := utf8.DecodeRuneInString(w)
		b.WriteString(title.String(w[:size]))
		b.WriteString(lower.String(w[size:]))
	}

	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				word(s[start:i])
				start = -1
			}
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		word(s[start:])
	}
	return b.String()
}
