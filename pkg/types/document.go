// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// InputDocument is a PDF discovered in the input folder. It is created during
// the folder scan and consumed once per run.
type InputDocument struct {
	// Filename is the base name (e.g. "student_visa.pdf").
	Filename string `json:"filename" yaml:"filename"`

	// Path is the full location used to open the document.
	Path string `json:"path" yaml:"path"`
}

// ExtractedDocument holds the cleaned text of one InputDocument together with
// its resolved content-type label. Body never has trailing whitespace on a
// line and never starts or ends with a blank line; it may be empty.
type ExtractedDocument struct {
	Filename    string `json:"filename" yaml:"filename"`
	ContentType string `json:"content_type" yaml:"content_type"`
	Body        string `json:"body" yaml:"body"`
}
