// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionBackend identifies the tool that reads page text out of a PDF.
type ExtractionBackend string

const (
	// BackendNative reads PDFs in-process with a pure-Go parser.
	BackendNative ExtractionBackend = "native"
	// BackendPdftotext pipes PDFs through poppler's pdftotext in a container.
	BackendPdftotext ExtractionBackend = "pdftotext"
)

// Valid reports whether b names a known backend.
func (b ExtractionBackend) Valid() bool {
	switch b {
	case BackendNative, BackendPdftotext:
		return true
	}
	return false
}

const (
	DefaultInputFolder   = "PDF"
	DefaultOutputPath    = "knowledge_base.txt"
	DefaultOverridesFile = "content-types.yaml"
)

// BuildConfig holds settings for one knowledge base build.
type BuildConfig struct {
	// InputFolder is the directory scanned for PDF files (default "PDF").
	InputFolder string `json:"input_folder" yaml:"input_folder"`

	// OutputPath is the knowledge base file, overwritten on every run
	// (default "knowledge_base.txt").
	OutputPath string `json:"output_path" yaml:"output_path"`

	// OverridesFile is an optional YAML mapping of filename to content-type
	// label. A missing file is not an error.
	OverridesFile string `json:"overrides_file" yaml:"overrides_file"`

	// Backend selects the PDF text reader: native or pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// SkipFailed logs and skips documents that cannot be opened instead of
	// aborting the whole run.
	SkipFailed bool `json:"skip_failed" yaml:"skip_failed"`

	// Jobs is the number of documents extracted concurrently. Values below 2
	// mean sequential extraction. Output order does not depend on Jobs.
	Jobs int `json:"jobs" yaml:"jobs"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c BuildConfig) WithDefaults() BuildConfig {
	if c.InputFolder == "" {
		c.InputFolder = DefaultInputFolder
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.Backend == "" {
		c.Backend = BackendNative
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}
	return c
}
