// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kb

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/pdfkb/pkg/types"
)

// Chunk markers. Downstream ingestion tools split the knowledge base on these
// exact lines, so they must never change.
const (
	StartMarker       = "===== DOCUMENT START ====="
	EndMarker         = "===== DOCUMENT END ====="
	SourceFilePrefix  = "[Source file]: "
	ContentTypePrefix = "[Content type]: "
)

// FormatChunk renders one document as a self-delimited block:
//
//	===== DOCUMENT START =====
//	[Source file]: <filename>
//	[Content type]: <content type>
//
//	<body>
//
//	===== DOCUMENT END =====
//
// The block ends with a blank line, so chunks concatenate without separators.
func FormatChunk(doc types.ExtractedDocument) string {
	var b strings.Builder
	b.Grow(len(doc.Body) + len(doc.Filename) + len(doc.ContentType) + 96)
	b.WriteString(StartMarker + "\n")
	b.WriteString(SourceFilePrefix + doc.Filename + "\n")
	b.WriteString(ContentTypePrefix + doc.ContentType + "\n\n")
	b.WriteString(doc.Body + "\n\n")
	b.WriteString(EndMarker + "\n\n")
	return b.String()
}

// validChunk returns an EncodingError when chunk is not valid UTF-8.
func validChunk(filename, chunk string) error {
	if utf8.ValidString(chunk) {
		return nil
	}
	for i, r := range chunk {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(chunk[i:]); size == 1 {
				return &EncodingError{Document: filename, Offset: i}
			}
		}
	}
	return &EncodingError{Document: filename, Offset: -1}
}
