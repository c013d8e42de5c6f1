// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/pdfkb/internal/container"
)

// ImagePoppler is the local image expected to provide poppler-utils.
const ImagePoppler = "poppler:latest"

var pdftotextArgs = []string{"pdftotext", "-layout", "-enc", "UTF-8", "-", "-"}

// PdftotextReader extracts text by piping each PDF through pdftotext inside a
// container. The whole document is converted on Open; pages are recovered
// from the form feeds pdftotext writes after every page.
type PdftotextReader struct {
	runtime container.Runtime
	image   string
}

// NewPdftotextReader returns a reader that runs image through rt. It checks
// that the image exists locally before returning.
func NewPdftotextReader(rt container.Runtime, image string) (*PdftotextReader, error) {
	if image == "" {
		image = ImagePoppler
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextReader{runtime: rt, image: image}, nil
}

// Open converts the PDF at path and holds its pages in memory.
func (p *PdftotextReader) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(p.image, pdftotextArgs, f, &out); err != nil {
		return nil, fmt.Errorf("converting %s with pdftotext: %w", path, err)
	}
	return pagedText(splitPages(out.String())), nil
}

// splitPages splits pdftotext output on form feeds. The feed after the last
// page does not start another page.
func splitPages(s string) []string {
	if s == "" {
		return nil
	}
	pages := strings.Split(s, "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// pagedText is a Document over already-extracted page texts.
type pagedText []string

func (t pagedText) NumPages() int { return len(t) }

func (t pagedText) PageText(i int) (string, error) {
	if i < 1 || i > len(t) {
		return "", fmt.Errorf("page %d out of range [1, %d]", i, len(t))
	}
	return t[i-1], nil
}

func (pagedText) Close() error { return nil }
