// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// NativeReader reads PDFs in-process with github.com/ledongthuc/pdf. Only the
// embedded text layer is extracted; image-only pages come back empty.
type NativeReader struct{}

// openFile is swapped in tests to observe the handle Open acquires.
var openFile = os.Open

// Open parses the PDF cross-reference table at path. Corrupt or encrypted
// files fail here, and the file is closed before Open returns an error.
func (NativeReader) Open(path string) (doc Document, err error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}

	// The parser panics on some malformed files instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
		if err != nil {
			f.Close()
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, err
	}
	return &nativeDocument{file: f, reader: r}, nil
}

type nativeDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func (d *nativeDocument) NumPages() int {
	return d.reader.NumPage()
}

// PageText decodes page i with that page's own font resources. Resource
// names like /F1 are local to a page, so fonts are never shared across pages.
func (d *nativeDocument) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed page: %v", r)
		}
	}()

	p := d.reader.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func (d *nativeDocument) Close() error {
	return d.file.Close()
}
