// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"

	"github.com/pdiddy/pdfkb/internal/container"
	"github.com/pdiddy/pdfkb/pkg/types"
)

// NewReader returns the Reader for backend. The pdftotext backend needs a
// working docker or podman and the poppler image pulled locally.
func NewReader(backend types.ExtractionBackend) (Reader, error) {
	switch backend {
	case types.BackendNative, "":
		return NativeReader{}, nil
	case types.BackendPdftotext:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPdftotextReader(rt, ImagePoppler)
	default:
		return nil, fmt.Errorf("unsupported backend %q: use %s or %s",
			backend, types.BackendNative, types.BackendPdftotext)
	}
}
