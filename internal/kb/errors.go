// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kb

import "fmt"

// FolderAccessError reports that the input folder is missing or cannot be
// listed. Nothing has been written when it is returned.
type FolderAccessError struct {
	Folder string
	Err    error
}

func (e *FolderAccessError) Error() string {
	return fmt.Sprintf("folder access error: %s: %v", e.Folder, e.Err)
}

func (e *FolderAccessError) Unwrap() error { return e.Err }

// DocumentOpenError reports a document the PDF reader could not open or
// parse (corrupt, encrypted, unsupported structure).
type DocumentOpenError struct {
	Document string
	Err      error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("document open error: %s: %v", e.Document, e.Err)
}

func (e *DocumentOpenError) Unwrap() error { return e.Err }

// OutputWriteError reports a failure to persist the knowledge base. Any
// previous file at Path is left as it was.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("output write error: %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// EncodingError reports text from Document that is not valid UTF-8. Offset
// is the byte position of the first invalid sequence within the document's
// chunk.
type EncodingError struct {
	Document string
	Offset   int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: %s: invalid UTF-8 at byte %d", e.Document, e.Offset)
}
