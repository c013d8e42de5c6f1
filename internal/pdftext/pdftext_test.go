// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfkb/pkg/types"
)

// fakeReader implements Reader for testing. It hands out fakeDocuments with
// canned page texts, or fails to open.
type fakeReader struct {
	pages   []string
	pageErr map[int]error
	openErr error
	opened  []*fakeDocument
}

func (f *fakeReader) Open(path string) (Document, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	d := &fakeDocument{pages: f.pages, pageErr: f.pageErr}
	f.opened = append(f.opened, d)
	return d, nil
}

type fakeDocument struct {
	pages   []string
	pageErr map[int]error
	closed  bool
}

func (d *fakeDocument) NumPages() int { return len(d.pages) }

func (d *fakeDocument) PageText(i int) (string, error) {
	if err := d.pageErr[i]; err != nil {
		return "", err
	}
	return d.pages[i-1], nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{
			name:  "joins pages with blank line",
			pages: []string{"Page one.", "Page two."},
			want:  "Page one.\n\nPage two.",
		},
		{
			name:  "trims each page",
			pages: []string{"\n\n  Title  \n", "\tBody\n\n"},
			want:  "Title\n\nBody",
		},
		{
			name:  "drops empty and blank pages",
			pages: []string{"", "First", "   \n\t", "", "Second"},
			want:  "First\n\nSecond",
		},
		{
			name:  "right-trims lines and keeps indentation",
			pages: []string{"Heading   \n    indented line\t\n  - item  "},
			want:  "Heading\n    indented line\n  - item",
		},
		{
			name:  "normalizes CRLF",
			pages: []string{"a\r\nb\r\nc"},
			want:  "a\nb\nc",
		},
		{
			name:  "all pages empty",
			pages: []string{"", " ", "\n"},
			want:  "",
		},
		{
			name:  "no pages",
			pages: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeReader{pages: tt.pages}
			got, err := NewExtractor(r).Extract("doc.pdf")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, r.opened, 1)
			assert.True(t, r.opened[0].closed, "document must be closed")
		})
	}
}

func TestExtract_OpenError(t *testing.T) {
	cause := errors.New("encrypted")
	r := &fakeReader{openErr: cause}

	_, err := NewExtractor(r).Extract("secret.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "secret.pdf")
}

func TestExtract_PageErrorClosesDocument(t *testing.T) {
	cause := errors.New("bad content stream")
	r := &fakeReader{
		pages:   []string{"ok", "broken", "never read"},
		pageErr: map[int]error{2: cause},
	}

	_, err := NewExtractor(r).Extract("doc.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "page 2")
	require.Len(t, r.opened, 1)
	assert.True(t, r.opened[0].closed, "document must be closed on error")
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", " \n\t\n ", ""},
		{"leading and trailing blank lines", "\n\n  text\n\n\n", "text"},
		{"trailing spaces per line", "a  \nb\t\nc", "a\nb\nc"},
		{"keeps inner blank lines", "a\n\n\nb", "a\n\n\nb"},
		{"keeps indentation", "a\n   b", "a\n   b"},
		{"lone carriage return", "a\rb", "a\nb"},
		{"unicode line separator", "a\u2028b", "a\nb"},
		{"form feed splits lines", "a\fb", "a\nb"},
		{"no-break space trimmed at line end", "a\u00a0\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"  \n\nTitle  \r\n\r\n  body line\t\n\n\n  trailing   \n\n",
		"a\rb\r\nc\u2029d\u2028e\x1c",
		"\u0085start\n\n\n\nend ",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean not idempotent for %q", in)
	}
}

func TestCleanInvariant(t *testing.T) {
	got := Clean("  x  \n\n y \n z\t\n\n")
	for _, line := range strings.Split(got, "\n") {
		assert.Equal(t, strings.TrimRight(line, " \t"), line)
	}
	assert.False(t, strings.HasPrefix(got, "\n"))
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty output", "", nil},
		{"single page", "one\f", []string{"one"}},
		{"three pages", "one\ftwo\fthree\f", []string{"one", "two", "three"}},
		{"blank middle page", "one\f\fthree\f", []string{"one", "", "three"}},
		{"missing final feed", "one\ftwo", []string{"one", "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPages(tt.in))
		})
	}
}

// fakeRuntime implements container.Runtime for the pdftotext backend.
type fakeRuntime struct {
	imageErr error
	output   string
	runErr   error
	gotArgs  []string
	gotInput string
}

func (f *fakeRuntime) Name() string                   { return "docker" }
func (f *fakeRuntime) Available() bool                { return true }
func (f *fakeRuntime) ImageExists(image string) error { return f.imageErr }

func (f *fakeRuntime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.gotArgs = args
	data, _ := io.ReadAll(stdin)
	f.gotInput = string(data)
	if f.runErr != nil {
		return f.runErr
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestPdftotextReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644))

	rt := &fakeRuntime{output: "  First page  \n\f\f Third page\n\f"}
	r, err := NewPdftotextReader(rt, "")
	require.NoError(t, err)

	got, err := NewExtractor(r).Extract(path)
	require.NoError(t, err)

	assert.Equal(t, "First page\n\nThird page", got)
	assert.Equal(t, "%PDF-1.4 fake", rt.gotInput)
	assert.Equal(t, pdftotextArgs, rt.gotArgs)
}

func TestPdftotextReader_Errors(t *testing.T) {
	t.Run("image missing", func(t *testing.T) {
		_, err := NewPdftotextReader(&fakeRuntime{imageErr: errors.New("no such image")}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pdftotext image not available in docker")
	})

	t.Run("conversion fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.pdf")
		require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))

		r, err := NewPdftotextReader(&fakeRuntime{runErr: errors.New("exit status 1")}, "")
		require.NoError(t, err)

		_, err = r.Open(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "converting")
	})

	t.Run("missing file", func(t *testing.T) {
		r, err := NewPdftotextReader(&fakeRuntime{}, "")
		require.NoError(t, err)

		_, err = r.Open(filepath.Join(t.TempDir(), "absent.pdf"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestPagedTextOutOfRange(t *testing.T) {
	_, err := pagedText{"only"}.PageText(2)
	assert.Error(t, err)
}

func TestNativeReader_RejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is plain text, not a PDF"), 0o644))

	_, err := NativeReader{}.Open(path)
	assert.Error(t, err)
}

func TestNativeReader_MissingFile(t *testing.T) {
	_, err := NativeReader{}.Open(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}

func TestNewReader(t *testing.T) {
	r, err := NewReader(types.BackendNative)
	require.NoError(t, err)
	assert.IsType(t, NativeReader{}, r)

	r, err = NewReader("")
	require.NoError(t, err)
	assert.IsType(t, NativeReader{}, r)

	_, err = NewReader("grobid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported backend "grobid"`)
}
