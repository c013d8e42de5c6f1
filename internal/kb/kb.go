// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kb assembles a folder of PDFs into one plain-text knowledge base
// file. Documents are processed in sorted path order, each rendered as a
// delimited chunk carrying its source filename and content-type label.
package kb

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pdfkb/pkg/types"
)

// pdfExt is matched case-insensitively against directory entries.
const pdfExt = ".pdf"

// Resolver labels a document by filename.
type Resolver interface {
	Resolve(filename string) string
}

// TextExtractor returns the cleaned text body of the document at path.
type TextExtractor interface {
	Extract(path string) (string, error)
}

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

// Builder runs knowledge base builds. Progress lines go to the writer given
// to NewBuilder.
type Builder struct {
	cfg       types.BuildConfig
	resolver  Resolver
	extractor TextExtractor
	w         io.Writer
}

// NewBuilder returns a Builder for cfg. Empty config fields take the
// defaults from types.BuildConfig.WithDefaults.
func NewBuilder(cfg types.BuildConfig, r Resolver, x TextExtractor, w io.Writer) *Builder {
	if w == nil {
		w = io.Discard
	}
	return &Builder{cfg: cfg.WithDefaults(), resolver: r, extractor: x, w: w}
}

// Result summarizes a build.
type Result struct {
	// Written is the number of documents in the knowledge base file.
	Written int
	// Skipped lists filenames left out under the SkipFailed policy.
	Skipped []string
	// OutputPath is where the knowledge base was written; empty when
	// nothing was written.
	OutputPath string
	// NoDocuments is set when the input folder held no PDFs. No file is
	// written in that case.
	NoDocuments bool
}

// Discover lists the PDFs directly inside folder, sorted by full path.
// Subdirectories and files with other extensions are ignored.
func Discover(folder string) ([]types.InputDocument, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, &FolderAccessError{Folder: folder, Err: err}
	}

	var docs []types.InputDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), pdfExt) {
			continue
		}
		docs = append(docs, types.InputDocument{
			Filename: entry.Name(),
			Path:     filepath.Join(folder, entry.Name()),
		})
	}

	slices.SortFunc(docs, func(a, b types.InputDocument) int {
		return strings.Compare(a.Path, b.Path)
	})
	return docs, nil
}

// Run builds the knowledge base: discover, extract every document in sorted
// order, and atomically replace the output file. An empty input folder is
// not an error; Run reports NoDocuments and writes nothing.
func (b *Builder) Run(ctx context.Context) (Result, error) {
	docs, err := Discover(b.cfg.InputFolder)
	if err != nil {
		return Result{}, err
	}
	if len(docs) == 0 {
		fmt.Fprintf(b.w, "No PDF files found in: %s\n", b.cfg.InputFolder)
		return Result{NoDocuments: true}, nil
	}

	chunks, skipped, err := b.process(ctx, docs)
	if err != nil {
		return Result{Skipped: skipped}, err
	}

	if err := writeAtomic(b.cfg.OutputPath, []byte(strings.Join(chunks, ""))); err != nil {
		return Result{Skipped: skipped}, &OutputWriteError{Path: b.cfg.OutputPath, Err: err}
	}

	fmt.Fprintf(b.w, "%s Knowledge base written to:\n%s\n", green("Done!"), b.cfg.OutputPath)
	if len(skipped) > 0 {
		fmt.Fprintf(b.w, "%s %d document(s) skipped: %s\n",
			yellow("Warning:"), len(skipped), strings.Join(skipped, ", "))
	}

	return Result{
		Written:    len(chunks),
		Skipped:    skipped,
		OutputPath: b.cfg.OutputPath,
	}, nil
}

// extraction is the outcome of extracting one document.
type extraction struct {
	body string
	err  error
}

// process turns docs into chunks in the order given. With Jobs > 1 the
// extraction runs ahead in parallel; labeling, progress output, and chunk
// order stay sequential either way.
func (b *Builder) process(ctx context.Context, docs []types.InputDocument) ([]string, []string, error) {
	var ahead []extraction
	if b.cfg.Jobs > 1 {
		var err error
		if ahead, err = b.extractParallel(ctx, docs); err != nil {
			return nil, nil, err
		}
	}

	chunks := make([]string, 0, len(docs))
	var skipped []string

	for i, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, skipped, ctx.Err()
		default:
		}

		label := b.resolver.Resolve(doc.Filename)
		fmt.Fprintf(b.w, "Processing: %s  (Content type: %s)\n", doc.Filename, cyan(label))

		var ex extraction
		if ahead != nil {
			ex = ahead[i]
		} else {
			ex.body, ex.err = b.extractor.Extract(doc.Path)
		}

		if ex.err != nil {
			if !b.cfg.SkipFailed {
				return nil, skipped, &DocumentOpenError{Document: doc.Filename, Err: ex.err}
			}
			fmt.Fprintf(b.w, "%s %s (%v)\n", yellow("Skipped:"), doc.Filename, ex.err)
			skipped = append(skipped, doc.Filename)
			continue
		}

		chunk := FormatChunk(types.ExtractedDocument{
			Filename:    doc.Filename,
			ContentType: label,
			Body:        ex.body,
		})
		if err := validChunk(doc.Filename, chunk); err != nil {
			return nil, skipped, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, skipped, nil
}

// extractParallel extracts up to Jobs documents at a time. Results are stored
// by index and extraction failures are kept per document rather than
// returned, so process reports the first failure in sorted order exactly as
// a sequential run would. Only cancellation stops the batch early.
func (b *Builder) extractParallel(ctx context.Context, docs []types.InputDocument) ([]extraction, error) {
	results := make([]extraction, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Jobs)

	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			body, err := b.extractor.Extract(doc.Path)
			results[i] = extraction{body: body, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
