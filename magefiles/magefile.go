//go:build mage

// Package main contains Mage build targets for pdfkb developer tooling.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "pdfkb"
	cmdPkg  = "./cmd/pdfkb"

	pdfDir  = "PDF"
	kbFile  = "knowledge_base.txt"
	docMark = "===== DOCUMENT START ====="
)

// Init creates the PDF input folder the CLI reads by default.
func Init() error {
	if err := os.MkdirAll(pdfDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", pdfDir, err)
	}
	fmt.Println("  ", pdfDir)
	fmt.Println("Drop PDF files into", pdfDir, "and run `mage knowledgebase`.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// KnowledgeBase builds the CLI and converts PDF/ into knowledge_base.txt.
func KnowledgeBase() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "--input", pdfDir, "--output", kbFile)
}

// Stats prints Go line counts and, when present, knowledge base size.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)

	data, err := os.ReadFile(kbFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", kbFile, err)
	}
	fmt.Printf("Knowledge base documents:       %d\n", bytes.Count(data, []byte(docMark)))
	fmt.Printf("Knowledge base words:           %d\n", len(strings.Fields(string(data))))
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				total++
			}
		}
		return nil
	})
	return total, err
}
