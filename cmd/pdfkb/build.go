// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfkb/internal/contenttype"
	"github.com/pdiddy/pdfkb/internal/kb"
	"github.com/pdiddy/pdfkb/internal/pdftext"
	"github.com/pdiddy/pdfkb/pkg/types"
)

// flag name -> viper key. Each can also be set in the config file or through
// PDFKB_<KEY> environment variables.
var buildKeys = map[string]string{
	"input":          "input_folder",
	"output":         "output_path",
	"overrides-file": "overrides_file",
	"backend":        "backend",
	"skip-failed":    "skip_failed",
	"jobs":           "jobs",
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	table, err := overrideTable(cmd, cfg.OverridesFile)
	if err != nil {
		return err
	}

	reader, err := pdftext.NewReader(cfg.Backend)
	if err != nil {
		return err
	}

	builder := kb.NewBuilder(cfg, contenttype.New(table), pdftext.NewExtractor(reader), os.Stdout)
	_, err = builder.Run(cmd.Context())
	return err
}

// buildConfig reads the resolved flag, env, and config file values.
func buildConfig() (types.BuildConfig, error) {
	cfg := types.BuildConfig{
		InputFolder:   viper.GetString("input_folder"),
		OutputPath:    viper.GetString("output_path"),
		OverridesFile: viper.GetString("overrides_file"),
		Backend:       types.ExtractionBackend(viper.GetString("backend")),
		SkipFailed:    viper.GetBool("skip_failed"),
		Jobs:          viper.GetInt("jobs"),
	}.WithDefaults()

	if !cfg.Backend.Valid() {
		return cfg, fmt.Errorf("unsupported backend %q: use %s or %s",
			cfg.Backend, types.BackendNative, types.BackendPdftotext)
	}
	return cfg, nil
}

// overrideTable layers the built-in defaults, the overrides file, and
// --override flags, later sources winning. The default overrides file may be
// absent; any other path must exist.
func overrideTable(cmd *cobra.Command, file string) (contenttype.Table, error) {
	load := contenttype.LoadFile
	if file == types.DefaultOverridesFile {
		load = contenttype.LoadOptional
	}
	fromFile, err := load(file)
	if err != nil {
		return nil, err
	}
	fromFlags, err := cmd.Flags().GetStringToString("override")
	if err != nil {
		return nil, err
	}
	return contenttype.Merge(contenttype.Defaults, fromFile, fromFlags), nil
}

func init() {
	f := rootCmd.Flags()
	f.StringP("input", "i", types.DefaultInputFolder, "folder containing the PDF files")
	f.StringP("output", "o", types.DefaultOutputPath, "knowledge base file to write (overwritten)")
	f.String("overrides-file", types.DefaultOverridesFile, "YAML mapping of filename to content-type label")
	f.StringToString("override", nil, "content-type label for a file, as filename=label (repeatable)")
	f.String("backend", string(types.BackendNative), "text extraction backend: native or pdftotext")
	f.Bool("skip-failed", false, "skip documents that cannot be opened instead of aborting")
	f.IntP("jobs", "j", 1, "documents to extract concurrently (output order is unchanged)")

	for flag, key := range buildKeys {
		if err := viper.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}
