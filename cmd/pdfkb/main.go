// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfkb CLI, which turns a folder of
// PDFs into a single plain-text knowledge base file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd builds the knowledge base; pdfkb has no subcommands.
var rootCmd = &cobra.Command{
	Use:   "pdfkb",
	Short: "Convert a folder of PDFs into one plain-text knowledge base",
	Long: `pdfkb extracts the text of every PDF in a folder and writes it to a single
plain-text file for tools that cannot ingest PDF or DOCX directly.

Each document becomes a chunk delimited by "===== DOCUMENT START =====" and
"===== DOCUMENT END =====" lines, tagged with its source filename and a
content-type label. Labels come from an override table (content-types.yaml or
--override) or are derived from the filename: my_report-v2.pdf becomes
"My Report V2". Documents are written in sorted path order.`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runBuild,
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initConfig()
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfkb.yaml or ~/.config/pdfkb/config.yaml)")
	rootCmd.SetVersionTemplate("pdfkb {{.Version}}\n")
}

func initConfig() error {
	// A missing .env is normal; only report files that exist but do not parse.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	return readConfig(viper.GetViper(), cfgFile)
}

// readConfig loads cfgFile, or searches the default locations when it is
// empty. Only the search may come up empty; a file named by the user must
// load.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pdfkb")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pdfkb"))
		}
	}

	v.SetEnvPrefix("PDFKB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
