// Package main provides the sckan2json binary entry point.
// sckan2json exports the SCKAN connectivity knowledge graph from a Stardog
// endpoint into a single self-describing JSON document.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/sckan2json/config"
	"github.com/c360studio/sckan2json/export"
	"github.com/c360studio/sckan2json/output"
	"github.com/c360studio/sckan2json/vocabulary/npo"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "sckan2json"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Export the SCKAN connectivity knowledge graph to JSON",
		Long: `sckan2json queries a SCKAN triple store and writes one JSON document
holding neuron connectivity, neuron metadata, pathway segments, anatomical
locations, a label dictionary and DOI metadata.

The document embeds its own JSON Schema and field guide. Query results can
be recorded with --record and replayed offline with --replay.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.natsURL, "nats-url", "", "NATS server URL for the export archive")

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", `Output file ("-" for stdout)`)
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Queries fetched in parallel")
	cmd.Flags().BoolVar(&opts.noValidate, "no-validate", false, "Skip schema validation of the document")
	cmd.Flags().StringVar(&opts.replayDir, "replay", "", "Replay recorded query results from this directory instead of querying")
	cmd.Flags().StringVar(&opts.recordDir, "record", "", "Record query results to this directory")
	cmd.Flags().StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file")

	cmd.AddCommand(schemaCmd(), archiveCmd(&opts), configCmd(&opts), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s, schema: %s, tables: %s)\n",
				appName, Version, BuildTime, export.SchemaVersion, npo.TablesVersion)
		},
	}
}

func schemaCmd() *cobra.Command {
	var (
		docs       bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the export document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if docs {
				_, err := io.WriteString(cmd.OutOrStdout(), export.Documentation(export.Schema()))
				return err
			}
			data, err := export.SchemaJSON()
			if err != nil {
				return err
			}
			sink := output.Sink{Path: schemaPath(outputPath), Stdout: cmd.OutOrStdout()}
			return sink.Write(cmd.Context(), append(data, '\n'))
		},
	}

	cmd.Flags().BoolVar(&docs, "docs", false, "Print the field guide instead of the schema")
	cmd.Flags().StringVarP(&outputPath, "output", "o", output.Stdout, `Output file ("-" for stdout); the schema extension is added when missing`)
	return cmd
}

// schemaPath gives a bare output path the schema file extension.
func schemaPath(path string) string {
	if path == "" || path == output.Stdout || filepath.Ext(path) != "" {
		return path
	}
	info, _ := export.GetFormatInfo(export.FormatSchema)
	return path + info.Extension
}

func configCmd(opts *exportOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sckan2json configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the user config file with defaults if it doesn't exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			path, err := config.NewLoader(logger).EnsureUserConfig()
			if err != nil {
				return fmt.Errorf("init user config: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	})
	return cmd
}

// newLogger returns a text logger on w at the named level. Unknown levels
// fall back to info.
func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
