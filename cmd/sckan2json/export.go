package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/sckan2json/config"
	"github.com/c360studio/sckan2json/export"
	"github.com/c360studio/sckan2json/metrics"
	"github.com/c360studio/sckan2json/output"
	"github.com/c360studio/sckan2json/pipeline"
	"github.com/c360studio/sckan2json/sparql"
)

// exportOptions holds the command-line flags. Flags left unset keep the
// configured value.
type exportOptions struct {
	configPath      string
	outputPath      string
	logLevel        string
	concurrency     int
	noValidate      bool
	replayDir       string
	recordDir       string
	metricsTextfile string
	natsURL         string
}

func runExport(cmd *cobra.Command, opts exportOptions) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.logLevel).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	cfg, err := loadConfig(cmd, opts, logger)
	if err != nil {
		return err
	}

	exec, err := newExecutor(cfg, opts, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()
	defer func() {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("Failed to write metrics", "path", cfg.Metrics.Textfile, "error", err)
		}
	}()

	logger.Info("Starting export",
		"version", Version,
		"concurrency", cfg.Export.Concurrency,
		"validate", cfg.Export.Validate)

	res, err := pipeline.Run(ctx, exec, pipeline.Options{
		Concurrency: cfg.Export.Concurrency,
		Validate:    cfg.Export.Validate,
		Logger:      logger,
		Metrics:     m,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, res.Tree, cfg.Output.Indent); err != nil {
		return err
	}

	sink := output.Sink{Path: cfg.Output.Path, Stdout: cmd.OutOrStdout()}
	if err := sink.Write(ctx, buf.Bytes()); err != nil {
		return err
	}
	logger.Info("Export written",
		"output", sink.String(),
		"bytes", buf.Len(),
		"rejected_rows", len(res.Diagnostics))

	// The document is already written; a failed upload must not turn the
	// run into a failure.
	if cfg.NATS.URL != "" {
		if err := archiveExport(ctx, cfg, buf.Bytes(), res, logger); err != nil {
			logger.Warn("Failed to archive export", "error", err)
		}
	}
	return nil
}

// loadConfig layers the command-line flags over the loaded configuration.
func loadConfig(cmd *cobra.Command, opts exportOptions, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("concurrency") && opts.concurrency < 1 {
		return nil, fmt.Errorf("--concurrency must be at least 1, got %d", opts.concurrency)
	}
	cfg.Merge(&config.Config{
		Export:  config.ExportConfig{Concurrency: opts.concurrency},
		Output:  config.OutputConfig{Path: opts.outputPath},
		Metrics: config.MetricsConfig{Textfile: opts.metricsTextfile},
		NATS:    config.NATSConfig{URL: opts.natsURL},
	})
	if opts.noValidate {
		cfg.Export.Validate = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newExecutor(cfg *config.Config, opts exportOptions, logger *slog.Logger) (sparql.Executor, error) {
	var exec sparql.Executor
	if opts.replayDir != "" {
		logger.Info("Replaying recorded query results", "dir", opts.replayDir)
		exec = &sparql.ReplayExecutor{Dir: opts.replayDir}
	} else {
		stardog, err := sparql.NewStardogExecutor(sparql.StardogOptions{
			URL:       cfg.Endpoint.URL,
			Database:  cfg.Endpoint.Database,
			Username:  cfg.Endpoint.Username,
			Password:  cfg.Endpoint.Password,
			Timeout:   cfg.Endpoint.Timeout,
			Reasoning: cfg.Endpoint.Reasoning,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create executor: %w", err)
		}
		logger.Info("Querying endpoint", "endpoint", stardog.Endpoint())
		exec = stardog
	}

	if opts.recordDir != "" {
		logger.Info("Recording query results", "dir", opts.recordDir)
		exec = &sparql.RecordingExecutor{Next: exec, Dir: opts.recordDir}
	}
	return exec, nil
}

func archiveExport(ctx context.Context, cfg *config.Config, data []byte, res *pipeline.Result, logger *slog.Logger) error {
	store, closeStore, err := openArchive(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	info, err := store.Archive(ctx, data, res.Document.Metadata.QueryDate)
	if err != nil {
		return fmt.Errorf("archive export: %w", err)
	}
	logger.Info("Export archived",
		"bucket", info.Bucket,
		"name", info.Name.String(),
		"size", info.Size)
	return nil
}
