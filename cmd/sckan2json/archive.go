package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	"github.com/c360studio/sckan2json/config"
	"github.com/c360studio/sckan2json/output"
	"github.com/c360studio/sckan2json/storage"
)

func archiveCmd(opts *exportOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect exports archived in the NATS object store",
	}
	cmd.AddCommand(archiveListCmd(opts), archiveGetCmd(opts))
	return cmd
}

func archiveListCmd(opts *exportOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived exports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, cfg, err := archiveSetup(cmd, *opts)
			if err != nil {
				return err
			}
			store, closeStore, err := openArchive(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			infos, err := store.List(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tQUERY DATE\tSIZE")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", info.Name, info.Name.QueryDate.Format(time.RFC3339), info.Size)
			}
			return tw.Flush()
		},
	}
}

func archiveGetCmd(opts *exportOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [NAME]",
		Short: "Write an archived export (default: the latest) to the output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, cfg, err := archiveSetup(cmd, *opts)
			if err != nil {
				return err
			}
			store, closeStore, err := openArchive(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			var name storage.ArchiveName
			if len(args) == 0 {
				latest, err := store.Latest(ctx)
				if err != nil {
					return err
				}
				name = latest.Name
			} else {
				name, err = storage.ParseArchiveName(args[0])
				if err != nil {
					return err
				}
			}

			data, err := store.Fetch(ctx, name)
			if err != nil {
				return err
			}
			sink := output.Sink{Path: cfg.Output.Path, Stdout: cmd.OutOrStdout()}
			if err := sink.Write(ctx, data); err != nil {
				return err
			}
			logger.Info("Archived export written", "name", name.String(), "output", sink.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", `Output file ("-" for stdout)`)
	return cmd
}

func archiveSetup(cmd *cobra.Command, opts exportOptions) (context.Context, *slog.Logger, *config.Config, error) {
	logger := newLogger(cmd.ErrOrStderr(), opts.logLevel).With("run_id", uuid.NewString())
	cfg, err := loadConfig(cmd, opts, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cmd.Context(), logger, cfg, nil
}

// openArchive connects to NATS and opens the configured bucket. The returned
// function closes the connection.
func openArchive(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage.Store, func(), error) {
	if cfg.NATS.URL == "" {
		return nil, nil, fmt.Errorf("no NATS URL configured (set nats.url, %s or --nats-url)", config.EnvNATSURL)
	}

	logger.Info("Connecting to NATS", "url", cfg.NATS.URL)
	nc, err := nats.Connect(cfg.NATS.URL,
		nats.Name(appName),
		nats.Timeout(10*time.Second),
	)
	if err != nil {
		return nil, nil, wrapNATSError(err, cfg.NATS.URL)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}

	store, err := storage.NewStore(ctx, js, cfg.NATS.Bucket)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Debug("Archive bucket ready", "bucket", cfg.NATS.Bucket)
	return store, nc.Close, nil
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	// Check for common connection errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS with JetStream:
  docker run -p 4222:4222 nats -js

Or set %s to point to your NATS server.`, err, url, config.EnvNATSURL)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}
