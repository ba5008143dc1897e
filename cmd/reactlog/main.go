package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/heyjunin/reactlog/pkg/errors"
	"github.com/heyjunin/reactlog/pkg/logger"
	"github.com/heyjunin/reactlog/pkg/plugin"
	"github.com/heyjunin/reactlog/pkg/progress"
	"github.com/heyjunin/reactlog/pkg/replay"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

type replayOptions struct {
	// Script options
	format string

	// Output options
	sink string

	// Progress options
	showProgress bool
	progressFile string

	// Diagnostics options
	logLevel  string
	logFormat string
}

func main() {
	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if sErr, ok := err.(*errors.StructuredError); ok {
			fmt.Fprintf(os.Stderr, "Error %d: %s (%s)\n", sErr.Code, sErr.Message, sErr.Details)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reactlog",
		Short: "reactlog - lifecycle logging for reactive values",
		Long: `reactlog logs the lifecycle of reactive values: creation, updates and naming.
The replay command feeds a recorded lifecycle script through the logging plugin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newReplayCmd(), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the reactlog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reactlog %s\n", version)
		},
	}
}

func newReplayCmd() *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a lifecycle script through the logging plugin",
		Long: `Replay reads a script of lifecycle events and logs each one.

Scripts are either JSON lines:

  {"op":"create","ref":"a","value":5}
  {"op":"name","ref":"a","name":"x"}
  {"op":"update","ref":"a","value":10}

or YAML, a list of the same objects, optionally under an "events" key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args[0], opts)
		},
	}

	// Script flags
	cmd.Flags().StringVarP(&opts.format, "format", "f", "auto", "Script format: 'auto', 'jsonl' or 'yaml'")

	// Output flags
	cmd.Flags().StringVar(&opts.sink, "sink", "stderr", "Where lifecycle lines are written: 'stderr' or 'stdout'")

	// Progress flags
	cmd.Flags().BoolVar(&opts.showProgress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().StringVar(&opts.progressFile, "progress-file", "", "Write replay progress percentage to this file")

	// Diagnostics flags
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Diagnostics level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "console", "Diagnostics format: console, json or bare")

	return cmd
}

func runReplay(cmd *cobra.Command, path string, opts *replayOptions) error {
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return errors.Wrap(err, errors.ValidationError, "Invalid --log-level", 1)
	}
	logFormat, err := logger.ParseFormat(opts.logFormat)
	if err != nil {
		return errors.Wrap(err, errors.ValidationError, "Invalid --log-format", 2)
	}
	switch opts.sink {
	case "stderr", "stdout":
	default:
		return errors.New(errors.ValidationError, "Invalid --sink", fmt.Sprintf("sink %q", opts.sink), 3)
	}
	if opts.showProgress && opts.sink == "stderr" {
		return errors.New(errors.ValidationError, "--progress requires --sink stdout", "the progress bar is drawn on stderr", 4)
	}
	logger.Init(logger.Config{Format: logFormat, Level: level, Output: cmd.ErrOrStderr()})

	format := replay.DetectFormat(path)
	if opts.format != "" && opts.format != "auto" {
		if format, err = replay.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		code := errors.ErrFileNotAccessible
		if os.IsNotExist(err) {
			code = errors.ErrFileNotFound
		}
		return errors.Wrap(err, errors.SystemError, errors.GetErrorMessage(code), code)
	}
	defer f.Close()

	events, err := replay.Decode(f, format)
	if err != nil {
		return err
	}

	player := replay.NewPlayer(replay.Options{
		Reporter: newReporter(cmd.ErrOrStderr(), opts),
		Logger:   logger.NewLogger(),
	})

	if opts.sink == "stdout" {
		player.Register(newPluginFor(cmd.OutOrStdout()))
	} else {
		plugin.Register(player)
	}

	logger.Debug("Starting replay", "main", map[string]interface{}{
		"script": path,
		"format": string(format),
		"events": len(events),
	})

	summary, err := player.Run(cmd.Context(), events)
	if err != nil {
		return err
	}

	logger.Info("Replay completed successfully", "main", map[string]interface{}{
		"run_id":  summary.RunID,
		"created": summary.Created,
		"updated": summary.Updated,
		"named":   summary.Named,
	})
	return nil
}

func newPluginFor(w io.Writer) *plugin.ReactiveLogger {
	sink := logger.NewBare(w)
	return plugin.New(plugin.Config{Logger: &sink})
}

func newReporter(w io.Writer, opts *replayOptions) progress.Reporter {
	if !opts.showProgress && opts.progressFile == "" {
		return progress.NoopReporter{}
	}
	reporterOpts := []progress.ReporterOption{progress.WithProgressFile(opts.progressFile)}
	if opts.showProgress {
		reporterOpts = append(reporterOpts, progress.WithWriter(w))
	} else {
		reporterOpts = append(reporterOpts, progress.WithWriter(io.Discard))
	}
	return progress.NewReporter(reporterOpts...)
}
