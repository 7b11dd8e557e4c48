// Package main provides the CLI entry point for tablegroup.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ukaji3/tablegroup-go/internal/config"
	"github.com/ukaji3/tablegroup-go/pkg/tablegroup"
	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/output"
)

// rootFlags holds the flag values of one command tree.
type rootFlags struct {
	configPath string
	outputPath string
	outputDir  string
	summary    bool
	pretty     bool
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "tablegroup [input.pdf]",
		Short: "Extract and group tables from PDF files",
		Long: `tablegroup extracts tables from a PDF (or xlsx) document, groups tables
with the same header width, and writes a workbook with a Summary sheet
and one sheet per group.`,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file path (default: ./tablegroup.toml if present)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text, json")

	rootCmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output file path (default: <input>_smart_grouping.xlsx)")
	rootCmd.Flags().StringVar(&flags.outputDir, "output-dir", ".", "Directory for the derived output file")
	rootCmd.Flags().BoolVar(&flags.summary, "summary", false, "Print the group summary as JSON to stdout")
	rootCmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(newServeCmd(flags))
	return rootCmd
}

// loadConfig reads the config file and applies the logging flags.
func loadConfig(flags *rootFlags) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	logger, err := newLogger(os.Stderr, cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func run(cmd *cobra.Command, args []string, flags *rootFlags) error {
	inputPath := args[0]

	cfg, logger, err := loadConfig(flags)
	if err != nil {
		return report(cmd, err)
	}

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return report(cmd, fmt.Errorf("file not found: %s", inputPath))
	}

	opts := tablegroup.Options{
		Detection:  cfg.Detection,
		ScratchDir: cfg.ScratchDir,
		Logger:     logger,
	}

	res, err := tablegroup.ProcessFile(inputPath, opts)
	if err != nil {
		return report(cmd, err)
	}

	if res.Status == tablegroup.StatusNoTables {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: No valid tables found.")
		return nil
	}

	dest := flags.outputPath
	if dest == "" {
		dest = filepath.Join(flags.outputDir, res.Filename)
	}
	if err := os.WriteFile(dest, res.Data, 0644); err != nil {
		return report(cmd, fmt.Errorf("failed to write output: %w", err))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved to %s\n", dest)

	if flags.summary {
		jsonData, err := output.SummaryToJSON(res.Document, flags.pretty)
		if err != nil {
			return report(cmd, fmt.Errorf("serialization failed: %w", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	return nil
}

// report prints the user-facing error line and returns err for the exit code.
func report(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return err
}

func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Format)
	}
}
