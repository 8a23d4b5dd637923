// Package commands implements the CLI commands for decomment.
package commands

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/decomment/internal/logger"
	"github.com/jmylchreest/decomment/internal/report"
	"github.com/jmylchreest/decomment/pkg/decomment"
)

var rootCmd = &cobra.Command{
	Use:   "decomment [path]",
	Short: "Strip HTML comments from files and directory trees",
	Long: `Decomment removes <!-- ... --> comments from HTML-like files.

Point it at a file or a directory. Directories are scanned for common
web templates (.html, .htm, .php, .asp, .aspx, .jsp, .tpl); a single
file is processed regardless of its extension. Files are rewritten in
place unless an output directory is given, and every file is read and
written back in its own character encoding.

Examples:
  # Strip every comment from one file, in place
  decomment page.html

  # Strip a whole site recursively into a separate tree
  decomment ./site -r -o ./site-clean

  # Remove only comments containing a marker
  decomment ./site -r -s "DEBUG"

  # Force a charset instead of detecting one per file
  decomment legacy.html -e ISO-8859-1

  # Machine-readable run report on stdout
  decomment ./site -r --report - --report-format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.decomment.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")

	flags := rootCmd.Flags()

	// Selection
	flags.BoolP("recursive", "r", false, "descend into subdirectories")
	flags.StringSlice("ext", decomment.DefaultExtensions(), "file extensions a directory walk picks up")

	// Comment selection
	flags.StringP("specific", "s", "", "only remove comments containing this literal text")
	flags.BoolP("all", "a", false, "remove all comments (default; kept for compatibility)")

	// Output settings
	flags.StringP("output", "o", "", "write results under this directory instead of in place")

	// Content handling
	flags.StringP("encoding", "e", "", "force a character encoding (default: detect per file)")
	flags.String("max-file-size", "0", "skip files larger than this (e.g. 10MB, 0=unlimited)")

	// Reporting
	flags.String("report", "", "write a run report to this file ('-' for stdout)")
	flags.String("report-format", "json", "report format: json, jsonl, yaml")

	// Bind to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
	_ = viper.BindPFlag("specific", flags.Lookup("specific"))
	_ = viper.BindPFlag("encoding", flags.Lookup("encoding"))
	_ = viper.BindPFlag("extensions", flags.Lookup("ext"))
	_ = viper.BindPFlag("max_file_size", flags.Lookup("max-file-size"))
	_ = viper.BindPFlag("report_format", flags.Lookup("report-format"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".decomment")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("DECOMMENT")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	// Initialize logger based on flags
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	path := args[0]
	logger.Debug("decomment starting", "path", path)

	filter := viper.GetString("specific")
	if all, _ := cmd.Flags().GetBool("all"); all && filter != "" {
		logger.Debug("--specific given, --all has no effect")
	}

	// Max file size (0 or empty means unlimited)
	maxSizeStr := viper.GetString("max_file_size")
	var maxFileSize int64
	if strings.TrimSpace(maxSizeStr) != "" && maxSizeStr != "0" {
		size, err := humanize.ParseBytes(maxSizeStr)
		if err != nil {
			logger.Error("invalid max-file-size", "value", maxSizeStr, "error", err)
			return err
		}
		maxFileSize = int64(size)
	}

	recursive, _ := cmd.Flags().GetBool("recursive")
	outputDir, _ := cmd.Flags().GetString("output")

	d, err := decomment.New(
		decomment.WithFilter(filter),
		decomment.WithRecursive(recursive),
		decomment.WithOutputDir(outputDir),
		decomment.WithEncoding(viper.GetString("encoding")),
		decomment.WithExtensions(viper.GetStringSlice("extensions")),
		decomment.WithMaxFileSize(maxFileSize),
	)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return err
	}

	summary, err := d.Process(ctx, path)
	if err != nil {
		logger.Error("run failed", "error", err)
		return err
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := writeReport(summary, reportPath, viper.GetString("report_format")); err != nil {
			logger.Error("failed to write report", "path", reportPath, "error", err)
			return err
		}
	}

	logger.Info("run complete",
		"processed", summary.FilesProcessed,
		"skipped", summary.FilesSkipped,
		"failed", summary.FilesFailed,
		"comments_removed", summary.CommentsRemoved,
		"bytes_in", humanize.Bytes(uint64(summary.BytesIn)),
		"bytes_out", humanize.Bytes(uint64(summary.BytesOut)),
		"duration_ms", summary.DurationMs)

	if summary.HasFailures() {
		// Individual failures are already logged; the run itself completed.
		logger.Warn("completed with file errors", "failed", summary.FilesFailed)
	}

	return nil
}

func writeReport(summary *decomment.Summary, path, format string) error {
	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path) //#nosec G304 -- CLI tool writes to user-specified report file
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	writer, err := report.NewWriter(out, report.Format(format))
	if err != nil {
		return err
	}
	if err := writer.Write(summary); err != nil {
		return err
	}
	return writer.Close()
}
