// Package cli implements the goxlsx command line tool.
package cli

import (
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/speedata/goxlsx/v2/reader"
)

const (
	LevelFlagName  = "loglevel"
	OutputFlagName = "output"

	OutputYAML = "yaml"
	OutputXML  = "xml"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goxlsx [sub-command]",
		Short: "Inspect Excel 2007 (.xlsx) files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}
	registerFlags(cmd.PersistentFlags())
	cmd.AddCommand(newSheetsCommand())
	cmd.AddCommand(newCellsCommand())
	cmd.AddCommand(newWorkbookCommand())
	cmd.AddCommand(newChartsCommand())
	return cmd
}

func registerFlags(flags *pflag.FlagSet) {
	flags.String(LevelFlagName, "warn", `sets the logging level
   debug: also show content that is skipped while reading
   info:  show warnings about the file structure
   warn:  show warnings and errors only
   error: show errors only`)
	flags.StringP(OutputFlagName, "o", OutputYAML, "output format, yaml or xml")
}

// logger builds the logger selected by the command's flags. Logs go to
// stderr so the output stays machine readable.
func logger(cmd *cobra.Command) (logr.Logger, error) {
	name, err := cmd.Flags().GetString(LevelFlagName)
	if err != nil {
		return logr.Discard(), err
	}
	level, ok := levels[name]
	if !ok {
		return logr.Discard(), errors.Errorf("invalid log level %q", name)
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return logr.FromSlogHandler(handler), nil
}

func outputFormat(cmd *cobra.Command) (string, error) {
	output, err := cmd.Flags().GetString(OutputFlagName)
	if err != nil {
		return "", err
	}
	switch output {
	case OutputYAML, OutputXML:
		return output, nil
	}
	return "", errors.Errorf("unknown output format: %q", output)
}

func open(cmd *cobra.Command, path string) (*reader.Spreadsheet, error) {
	log, err := logger(cmd)
	if err != nil {
		return nil, err
	}
	xlsx, err := reader.OpenFile(path, reader.WithLogger(log))
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return xlsx, nil
}
