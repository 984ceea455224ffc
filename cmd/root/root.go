// Package root contains the root command for the application
package root

import (
	"fjacquet/pledge-extract/internal/config"
	"fjacquet/pledge-extract/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by the extraction commands
type CommonFlags struct {
	InputDir string
	Output   string
	Lookup   string
	Debug    bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "pledge-extract",
		Short: "A CLI tool to extract donation pledge records from PDF reports into a spreadsheet.",
		Long: `pledge-extract scans PDF pledge reports for fixed-format transaction lines,
normalizes donor names, optionally backfills account numbers from a lookup
table, and writes a single-sheet XLSX file.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to pledge-extract!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
		},
	}

	// SharedFlags holds the common flag values accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.InputDir, "input", "i", "", "Input directory containing PDF reports")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output XLSX file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Lookup, "lookup", "l", "", "Optional account lookup table (.csv, .xlsx, .yaml)")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.Debug, "debug", false, "Print diagnostic detail for pages where no line matched")
}

// GetLogger returns the shared logger wrapped in the logging abstraction.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
