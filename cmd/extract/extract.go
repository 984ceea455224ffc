// Package extract handles the pledge extraction command
package extract

import (
	"fjacquet/pledge-extract/cmd/root"
	"fjacquet/pledge-extract/internal/config"
	"fjacquet/pledge-extract/internal/pdftext"

	"github.com/spf13/cobra"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract pledge records from PDFs to XLSX",
	Long: `Extract donation transaction records from all PDF reports in the input
directory and write them to a single-sheet XLSX file.

Example:
  pledge-extract extract -i input_pdfs/ -o Pledges_Output.xlsx -l lookup_accounts.xlsx`,
	Run: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	logger.Info("Extract command called")

	if root.SharedFlags.InputDir == "" || root.SharedFlags.Output == "" {
		logger.Fatal("Input directory and output file must be specified")
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		logger.Fatalf("Failed to initialize configuration: %v", err)
	}

	err = Run(RunParams{
		InputDir:   root.SharedFlags.InputDir,
		OutputFile: root.SharedFlags.Output,
		LookupFile: root.SharedFlags.Lookup,
		Debug:      root.SharedFlags.Debug,
	}, cfg, pdftext.NewRealExtractor(), logger)
	if err != nil {
		logger.Fatalf("Extraction failed: %v", err)
	}
}
