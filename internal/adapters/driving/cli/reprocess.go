package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reprocessJSON bool

var reprocessCmd = &cobra.Command{
	Use:   "reprocess",
	Short: "Re-run the pipeline over every corpus file",
	Long: `Re-extracts, re-normalizes and re-indexes every file already in
the corpus directory. Useful after changing language settings or
upgrading extraction.`,
	Args: cobra.NoArgs,
	RunE: runReprocess,
}

func init() {
	reprocessCmd.Flags().BoolVar(&reprocessJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(reprocessCmd)
}

func runReprocess(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	report, err := ingestService.Reprocess(context.Background())
	if err != nil {
		return fmt.Errorf("reprocess failed: %w", err)
	}
	return printReport(cmd, report, reprocessJSON)
}
