package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driving"
)

var ingestJSON bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest files into the corpus",
	Long: `Runs the full pipeline over each file: copy into the corpus,
extract text, normalize it and index token frequencies. Zip and rar
archives are expanded and their contents ingested individually.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	report, err := ingestService.IngestFiles(context.Background(), args)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	return printReport(cmd, report, ingestJSON)
}

func printReport(cmd *cobra.Command, report *driving.IngestReport, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	for _, f := range report.Files {
		switch f.Status {
		case driving.StatusFailed:
			cmd.Printf("  FAIL %-40s %s\n", f.Filename, f.Err)
		default:
			cmd.Printf("  %-4s %-40s %s, %d tokens\n", f.Status, f.Filename, f.Type, f.TokensAfter)
		}
	}
	cmd.Printf("\n%d new, %d updated, %d failed\n", report.New, report.Updated, report.Failed)
	return nil
}
