package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driving"
)

var (
	lsType     string
	lsDateFrom string
	lsDateTo   string
	lsJSON     bool
	showJSON   bool
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runLs,
}

var showCmd = &cobra.Command{
	Use:   "show [filename]",
	Short: "Show one document's record",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var rmCmd = &cobra.Command{
	Use:   "rm [filename...]",
	Short: "Remove documents from the corpus",
	Long: `Removes each document's corpus file, its derived raw and clean
texts, and its metadata record.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRm,
}

func init() {
	lsCmd.Flags().StringVarP(&lsType, "type", "t", "", "filter by document type")
	lsCmd.Flags().StringVar(&lsDateFrom, "from", "", "filter by import date, inclusive (YYYY-MM-DD)")
	lsCmd.Flags().StringVar(&lsDateTo, "to", "", "filter by import date, inclusive (YYYY-MM-DD)")
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "output as JSON")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rmCmd)
}

func runLs(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	filter := driving.ListFilter{Type: lsType, DateFrom: lsDateFrom, DateTo: lsDateTo}
	docs, err := documentService.List(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if lsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}
	cmd.Printf("%-40s %-6s %10s %8s %12s\n", "FILENAME", "TYPE", "SIZE", "TOKENS", "IMPORTED")
	for _, d := range docs {
		cmd.Printf("%-40s %-6s %10d %8d %12s\n", d.Filename, d.Type, d.Size, d.TotalTokensAfter, d.DateImport)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	rec, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	if showJSON {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Filename:   %s\n", rec.Filename)
	cmd.Printf("Type:       %s\n", rec.Type)
	cmd.Printf("Path:       %s\n", rec.Path)
	cmd.Printf("Size:       %d bytes\n", rec.Size)
	cmd.Printf("Pages:      %d\n", rec.NumPages)
	cmd.Printf("Imported:   %s\n", rec.DateImport)
	cmd.Printf("Tokens:     %d (from %d before normalization)\n", rec.TotalTokensAfter, rec.TotalTokensBefore)
	cmd.Printf("Vocabulary: %d distinct word(s), %d bigram(s)\n", len(rec.Words), len(rec.Bigrams))
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	deleted, err := documentService.Delete(context.Background(), args)
	cmd.Printf("%d document(s) removed\n", deleted)
	return err
}
