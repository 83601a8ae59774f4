package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

var (
	searchMode  string
	searchTypes []string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed corpus",
	Long: `Matches the query against every document's normalized text.
Modes: contains (default), not_contains, starts_with, ends_with,
exact, all_words, or. Results are ranked by total term occurrences;
when nothing matches, close vocabulary words are suggested.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "", "search mode")
	searchCmd.Flags().StringSliceVarP(&searchTypes, "type", "t", nil, "restrict to document types (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	mode, err := domain.ParseSearchMode(searchMode)
	if err != nil {
		return err
	}
	opts := domain.SearchOptions{Mode: mode, Types: searchTypes}

	resp, err := searchService.Search(context.Background(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	return printSearchResults(cmd, resp)
}

func printSearchResults(cmd *cobra.Command, resp *domain.SearchResponse) error {
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		if len(resp.Suggestions) > 0 {
			cmd.Printf("Did you mean: %v\n", resp.Suggestions)
		}
		return nil
	}

	cmd.Printf("%d result(s):\n\n", len(resp.Results))
	for i, hit := range resp.Results {
		cmd.Printf("  [%d] %s (%s, %d occurrence(s))\n", i+1, hit.Filename, hit.Type, hit.TotalOccurrences)
		if hit.Preview != "" {
			cmd.Printf("      %s\n", hit.Preview)
		}
		cmd.Println()
	}
	return nil
}
