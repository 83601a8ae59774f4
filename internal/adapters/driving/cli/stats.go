package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	statsTopN int
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long:  `Aggregates document counts, sizes, import dates and the most frequent words and bigrams across the whole corpus.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&statsTopN, "top", "n", 20, "number of top words and bigrams")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	stats, err := statsService.Stats(context.Background(), statsTopN)
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Documents:  %d\n", stats.Documents)
	cmd.Printf("Total size: %d bytes\n", stats.TotalSize)
	cmd.Printf("Pages:      %d\n", stats.TotalPages)
	cmd.Printf("Tokens:     %d\n", stats.TotalTokens)
	cmd.Printf("Vocabulary: %d distinct word(s)\n", stats.VocabSize)
	if stats.OldestDate != "" {
		cmd.Printf("Imported:   %s to %s\n", stats.OldestDate, stats.NewestDate)
	}

	if len(stats.ByType) > 0 {
		cmd.Println("\nBy type:")
		for _, tc := range stats.ByType {
			cmd.Printf("  %-6s %d\n", tc.Type, tc.Count)
		}
	}
	if len(stats.TopWords) > 0 {
		cmd.Println("\nTop words:")
		for _, wc := range stats.TopWords {
			cmd.Printf("  %-20s %d\n", wc.Word, wc.Count)
		}
	}
	if len(stats.TopBigrams) > 0 {
		cmd.Println("\nTop bigrams:")
		for _, wc := range stats.TopBigrams {
			cmd.Printf("  %-30s %d\n", wc.Word, wc.Count)
		}
	}
	return nil
}
