package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Autocomplete a query prefix",
	Long: `Completes the prefix from the indexed vocabulary: alphabetical
prefix matches first, then close fuzzy matches. Prefixes shorter than
two characters yield nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if autocompleteService == nil {
		return errors.New("autocomplete service not configured")
	}

	words, err := autocompleteService.Suggest(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}
	for _, w := range words {
		cmd.Println(w)
	}
	return nil
}
