package cmd

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var wordsLimit int

var wordsCmd = &cobra.Command{
	Use:   "words [identifier]",
	Short: "Show top word frequencies for a conversation",
	Long: `Count word occurrences across a conversation's messages, punctuation
stripped and case folded. Messages flagged as attachments are excluded.

Examples:
  chatmetrics words friend@example.com
  chatmetrics words friend@example.com --limit 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := identifierArg(args)
		if err != nil {
			return err
		}

		db, err := openAccessor()
		if err != nil {
			return err
		}
		defer db.Close()

		freqs, err := newAnalyzer(db).WordFrequencies(cmd.Context(), id)
		if err != nil {
			return eris.Wrap(err, "word frequencies")
		}

		if len(freqs) == 0 {
			fmt.Println("No messages found.")
			return nil
		}
		if wordsLimit > 0 && len(freqs) > wordsLimit {
			freqs = freqs[:wordsLimit]
		}
		for _, f := range freqs {
			fmt.Printf("%6d  %s\n", f.Count, f.Word)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wordsCmd)
	wordsCmd.Flags().IntVar(&wordsLimit, "limit", 25, "maximum words to show (0 = all)")
}
