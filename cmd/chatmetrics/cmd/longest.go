package cmd

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var longestLimit int

var longestCmd = &cobra.Command{
	Use:   "longest [identifier]",
	Short: "Show the longest messages in a conversation",
	Long: `Rank a conversation's messages by text length, longest first.
Messages flagged as attachments are excluded; a message with no text
ranks with length zero.

Examples:
  chatmetrics longest friend@example.com
  chatmetrics longest friend@example.com --limit 5`,
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

		ranked, err := newAnalyzer(db).LongestMessages(cmd.Context(), id)
		if err != nil {
			return eris.Wrap(err, "longest messages")
		}

		if len(ranked) == 0 {
			fmt.Println("No messages found.")
			return nil
		}
		if longestLimit > 0 && len(ranked) > longestLimit {
			ranked = ranked[:longestLimit]
		}
		for _, m := range ranked {
			direction := "recv"
			if m.FromMe {
				direction = "sent"
			}
			fmt.Printf("%5d  %s  %s\n", len(m.Text), direction, m.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(longestCmd)
	longestCmd.Flags().IntVar(&longestLimit, "limit", 10, "maximum messages to show (0 = all)")
}
