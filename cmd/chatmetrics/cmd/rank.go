package cmd

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank all conversations by mean sentiment",
	Long: `Compute the mean sentiment of every conversation in the store and
print them most-positive first. Conversations with no messages sort
last. Any store error aborts the whole ranking.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openAccessor()
		if err != nil {
			return err
		}
		defer db.Close()

		scores, err := newAnalyzer(db).ConversationSentimentRanking(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "sentiment ranking")
		}

		if len(scores) == 0 {
			fmt.Println("No conversations found.")
			return nil
		}
		for _, s := range scores {
			if math.IsNaN(s.Score) {
				fmt.Printf("%8s  %s\n", "-", s.Identifier)
				continue
			}
			fmt.Printf("%+8.3f  %s\n", s.Score, s.Identifier)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
}
