package cmd

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [identifier]",
	Short: "Show the mean sentiment of a conversation",
	Long: `Score every message in a conversation with the built-in valence
lexicon and print the arithmetic mean. Higher is more positive. A
message with no text counts as neutral (score zero).`,
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

		mean, err := newAnalyzer(db).MeanSentiment(cmd.Context(), id)
		if err != nil {
			return eris.Wrap(err, "mean sentiment")
		}

		if math.IsNaN(mean) {
			fmt.Println("No messages found.")
			return nil
		}
		fmt.Printf("%s: %+.3f\n", id, mean)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sentimentCmd)
}
