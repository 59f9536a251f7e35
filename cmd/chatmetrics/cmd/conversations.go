package cmd

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "List all conversation identifiers",
	Long: `List every recipient identifier known to the Messages store, one per
line, in store order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openAccessor()
		if err != nil {
			return err
		}
		defer db.Close()

		ids, err := db.ListConversationIdentifiers(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "list conversations")
		}

		if len(ids) == 0 {
			fmt.Println("No conversations found.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(conversationsCmd)
}
