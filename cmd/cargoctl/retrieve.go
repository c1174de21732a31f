package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve an item by id, or the best match by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		name, _ := cmd.Flags().GetString("name")
		actor, _ := cmd.Flags().GetString("actor")
		use, _ := cmd.Flags().GetBool("use")

		sess, err := openSession()
		if err != nil {
			return err
		}

		if itemID == "" {
			if name == "" {
				return fmt.Errorf("one of --item or --name is required")
			}
			result, ok, err := sess.svc.SuggestRetrieval(backgroundCtx, name)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no matching item found for %q", name)
			}
			itemID = result.Item.ID
			printStatus("matched", "%s (steps=%d)", result.Item.Name, result.Retrieval.Steps)
		}

		item, err := sess.svc.RetrieveItem(backgroundCtx, itemID, actor, use)
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("retrieved item %s", item.ID)
		if item.IsWaste {
			printWarning("item %s is now waste (%s)", item.ID, item.WasteReason)
		}
		return nil
	},
}

func init() {
	retrieveCmd.Flags().String("item", "", "item id")
	retrieveCmd.Flags().String("name", "", "name substring to search for")
	retrieveCmd.Flags().String("actor", "", "actor performing the retrieval")
	retrieveCmd.Flags().Bool("use", false, "decrement the item's usage budget")
}
