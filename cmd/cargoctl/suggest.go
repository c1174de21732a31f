package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Report planning suggestions without committing them",
}

var suggestPlacementCmd = &cobra.Command{
	Use:   "placement",
	Short: "Suggest a placement for one item",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		if itemID == "" {
			return fmt.Errorf("--item is required")
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		placement, ok, err := sess.svc.SuggestPlacement(backgroundCtx, itemID)
		if err != nil {
			return err
		}
		if !ok {
			printWarning("no fit found for item %s", itemID)
			return nil
		}
		printSuccess("suggested placement for %s", itemID)
		printStatus("container", "%s", placement.ContainerID)
		printStatus("position", "(%.1f, %.1f, %.1f) rotated=%v", placement.X, placement.Y, placement.Z, placement.Rotated)
		printStatus("score", "%.1f", placement.Score)
		return nil
	},
}

var suggestBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Suggest placements for several items, priority first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, _ := cmd.Flags().GetStringSlice("items")
		if len(ids) == 0 {
			return fmt.Errorf("--items is required (comma-separated item ids)")
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		placed, err := sess.svc.SuggestBatchPlacement(backgroundCtx, ids)
		if err != nil {
			return err
		}
		printSuccess("found placements for %d of %d items", len(placed), len(ids))
		for _, item := range placed {
			printStatus(item.ID, "container=%s (%.1f,%.1f,%.1f) rotated=%v", item.Placement.ContainerID, item.Placement.X, item.Placement.Y, item.Placement.Z, item.Placement.Rotated)
		}
		return nil
	},
}

var suggestRetrievalCmd = &cobra.Command{
	Use:   "retrieval",
	Short: "Find the best item matching a name query",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return fmt.Errorf("--name is required")
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		result, ok, err := sess.svc.SuggestRetrieval(backgroundCtx, name)
		if err != nil {
			return err
		}
		if !ok {
			printWarning("no matching item found for %q", name)
			return nil
		}
		printSuccess("best match: %s (%s)", result.Item.Name, result.Item.ID)
		printStatus("retrieval steps", "%d", result.Retrieval.Steps)
		for _, blocker := range result.Retrieval.Blockers {
			printStatus("blocker", "%s", blocker.ID)
		}
		return nil
	},
}

var suggestStepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Report the retrieval steps for a placed item",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		if itemID == "" {
			return fmt.Errorf("--item is required")
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		info, err := sess.svc.GetRetrievalSteps(backgroundCtx, itemID)
		if err != nil {
			return err
		}
		printSuccess("item %s requires %d steps", itemID, info.Steps)
		for _, blocker := range info.Blockers {
			printStatus("blocker", "%s", blocker.ID)
		}
		return nil
	},
}

func init() {
	suggestPlacementCmd.Flags().String("item", "", "item id")
	suggestBatchCmd.Flags().StringSlice("items", nil, "item ids to place")
	suggestRetrievalCmd.Flags().String("name", "", "name substring to search for")
	suggestStepsCmd.Flags().String("item", "", "item id")

	suggestCmd.AddCommand(suggestPlacementCmd)
	suggestCmd.AddCommand(suggestBatchCmd)
	suggestCmd.AddCommand(suggestRetrievalCmd)
	suggestCmd.AddCommand(suggestStepsCmd)
}
