package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Place an item, using a suggested position if none is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		containerID, _ := cmd.Flags().GetString("container")
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		z, _ := cmd.Flags().GetFloat64("z")
		rotated, _ := cmd.Flags().GetBool("rotated")
		actor, _ := cmd.Flags().GetString("actor")
		auto, _ := cmd.Flags().GetBool("auto")

		if itemID == "" {
			return fmt.Errorf("--item is required")
		}

		sess, err := openSession()
		if err != nil {
			return err
		}

		if auto {
			placement, ok, err := sess.svc.SuggestPlacement(backgroundCtx, itemID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no fit found for item %s", itemID)
			}
			containerID, x, y, z, rotated = placement.ContainerID, placement.X, placement.Y, placement.Z, placement.Rotated
			printStatus("suggested", "container=%s (%.1f,%.1f,%.1f) rotated=%v score=%.1f", containerID, x, y, z, rotated, placement.Score)
		}

		if containerID == "" {
			return fmt.Errorf("--container is required unless --auto is set")
		}

		item, err := sess.svc.PlaceItem(backgroundCtx, itemID, containerID, x, y, z, rotated, actor)
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("placed item %s in container %s", item.ID, containerID)
		return nil
	},
}

func init() {
	placeCmd.Flags().String("item", "", "item id")
	placeCmd.Flags().String("container", "", "container id")
	placeCmd.Flags().Float64("x", 0, "x coordinate")
	placeCmd.Flags().Float64("y", 0, "y coordinate")
	placeCmd.Flags().Float64("z", 0, "z coordinate")
	placeCmd.Flags().Bool("rotated", false, "place with width/depth swapped")
	placeCmd.Flags().String("actor", "", "actor performing the placement")
	placeCmd.Flags().Bool("auto", false, "use the best suggested placement instead of explicit coordinates")
}
