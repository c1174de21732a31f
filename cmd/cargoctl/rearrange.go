package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rearrangeCmd = &cobra.Command{
	Use:   "rearrange",
	Short: "Plan rearrangement of a container to fit new cargo",
	RunE: func(cmd *cobra.Command, args []string) error {
		containerID, _ := cmd.Flags().GetString("container")
		newItems, _ := cmd.Flags().GetStringSlice("new-items")
		if containerID == "" {
			return fmt.Errorf("--container is required")
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		plan, err := sess.svc.SuggestRearrangement(backgroundCtx, containerID, newItems)
		if err != nil {
			return err
		}

		if plan.SpaceAvailable {
			printSuccess("container %s has room; no eviction needed", containerID)
			return nil
		}

		printWarning("container %s needs to evict %d item(s)", containerID, len(plan.ItemsToMove))
		for _, item := range plan.ItemsToMove {
			if placement, ok := plan.AlternativePlacements[item.ID]; ok {
				printStatus(item.ID, "-> container=%s (%.1f,%.1f,%.1f)", placement.ContainerID, placement.X, placement.Y, placement.Z)
			} else {
				printStatus(item.ID, "-> no alternate home found")
			}
		}
		return nil
	},
}

func init() {
	rearrangeCmd.Flags().String("container", "", "container id")
	rearrangeCmd.Flags().StringSlice("new-items", nil, "new item ids to make room for")
}
