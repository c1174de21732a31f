package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cargocore/pkg/domain"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage cargo items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new unplaced item",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		width, _ := cmd.Flags().GetFloat64("width")
		depth, _ := cmd.Flags().GetFloat64("depth")
		height, _ := cmd.Flags().GetFloat64("height")
		mass, _ := cmd.Flags().GetFloat64("mass")
		priority, _ := cmd.Flags().GetInt("priority")
		preferredZone, _ := cmd.Flags().GetString("zone")

		if width <= 0 || depth <= 0 || height <= 0 {
			return fmt.Errorf("--width, --depth, and --height must be positive")
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		item, err := sess.svc.AddItem(backgroundCtx, domain.Item{
			Name: name, Width: width, Depth: depth, Height: height,
			Mass: mass, Priority: priority, PreferredZoneID: preferredZone,
		})
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("added item %s", item.ID)
		printStatus("name", "%s", item.Name)
		return nil
	},
}

func init() {
	itemAddCmd.Flags().String("name", "", "item name")
	itemAddCmd.Flags().Float64("width", 0, "width in cm")
	itemAddCmd.Flags().Float64("depth", 0, "depth in cm")
	itemAddCmd.Flags().Float64("height", 0, "height in cm")
	itemAddCmd.Flags().Float64("mass", 0, "mass in kg")
	itemAddCmd.Flags().Int("priority", 50, "priority in [1,100]")
	itemAddCmd.Flags().String("zone", "", "preferred zone id")
	itemCmd.AddCommand(itemAddCmd)
}
