package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cargocore/internal/core"
)

var wasteCmd = &cobra.Command{
	Use:   "waste",
	Short: "Manage waste classification and return planning",
}

var wasteCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Sweep for newly-expired or newly-depleted items",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		newlyWasted, err := sess.svc.CheckForWaste(backgroundCtx)
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("%d item(s) newly classified as waste", len(newlyWasted))
		for _, item := range newlyWasted {
			printStatus(item.ID, "%s", item.WasteReason)
		}
		return nil
	},
}

var wasteMarkCmd = &cobra.Command{
	Use:   "mark",
	Short: "Manually condemn an item as waste",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		reason, _ := cmd.Flags().GetString("reason")
		if itemID == "" {
			return fmt.Errorf("--item is required")
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		item, err := sess.svc.MarkWaste(backgroundCtx, itemID, reason)
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("marked item %s as waste (%s)", item.ID, item.WasteReason)
		return nil
	},
}

var wasteReturnCmd = &cobra.Command{
	Use:   "prepare-return",
	Short: "Select which waste items to send home",
	RunE: func(cmd *cobra.Command, args []string) error {
		hasMax := cmd.Flags().Changed("max-mass")
		maxMass, _ := cmd.Flags().GetFloat64("max-mass")

		sess, err := openSession()
		if err != nil {
			return err
		}
		var massCap *float64
		if hasMax {
			massCap = &maxMass
		}
		plan, err := sess.svc.PrepareWasteReturn(backgroundCtx, massCap)
		if err != nil {
			return err
		}
		printSuccess("selected %d item(s), total mass %s", plan.Count, core.FormatMass(plan.TotalMass))
		if plan.Advisory != "" {
			printWarning("%s", plan.Advisory)
		}
		for _, item := range plan.Selected {
			printStatus(item.ID, "%s", core.FormatMass(item.Mass))
		}
		return nil
	},
}

var wasteMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Stage a waste item in a return container",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		containerID, _ := cmd.Flags().GetString("container")
		if itemID == "" || containerID == "" {
			return fmt.Errorf("--item and --container are required")
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		item, err := sess.svc.MoveWasteToContainer(backgroundCtx, itemID, containerID)
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("staged item %s in container %s", item.ID, containerID)
		return nil
	},
}

func init() {
	wasteMarkCmd.Flags().String("item", "", "item id")
	wasteMarkCmd.Flags().String("reason", "", "waste reason")
	wasteReturnCmd.Flags().Float64("max-mass", 0, "maximum total mass in kg")
	wasteMoveCmd.Flags().String("item", "", "item id")
	wasteMoveCmd.Flags().String("container", "", "destination container id")

	wasteCmd.AddCommand(wasteCheckCmd)
	wasteCmd.AddCommand(wasteMarkCmd)
	wasteCmd.AddCommand(wasteReturnCmd)
	wasteCmd.AddCommand(wasteMoveCmd)
}
