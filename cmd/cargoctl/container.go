package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cargocore/pkg/domain"
)

var containerCmd = &cobra.Command{
	Use:   "container",
	Short: "Manage containers",
}

var containerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a container within a zone",
	RunE: func(cmd *cobra.Command, args []string) error {
		zoneID, _ := cmd.Flags().GetString("zone")
		width, _ := cmd.Flags().GetFloat64("width")
		depth, _ := cmd.Flags().GetFloat64("depth")
		height, _ := cmd.Flags().GetFloat64("height")
		if zoneID == "" {
			return fmt.Errorf("--zone is required")
		}
		if width <= 0 || depth <= 0 || height <= 0 {
			return fmt.Errorf("--width, --depth, and --height must be positive")
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		container, err := sess.svc.CreateContainer(backgroundCtx, domain.Container{
			ZoneID: zoneID, Width: width, Depth: depth, Height: height,
		})
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("created container %s", container.ID)
		printStatus("dimensions", "%.1f x %.1f x %.1f cm", container.Width, container.Depth, container.Height)
		return nil
	},
}

func init() {
	containerCreateCmd.Flags().String("zone", "", "zone id")
	containerCreateCmd.Flags().Float64("width", 0, "width in cm")
	containerCreateCmd.Flags().Float64("depth", 0, "depth in cm")
	containerCreateCmd.Flags().Float64("height", 0, "height in cm")
	containerCmd.AddCommand(containerCreateCmd)
}
