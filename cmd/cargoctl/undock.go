package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cargocore/internal/core"
)

var undockCmd = &cobra.Command{
	Use:   "undock",
	Short: "Undock a container, returning its staged waste",
	RunE: func(cmd *cobra.Command, args []string) error {
		containerID, _ := cmd.Flags().GetString("container")
		if containerID == "" {
			return fmt.Errorf("--container is required")
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		manifest, err := sess.svc.ProcessUndock(backgroundCtx, containerID)
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("undocked container %s: returned %d item(s), total mass %s", containerID, len(manifest.Items), core.FormatMass(manifest.TotalMass))
		return nil
	},
}

func init() {
	undockCmd.Flags().String("container", "", "container id")
}
