package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cargocore/pkg/domain"
)

var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Manage zones",
}

var zoneCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a zone",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return fmt.Errorf("--name is required")
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		zone, err := sess.svc.CreateZone(backgroundCtx, domain.Zone{Name: name})
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("created zone %s", zone.ID)
		printStatus("name", "%s", zone.Name)
		return nil
	},
}

func init() {
	zoneCreateCmd.Flags().String("name", "", "zone name")
	zoneCmd.AddCommand(zoneCreateCmd)
}
