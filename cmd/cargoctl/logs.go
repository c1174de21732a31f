package main

import (
	"time"

	"github.com/spf13/cobra"

	"cargocore/internal/core"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the append-only usage log, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		itemID, _ := cmd.Flags().GetString("item")

		sess, err := openSession()
		if err != nil {
			return err
		}
		entries := sess.svc.Store().ListLogs()

		now := time.Now().UTC()
		printed := 0
		for i := len(entries) - 1; i >= 0 && printed < limit; i-- {
			entry := entries[i]
			if itemID != "" && entry.ItemID != itemID {
				continue
			}
			printStatus(string(entry.Action), "%s", core.FormatLogEntry(entry, now))
			printed++
		}
		if printed == 0 {
			printWarning("no log entries match")
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().Int("limit", 20, "maximum number of entries to show")
	logsCmd.Flags().String("item", "", "restrict to a single item id")
}
