package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cargocore/internal/core"
)

var timeCmd = &cobra.Command{
	Use:   "advance-time",
	Short: "Advance the simulated clock, applying uses and sweeping for waste",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		usesSpecs, _ := cmd.Flags().GetStringSlice("use")

		var uses []core.AdvanceTimeUsage
		for _, spec := range usesSpecs {
			parts := strings.SplitN(spec, "=", 2)
			if len(parts) != 2 {
				continue
			}
			count, err := strconv.Atoi(parts[1])
			if err != nil {
				return err
			}
			uses = append(uses, core.AdvanceTimeUsage{ItemID: parts[0], Uses: count})
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		summary, err := sess.svc.AdvanceTime(backgroundCtx, days, uses)
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		printSuccess("advanced %d day(s); applied %d use(s); %d item(s) newly wasted", days, summary.UsesApplied, len(summary.NewlyWasted))
		for _, item := range summary.NewlyWasted {
			printStatus(item.ID, "%s", item.WasteReason)
		}
		return nil
	},
}

func init() {
	timeCmd.Flags().Int("days", 0, "number of days to advance")
	timeCmd.Flags().StringSlice("use", nil, "itemId=count pairs to apply as usage")
}
