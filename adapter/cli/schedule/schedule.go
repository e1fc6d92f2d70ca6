// Package schedule implements the `schedule` subcommand of §5: printing
// an actuator's day timeline (§4.3 enumerate).
package schedule

import (
	"fmt"

	"github.com/corax26/servoscheduler/adapter/cli"
	"github.com/spf13/cobra"
)

var dateFlag string

// Cmd implements `schedule <actuator-id> [--date DD/MM/YYYY]`.
var Cmd = &cobra.Command{
	Use:   "schedule <actuator-id>",
	Short: "Print an actuator's time slot timeline for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("/v1/actuators/%s/schedule", args[0])
		if dateFlag != "" {
			path += "?date=" + dateFlag
		}
		type clockTime struct {
			Hour   int `json:"Hour"`
			Minute int `json:"Minute"`
		}
		var entries []struct {
			SlotID   int `json:"SlotID"`
			Interval struct {
				Start clockTime `json:"Start"`
				End   clockTime `json:"End"`
			} `json:"Interval"`
		}
		if err := cli.GetClient().Get(path, &entries); err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("slot %d: %02d:%02d-%02d:%02d\n", e.SlotID,
				e.Interval.Start.Hour, e.Interval.Start.Minute,
				e.Interval.End.Hour, e.Interval.End.Minute)
		}
		return nil
	},
}

func init() {
	Cmd.Flags().StringVar(&dateFlag, "date", "", "date to enumerate, DD/MM[/YYYY] (defaults to today)")
}
