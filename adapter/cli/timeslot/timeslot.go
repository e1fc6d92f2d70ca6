// Package timeslot implements the `timeslot` subcommand group of §5:
// list, add, remove, set-time, set-state, enable/disable and the
// override variants, all against the HTTP facade.
package timeslot

import (
	"fmt"

	"github.com/corax26/servoscheduler/adapter/cli"
	"github.com/spf13/cobra"
)

// Cmd is the `timeslot` command group.
var Cmd = &cobra.Command{
	Use:   "timeslot",
	Short: "Manage an actuator's time slots",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(setTimeCmd)
	Cmd.AddCommand(setStateCmd)
	Cmd.AddCommand(enableCmd)
	Cmd.AddCommand(disableCmd)
	Cmd.AddCommand(addOverrideCmd)
	Cmd.AddCommand(removeOverrideCmd)
}

type stateDTO struct {
	Bool  *bool    `json:"bool,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

func stateFromFlags(isFloat bool, b bool, v float64) stateDTO {
	if isFloat {
		return stateDTO{Value: &v}
	}
	return stateDTO{Bool: &b}
}

var listCmd = &cobra.Command{
	Use:   "list <actuator-id>",
	Short: "List an actuator's time slots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var slots map[string]any
		if err := cli.GetClient().Get(fmt.Sprintf("/v1/actuators/%s/timeslots", args[0]), &slots); err != nil {
			return err
		}
		for id, slot := range slots {
			fmt.Printf("%s\t%v\n", id, slot)
		}
		return nil
	},
}

var (
	addStart, addEnd, addDateStart, addDateEnd, addDays string
	addBool                                             bool
	addValue                                            float64
	addIsFloat, addEnabled                              bool
)

var addCmd = &cobra.Command{
	Use:   "add <actuator-id>",
	Short: "Add a time slot (hh:mm-hh:mm window, MTWTFSS mask)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"period": map[string]string{
				"interval_start": addStart,
				"interval_end":   addEnd,
				"date_start":     addDateStart,
				"date_end":       addDateEnd,
				"days":           addDays,
			},
			"state":   stateFromFlags(addIsFloat, addBool, addValue),
			"enabled": addEnabled,
		}
		var out struct {
			SlotID int `json:"slot_id"`
		}
		if err := cli.GetClient().Post(fmt.Sprintf("/v1/actuators/%s/timeslots", args[0]), body, &out); err != nil {
			return err
		}
		fmt.Println(out.SlotID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addStart, "start", "", "interval start, hh:mm")
	addCmd.Flags().StringVar(&addEnd, "end", "", "interval end, hh:mm")
	addCmd.Flags().StringVar(&addDateStart, "date-start", "", "date range start, DD/MM[/YYYY]")
	addCmd.Flags().StringVar(&addDateEnd, "date-end", "", "date range end, DD/MM[/YYYY]")
	addCmd.Flags().StringVar(&addDays, "days", "MTWTFSS", "MTWTFSS/- weekday mask")
	addCmd.Flags().BoolVar(&addBool, "bool", false, "Toggle state while active")
	addCmd.Flags().Float64Var(&addValue, "value", 0, "Float state while active")
	addCmd.Flags().BoolVar(&addIsFloat, "float", false, "assign --value instead of --bool")
	addCmd.Flags().BoolVar(&addEnabled, "enabled", true, "enabled on creation")
}

var removeCmd = &cobra.Command{
	Use:   "remove <actuator-id> <slot-id>",
	Short: "Remove a time slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.GetClient().Delete(fmt.Sprintf("/v1/actuators/%s/timeslots/%s", args[0], args[1]))
	},
}

var (
	patchStart, patchEnd, patchDateStart, patchDateEnd, patchDays string
)

var setTimeCmd = &cobra.Command{
	Use:   "set-time <actuator-id> <slot-id>",
	Short: "Patch a time slot's period (only given fields change)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{
			"interval_start": patchStart,
			"interval_end":   patchEnd,
			"date_start":     patchDateStart,
			"date_end":       patchDateEnd,
			"days":           patchDays,
		}
		return cli.GetClient().Patch(fmt.Sprintf("/v1/actuators/%s/timeslots/%s/period", args[0], args[1]), body)
	},
}

func init() {
	setTimeCmd.Flags().StringVar(&patchStart, "start", "", "interval start, hh:mm")
	setTimeCmd.Flags().StringVar(&patchEnd, "end", "", "interval end, hh:mm")
	setTimeCmd.Flags().StringVar(&patchDateStart, "date-start", "", "date range start")
	setTimeCmd.Flags().StringVar(&patchDateEnd, "date-end", "", "date range end")
	setTimeCmd.Flags().StringVar(&patchDays, "days", "", "MTWTFSS/- weekday mask")
}

var (
	stateBool    bool
	stateValue   float64
	stateIsFloat bool
)

var setStateCmd = &cobra.Command{
	Use:   "set-state <actuator-id> <slot-id>",
	Short: "Assign the state a slot applies while active",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := stateFromFlags(stateIsFloat, stateBool, stateValue)
		return cli.GetClient().Put(fmt.Sprintf("/v1/actuators/%s/timeslots/%s/state", args[0], args[1]), body)
	},
}

func init() {
	setStateCmd.Flags().BoolVar(&stateBool, "bool", false, "Toggle state")
	setStateCmd.Flags().Float64Var(&stateValue, "value", 0, "Float state")
	setStateCmd.Flags().BoolVar(&stateIsFloat, "float", false, "assign --value instead of --bool")
}

var enableCmd = &cobra.Command{
	Use:   "enable <actuator-id> <slot-id>",
	Short: "Enable a time slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.GetClient().Put(fmt.Sprintf("/v1/actuators/%s/timeslots/%s/enabled", args[0], args[1]), map[string]bool{"enabled": true})
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <actuator-id> <slot-id>",
	Short: "Disable a time slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.GetClient().Put(fmt.Sprintf("/v1/actuators/%s/timeslots/%s/enabled", args[0], args[1]), map[string]bool{"enabled": false})
	},
}

var (
	overrideStart, overrideEnd, overrideDateStart, overrideDateEnd, overrideDays string
)

var addOverrideCmd = &cobra.Command{
	Use:   "add-override <actuator-id> <slot-id>",
	Short: "Add a date-scoped override to a time slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{
			"interval_start": overrideStart,
			"interval_end":   overrideEnd,
			"date_start":     overrideDateStart,
			"date_end":       overrideDateEnd,
			"days":           overrideDays,
		}
		var out struct {
			OverrideID int `json:"override_id"`
		}
		if err := cli.GetClient().Post(fmt.Sprintf("/v1/actuators/%s/timeslots/%s/overrides", args[0], args[1]), body, &out); err != nil {
			return err
		}
		fmt.Println(out.OverrideID)
		return nil
	},
}

func init() {
	addOverrideCmd.Flags().StringVar(&overrideStart, "start", "", "interval start, hh:mm")
	addOverrideCmd.Flags().StringVar(&overrideEnd, "end", "", "interval end, hh:mm")
	addOverrideCmd.Flags().StringVar(&overrideDateStart, "date-start", "", "date range start")
	addOverrideCmd.Flags().StringVar(&overrideDateEnd, "date-end", "", "date range end")
	addOverrideCmd.Flags().StringVar(&overrideDays, "days", "MTWTFSS", "MTWTFSS/- weekday mask")
}

var removeOverrideCmd = &cobra.Command{
	Use:   "remove-override <actuator-id> <slot-id> <override-id>",
	Short: "Remove an override from a time slot",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.GetClient().Delete(fmt.Sprintf("/v1/actuators/%s/timeslots/%s/overrides/%s", args[0], args[1], args[2]))
	},
}
