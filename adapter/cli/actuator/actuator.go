// Package actuator implements the `list-actuators` and `default-state`
// subcommands of §5.
package actuator

import (
	"fmt"

	"github.com/corax26/servoscheduler/adapter/cli"
	"github.com/spf13/cobra"
)

// ListCmd implements `list-actuators`.
var ListCmd = &cobra.Command{
	Use:   "list-actuators",
	Short: "List every registered actuator",
	RunE: func(cmd *cobra.Command, args []string) error {
		var infos []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}
		if err := cli.GetClient().Get("/v1/actuators", &infos); err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Printf("%d\t%s\n", info.ID, info.Name)
		}
		return nil
	},
}

// DefaultStateCmd implements `default-state get|set`.
var DefaultStateCmd = &cobra.Command{
	Use:   "default-state",
	Short: "Get or set an actuator's default state",
}

type stateDTO struct {
	Bool  *bool    `json:"bool,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

func init() {
	DefaultStateCmd.AddCommand(defaultStateGetCmd)
	DefaultStateCmd.AddCommand(defaultStateSetCmd)
}

var defaultStateGetCmd = &cobra.Command{
	Use:   "get <actuator-id>",
	Short: "Print an actuator's default state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dto stateDTO
		if err := cli.GetClient().Get(fmt.Sprintf("/v1/actuators/%s/default-state", args[0]), &dto); err != nil {
			return err
		}
		fmt.Println(formatState(dto))
		return nil
	},
}

var (
	setBool    bool
	setValue   float64
	setIsFloat bool
)

var defaultStateSetCmd = &cobra.Command{
	Use:   "set <actuator-id>",
	Short: "Assign an actuator's default state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dto := stateDTO{}
		if setIsFloat {
			dto.Value = &setValue
		} else {
			dto.Bool = &setBool
		}
		return cli.GetClient().Put(fmt.Sprintf("/v1/actuators/%s/default-state", args[0]), dto)
	},
}

func init() {
	defaultStateSetCmd.Flags().BoolVar(&setBool, "bool", false, "Toggle state to assign")
	defaultStateSetCmd.Flags().Float64Var(&setValue, "value", 0, "Float state to assign")
	defaultStateSetCmd.Flags().BoolVar(&setIsFloat, "float", false, "assign --value instead of --bool")
}

func formatState(dto stateDTO) string {
	if dto.Bool != nil {
		return fmt.Sprintf("%v", *dto.Bool)
	}
	if dto.Value != nil {
		return fmt.Sprintf("%v", *dto.Value)
	}
	return "<unknown>"
}
