// Command servoctl is the CLI collaborator of §5: it talks to a running
// servoscheduler process over HTTP.
package main

import (
	"github.com/corax26/servoscheduler/adapter/cli"
	"github.com/corax26/servoscheduler/adapter/cli/actuator"
	"github.com/corax26/servoscheduler/adapter/cli/schedule"
	"github.com/corax26/servoscheduler/adapter/cli/timeslot"
)

func main() {
	cli.AddCommand(actuator.ListCmd)
	cli.AddCommand(actuator.DefaultStateCmd)
	cli.AddCommand(timeslot.Cmd)
	cli.AddCommand(schedule.Cmd)
	cli.Execute()
}
