// Package cli assembles the actuator scheduler's cobra command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/corax26/servoscheduler/adapter/cli/client"
	"github.com/spf13/cobra"
)

var activeClient *client.Client

// SetClient installs the HTTP client every subcommand calls through.
func SetClient(c *client.Client) {
	activeClient = c
}

// GetClient returns the active client.
func GetClient() *client.Client {
	return activeClient
}

// RootCmd is the CLI's entry point.
var RootCmd = &cobra.Command{
	Use:   "servoctl",
	Short: "Manage an actuator fleet's schedule",
	Long:  `servoctl talks to a running servoscheduler process over HTTP to inspect and edit actuator schedules.`,
}

var serverAddr string

func init() {
	RootCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://127.0.0.1:8090", "address of the servoscheduler HTTP facade")
	cobra.OnInitialize(func() {
		SetClient(client.New(serverAddr))
	})
}

// AddCommand registers a subcommand on the root.
func AddCommand(cmd *cobra.Command) {
	RootCmd.AddCommand(cmd)
}

// Execute runs the CLI, exiting 1 on failure (§5).
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
