package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"villahub/internal/microservices/http-api/service"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync connection status",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := newAPIClient(apiURL).Status()
		if err != nil {
			return err
		}
		printStatus(status)
		return nil
	},
}

var reconnectCmd = &cobra.Command{
	Use:   "reconnect",
	Short: "Connect now instead of waiting for the next retry",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := newAPIClient(apiURL).Reconnect()
		if err != nil {
			return err
		}
		printStatus(status)
		return nil
	},
}

func printStatus(status *service.SyncStatus) {
	state := color.RedString(status.State)
	if status.Connected {
		state = color.GreenString(status.State)
	}
	fmt.Printf("State:        %s\n", state)
	fmt.Printf("Endpoint:     %s\n", status.Endpoint)
	fmt.Printf("Reconnecting: %t\n", status.Reconnecting)
	if status.Pending > 0 {
		fmt.Printf("Pending:      %s\n", color.YellowString("%d frame(s) waiting", status.Pending))
	} else {
		fmt.Printf("Pending:      0\n")
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reconnectCmd)
}
