package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	endpointHost string
	endpointPort int
)

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Show or change the sync server endpoint",
}

var endpointShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the endpoint the agent syncs with",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, err := newAPIClient(apiURL).Endpoint()
		if err != nil {
			return err
		}
		fmt.Printf("%s:%d\n", endpoint.Host, endpoint.Port)
		return nil
	},
}

var endpointSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save a new endpoint and reconnect to it",
	Example: `  villahub endpoint set --host 192.168.1.20 --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, err := newAPIClient(apiURL).SetEndpoint(endpointHost, endpointPort)
		if err != nil {
			return err
		}
		if endpoint.Connected {
			color.Green("✓ Connected to %s:%d", endpoint.Host, endpoint.Port)
		} else {
			color.Yellow("Saved %s:%d, not reachable yet; the agent keeps retrying", endpoint.Host, endpoint.Port)
		}
		return nil
	},
}

func init() {
	endpointSetCmd.Flags().StringVar(&endpointHost, "host", "", "sync server host")
	endpointSetCmd.Flags().IntVar(&endpointPort, "port", 8080, "sync server port")
	endpointSetCmd.MarkFlagRequired("host")

	endpointCmd.AddCommand(endpointShowCmd)
	endpointCmd.AddCommand(endpointSetCmd)
	rootCmd.AddCommand(endpointCmd)
}
