package command

// root.go defines the root command and the flags shared by every subcommand.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var apiURL string // base URL of a running agent's local API

var rootCmd = &cobra.Command{
	Use:   "villahub",
	Short: "villahub - villa and cargo data agent with realtime sync",
	Long: `villahub keeps a local villa/contact/cargo store in sync with a remote server
over a websocket connection.

Start the agent with "villahub run", then inspect it with "villahub status",
"villahub watch" and "villahub endpoint".`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultAPI := "http://127.0.0.1:8090"
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		defaultAPI = "http://" + addr
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "local API URL of the running agent")
}
