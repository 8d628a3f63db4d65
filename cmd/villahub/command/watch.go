package command

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"villahub/internal/microservices/http-api/dto"
	"villahub/internal/microservices/realtime"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream connection status and inbound changes",
	Long:  `Print every status change and every frame received from the sync server until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := newAPIClient(apiURL).Events()
		if err != nil {
			return err
		}
		defer body.Close()

		color.HiBlack("watching %s (Ctrl+C to stop)", apiURL)
		return readEvents(body, printEvent)
	},
}

// readEvents parses a server-sent event stream, calling handle once per
// dispatched event. Multi-line data fields are joined with newlines.
func readEvents(r io.Reader, handle func(event, data string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var event string
	var data []string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if len(data) > 0 {
				handle(event, strings.Join(data, "\n"))
			}
			event, data = "", nil
		case strings.HasPrefix(line, ":"):
			// comment
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	if len(data) > 0 {
		handle(event, strings.Join(data, "\n"))
	}
	return scanner.Err()
}

func printEvent(event, data string) {
	switch event {
	case "status":
		var status dto.StatusEventResponse
		if err := json.Unmarshal([]byte(data), &status); err != nil {
			fmt.Println(data)
			return
		}
		line := fmt.Sprintf("%s %s", status.At.Local().Format("15:04:05"), status.Text)
		switch status.Status {
		case realtime.StatusConnected.String():
			color.Green("%s", line)
		case realtime.StatusError.String():
			color.Red("%s", line)
		case realtime.StatusReconnecting.String():
			color.Yellow("%s", line)
		default:
			color.HiBlack("%s", line)
		}
	case "data":
		msg, err := realtime.Decode([]byte(data))
		if err != nil {
			color.Magenta("? %s (%v)", data, err)
			return
		}
		color.Cyan("← %s %s", msg.Type, data)
	default:
		fmt.Println(data)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
