package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewSendCmd creates the 'send' command for delivering a pre-built
// instruction document
// Args: file (optional, "-" or omitted reads stdin)
func NewSendCmd(a *App) *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "send [file]",
		Short: "Send an instruction document to the executor",
		Long: `Send an instruction document produced by 'build' (or by hand) to the
executor and print the streamed output.

The document is sent as-is after checking that it is valid JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			payload, err := readPayload(cmd.InOrStdin(), src)
			if err != nil {
				return err
			}
			return a.deliver(cmd, endpoint, payload)
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Executor websocket URL (overrides config)")

	return cmd
}

// readPayload loads an instruction document from a file or stdin
func readPayload(stdin io.Reader, src string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if src == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("read instruction: %w", err)
	}

	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, fmt.Errorf("instruction from %s is not valid JSON", src)
	}
	return data, nil
}
