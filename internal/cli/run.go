package cli

import (
	"github.com/labdao/ganglia/internal/instruction"
	"github.com/labdao/ganglia/internal/socket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the 'run' command, which builds an instruction and
// streams its execution from the remote executor
func NewRunCmd(a *App) *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "run <builder>",
		Short: "Build an instruction and send it to the executor",
		Long: `Build an instruction, send it to the executor over a websocket and
print everything the executor streams back until it closes the connection.

A stream that ends in a transport error is reported but does not make the
command fail; only connection and send errors do.`,
	}

	cmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Executor websocket URL (overrides config)")

	cmd.AddCommand(newBuilderCmds(func(c *cobra.Command, p instruction.Params) error {
		inst, err := a.buildInstruction(c, p)
		if err != nil {
			return err
		}
		payload, err := inst.Marshal()
		if err != nil {
			return err
		}
		return a.deliver(c, endpoint, payload)
	})...)

	return cmd
}

// deliver sends payload to the executor and prints the stream to stdout
func (a *App) deliver(cmd *cobra.Command, endpoint string, payload []byte) error {
	if endpoint == "" {
		endpoint = a.config.Endpoint
	}
	timeout, err := a.config.HandshakeTimeoutDuration()
	if err != nil {
		return err
	}

	client := socket.NewClient(endpoint,
		socket.WithHandshakeTimeout(timeout),
		socket.WithLogger(a.log),
	)

	out := cmd.OutOrStdout()
	sink := &socket.PrintSink{W: out, Style: statusStyler(out)}

	res, err := client.Deliver(cmd.Context(), payload, sink)
	if err != nil {
		return err
	}
	a.log.WithFields(log.Fields{
		"endpoint": endpoint,
		"outcome":  res.Outcome.String(),
	}).Debug("delivery finished")
	return nil
}
