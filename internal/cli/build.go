package cli

import (
	"fmt"

	"github.com/labdao/ganglia/internal/instruction"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// NewBuildCmd creates the 'build' command, which prints an instruction
// without sending it
func NewBuildCmd(a *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "build <builder>",
		Short: "Print an instruction document",
		Long: `Build an instruction and print it to stdout.

JSON output is exactly what 'run' sends to the executor. YAML output is
for reading only.`,
	}

	cmd.PersistentFlags().StringVarP(&format, "format", "o", formatJSON, "Output format: json or yaml")

	cmd.AddCommand(newBuilderCmds(func(c *cobra.Command, p instruction.Params) error {
		return a.printInstruction(c, p, format)
	})...)

	return cmd
}

// printInstruction builds p and writes it to stdout in the given format
func (a *App) printInstruction(cmd *cobra.Command, p instruction.Params, format string) error {
	inst, err := a.buildInstruction(cmd, p)
	if err != nil {
		return err
	}

	switch format {
	case formatJSON:
		data, err := inst.Marshal()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case formatYAML:
		data, err := yaml.Marshal(inst)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		return fmt.Errorf("unknown format %q (must be json or yaml)", format)
	}
	return nil
}
