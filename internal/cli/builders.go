package cli

import (
	"fmt"

	"github.com/labdao/ganglia/internal/config"
	"github.com/labdao/ganglia/internal/instruction"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// builderDef exposes one instruction builder on the command line.
// bind registers the builder's flags, seeded with its defaults, and returns
// a getter for the parsed parameters.
type builderDef struct {
	name  string
	short string
	bind  func(fs *pflag.FlagSet) func() instruction.Params
}

// builderDefs is ordered like instruction.Names.
var builderDefs = []builderDef{
	{
		name:  "diffdock",
		short: "DiffDock pose prediction against /inputs and /outputs",
		bind:  bindDiffDock,
	},
	{
		name:  "diffdock-local",
		short: "DiffDock pose prediction with explicit working-directory paths",
		bind:  bindDiffDockLocal,
	},
	{
		name:  "vina",
		short: "gnina score-only run with CNN scoring disabled",
		bind: func(fs *pflag.FlagSet) func() instruction.Params {
			return bindGnina(fs, instruction.DefaultVinaParams())
		},
	},
	{
		name:  "gnina",
		short: "gnina CNN rescoring run",
		bind: func(fs *pflag.FlagSet) func() instruction.Params {
			return bindGnina(fs, instruction.DefaultGninaParams())
		},
	},
}

func bindDiffDock(fs *pflag.FlagSet) func() instruction.Params {
	p := instruction.DefaultDiffDockParams()
	fs.BoolVar(&p.DebugLogs, "debug-logs", p.DebugLogs, "Ask the executor for verbose logs")
	fs.StringVar(&p.Protein, "protein", p.Protein, "Protein file relative to /inputs")
	fs.StringVar(&p.Ligand, "ligand", p.Ligand, "Ligand file relative to /inputs")
	fs.StringVar(&p.Output, "output", p.Output, "Output directory relative to /outputs")
	bindDiffDockNumbers(fs, &p.ReprLayers, &p.InferenceSteps, &p.SamplesPerComplex, &p.BatchSize, &p.ActualSteps)
	return func() instruction.Params { return p }
}

func bindDiffDockLocal(fs *pflag.FlagSet) func() instruction.Params {
	p := instruction.DefaultDiffDockLocalParams()
	fs.BoolVar(&p.DebugLogs, "debug-logs", p.DebugLogs, "Ask the executor for verbose logs")
	fs.StringVar(&p.ProteinPath, "protein-path", p.ProteinPath, "Protein file")
	fs.StringVar(&p.FastaOutFile, "fasta-out-file", p.FastaOutFile, "FASTA file written for ESM")
	fs.StringVar(&p.Ligand, "ligand", p.Ligand, "Ligand file")
	fs.StringVar(&p.OutDir, "out-dir", p.OutDir, "Output directory")
	bindDiffDockNumbers(fs, &p.ReprLayers, &p.InferenceSteps, &p.SamplesPerComplex, &p.BatchSize, &p.ActualSteps)
	return func() instruction.Params { return p }
}

func bindDiffDockNumbers(fs *pflag.FlagSet, reprLayers, inferenceSteps, samples, batchSize, actualSteps *int) {
	fs.IntVar(reprLayers, "repr-layers", *reprLayers, "ESM representation layers")
	fs.IntVar(inferenceSteps, "inference-steps", *inferenceSteps, "Diffusion inference steps")
	fs.IntVar(samples, "samples-per-complex", *samples, "Poses sampled per complex")
	fs.IntVar(batchSize, "batch-size", *batchSize, "Inference batch size")
	fs.IntVar(actualSteps, "actual-steps", *actualSteps, "Denoising steps actually run")
}

func bindGnina(fs *pflag.FlagSet, p instruction.GninaParams) func() instruction.Params {
	fs.BoolVar(&p.DebugLogs, "debug-logs", p.DebugLogs, "Ask the executor for verbose logs")
	fs.StringVar(&p.Protein, "protein", p.Protein, "Receptor file relative to /inputs")
	fs.StringVar(&p.Ligand, "ligand", p.Ligand, "Ligand file relative to /inputs")
	fs.StringVar(&p.Output, "output", p.Output, "Scored output relative to /outputs")
	fs.StringVar(&p.CNNScoring, "cnn-scoring", p.CNNScoring, "gnina --cnn_scoring mode")
	fs.StringVar(&p.Modifier, "modifier", p.Modifier, "Bare gnina flag appended to the command")
	fs.IntVar(&p.Exhaustiveness, "exhaustiveness", p.Exhaustiveness, "gnina search exhaustiveness")
	return func() instruction.Params { return p }
}

// newBuilderCmds creates one subcommand per builder, each calling run with
// the parameters parsed from its flags.
func newBuilderCmds(run func(cmd *cobra.Command, p instruction.Params) error) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(builderDefs))
	for _, def := range builderDefs {
		var params func() instruction.Params
		cmd := &cobra.Command{
			Use:   def.name,
			Short: def.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, params())
			},
		}
		params = def.bind(cmd.Flags())
		cmds = append(cmds, cmd)
	}
	return cmds
}

// quoterFor maps a quote mode to an instruction.Quoter.
func quoterFor(mode config.QuoteMode) (instruction.Quoter, error) {
	switch mode {
	case config.QuoteNone, "":
		return instruction.Verbatim, nil
	case config.QuoteShell:
		return instruction.ShellQuote, nil
	case config.QuoteReject:
		return instruction.RejectUnsafe, nil
	}
	return nil, fmt.Errorf("unknown quote mode %q (must be none, shell or reject)", mode)
}

// buildInstruction renders p using the configured quoting. A debug_logs
// value from config replaces the builder default unless --debug-logs was
// given explicitly.
func (a *App) buildInstruction(cmd *cobra.Command, p instruction.Params) (instruction.Instruction, error) {
	mode := a.config.Quote
	if a.quote != "" {
		mode = config.QuoteMode(a.quote)
	}
	q, err := quoterFor(mode)
	if err != nil {
		return instruction.Instruction{}, err
	}

	inst, err := instruction.Build(p, q)
	if err != nil {
		return instruction.Instruction{}, fmt.Errorf("build %s: %w", p.Builder(), err)
	}

	if a.config.DebugLogs != nil {
		if f := cmd.Flags().Lookup("debug-logs"); f == nil || !f.Changed {
			inst.DebugLogs = *a.config.DebugLogs
		}
	}

	a.log.WithField("builder", p.Builder()).Debug("instruction built")
	return inst, nil
}
