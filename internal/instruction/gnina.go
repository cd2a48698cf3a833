package instruction

const defaultExhaustiveness = 64

// GninaParams configures one gnina scoring run. Vina and Gnina share the
// same tool and template and differ only in their defaults.
type GninaParams struct {
	DebugLogs bool

	// Protein and Ligand are relative to /inputs
	Protein string
	Ligand  string

	// Output is the scored SDF path relative to /outputs
	Output string

	// CNNScoring is passed to --cnn_scoring ("none", "rescore", ...)
	CNNScoring string

	// Modifier is appended as a bare --flag (e.g., "score_only")
	Modifier string

	// Exhaustiveness is the search effort; zero means defaultExhaustiveness
	Exhaustiveness int

	name string
}

// DefaultVinaParams returns the score-only profile: classic Vina scoring
// with the CNN disabled.
func DefaultVinaParams() GninaParams {
	return GninaParams{
		DebugLogs:      true,
		Protein:        "1a30/1a30_protein.pdb",
		Ligand:         "1a30/1a30_ligand.sdf",
		Output:         "1a30/1a30_scored_vina.sdf.gz",
		CNNScoring:     "none",
		Modifier:       "score_only",
		Exhaustiveness: defaultExhaustiveness,
		name:           "vina",
	}
}

// DefaultGninaParams returns the rescoring profile: Vina poses rescored by
// the gnina CNN.
func DefaultGninaParams() GninaParams {
	p := DefaultVinaParams()
	p.Output = "1a30/1a30_scored_gnina.sdf.gz"
	p.CNNScoring = "rescore"
	p.name = "gnina"
	return p
}

// Builder implements Params.
func (p GninaParams) Builder() string {
	if p.name == "" {
		return "gnina"
	}
	return p.name
}

func (p GninaParams) render(q Quoter) (Instruction, error) {
	ip := newInterpolator(q)
	cmd := gninaCommand(ip, p)
	if ip.err != nil {
		return Instruction{}, ip.err
	}
	return Instruction{
		ContainerID: GninaImage,
		DebugLogs:   p.DebugLogs,
		ShortArgs:   map[string]any{},
		LongArgs:    map[string]any{"gpus": 0},
		Cmd:         cmd,
	}, nil
}

// gninaCommand is the only place the gnina command line is assembled.
func gninaCommand(ip *interpolator, p GninaParams) string {
	exhaustiveness := p.Exhaustiveness
	if exhaustiveness == 0 {
		exhaustiveness = defaultExhaustiveness
	}
	protein := "/inputs/" + ip.str(p.Protein)
	return "gnina" +
		" -r " + protein +
		" -l /inputs/" + ip.str(p.Ligand) +
		" -o /outputs/" + ip.str(p.Output) +
		" --autobox_ligand " + protein +
		" --cnn_scoring " + ip.str(p.CNNScoring) +
		" --exhaustiveness " + ip.num(exhaustiveness) +
		" --" + ip.str(p.Modifier)
}

// Vina builds a score-only instruction.
func Vina(p GninaParams) Instruction {
	p.name = "vina"
	return mustBuild(p)
}

// Gnina builds a CNN rescoring instruction.
func Gnina(p GninaParams) Instruction {
	p.name = "gnina"
	return mustBuild(p)
}
