package instruction

import "strings"

// esmModel is the ESM2 checkpoint DiffDock embeds proteins with.
const esmModel = "esm2_t33_650M_UR50D"

// DiffDockParams configures the DiffDock pipeline against the executor's
// mounted /inputs and /outputs directories.
type DiffDockParams struct {
	DebugLogs bool

	// Protein and Ligand are relative to /inputs
	Protein string
	Ligand  string

	// Output is the directory under /outputs that receives all results
	Output string

	ReprLayers        int
	InferenceSteps    int
	SamplesPerComplex int
	BatchSize         int
	ActualSteps       int
}

// DefaultDiffDockParams returns the 6jap example complex.
func DefaultDiffDockParams() DiffDockParams {
	return DiffDockParams{
		DebugLogs:         true,
		Protein:           "6jap/6jap_protein_processed.pdb",
		Ligand:            "6jap/6jap_ligand.sdf",
		Output:            "6jap",
		ReprLayers:        33,
		InferenceSteps:    20,
		SamplesPerComplex: 40,
		BatchSize:         10,
		ActualSteps:       18,
	}
}

// Builder implements Params.
func (p DiffDockParams) Builder() string { return "diffdock" }

func (p DiffDockParams) render(q Quoter) (Instruction, error) {
	ip := newInterpolator(q).inDoubleQuotes()
	protein := "/inputs/" + ip.str(p.Protein)
	ligand := "/inputs/" + ip.str(p.Ligand)
	out := "/outputs/" + ip.str(p.Output)

	cmd := diffDockCommand(ip, diffDockPaths{
		setup:      []string{"mkdir -p " + out, "cp " + protein + " /outputs/" + ip.str(p.Protein)},
		protein:    protein,
		ligand:     ligand,
		fasta:      out + "/esm2_input.fasta",
		embeddings: out + "/esm2_output",
		outDir:     out,
	}, p.ReprLayers, p.InferenceSteps, p.SamplesPerComplex, p.BatchSize, p.ActualSteps)
	if ip.err != nil {
		return Instruction{}, ip.err
	}
	return diffDockInstruction(p.DebugLogs, cmd), nil
}

// DiffDock builds the mounted-volume DiffDock instruction.
func DiffDock(p DiffDockParams) Instruction {
	return mustBuild(p)
}

// DiffDockLocalParams configures DiffDock with explicit paths relative to
// the container's working directory.
type DiffDockLocalParams struct {
	DebugLogs bool

	ProteinPath  string
	FastaOutFile string
	Ligand       string
	OutDir       string

	ReprLayers        int
	InferenceSteps    int
	SamplesPerComplex int
	BatchSize         int
	ActualSteps       int
}

// DefaultDiffDockLocalParams returns the bundled test complex.
func DefaultDiffDockLocalParams() DiffDockLocalParams {
	return DiffDockLocalParams{
		ProteinPath:       "inputs/test.pdb",
		FastaOutFile:      "outputs/prepared_for_esm.fasta",
		Ligand:            "inputs/test.sdf",
		OutDir:            "outputs",
		ReprLayers:        33,
		InferenceSteps:    20,
		SamplesPerComplex: 40,
		BatchSize:         10,
		ActualSteps:       18,
	}
}

// Builder implements Params.
func (p DiffDockLocalParams) Builder() string { return "diffdock-local" }

func (p DiffDockLocalParams) render(q Quoter) (Instruction, error) {
	ip := newInterpolator(q).inDoubleQuotes()
	cmd := diffDockCommand(ip, diffDockPaths{
		protein:    ip.str(p.ProteinPath),
		ligand:     ip.str(p.Ligand),
		fasta:      ip.str(p.FastaOutFile),
		embeddings: "outputs/esm2_output",
		outDir:     ip.str(p.OutDir),
	}, p.ReprLayers, p.InferenceSteps, p.SamplesPerComplex, p.BatchSize, p.ActualSteps)
	if ip.err != nil {
		return Instruction{}, ip.err
	}
	return diffDockInstruction(p.DebugLogs, cmd), nil
}

// DiffDockLocal builds the working-directory DiffDock instruction.
func DiffDockLocal(p DiffDockLocalParams) Instruction {
	return mustBuild(p)
}

// diffDockPaths carries already-quoted paths into the template.
type diffDockPaths struct {
	setup      []string
	protein    string
	ligand     string
	fasta      string
	embeddings string
	outDir     string
}

// diffDockCommand is the only place the DiffDock command line is assembled.
// Stages are chained with && so inference never runs on missing embeddings.
func diffDockCommand(ip *interpolator, paths diffDockPaths, reprLayers, inferenceSteps, samples, batchSize, actualSteps int) string {
	stages := append([]string{}, paths.setup...)
	stages = append(stages,
		"python datasets/esm_embedding_preparation.py"+
			" --protein_path "+paths.protein+
			" --out_file "+paths.fasta,
		"HOME=esm/model_weights python esm/scripts/extract.py "+esmModel+
			" "+paths.fasta+
			" "+paths.embeddings+
			" --repr_layers "+ip.num(reprLayers)+
			" --include per_tok",
		"python -m inference"+
			" --protein_path "+paths.protein+
			" --ligand "+paths.ligand+
			" --out_dir "+paths.outDir+
			" --inference_steps "+ip.num(inferenceSteps)+
			" --samples_per_complex "+ip.num(samples)+
			" --batch_size "+ip.num(batchSize)+
			" --actual_steps "+ip.num(actualSteps)+
			" --esm_embeddings_path "+paths.embeddings+
			" --no_final_step_noise",
	)
	return `/bin/bash -c "` + strings.Join(stages, " && ") + `"`
}

func diffDockInstruction(debug bool, cmd string) Instruction {
	return Instruction{
		ContainerID: DiffDockImage,
		DebugLogs:   debug,
		ShortArgs:   map[string]any{},
		LongArgs:    map[string]any{"gpus": "all"},
		Cmd:         cmd,
	}
}
