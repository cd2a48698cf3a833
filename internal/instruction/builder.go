// Package instruction builds the JSON instructions understood by the remote
// container executor.
//
// Each command family (DiffDock, gnina) has a parameter struct with a
// Default constructor and a single template function that renders the shell
// command. Values are interpolated without validation; a bad path produces a
// command that fails on the executor, not here. Callers that forward
// untrusted input can pass ShellQuote or RejectUnsafe to Build.
package instruction

// Params is implemented by every builder parameter set.
type Params interface {
	// Builder returns the registered name of the builder ("diffdock", "vina", ...).
	Builder() string

	render(q Quoter) (Instruction, error)
}

// Build renders p into an Instruction, passing each interpolated value
// through q. A nil q means Verbatim. Only a rejecting Quoter can make Build
// fail.
func Build(p Params, q Quoter) (Instruction, error) {
	return p.render(q)
}

// mustBuild renders with Verbatim, which never fails.
func mustBuild(p Params) Instruction {
	inst, err := p.render(Verbatim)
	if err != nil {
		panic(err)
	}
	return inst
}

// Names lists the registered builders in display order.
func Names() []string {
	return []string{"diffdock", "diffdock-local", "vina", "gnina"}
}

// Default returns the default parameters for a named builder.
func Default(name string) (Params, bool) {
	switch name {
	case "diffdock":
		return DefaultDiffDockParams(), true
	case "diffdock-local":
		return DefaultDiffDockLocalParams(), true
	case "vina":
		return DefaultVinaParams(), true
	case "gnina":
		return DefaultGninaParams(), true
	}
	return nil, false
}
