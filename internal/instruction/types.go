package instruction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// Container images used by the shipped builders.
const (
	DiffDockImage = "ghcr.io/labdao/diffdock:main"
	GninaImage    = "gnina/gnina:latest"
)

// Instruction tells the remote executor which container to start and which
// shell command to run inside it.
type Instruction struct {
	// ContainerID is the image reference (e.g., "gnina/gnina:latest")
	ContainerID string `json:"container_id" yaml:"container_id"`

	// DebugLogs asks the executor to stream verbose logs back
	DebugLogs bool `json:"debug_logs" yaml:"debug_logs"`

	// ShortArgs is always empty from the shipped builders; the executor
	// still expects the key to be present.
	ShortArgs map[string]any `json:"short_args" yaml:"short_args"`

	// LongArgs holds runtime flags such as GPU selection ("gpus": "all")
	LongArgs map[string]any `json:"long_args" yaml:"long_args"`

	// Cmd is one complete shell command
	Cmd string `json:"cmd" yaml:"cmd"`
}

// normalized returns a copy with nil arg maps replaced by empty ones so they
// serialize as {} instead of null.
func (i Instruction) normalized() Instruction {
	if i.ShortArgs == nil {
		i.ShortArgs = map[string]any{}
	}
	if i.LongArgs == nil {
		i.LongArgs = map[string]any{}
	}
	return i
}

// Marshal encodes the instruction as a single JSON document without a
// trailing newline, laid out the way the executor has always received it:
// ", " and ": " separators, non-ASCII escaped as \uXXXX. HTML escaping is
// disabled so "&&" survives verbatim.
func (i Instruction) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(i.normalized()); err != nil {
		return nil, fmt.Errorf("encode instruction: %w", err)
	}
	return spaced(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// spaced rewrites compact encoder output, leaving string contents alone
// apart from escaping non-ASCII runes.
func spaced(compact []byte) []byte {
	out := make([]byte, 0, len(compact)+64)
	inString, escaped := false, false
	for _, r := range string(compact) {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			case r > 0xFFFF:
				r1, r2 := utf16.EncodeRune(r)
				out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
				continue
			case r >= utf8.RuneSelf:
				out = fmt.Appendf(out, `\u%04x`, r)
				continue
			}
			out = utf8.AppendRune(out, r)
			continue
		}
		switch r {
		case '"':
			inString = true
		case ',', ':':
			out = append(out, byte(r), ' ')
			continue
		}
		out = utf8.AppendRune(out, r)
	}
	return out
}

// JSON returns the encoded document as a string. Arg maps only ever hold
// strings and ints, so encoding cannot fail for builder output.
func (i Instruction) JSON() string {
	data, err := i.Marshal()
	if err != nil {
		panic(err)
	}
	return string(data)
}
