package instruction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsafeValue is returned by RejectUnsafe for values containing shell
// metacharacters.
var ErrUnsafeValue = errors.New("value contains shell metacharacters")

// Quoter transforms one caller value before it is spliced into a command.
type Quoter func(string) (string, error)

// Verbatim interpolates values as-is. It is the default and keeps commands
// byte-identical to what the remote executor has always received.
func Verbatim(s string) (string, error) {
	return s, nil
}

// shellUnsafe lists characters that change meaning inside a shell word.
const shellUnsafe = " \t\n\"'`$\\;&|<>()*?[]{}!#~"

// ShellQuote wraps values containing metacharacters in single quotes.
// Plain paths and numbers pass through untouched.
func ShellQuote(s string) (string, error) {
	if s == "" {
		return "''", nil
	}
	if !strings.ContainsAny(s, shellUnsafe) {
		return s, nil
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'", nil
}

// RejectUnsafe refuses values containing metacharacters.
func RejectUnsafe(s string) (string, error) {
	if i := strings.IndexAny(s, shellUnsafe); i >= 0 {
		return "", fmt.Errorf("%w: %q (offending %q)", ErrUnsafeValue, s, s[i])
	}
	return s, nil
}

// doubleQuoted escapes the characters that stay special inside a
// double-quoted shell string.
var doubleQuoted = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// interpolator applies a Quoter to each value and remembers the first error,
// so command templates read as a single expression.
type interpolator struct {
	quote Quoter
	err   error

	// nested is set when values land inside an outer "..." that another
	// shell parses first. A value the Quoter rewrote is then escaped again
	// so the inner shell receives the Quoter's output unchanged.
	nested bool
}

func newInterpolator(q Quoter) *interpolator {
	if q == nil {
		q = Verbatim
	}
	return &interpolator{quote: q}
}

// inDoubleQuotes marks ip as rendering inside a bash -c "..." wrapper.
func (ip *interpolator) inDoubleQuotes() *interpolator {
	ip.nested = true
	return ip
}

// str quotes a string value.
func (ip *interpolator) str(v string) string {
	out, err := ip.quote(v)
	if err != nil {
		if ip.err == nil {
			ip.err = err
		}
		return out
	}
	if ip.nested && out != v {
		out = doubleQuoted.Replace(out)
	}
	return out
}

// num quotes an integer value.
func (ip *interpolator) num(v int) string {
	return ip.str(strconv.Itoa(v))
}
