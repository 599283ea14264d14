package knowledge

import (
	"strings"

	"github.com/cg3io/prior/internal/args"
	"github.com/cg3io/prior/internal/branding"
)

// UsageError reports missing or invalid local input. Lines are printed as-is.
type UsageError struct {
	Lines []string
}

func (e *UsageError) Error() string {
	return strings.Join(e.Lines, "\n")
}

func usage(lines ...string) *UsageError {
	return &UsageError{Lines: lines}
}

// cmdLine prefixes a command with the CLI name, e.g. "prior get <entry-id>".
func cmdLine(rest string) string {
	return branding.CLIName() + " " + rest
}

// positional returns the i-th positional argument or a usage error.
func positional(p args.Parsed, i int, u *UsageError) (string, error) {
	v := p.Arg(i)
	if v == "" {
		return "", u
	}
	return v, nil
}

// EntryID validates the <entry-id> argument of get and retract.
func EntryID(p args.Parsed, command string) (string, error) {
	return positional(p, 0, usage("Usage: "+cmdLine(command+" <entry-id>")))
}

// ClaimEmail validates the <email> argument of claim.
func ClaimEmail(p args.Parsed) (string, error) {
	return positional(p, 0, usage("Usage: "+cmdLine("claim <email>")))
}

// VerifyCode validates the <code> argument of verify.
func VerifyCode(p args.Parsed) (string, error) {
	return positional(p, 0, usage("Usage: "+cmdLine("verify <code>")))
}
