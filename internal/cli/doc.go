// Package cli defines the Cobra command tree for the prior CLI. Each file
// registers one command with the root. Knowledge-base commands take their
// raw tokens (flag parsing is disabled) and hand them to the args and
// knowledge packages; this package only wires dependencies, prints the
// response, and turns errors into exit status.
package cli
