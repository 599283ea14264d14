// Package args turns the flat token list that follows a subcommand into
// positional arguments and named options.
//
// A token starting with "--" names an option; its kebab-case name is
// converted to camelCase (--max-results → maxResults). The next token, when
// it does not itself start with "--", becomes the option's value. The
// list-valued options errorMessages and failedApproaches take every
// following non-flag token. An option with nothing to consume is a boolean
// true. Everything else is positional, in order.
package args

import "strings"

const flagPrefix = "--"

// Kind discriminates the three shapes an option value can take.
type Kind int

const (
	KindBool Kind = iota
	KindString
	KindList
)

// Value is a single option value.
type Value struct {
	Kind Kind
	Str  string
	List []string
}

// Parsed is the result of Parse.
type Parsed struct {
	Positional []string
	Options    map[string]Value
}

// listOptions greedily collect every following non-flag token.
var listOptions = map[string]bool{
	"errorMessages":    true,
	"failedApproaches": true,
}

// Parse scans tokens left to right. Repeated options overwrite earlier values.
func Parse(tokens []string) Parsed {
	p := Parsed{Options: make(map[string]Value)}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !isFlag(tok) {
			p.Positional = append(p.Positional, tok)
			continue
		}

		name := CamelCase(strings.TrimPrefix(tok, flagPrefix))
		if i+1 >= len(tokens) || isFlag(tokens[i+1]) {
			p.Options[name] = Value{Kind: KindBool}
			continue
		}

		if listOptions[name] {
			var values []string
			for i+1 < len(tokens) && !isFlag(tokens[i+1]) {
				i++
				values = append(values, tokens[i])
			}
			p.Options[name] = Value{Kind: KindList, List: values}
			continue
		}

		i++
		p.Options[name] = Value{Kind: KindString, Str: tokens[i]}
	}
	return p
}

func isFlag(tok string) bool {
	return strings.HasPrefix(tok, flagPrefix)
}

// CamelCase replaces every "-x" (x a lower-case ASCII letter) with "X".
// Other characters, including dashes not followed by a lower-case letter,
// are kept as-is.
func CamelCase(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' && i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z' {
			b.WriteByte(name[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Has reports whether the option was given in any form.
func (p Parsed) Has(name string) bool {
	_, ok := p.Options[name]
	return ok
}

// String returns the option's value when it was given with a single value.
// Bare flags and lists report false.
func (p Parsed) String(name string) (string, bool) {
	v, ok := p.Options[name]
	if !ok || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// Strings returns a single value or a list as a slice. Bare flags report false.
func (p Parsed) Strings(name string) ([]string, bool) {
	v, ok := p.Options[name]
	if !ok {
		return nil, false
	}
	switch v.Kind {
	case KindString:
		return []string{v.Str}, true
	case KindList:
		return v.List, true
	default:
		return nil, false
	}
}

// Arg returns the positional argument at index i, or "" when there is none.
func (p Parsed) Arg(i int) string {
	if i < 0 || i >= len(p.Positional) {
		return ""
	}
	return p.Positional[i]
}
