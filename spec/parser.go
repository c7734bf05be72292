// Package spec loads the grammar description text format and produces a
// populated grammar. The format is line based and declarations may appear in
// any order:
//
//	#start E
//	#nonterm E Et T
//	#term plus id
//	#pattern plus \+
//	#pattern id [a-z]+
//
//	E -> T Et
//	Et -> plus T Et | eps
//
// Production lines have the form `LHS -> seq | seq | …`, where each sequence
// is a whitespace-separated symbol list or the empty-alternative marker
// (`eps` or `ε`). Alternatives of the same LHS accumulate across lines.
// Blank lines, `//` comments, and lines containing no `->` are skipped.
// The #nonterm and #term declarations are optional: every LHS is a
// non-terminal, and undeclared RHS symbols default to terminals.
package spec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	verr "github.com/yuin8/tabula/error"
	"github.com/yuin8/tabula/grammar"
)

const (
	emptyMarker      = "eps"
	emptyMarkerGreek = "ε"
)

// Parse reads a grammar description and builds the grammar. Location-carrying
// failures are reported as *error.SpecError with the row set; callers add the
// file path for line echoing.
func Parse(src io.Reader) (*grammar.Grammar, error) {
	b := grammar.NewGrammarBuilder()
	startDeclared := false

	row := 0
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if err := parseDirective(b, line, &startDeclared); err != nil {
				return nil, &verr.SpecError{
					Cause: err,
					Row:   row,
				}
			}
			continue
		}

		if !strings.Contains(line, "->") {
			continue
		}

		if err := parseProduction(b, line); err != nil {
			return nil, &verr.SpecError{
				Cause: err,
				Row:   row,
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !startDeclared {
		// The start symbol is never inferred from declaration order.
		return nil, fmt.Errorf("a grammar description must declare its start symbol with #start")
	}

	gram, err := b.Build()
	if err != nil {
		return nil, err
	}
	return gram, nil
}

func parseDirective(b *grammar.GrammarBuilder, line string, startDeclared *bool) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "#start":
		if len(fields) != 2 {
			return fmt.Errorf("#start takes exactly one symbol")
		}
		b.SetStartSymbol(fields[1])
		*startDeclared = true
	case "#nonterm":
		if len(fields) < 2 {
			return fmt.Errorf("#nonterm takes at least one symbol")
		}
		for _, text := range fields[1:] {
			b.DeclareNonTerminal(text)
		}
	case "#term":
		if len(fields) < 2 {
			return fmt.Errorf("#term takes at least one symbol")
		}
		for _, text := range fields[1:] {
			b.DeclareTerminal(text)
		}
	case "#pattern":
		if len(fields) < 3 {
			return fmt.Errorf("#pattern takes a terminal and a pattern")
		}
		term := fields[1]
		rest := strings.TrimSpace(strings.TrimPrefix(line, "#pattern"))
		pattern := strings.TrimSpace(strings.TrimPrefix(rest, term))
		b.BindPattern(term, pattern)
	default:
		return fmt.Errorf("unknown directive: %v", fields[0])
	}
	return nil
}

func parseProduction(b *grammar.GrammarBuilder, line string) error {
	parts := strings.SplitN(line, "->", 2)
	lhs := strings.TrimSpace(parts[0])
	if lhs == "" {
		return fmt.Errorf("a production needs a LHS symbol")
	}
	if len(strings.Fields(lhs)) != 1 {
		return fmt.Errorf("a production's LHS must be a single symbol; LHS: %v", lhs)
	}

	for _, alt := range strings.Split(parts[1], "|") {
		syms := strings.Fields(alt)
		if len(syms) == 0 {
			return fmt.Errorf("an alternative of %v is blank; use the empty-alternative marker %v", lhs, emptyMarker)
		}
		if len(syms) == 1 && (syms[0] == emptyMarker || syms[0] == emptyMarkerGreek) {
			b.AddProduction(lhs, nil)
			continue
		}
		for _, sym := range syms {
			if sym == emptyMarker || sym == emptyMarkerGreek {
				return fmt.Errorf("the empty-alternative marker must be the only symbol of its alternative; LHS: %v", lhs)
			}
		}
		b.AddProduction(lhs, syms)
	}
	return nil
}
