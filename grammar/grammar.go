package grammar

import (
	"fmt"
)

// PatternBinding associates a terminal with a lexical pattern. Bindings keep
// their declaration order because the tokenizer tries them in that order.
type PatternBinding struct {
	Terminal Symbol
	Pattern  string
}

// ConfigurationError reports a grammar that is structurally unusable for
// analysis, such as a missing start symbol.
type ConfigurationError struct {
	Details string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid grammar configuration: %v", e.Details)
}

// Grammar is the immutable aggregate the analysis pipeline runs on: a symbol
// table, the productions in declaration order, a designated start symbol, and
// optional lexical pattern bindings. Instances are built once via
// GrammarBuilder and never mutated afterwards.
type Grammar struct {
	symTab        *SymbolTable
	productionSet *productionSet
	startSymbol   Symbol
	patterns      []PatternBinding
}

// SymbolTable exposes the grammar's vocabulary.
func (g *Grammar) SymbolTable() *SymbolTable {
	return g.symTab
}

// StartSymbol is the designated start non-terminal, or SymbolNil if the
// grammar was built without one.
func (g *Grammar) StartSymbol() Symbol {
	return g.startSymbol
}

// Productions returns all productions in declaration order.
func (g *Grammar) Productions() []*Production {
	return g.productionSet.getAllProductions()
}

// ProductionsOf returns the alternatives of a non-terminal in declaration order.
func (g *Grammar) ProductionsOf(lhs Symbol) ([]*Production, bool) {
	return g.productionSet.findByLHS(lhs)
}

// PatternBindings returns the lexical pattern bindings in declaration order.
func (g *Grammar) PatternBindings() []PatternBinding {
	return g.patterns
}

type rawProduction struct {
	lhs string
	rhs []string
}

type rawPattern struct {
	term    string
	pattern string
}

// GrammarBuilder accumulates the parts of a grammar description and assembles
// a validated Grammar. Symbols referenced on a right-hand side that were never
// declared and never appear as an LHS are registered as terminals, so
// pre-tokenized test grammars need no explicit terminal declarations.
type GrammarBuilder struct {
	start    string
	nonTerms []string
	terms    []string
	prods    []rawProduction
	patterns []rawPattern
}

func NewGrammarBuilder() *GrammarBuilder {
	return &GrammarBuilder{}
}

// SetStartSymbol designates the start non-terminal. The builder never infers
// one from declaration order; a grammar without an explicit start symbol can
// still compute FIRST sets but fails FOLLOW computation.
func (b *GrammarBuilder) SetStartSymbol(text string) {
	b.start = text
}

// DeclareNonTerminal adds text to the non-terminal vocabulary.
func (b *GrammarBuilder) DeclareNonTerminal(text string) {
	b.nonTerms = append(b.nonTerms, text)
}

// DeclareTerminal adds text to the terminal vocabulary.
func (b *GrammarBuilder) DeclareTerminal(text string) {
	b.terms = append(b.terms, text)
}

// AddProduction adds one alternative for lhs. An empty rhs is the empty
// alternative. The LHS is registered as a non-terminal implicitly.
func (b *GrammarBuilder) AddProduction(lhs string, rhs []string) {
	b.prods = append(b.prods, rawProduction{lhs: lhs, rhs: rhs})
}

// BindPattern binds a lexical pattern to a terminal. Binding order is
// significant: the tokenizer tries patterns in binding order and the first
// match wins.
func (b *GrammarBuilder) BindPattern(term string, pattern string) {
	b.patterns = append(b.patterns, rawPattern{term: term, pattern: pattern})
}

// Build assembles and validates the grammar.
func (b *GrammarBuilder) Build() (*Grammar, error) {
	symTab := NewSymbolTable()

	for _, text := range b.nonTerms {
		if _, err := symTab.registerNonTerminal(text); err != nil {
			return nil, err
		}
	}
	// Every LHS is a non-terminal even without a declaration.
	for _, prod := range b.prods {
		if _, err := symTab.registerNonTerminal(prod.lhs); err != nil {
			return nil, err
		}
	}
	for _, text := range b.terms {
		if _, err := symTab.registerTerminal(text); err != nil {
			return nil, err
		}
	}
	for _, p := range b.patterns {
		if _, err := symTab.registerTerminal(p.term); err != nil {
			return nil, err
		}
	}

	prodSet := newProductionSet()
	for _, raw := range b.prods {
		lhs, _ := symTab.ToSymbol(raw.lhs)
		rhs := make([]Symbol, 0, len(raw.rhs))
		for _, text := range raw.rhs {
			sym, ok := symTab.ToSymbol(text)
			if !ok {
				// An undeclared RHS symbol that is no production's LHS
				// defaults to a terminal.
				var err error
				sym, err = symTab.registerTerminal(text)
				if err != nil {
					return nil, err
				}
			}
			rhs = append(rhs, sym)
		}
		prod, err := newProduction(lhs, rhs)
		if err != nil {
			return nil, err
		}
		prodSet.append(prod)
	}

	var start Symbol
	if b.start != "" {
		sym, ok := symTab.ToSymbol(b.start)
		if !ok || !sym.IsNonTerminal() {
			return nil, &ConfigurationError{
				Details: fmt.Sprintf("a start symbol must be a non-terminal with productions; start: %v", b.start),
			}
		}
		if _, ok := prodSet.findByLHS(sym); !ok {
			return nil, &ConfigurationError{
				Details: fmt.Sprintf("a start symbol must have at least one production; start: %v", b.start),
			}
		}
		start = sym
	}

	var patterns []PatternBinding
	for _, p := range b.patterns {
		sym, _ := symTab.ToSymbol(p.term)
		patterns = append(patterns, PatternBinding{
			Terminal: sym,
			Pattern:  p.pattern,
		})
	}

	return &Grammar{
		symTab:        symTab,
		productionSet: prodSet,
		startSymbol:   start,
		patterns:      patterns,
	}, nil
}

// CompiledGrammar bundles a grammar with its derived analysis artifacts.
// All of them are read-only after Compile returns and may be shared across
// concurrent parser runs.
type CompiledGrammar struct {
	gram   *Grammar
	first  *FirstSet
	follow *FollowSet
	table  *ParsingTable
}

// Compile runs the full analysis pipeline: FIRST, FOLLOW, and the LL(1)
// parsing table. Table conflicts do not fail compilation; call
// CompiledGrammar.ValidateLL1 to reject a grammar that has any.
func Compile(gram *Grammar) (*CompiledGrammar, error) {
	fst, err := genFirstSet(gram.productionSet)
	if err != nil {
		return nil, err
	}
	flw, err := genFollowSet(gram, fst)
	if err != nil {
		return nil, err
	}
	tab, err := genParsingTable(gram, fst, flw)
	if err != nil {
		return nil, err
	}
	return &CompiledGrammar{
		gram:   gram,
		first:  fst,
		follow: flw,
		table:  tab,
	}, nil
}

// Grammar returns the source grammar.
func (cg *CompiledGrammar) Grammar() *Grammar {
	return cg.gram
}

// First returns the FIRST-set table.
func (cg *CompiledGrammar) First() *FirstSet {
	return cg.first
}

// Follow returns the FOLLOW-set table.
func (cg *CompiledGrammar) Follow() *FollowSet {
	return cg.follow
}

// ParsingTable returns the LL(1) parse table.
func (cg *CompiledGrammar) ParsingTable() *ParsingTable {
	return cg.table
}

// Conflicts returns the table conflicts recorded during construction, in the
// order they were detected.
func (cg *CompiledGrammar) Conflicts() []*Conflict {
	return cg.table.conflicts
}

// ValidateLL1 returns a ConflictError describing every conflicting table cell,
// or nil if the grammar is LL(1). Construction itself never rejects conflicts;
// the later-declared production silently wins a cell.
func (cg *CompiledGrammar) ValidateLL1() error {
	if len(cg.table.conflicts) == 0 {
		return nil
	}
	return &ConflictError{Conflicts: cg.table.conflicts}
}
