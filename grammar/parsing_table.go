package grammar

import (
	"fmt"
	"strings"
)

// Conflict records one overwritten LL(1) table cell: two productions both
// claimed the cell (NonTerminal, Terminal), and the later-declared one won.
type Conflict struct {
	NonTerminal Symbol
	Terminal    Symbol
	Winner      *Production
	Loser       *Production
}

// ConflictError reports every conflicting table cell of a non-LL(1) grammar
// as a single structured error.
type ConflictError struct {
	Conflicts []*Conflict
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar is not LL(1); %v conflicting table cells:", len(e.Conflicts))
	for _, c := range e.Conflicts {
		fmt.Fprintf(&b, "\n  cell (%v, %v): production #%v overwrites production #%v",
			c.NonTerminal, c.Terminal, c.Winner.Num(), c.Loser.Num())
	}
	return b.String()
}

// ParsingTable is the LL(1) predictive parse table: a dense
// (non-terminal, terminal) matrix of production numbers. Cells holding
// productionNumNil are errors. The end-of-input marker occupies a regular
// terminal column. The table is immutable after construction.
type ParsingTable struct {
	entries          []productionNum
	terminalCount    int
	nonTerminalCount int
	prods            *productionSet

	conflicts []*Conflict
}

func (t *ParsingTable) index(nonTerm Symbol, term Symbol) int {
	return nonTerm.num().Int()*t.terminalCount + term.num().Int()
}

// Find returns the production selected for the stack-top non-terminal and the
// lookahead terminal, or false if the cell is empty.
func (t *ParsingTable) Find(nonTerm Symbol, term Symbol) (*Production, bool) {
	if !nonTerm.IsNonTerminal() || !term.IsTerminal() {
		return nil, false
	}
	num := t.entries[t.index(nonTerm, term)]
	if num == productionNumNil {
		return nil, false
	}
	return t.prods.findByNum(num)
}

// ExpectedTerminals returns the terminals with a non-empty cell in the row of
// nonTerm, in ascending symbol order. The end-of-input symbol is included.
func (t *ParsingTable) ExpectedTerminals(nonTerm Symbol, symTab *SymbolTable) []Symbol {
	var syms []Symbol
	for _, term := range symTab.TerminalSymbols() {
		if _, ok := t.Find(nonTerm, term); ok {
			syms = append(syms, term)
		}
	}
	return syms
}

func (t *ParsingTable) write(nonTerm Symbol, term Symbol, prod *Production) {
	pos := t.index(nonTerm, term)
	if prev := t.entries[pos]; prev != productionNumNil && prev != prod.num {
		loser, _ := t.prods.findByNum(prev)
		// The later-declared production silently wins the cell. The overwrite
		// is recorded so a strict validation pass can reject it.
		t.conflicts = append(t.conflicts, &Conflict{
			NonTerminal: nonTerm,
			Terminal:    term,
			Winner:      prod,
			Loser:       loser,
		})
	}
	t.entries[pos] = prod.num
}

// genParsingTable fills the table from FIRST and FOLLOW. For each production
// A → α: every terminal of FIRST(α) selects α, and when α can derive ε, every
// terminal of FOLLOW(A) (including the end-of-input marker) selects α too.
// Productions are processed in declaration order, which pins the winner of a
// conflicting cell to the later declaration.
func genParsingTable(gram *Grammar, first *FirstSet, follow *FollowSet) (*ParsingTable, error) {
	symTab := gram.symTab
	ptab := &ParsingTable{
		entries:          make([]productionNum, symTab.nonTerminalCount()*symTab.terminalCount()),
		terminalCount:    symTab.terminalCount(),
		nonTerminalCount: symTab.nonTerminalCount(),
		prods:            gram.productionSet,
	}

	for _, prod := range gram.productionSet.getAllProductions() {
		fst, err := first.Find(prod, 0)
		if err != nil {
			return nil, err
		}
		for _, sym := range fst.Symbols() {
			ptab.write(prod.lhs, sym, prod)
		}
		if fst.empty {
			flw, err := follow.Find(prod.lhs)
			if err != nil {
				return nil, err
			}
			for _, sym := range flw.Symbols() {
				ptab.write(prod.lhs, sym, prod)
			}
			if flw.eof {
				ptab.write(prod.lhs, SymbolEOF, prod)
			}
		}
	}

	return ptab, nil
}
