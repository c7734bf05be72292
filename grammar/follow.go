package grammar

import (
	"fmt"
	"sort"
)

// FollowEntry is the FOLLOW set of one non-terminal: the terminals that can
// appear immediately after it in some derivation, plus an EOF flag standing in
// for the end-of-input marker.
type FollowEntry struct {
	symbols map[Symbol]struct{}
	eof     bool
}

func newFollowEntry() *FollowEntry {
	return &FollowEntry{
		symbols: map[Symbol]struct{}{},
		eof:     false,
	}
}

func (e *FollowEntry) add(sym Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *FollowEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

// merge adds the terminals of fst (ε excluded) and everything of flw. Either
// argument may be nil.
func (e *FollowEntry) merge(fst *FirstEntry, flw *FollowEntry) bool {
	changed := false

	if fst != nil {
		for sym := range fst.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
	}

	if flw != nil {
		for sym := range flw.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
		if flw.eof {
			added := e.addEOF()
			if added {
				changed = true
			}
		}
	}

	return changed
}

// Contains reports whether sym is in the set.
func (e *FollowEntry) Contains(sym Symbol) bool {
	_, ok := e.symbols[sym]
	return ok
}

// ContainsEOF reports whether the end-of-input marker is in the set.
func (e *FollowEntry) ContainsEOF() bool {
	return e.eof
}

// Symbols returns the terminals of the set in ascending symbol order, without
// the end-of-input marker.
func (e *FollowEntry) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// FollowSet maps every non-terminal to its FOLLOW entry. It is computed once
// by a fixed-point pass and immutable afterwards.
type FollowSet struct {
	set map[Symbol]*FollowEntry
}

func newFollowSet(prods *productionSet) *FollowSet {
	flw := &FollowSet{
		set: map[Symbol]*FollowEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newFollowEntry()
	}
	return flw
}

// Find returns the FOLLOW entry of a non-terminal.
func (flw *FollowSet) Find(sym Symbol) (*FollowEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

// genFollowSet computes FOLLOW for every non-terminal by iterating over all
// productions until no entry grows. FOLLOW(start) always gains the end-of-input
// marker; for every occurrence A → … B β, FOLLOW(B) gains FIRST(β)−{ε}, and
// additionally FOLLOW(A) whenever β can derive ε.
func genFollowSet(gram *Grammar, first *FirstSet) (*FollowSet, error) {
	if gram.startSymbol.IsNil() {
		return nil, &ConfigurationError{
			Details: "a start symbol must be set before FOLLOW computation",
		}
	}

	prods := gram.productionSet
	flw := newFollowSet(prods)
	for {
		more := false
		for _, prod := range prods.getAllProductions() {
			if prod.lhs == gram.startSymbol {
				e, err := flw.Find(prod.lhs)
				if err != nil {
					return nil, err
				}
				if e.addEOF() {
					more = true
				}
			}
			for i, sym := range prod.rhs {
				if !sym.IsNonTerminal() {
					continue
				}
				e, err := flw.Find(sym)
				if err != nil {
					return nil, err
				}
				fst, err := first.Find(prod, i+1)
				if err != nil {
					return nil, err
				}
				if e.merge(fst, nil) {
					more = true
				}
				if fst.empty {
					lhsFlw, err := flw.Find(prod.lhs)
					if err != nil {
						return nil, err
					}
					if e.merge(nil, lhsFlw) {
						more = true
					}
				}
			}
		}
		if !more {
			break
		}
	}

	return flw, nil
}
