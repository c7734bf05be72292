package grammar

import (
	"fmt"
	"sort"
)

// FirstEntry is the FIRST set of one symbol or symbol sequence: the terminals
// that can begin a derivation, plus an empty flag standing in for ε.
type FirstEntry struct {
	symbols map[Symbol]struct{}
	empty   bool
}

func newFirstEntry() *FirstEntry {
	return &FirstEntry{
		symbols: map[Symbol]struct{}{},
		empty:   false,
	}
}

func (e *FirstEntry) add(sym Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *FirstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *FirstEntry) mergeExceptEmpty(target *FirstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		added := e.add(sym)
		if added {
			changed = true
		}
	}
	return changed
}

// Contains reports whether sym is in the set.
func (e *FirstEntry) Contains(sym Symbol) bool {
	_, ok := e.symbols[sym]
	return ok
}

// ContainsEmpty reports whether ε is in the set.
func (e *FirstEntry) ContainsEmpty() bool {
	return e.empty
}

// Symbols returns the terminals of the set in ascending symbol order.
func (e *FirstEntry) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// FirstSet maps every non-terminal to its FIRST entry. It is computed once by
// a fixed-point pass and immutable afterwards.
type FirstSet struct {
	set map[Symbol]*FirstEntry
}

func newFirstSet(prods *productionSet) *FirstSet {
	fst := &FirstSet{
		set: map[Symbol]*FirstEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := fst.set[prod.lhs]; ok {
			continue
		}
		fst.set[prod.lhs] = newFirstEntry()
	}

	return fst
}

// Find computes the FIRST entry of the RHS suffix of prod beginning at head.
// The entry of an exhausted suffix is {ε}. A terminal stops the scan; a
// non-terminal contributes its own entry and stops the scan unless it can
// derive ε.
func (fst *FirstSet) Find(prod *Production, head int) (*FirstEntry, error) {
	entry := newFirstEntry()
	if prod.rhsLen <= head {
		entry.addEmpty()
		return entry, nil
	}
	for _, sym := range prod.rhs[head:] {
		if sym.IsTerminal() {
			entry.add(sym)
			return entry, nil
		}

		e := fst.FindBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		for s := range e.symbols {
			entry.add(s)
		}
		if !e.empty {
			return entry, nil
		}
	}
	entry.addEmpty()
	return entry, nil
}

// FindBySymbol returns the FIRST entry of a non-terminal, or nil if sym has no
// productions.
func (fst *FirstSet) FindBySymbol(sym Symbol) *FirstEntry {
	return fst.set[sym]
}

// genFirstSet iterates over all productions until no FIRST entry grows.
// A single top-down recursive evaluation would not terminate on mutually
// recursive non-terminals, so the computation always runs full passes to a
// fixed point.
func genFirstSet(prods *productionSet) (*FirstSet, error) {
	fst := newFirstSet(prods)
	for {
		more := false
		for _, prod := range prods.getAllProductions() {
			e := fst.FindBySymbol(prod.lhs)
			changed, err := genProdFirstEntry(fst, e, prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return fst, nil
}

func genProdFirstEntry(fst *FirstSet, acc *FirstEntry, prod *Production) (bool, error) {
	if prod.IsEmpty() {
		return acc.addEmpty(), nil
	}

	changed := false
	for _, sym := range prod.rhs {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed, nil
		}

		e := fst.FindBySymbol(sym)
		if e == nil {
			return false, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed, nil
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed, nil
}
