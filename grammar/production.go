package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func genProductionID(lhs Symbol, rhs []Symbol) productionID {
	seq := symbolBytes(lhs)
	for _, sym := range rhs {
		seq = append(seq, symbolBytes(sym)...)
	}
	return productionID(sha256.Sum256(seq))
}

func symbolBytes(sym Symbol) []byte {
	return []byte{byte(uint16(sym) >> 8), byte(uint16(sym) & 0x00ff)}
}

type productionNum uint16

const (
	productionNumNil = productionNum(0)
	productionNumMin = productionNum(1)
)

func (n productionNum) Int() int {
	return int(n)
}

// Production is one alternative of a non-terminal: an LHS non-terminal and an
// ordered RHS symbol sequence. The empty alternative is represented by a
// zero-length RHS; the ε marker of the description format never appears as a
// symbol.
type Production struct {
	id     productionID
	num    productionNum
	lhs    Symbol
	rhs    []Symbol
	rhsLen int
}

func newProduction(lhs Symbol, rhs []Symbol) (*Production, error) {
	if lhs.IsNil() {
		return nil, fmt.Errorf("LHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &Production{
		id:     genProductionID(lhs, rhs),
		lhs:    lhs,
		rhs:    rhs,
		rhsLen: len(rhs),
	}, nil
}

// Num is the 1-based declaration ordinal of the production.
func (p *Production) Num() int {
	return p.num.Int()
}

// LHS is the non-terminal the production belongs to.
func (p *Production) LHS() Symbol {
	return p.lhs
}

// RHS is the right-hand-side symbol sequence. It is empty for the empty
// alternative and must not be mutated.
func (p *Production) RHS() []Symbol {
	return p.rhs
}

// IsEmpty reports whether p is the empty alternative.
func (p *Production) IsEmpty() bool {
	return p.rhsLen == 0
}

// productionSet holds all productions of a grammar in declaration order.
// Declaration order is what makes table construction deterministic, and in
// particular what decides which alternative wins an LL(1) conflict.
type productionSet struct {
	all       []*Production
	lhs2Prods map[Symbol][]*Production
	id2Prod   map[productionID]*Production
	num       productionNum
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[Symbol][]*Production{},
		id2Prod:   map[productionID]*Production{},
		num:       productionNumMin,
	}
}

func (ps *productionSet) append(prod *Production) bool {
	if _, ok := ps.id2Prod[prod.id]; ok {
		return false
	}

	prod.num = ps.num
	ps.num++

	ps.all = append(ps.all, prod)
	if prods, ok := ps.lhs2Prods[prod.lhs]; ok {
		ps.lhs2Prods[prod.lhs] = append(prods, prod)
	} else {
		ps.lhs2Prods[prod.lhs] = []*Production{prod}
	}
	ps.id2Prod[prod.id] = prod

	return true
}

func (ps *productionSet) findByLHS(lhs Symbol) ([]*Production, bool) {
	if lhs.IsNil() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

func (ps *productionSet) findByNum(num productionNum) (*Production, bool) {
	i := num.Int() - productionNumMin.Int()
	if i < 0 || i >= len(ps.all) {
		return nil, false
	}
	return ps.all[i], true
}

func (ps *productionSet) getAllProductions() []*Production {
	return ps.all
}
