package grammar

import (
	"errors"
	"reflect"
	"testing"
)

type followExpectation struct {
	lhs     string
	symbols []string
	eof     bool
}

func TestGenFollowSet(t *testing.T) {
	tests := []struct {
		caption string
		start   string
		prods   []testProduction
		follow  []followExpectation
	}{
		{
			caption: "FOLLOW of the start symbol contains the end marker",
			start:   "s",
			prods: []testProduction{
				{lhs: "s", rhs: []string{"id"}},
			},
			follow: []followExpectation{
				{lhs: "s", symbols: []string{}, eof: true},
			},
		},
		{
			caption: "a non-terminal is followed by the FIRST of its right context",
			start:   "e",
			prods: []testProduction{
				{lhs: "e", rhs: []string{"t", "rest"}},
				{lhs: "rest", rhs: []string{"plus", "t", "rest"}},
				{lhs: "rest", rhs: nil},
				{lhs: "t", rhs: []string{"id"}},
			},
			follow: []followExpectation{
				{lhs: "e", symbols: []string{}, eof: true},
				{lhs: "rest", symbols: []string{}, eof: true},
				{lhs: "t", symbols: []string{"plus"}, eof: true},
			},
		},
		{
			caption: "an ε-deriving right context passes the LHS's FOLLOW through",
			start:   "s",
			prods: []testProduction{
				{lhs: "s", rhs: []string{"a", "b", "end"}},
				{lhs: "a", rhs: []string{"x"}},
				{lhs: "b", rhs: []string{"y"}},
				{lhs: "b", rhs: nil},
			},
			follow: []followExpectation{
				{lhs: "s", symbols: []string{}, eof: true},
				{lhs: "a", symbols: []string{"y", "end"}},
				{lhs: "b", symbols: []string{"end"}},
			},
		},
		{
			caption: "recursive non-terminals reach a fixed point",
			start:   "e",
			prods: []testProduction{
				{lhs: "e", rhs: []string{"l_paren", "e", "r_paren"}},
				{lhs: "e", rhs: []string{"id"}},
			},
			follow: []followExpectation{
				{lhs: "e", symbols: []string{"r_paren"}, eof: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram := genTestGrammar(t, tt.start, tt.prods)
			fst, err := genFirstSet(gram.productionSet)
			if err != nil {
				t.Fatal(err)
			}
			flw, err := genFollowSet(gram, fst)
			if err != nil {
				t.Fatal(err)
			}
			for _, exp := range tt.follow {
				assertFollowEntry(t, gram, flw, exp)
			}
		})
	}
}

func assertFollowEntry(t *testing.T, gram *Grammar, flw *FollowSet, exp followExpectation) {
	t.Helper()

	lhs := mustToSymbol(t, gram, exp.lhs)
	e, err := flw.Find(lhs)
	if err != nil {
		t.Fatalf("a FOLLOW entry was not found; symbol: %v", exp.lhs)
	}
	if e.ContainsEOF() != exp.eof {
		t.Fatalf("unexpected end marker in FOLLOW(%v); want: %v, got: %v", exp.lhs, exp.eof, e.ContainsEOF())
	}

	got := map[string]struct{}{}
	for _, text := range symbolTexts(t, gram, e.Symbols()) {
		got[text] = struct{}{}
	}
	want := map[string]struct{}{}
	for _, text := range exp.symbols {
		want[text] = struct{}{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected FOLLOW(%v); want: %v, got: %v", exp.lhs, want, got)
	}
}

func TestGenFollowSet_requiresStartSymbol(t *testing.T) {
	gram := genTestGrammar(t, "", []testProduction{
		{lhs: "s", rhs: []string{"id"}},
	})
	fst, err := genFirstSet(gram.productionSet)
	if err != nil {
		t.Fatal(err)
	}
	_, err = genFollowSet(gram, fst)
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("FOLLOW computation without a start symbol must fail with a ConfigurationError; got: %v", err)
	}
}

func TestGenFollowSet_isIdempotent(t *testing.T) {
	prods := []testProduction{
		{lhs: "e", rhs: []string{"t", "rest"}},
		{lhs: "rest", rhs: []string{"plus", "t", "rest"}},
		{lhs: "rest", rhs: nil},
		{lhs: "t", rhs: []string{"id"}},
	}
	gram := genTestGrammar(t, "e", prods)
	fst, err := genFirstSet(gram.productionSet)
	if err != nil {
		t.Fatal(err)
	}

	flw1, err := genFollowSet(gram, fst)
	if err != nil {
		t.Fatal(err)
	}
	flw2, err := genFollowSet(gram, fst)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(flw1, flw2) {
		t.Fatalf("recomputing FOLLOW on an unchanged grammar must yield identical sets")
	}
}
