package spec

import (
	"strings"
	"testing"

	verr "github.com/yuin8/tabula/error"
	"github.com/yuin8/tabula/grammar"
)

func TestParse(t *testing.T) {
	t.Run("a full description", func(t *testing.T) {
		src := `
// arithmetic sums
#start e
#nonterm e rest t
#pattern plus \+
#pattern id [a-z]+

e -> t rest
rest -> plus t rest | eps
t -> id
`
		gram, err := Parse(strings.NewReader(src))
		if err != nil {
			t.Fatal(err)
		}

		start, _ := gram.SymbolTable().ToText(gram.StartSymbol())
		if start != "e" {
			t.Fatalf("unexpected start symbol; want: e, got: %v", start)
		}
		if len(gram.Productions()) != 4 {
			t.Fatalf("unexpected production count; want: 4, got: %v", len(gram.Productions()))
		}

		bindings := gram.PatternBindings()
		if len(bindings) != 2 {
			t.Fatalf("unexpected binding count; want: 2, got: %v", len(bindings))
		}
		if bindings[0].Pattern != `\+` || bindings[1].Pattern != `[a-z]+` {
			t.Fatalf("bindings must keep their declaration order: %+v", bindings)
		}

		sym, ok := gram.SymbolTable().ToSymbol("plus")
		if !ok || !sym.IsTerminal() {
			t.Fatalf("a pattern binding must register its terminal")
		}
	})

	t.Run("alternatives accumulate across lines", func(t *testing.T) {
		src := `
#start s
s -> a
s -> b
`
		gram, err := Parse(strings.NewReader(src))
		if err != nil {
			t.Fatal(err)
		}
		s, _ := gram.SymbolTable().ToSymbol("s")
		prods, _ := gram.ProductionsOf(s)
		if len(prods) != 2 {
			t.Fatalf("alternatives of the same LHS must accumulate; got: %v", len(prods))
		}
	})

	t.Run("the Greek empty marker is accepted", func(t *testing.T) {
		src := `
#start s
s -> a | ε
`
		gram, err := Parse(strings.NewReader(src))
		if err != nil {
			t.Fatal(err)
		}
		s, _ := gram.SymbolTable().ToSymbol("s")
		prods, _ := gram.ProductionsOf(s)
		if len(prods) != 2 || !prods[1].IsEmpty() {
			t.Fatalf("the ε marker must produce the empty alternative; got: %+v", prods)
		}
	})

	t.Run("lines without an arrow are skipped", func(t *testing.T) {
		src := `
#start s
this line is prose, not a production
s -> id
`
		gram, err := Parse(strings.NewReader(src))
		if err != nil {
			t.Fatal(err)
		}
		if len(gram.Productions()) != 1 {
			t.Fatalf("non-production lines must be skipped; got: %v productions", len(gram.Productions()))
		}
	})

	tests := []struct {
		caption string
		src     string
		row     int
	}{
		{
			caption: "a missing start declaration",
			src:     `s -> id`,
		},
		{
			caption: "an unknown directive",
			src: `#begin s
s -> id`,
			row: 1,
		},
		{
			caption: "an empty marker inside a longer alternative",
			src: `#start s
s -> a eps b`,
			row: 2,
		},
		{
			caption: "a blank alternative",
			src: `#start s
s -> a | | b`,
			row: 2,
		},
		{
			caption: "a multi-symbol LHS",
			src: `#start s
s t -> a`,
			row: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption+" is rejected", func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("parse must fail")
			}
			if tt.row != 0 {
				specErr, ok := err.(*verr.SpecError)
				if !ok {
					t.Fatalf("the error must carry its row; got: %v", err)
				}
				if specErr.Row != tt.row {
					t.Fatalf("unexpected row; want: %v, got: %v", tt.row, specErr.Row)
				}
			}
		})
	}
}

func TestParse_feedsTheAnalysisPipeline(t *testing.T) {
	src := `
#start e
e -> t rest
rest -> plus t rest | eps
t -> id
`
	gram, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	cgram, err := grammar.Compile(gram)
	if err != nil {
		t.Fatal(err)
	}
	if err := cgram.ValidateLL1(); err != nil {
		t.Fatal(err)
	}
}
