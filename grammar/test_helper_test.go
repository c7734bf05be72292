package grammar

import "testing"

type testProduction struct {
	lhs string
	rhs []string // nil means the empty alternative
}

func genTestGrammar(t *testing.T, start string, prods []testProduction) *Grammar {
	t.Helper()

	b := NewGrammarBuilder()
	if start != "" {
		b.SetStartSymbol(start)
	}
	for _, prod := range prods {
		b.AddProduction(prod.lhs, prod.rhs)
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build a grammar: %v", err)
	}
	return gram
}

func mustToSymbol(t *testing.T, gram *Grammar, text string) Symbol {
	t.Helper()

	sym, ok := gram.SymbolTable().ToSymbol(text)
	if !ok {
		t.Fatalf("symbol was not found: %v", text)
	}
	return sym
}

func symbolTexts(t *testing.T, gram *Grammar, syms []Symbol) []string {
	t.Helper()

	texts := make([]string, 0, len(syms))
	for _, sym := range syms {
		text, ok := gram.SymbolTable().ToText(sym)
		if !ok {
			t.Fatalf("a symbol has no name: %v", sym)
		}
		texts = append(texts, text)
	}
	return texts
}
