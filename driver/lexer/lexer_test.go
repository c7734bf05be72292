package lexer

import (
	"errors"
	"testing"

	"github.com/yuin8/tabula/grammar"
)

type expectedToken struct {
	kind   string
	lexeme string
}

func genLexGrammar(t *testing.T, patterns [][2]string) *grammar.Grammar {
	t.Helper()

	b := grammar.NewGrammarBuilder()
	b.SetStartSymbol("s")
	rhs := make([]string, 0, len(patterns))
	for _, p := range patterns {
		rhs = append(rhs, p[0])
	}
	b.AddProduction("s", rhs)
	for _, p := range patterns {
		if p[1] != "" {
			b.BindPattern(p[0], p[1])
		}
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build a grammar: %v", err)
	}
	return gram
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		caption  string
		patterns [][2]string
		src      string
		tokens   []expectedToken
	}{
		{
			caption: "rules are matched in declaration order",
			patterns: [][2]string{
				{"plus", `\+`},
				{"id", `[a-z]+`},
			},
			src: "a+b",
			tokens: []expectedToken{
				{kind: "id", lexeme: "a"},
				{kind: "plus", lexeme: "+"},
				{kind: "id", lexeme: "b"},
			},
		},
		{
			caption: "the first matching rule wins over a longer later match",
			patterns: [][2]string{
				{"if_kw", `if`},
				{"id", `[a-z]+`},
			},
			src: "ifx if",
			tokens: []expectedToken{
				// By declaration order, `if` wins even inside `ifx`; grammar
				// authors order keywords first deliberately.
				{kind: "if_kw", lexeme: "if"},
				{kind: "id", lexeme: "x"},
				{kind: "if_kw", lexeme: "if"},
			},
		},
		{
			caption: "unmatched whitespace is skipped",
			patterns: [][2]string{
				{"id", `[a-z]+`},
			},
			src: " \t a \n b ",
			tokens: []expectedToken{
				{kind: "id", lexeme: "a"},
				{kind: "id", lexeme: "b"},
			},
		},
		{
			caption: "terminals without a pattern match their own name",
			patterns: [][2]string{
				{"id", `[a-z]+`},
				{"+", ""},
			},
			src: "a+b",
			tokens: []expectedToken{
				{kind: "id", lexeme: "a"},
				{kind: "+", lexeme: "+"},
				{kind: "id", lexeme: "b"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram := genLexGrammar(t, tt.patterns)
			spec, err := Compile(gram)
			if err != nil {
				t.Fatal(err)
			}
			toks, err := Tokenize(spec, tt.src)
			if err != nil {
				t.Fatal(err)
			}

			last := toks[len(toks)-1]
			if !last.EOF {
				t.Fatalf("a token stream must end with the EOF token; got: %+v", last)
			}
			toks = toks[:len(toks)-1]

			if len(toks) != len(tt.tokens) {
				t.Fatalf("unexpected token count; want: %v, got: %v", len(tt.tokens), len(toks))
			}
			for i, want := range tt.tokens {
				if toks[i].KindName != want.kind || toks[i].Lexeme != want.lexeme {
					t.Fatalf("unexpected token at %v; want: %v %#v, got: %v %#v",
						i, want.kind, want.lexeme, toks[i].KindName, toks[i].Lexeme)
				}
			}
		})
	}
}

func TestTokenize_lexicalError(t *testing.T) {
	gram := genLexGrammar(t, [][2]string{
		{"id", `[a-z]+`},
	})
	spec, err := Compile(gram)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Tokenize(spec, "ab\ncd ?")
	var lexErr *LexicalError
	if !errors.As(err, &lexErr) {
		t.Fatalf("an unmatched non-whitespace character must fail with a LexicalError; got: %v", err)
	}
	if lexErr.Char != '?' {
		t.Fatalf("unexpected offending character; want: ?, got: %q", lexErr.Char)
	}
	if lexErr.Row != 1 || lexErr.Col != 3 {
		t.Fatalf("unexpected position; want: 1:3, got: %v:%v", lexErr.Row, lexErr.Col)
	}
}

func TestTokenize_positions(t *testing.T) {
	gram := genLexGrammar(t, [][2]string{
		{"id", `[a-z]+`},
	})
	spec, err := Compile(gram)
	if err != nil {
		t.Fatal(err)
	}

	toks, err := Tokenize(spec, "ab\n cd")
	if err != nil {
		t.Fatal(err)
	}

	positions := [][2]int{
		{0, 0},
		{1, 1},
	}
	for i, pos := range positions {
		if toks[i].Row != pos[0] || toks[i].Col != pos[1] {
			t.Fatalf("unexpected position of token %v; want: %v:%v, got: %v:%v",
				i, pos[0], pos[1], toks[i].Row, toks[i].Col)
		}
	}
}

func TestCompile_invalidPattern(t *testing.T) {
	gram := genLexGrammar(t, [][2]string{
		{"id", `[a-z`},
	})
	if _, err := Compile(gram); err == nil {
		t.Fatalf("compiling an invalid pattern must fail")
	}
}
