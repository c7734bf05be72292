package parser

import (
	"fmt"

	"github.com/yuin8/tabula/driver/lexer"
	"github.com/yuin8/tabula/grammar"
)

// TokenStream is the parser's input: an ordered token sequence terminated by
// an EOF token. A failed tokenization surfaces through Next and aborts the
// parse before any transition runs.
type TokenStream interface {
	Next() (*lexer.Token, error)
}

type lexerTokenStream struct {
	lex *lexer.Lexer
}

// NewTokenStream builds a TokenStream that pulls tokens from a lexer.
func NewTokenStream(spec *lexer.LexSpec, src string) TokenStream {
	return &lexerTokenStream{
		lex: lexer.NewLexer(spec, src),
	}
}

func (s *lexerTokenStream) Next() (*lexer.Token, error) {
	return s.lex.Next()
}

type sliceTokenStream struct {
	toks []*lexer.Token
	pos  int
}

// NewSliceTokenStream serves pre-built tokens, appending an EOF token after
// the last one.
func NewSliceTokenStream(toks []*lexer.Token) TokenStream {
	return &sliceTokenStream{toks: toks}
}

func (s *sliceTokenStream) Next() (*lexer.Token, error) {
	if s.pos >= len(s.toks) {
		return &lexer.Token{
			Kind:     grammar.SymbolEOF,
			KindName: "<eof>",
			EOF:      true,
		}, nil
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, nil
}

// NewLiteralTokenStream resolves terminal names against the grammar's
// vocabulary and serves them as tokens whose lexemes equal their names.
// Useful for pre-tokenized test input on grammars without lexical patterns.
func NewLiteralTokenStream(gram *grammar.Grammar, kinds []string) (TokenStream, error) {
	symTab := gram.SymbolTable()
	toks := make([]*lexer.Token, 0, len(kinds))
	for _, kind := range kinds {
		sym, ok := symTab.ToSymbol(kind)
		if !ok || !sym.IsTerminal() {
			return nil, fmt.Errorf("unknown terminal in token stream: %v", kind)
		}
		toks = append(toks, &lexer.Token{
			Kind:     sym,
			KindName: kind,
			Lexeme:   kind,
		})
	}
	return NewSliceTokenStream(toks), nil
}
