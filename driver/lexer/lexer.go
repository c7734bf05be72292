// Package lexer turns raw text into the token stream of a grammar. Lexical
// patterns are tried in their declaration order and the first pattern matching
// a non-empty prefix wins, so more specific patterns (keywords) must be
// declared before more general ones (identifiers).
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/yuin8/tabula/grammar"
)

// Token is one lexeme of the input: the terminal it matched, the matched text,
// and its position. The end of the input is reported as a token with EOF set.
type Token struct {
	// Kind is the terminal symbol the lexeme matched.
	Kind grammar.Symbol

	// KindName is the name of the terminal.
	KindName string

	// Lexeme is the matched text. It is empty for the EOF token.
	Lexeme string

	// Row is the 0-based row number where the lexeme appears.
	Row int

	// Col is the 0-based column number where the lexeme appears,
	// counted in bytes from the beginning of the row.
	Col int

	// EOF is true on the end-of-input token.
	EOF bool
}

// LexicalError reports a character that no lexical rule matches and that is
// not whitespace.
type LexicalError struct {
	Pos  int
	Row  int
	Col  int
	Char rune
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("no lexical rule matches %q at %v:%v", e.Char, e.Row+1, e.Col+1)
}

type lexRule struct {
	kind grammar.Symbol
	name string
	re   *regexp.Regexp
}

// LexSpec is the compiled form of a grammar's lexical rules: one ordered list
// of anchored matchers. Compile it once and share it across lexers.
type LexSpec struct {
	rules []lexRule
}

// Compile builds a LexSpec from the grammar's pattern bindings, in binding
// order. Terminals without a pattern are appended afterwards as literal
// matchers of their own name, so a grammar written for pre-tokenized input
// still tokenizes.
func Compile(gram *grammar.Grammar) (*LexSpec, error) {
	symTab := gram.SymbolTable()
	bound := map[grammar.Symbol]struct{}{}

	var rules []lexRule
	for _, b := range gram.PatternBindings() {
		name, _ := symTab.ToText(b.Terminal)
		re, err := regexp.Compile(`^(?:` + b.Pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for terminal %v: %w", name, err)
		}
		rules = append(rules, lexRule{
			kind: b.Terminal,
			name: name,
			re:   re,
		})
		bound[b.Terminal] = struct{}{}
	}

	for _, term := range symTab.TerminalSymbols() {
		if term.IsEOF() {
			continue
		}
		if _, ok := bound[term]; ok {
			continue
		}
		name, _ := symTab.ToText(term)
		rules = append(rules, lexRule{
			kind: term,
			name: name,
			re:   regexp.MustCompile(`^(?:` + regexp.QuoteMeta(name) + `)`),
		})
	}

	return &LexSpec{rules: rules}, nil
}

// Lexer tokenizes one input string left to right without backtracking.
type Lexer struct {
	spec *LexSpec
	src  string
	pos  int
	row  int
	col  int
}

func NewLexer(spec *LexSpec, src string) *Lexer {
	return &Lexer{
		spec: spec,
		src:  src,
	}
}

// Next returns the next token. At the end of the input it returns an EOF
// token, and keeps returning it on further calls.
func (l *Lexer) Next() (*Token, error) {
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		tok, ok := l.match(rest)
		if ok {
			return tok, nil
		}

		c, size := utf8.DecodeRuneInString(rest)
		if !isWhitespace(c) {
			return nil, &LexicalError{
				Pos:  l.pos,
				Row:  l.row,
				Col:  l.col,
				Char: c,
			}
		}
		l.advance(size)
	}

	return &Token{
		Kind:     grammar.SymbolEOF,
		KindName: "<eof>",
		Row:      l.row,
		Col:      l.col,
		EOF:      true,
	}, nil
}

func (l *Lexer) match(rest string) (*Token, bool) {
	for _, rule := range l.spec.rules {
		loc := rule.re.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		tok := &Token{
			Kind:     rule.kind,
			KindName: rule.name,
			Lexeme:   rest[:loc[1]],
			Row:      l.row,
			Col:      l.col,
		}
		l.advance(loc[1])
		return tok, true
	}
	return nil, false
}

func (l *Lexer) advance(n int) {
	for _, c := range l.src[l.pos : l.pos+n] {
		if c == '\n' {
			l.row++
			l.col = 0
		} else {
			l.col++
		}
	}
	l.pos += n
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Tokenize drains a lexer into the full token list, ending with the EOF token.
// It is primarily aimed at diagnostics; the parser pulls tokens one at a time.
func Tokenize(spec *LexSpec, src string) ([]*Token, error) {
	l := NewLexer(spec, src)
	var toks []*Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.EOF {
			return toks, nil
		}
	}
}
