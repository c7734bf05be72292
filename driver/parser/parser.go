// Package parser drives a deterministic pushdown automaton over an LL(1)
// parsing table to build a concrete parse tree from a token stream.
package parser

import (
	"fmt"
	"strings"

	"github.com/yuin8/tabula/driver/lexer"
	"github.com/yuin8/tabula/grammar"
)

// SyntaxError reports an input the grammar does not derive: a terminal
// mismatch, a missing table entry, or leftover input after the stack emptied.
type SyntaxError struct {
	Row               int
	Col               int
	Message           string
	Token             *lexer.Token
	ExpectedTerminals []string
	StackDepth        int
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at %v:%v: %v", e.Row+1, e.Col+1, e.Message)
	if e.Token != nil {
		if e.Token.EOF {
			fmt.Fprintf(&b, "; found: %v", e.Token.KindName)
		} else {
			fmt.Fprintf(&b, "; found: %v %#v", e.Token.KindName, e.Token.Lexeme)
		}
	}
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

// StructuralError reports a stack symbol that belongs to neither vocabulary.
// It indicates a malformed grammar or table, not a bad input.
type StructuralError struct {
	Symbol string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("unknown symbol on the parse stack: %v", e.Symbol)
}

type stackEntry struct {
	sym  grammar.Symbol
	node *Node
}

// Parser is the parsing automaton. Its state is a stack of (symbol, node)
// pairs; the nodes double as the tree being built, so a popped non-terminal's
// node is where its children were attached. One Parser performs one run; the
// compiled grammar may be shared across runs.
//
// The automaton does not guard against ε-only production cycles; a grammar in
// which a non-terminal can only re-derive itself through empty alternatives
// loops forever, and bounding such grammars is the caller's responsibility.
type Parser struct {
	cgram *grammar.CompiledGrammar
	ts    TokenStream
	stack []stackEntry
	tree  *Node
}

func NewParser(cgram *grammar.CompiledGrammar, ts TokenStream) (*Parser, error) {
	if cgram.Grammar().StartSymbol().IsNil() {
		return nil, &grammar.ConfigurationError{
			Details: "a start symbol must be set before parsing",
		}
	}
	return &Parser{
		cgram: cgram,
		ts:    ts,
	}, nil
}

// Parse consumes the token stream against the parsing table and returns the
// root of the parse tree. The first failure aborts the run; no recovery or
// repair is attempted.
func (p *Parser) Parse() (*Node, error) {
	gram := p.cgram.Grammar()
	symTab := gram.SymbolTable()
	table := p.cgram.ParsingTable()

	start := gram.StartSymbol()
	startName, _ := symTab.ToText(start)
	root := &Node{KindName: startName}

	p.stack = p.stack[:0]
	p.push(stackEntry{sym: grammar.SymbolEOF})
	p.push(stackEntry{sym: start, node: root})

	tok, err := p.ts.Next()
	if err != nil {
		return nil, err
	}

	for len(p.stack) > 0 {
		top := p.top()

		switch {
		case top.sym.IsEOF():
			if !tok.EOF {
				return nil, &SyntaxError{
					Row:               tok.Row,
					Col:               tok.Col,
					Message:           "input not fully consumed",
					Token:             tok,
					ExpectedTerminals: []string{"<eof>"},
					StackDepth:        len(p.stack),
				}
			}
			p.pop()
			p.tree = root
			return root, nil
		case top.sym.IsTerminal():
			if tokenKind(tok) != top.sym {
				name, _ := symTab.ToText(top.sym)
				return nil, &SyntaxError{
					Row:               tok.Row,
					Col:               tok.Col,
					Message:           fmt.Sprintf("unexpected token; expected terminal %v", name),
					Token:             tok,
					ExpectedTerminals: []string{name},
					StackDepth:        len(p.stack),
				}
			}
			top.node.Text = tok.Lexeme
			top.node.Row = tok.Row
			top.node.Col = tok.Col
			p.pop()
			tok, err = p.ts.Next()
			if err != nil {
				return nil, err
			}
		case top.sym.IsNonTerminal():
			prod, ok := table.Find(top.sym, tokenKind(tok))
			if !ok {
				name, _ := symTab.ToText(top.sym)
				return nil, &SyntaxError{
					Row:               tok.Row,
					Col:               tok.Col,
					Message:           fmt.Sprintf("no applicable production for %v", name),
					Token:             tok,
					ExpectedTerminals: p.expectedTerminals(top.sym),
					StackDepth:        len(p.stack),
				}
			}
			p.pop()
			if prod.IsEmpty() {
				// The empty alternative expands to nothing; no child node
				// is created for ε.
				continue
			}
			rhs := prod.RHS()
			children := make([]*Node, len(rhs))
			for i, sym := range rhs {
				name, _ := symTab.ToText(sym)
				children[i] = &Node{KindName: name}
			}
			top.node.Children = children
			// Push the RHS in reverse so the leftmost symbol is on top.
			for i := len(rhs) - 1; i >= 0; i-- {
				p.push(stackEntry{sym: rhs[i], node: children[i]})
			}
		default:
			return nil, &StructuralError{Symbol: top.sym.String()}
		}
	}

	// The bottom end-marker entry makes the stack empty only through the
	// accept transition above.
	return nil, &StructuralError{Symbol: grammar.SymbolNil.String()}
}

// Tree returns the parse tree of a successful run, or nil.
func (p *Parser) Tree() *Node {
	return p.tree
}

func (p *Parser) expectedTerminals(nonTerm grammar.Symbol) []string {
	symTab := p.cgram.Grammar().SymbolTable()
	var names []string
	for _, sym := range p.cgram.ParsingTable().ExpectedTerminals(nonTerm, symTab) {
		name, _ := symTab.ToText(sym)
		names = append(names, name)
	}
	return names
}

func (p *Parser) top() stackEntry {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(e stackEntry) {
	p.stack = append(p.stack, e)
}

func (p *Parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

func tokenKind(tok *lexer.Token) grammar.Symbol {
	if tok.EOF {
		return grammar.SymbolEOF
	}
	return tok.Kind
}
