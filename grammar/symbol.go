package grammar

import (
	"fmt"
	"sort"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (k symbolKind) String() string {
	return string(k)
}

type symbolNum uint16

func (n symbolNum) Int() int {
	return int(n)
}

// Symbol is a compact identifier for a grammar symbol. The upper bits encode
// the symbol's kind and whether it is the reserved end-of-input terminal; the
// lower bits carry a serial number unique within the kind. A symbol belongs to
// exactly one kind, fixed when it is registered in a SymbolTable.
type Symbol uint16

const (
	maskKindPart    = uint16(0x8000) // set: terminal, cleared: non-terminal
	maskReservedBit = uint16(0x4000) // set: reserved symbol (end-of-input)
	maskNumberPart  = uint16(0x3fff)

	symbolNumEOF = uint16(0x0001)

	// SymbolNil is the zero Symbol. It never identifies a registered symbol.
	SymbolNil = Symbol(0)

	// SymbolEOF is the reserved end-of-input terminal. It is never produced
	// by a lexer rule; token streams report it via the EOF token.
	SymbolEOF = Symbol(maskKindPart | maskReservedBit | symbolNumEOF)

	// The symbol name contains `<` and `>` to avoid conflicting with user-defined symbols.
	symbolNameEOF = "<eof>"

	nonTerminalNumMin = symbolNum(1)
	terminalNumMin    = symbolNum(2) // the number 1 is used by the EOF symbol
	symbolNumMax      = symbolNum(0x3fff)
)

func newSymbol(kind symbolKind, num symbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}
	kindMask := uint16(0)
	if kind == symbolKindTerminal {
		kindMask = maskKindPart
	}
	return Symbol(kindMask | uint16(num)), nil
}

func (s Symbol) String() string {
	kind, reserved, num := s.describe()
	var prefix string
	switch {
	case reserved:
		prefix = "e"
	case kind == symbolKindNonTerminal:
		prefix = "n"
	default:
		prefix = "t"
	}
	return fmt.Sprintf("%v%v", prefix, num)
}

func (s Symbol) num() symbolNum {
	_, _, num := s.describe()
	return num
}

// IsNil reports whether s is the zero Symbol.
func (s Symbol) IsNil() bool {
	return s.num() == 0
}

// IsEOF reports whether s is the reserved end-of-input terminal.
func (s Symbol) IsEOF() bool {
	return s == SymbolEOF
}

// IsNonTerminal reports whether s identifies a non-terminal.
func (s Symbol) IsNonTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _, _ := s.describe()
	return kind == symbolKindNonTerminal
}

// IsTerminal reports whether s identifies a terminal. The end-of-input symbol
// counts as a terminal.
func (s Symbol) IsTerminal() bool {
	if s.IsNil() {
		return false
	}
	return !s.IsNonTerminal()
}

func (s Symbol) describe() (symbolKind, bool, symbolNum) {
	kind := symbolKindNonTerminal
	if uint16(s)&maskKindPart > 0 {
		kind = symbolKindTerminal
	}
	reserved := uint16(s)&maskReservedBit > 0
	num := symbolNum(uint16(s) & maskNumberPart)
	return kind, reserved, num
}

// SymbolTable maps symbol names to Symbols and back. Each name belongs to
// exactly one vocabulary; registering a name under both kinds is an error,
// which keeps the terminal and non-terminal vocabularies disjoint.
type SymbolTable struct {
	text2Sym     map[string]Symbol
	sym2Text     map[Symbol]string
	nonTermTexts []string
	termTexts    []string
	nonTermNum   symbolNum
	termNum      symbolNum
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			symbolNameEOF: SymbolEOF,
		},
		sym2Text: map[Symbol]string{
			SymbolEOF: symbolNameEOF,
		},
		termTexts: []string{
			"",            // Nil
			symbolNameEOF, // EOF
		},
		nonTermTexts: []string{
			"", // Nil
		},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

func (t *SymbolTable) registerNonTerminal(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNil, fmt.Errorf("symbol %v is already registered as a %v", text, symbolKindTerminal)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindNonTerminal, t.nonTermNum)
	if err != nil {
		return SymbolNil, err
	}
	t.nonTermNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	t.nonTermTexts = append(t.nonTermTexts, text)
	return sym, nil
}

func (t *SymbolTable) registerTerminal(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		if !sym.IsTerminal() {
			return SymbolNil, fmt.Errorf("symbol %v is already registered as a %v", text, symbolKindNonTerminal)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindTerminal, t.termNum)
	if err != nil {
		return SymbolNil, err
	}
	t.termNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	t.termTexts = append(t.termTexts, text)
	return sym, nil
}

// ToSymbol looks up the symbol registered under text.
func (t *SymbolTable) ToSymbol(text string) (Symbol, bool) {
	sym, ok := t.text2Sym[text]
	return sym, ok
}

// ToText looks up the name of sym.
func (t *SymbolTable) ToText(sym Symbol) (string, bool) {
	text, ok := t.sym2Text[sym]
	return text, ok
}

// TerminalSymbols returns all registered terminals, including the EOF symbol,
// in ascending symbol order.
func (t *SymbolTable) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, t.termNum.Int()-1)
	for sym := range t.sym2Text {
		if !sym.IsTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// NonTerminalSymbols returns all registered non-terminals in ascending symbol
// order, which is their registration order.
func (t *SymbolTable) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, t.nonTermNum.Int()-1)
	for sym := range t.sym2Text {
		if !sym.IsNonTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

func (t *SymbolTable) terminalCount() int {
	return t.termNum.Int()
}

func (t *SymbolTable) nonTerminalCount() int {
	return t.nonTermNum.Int()
}
