package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yuin8/tabula/grammar"
)

var showFlags = struct {
	strict *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar file path>",
		Short:   "Print the FIRST/FOLLOW sets and the LL(1) parsing table of a grammar",
		Example: `  tabula show grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	showFlags.strict = cmd.Flags().Bool("strict", false, "fail when the parsing table has conflicting cells")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	cgram, err := grammar.Compile(gram)
	if err != nil {
		return err
	}

	symTab := gram.SymbolTable()

	pterm.DefaultSection.Println("Productions")
	for _, prod := range gram.Productions() {
		fmt.Printf("  %3d. %v\n", prod.Num(), productionString(gram, prod))
	}

	pterm.DefaultSection.Println("FIRST / FOLLOW")
	setData := pterm.TableData{{"non-terminal", "FIRST", "FOLLOW"}}
	for _, nt := range symTab.NonTerminalSymbols() {
		name, _ := symTab.ToText(nt)
		fst := cgram.First().FindBySymbol(nt)
		if fst == nil {
			continue
		}
		flw, err := cgram.Follow().Find(nt)
		if err != nil {
			return err
		}
		setData = append(setData, []string{name, firstString(symTab, fst), followString(symTab, flw)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(setData).Render()

	pterm.DefaultSection.Println("LL(1) parsing table")
	terms := symTab.TerminalSymbols()
	header := []string{""}
	for _, term := range terms {
		name, _ := symTab.ToText(term)
		header = append(header, name)
	}
	tabData := pterm.TableData{header}
	for _, nt := range symTab.NonTerminalSymbols() {
		name, _ := symTab.ToText(nt)
		row := []string{name}
		for _, term := range terms {
			if prod, ok := cgram.ParsingTable().Find(nt, term); ok {
				row = append(row, fmt.Sprintf("#%d", prod.Num()))
			} else {
				row = append(row, "")
			}
		}
		tabData = append(tabData, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(tabData).Render()

	if conflicts := cgram.Conflicts(); len(conflicts) > 0 {
		pterm.DefaultSection.Println("Conflicts")
		for _, c := range conflicts {
			ntName, _ := symTab.ToText(c.NonTerminal)
			termName, _ := symTab.ToText(c.Terminal)
			fmt.Printf("  cell (%v, %v): #%d overwrites #%d\n", ntName, termName, c.Winner.Num(), c.Loser.Num())
		}
		if *showFlags.strict {
			return cgram.ValidateLL1()
		}
	}

	return nil
}

func productionString(gram *grammar.Grammar, prod *grammar.Production) string {
	symTab := gram.SymbolTable()
	lhsName, _ := symTab.ToText(prod.LHS())
	if prod.IsEmpty() {
		return lhsName + " -> ε"
	}
	var rhsNames []string
	for _, sym := range prod.RHS() {
		name, _ := symTab.ToText(sym)
		rhsNames = append(rhsNames, name)
	}
	return lhsName + " -> " + strings.Join(rhsNames, " ")
}

func firstString(symTab *grammar.SymbolTable, e *grammar.FirstEntry) string {
	var names []string
	for _, sym := range e.Symbols() {
		name, _ := symTab.ToText(sym)
		names = append(names, name)
	}
	if e.ContainsEmpty() {
		names = append(names, "ε")
	}
	return strings.Join(names, " ")
}

func followString(symTab *grammar.SymbolTable, e *grammar.FollowEntry) string {
	var names []string
	for _, sym := range e.Symbols() {
		name, _ := symTab.ToText(sym)
		names = append(names, name)
	}
	if e.ContainsEOF() {
		names = append(names, "$")
	}
	return strings.Join(names, " ")
}
