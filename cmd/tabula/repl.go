package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/yuin8/tabula/driver/lexer"
	"github.com/yuin8/tabula/driver/parser"
	"github.com/yuin8/tabula/grammar"
)

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar file path>",
		Short:   "Parse one input per line interactively",
		Example: `  tabula repl grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runRepl,
	}
	rootCmd.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	cgram, err := grammar.Compile(gram)
	if err != nil {
		return err
	}
	lexSpec, err := lexer.Compile(gram)
	if err != nil {
		return err
	}

	rl, err := readline.New("tabula> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		p, err := parser.NewParser(cgram, parser.NewTokenStream(lexSpec, line))
		if err != nil {
			return err
		}
		tree, err := p.Parse()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		parser.PrintTree(os.Stdout, tree)
	}
}
