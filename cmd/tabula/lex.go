package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yuin8/tabula/driver/lexer"
)

var lexFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "lex <grammar file path>",
		Short:   "Tokenize a text stream according to the grammar's lexical rules",
		Example: `  cat src | tabula lex grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runLex,
	}
	lexFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	lexSpec, err := lexer.Compile(gram)
	if err != nil {
		return err
	}
	src, err := readSource(*lexFlags.source)
	if err != nil {
		return err
	}

	toks, err := lexer.Tokenize(lexSpec, src)
	if err != nil {
		return err
	}
	for _, tok := range toks {
		if tok.EOF {
			break
		}
		fmt.Printf("%v:%v  %v  %#v\n", tok.Row+1, tok.Col+1, tok.KindName, tok.Lexeme)
	}
	return nil
}
