package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin8/tabula/driver/lexer"
	"github.com/yuin8/tabula/driver/parser"
	"github.com/yuin8/tabula/grammar"
)

var parseFlags = struct {
	source *string
	dot    *string
	rename *string
	strict *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a text stream and print the parse tree",
		Example: `  cat src | tabula parse grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.dot = cmd.Flags().String("dot", "", "write the parse tree to a file in GraphViz DOT format")
	parseFlags.rename = cmd.Flags().String("rename", "", "relabel tree nodes; format: old=new[=limit]")
	parseFlags.strict = cmd.Flags().Bool("strict", false, "reject grammars whose parsing table has conflicting cells")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	cgram, err := grammar.Compile(gram)
	if err != nil {
		return err
	}
	if *parseFlags.strict {
		if err := cgram.ValidateLL1(); err != nil {
			return err
		}
	}

	lexSpec, err := lexer.Compile(gram)
	if err != nil {
		return err
	}
	src, err := readSource(*parseFlags.source)
	if err != nil {
		return err
	}

	p, err := parser.NewParser(cgram, parser.NewTokenStream(lexSpec, src))
	if err != nil {
		return err
	}
	tree, err := p.Parse()
	if err != nil {
		return err
	}

	if *parseFlags.rename != "" {
		oldLabel, newLabel, limit, err := splitRenameSpec(*parseFlags.rename)
		if err != nil {
			return err
		}
		tree.Rename(oldLabel, newLabel, limit)
	}

	parser.PrintTree(os.Stdout, tree)

	if *parseFlags.dot != "" {
		if err := writeTreeDOT(*parseFlags.dot, tree); err != nil {
			return err
		}
	}
	return nil
}

func splitRenameSpec(s string) (string, string, int, error) {
	parts := strings.Split(s, "=")
	switch len(parts) {
	case 2:
		return parts[0], parts[1], -1, nil
	case 3:
		limit, err := strconv.Atoi(parts[2])
		if err != nil || limit < 0 {
			return "", "", 0, fmt.Errorf("a rename limit must be a non-negative integer; limit: %v", parts[2])
		}
		return parts[0], parts[1], limit, nil
	default:
		return "", "", 0, fmt.Errorf("a rename spec must have the form old=new[=limit]; spec: %v", s)
	}
}

// writeTreeDOT exports the tree's edge list for a graph renderer.
func writeTreeDOT(path string, tree *parser.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	labels := map[int]string{}
	id := 0
	w := parser.NewWalker(tree)
	for {
		step, ok := w.Next()
		if !ok {
			break
		}
		label := step.Label
		if step.Node.Text != "" && step.Node.Text != label {
			label = fmt.Sprintf("%v\\n%v", label, step.Node.Text)
		}
		labels[id] = label
		id++
	}

	fmt.Fprintln(f, "digraph parsetree {")
	fmt.Fprintln(f, "node [shape=box, fontname=Helvetica, fontsize=10];")
	for i := 0; i < id; i++ {
		fmt.Fprintf(f, "n%03d [label=\"%s\"]\n", i, labels[i])
	}
	for _, e := range parser.Edges(tree) {
		fmt.Fprintf(f, "n%03d -> n%03d\n", e.ParentID, e.ChildID)
	}
	fmt.Fprintln(f, "}")
	return nil
}
