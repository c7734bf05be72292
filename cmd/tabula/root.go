package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	verr "github.com/yuin8/tabula/error"
	"github.com/yuin8/tabula/grammar"
	"github.com/yuin8/tabula/spec"
)

var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "Analyze an LL(1) grammar and parse text with it",
	Long: `tabula derives FIRST/FOLLOW sets and an LL(1) parsing table from a grammar
description, tokenizes text against the grammar's lexical rules, and drives a
predictive parser that produces a concrete parse tree.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func readGrammar(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gram, err := spec.Parse(f)
	if err != nil {
		var specErr *verr.SpecError
		if errors.As(err, &specErr) {
			specErr.FilePath = path
			specErr.SourceName = filepath.Base(path)
		}
		return nil, err
	}
	return gram, nil
}

func readSource(path string) (string, error) {
	if path == "" {
		d, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(d), nil
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(d), nil
}
