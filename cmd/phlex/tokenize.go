package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wudi/phlex/lexer"
)

var tokenizeCommand = &cli.Command{
	Name:    "tokenize",
	Aliases: []string{"lex"},
	Usage:   "print the token stream for a source file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "input file (default: stdin)",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "emit tokens as a JSON array instead of one-per-line text",
		},
	},
	Action: tokenizeAction,
}

func tokenizeAction(ctx context.Context, cmd *cli.Command) error {
	src, err := readInput(cmd.String("file"))
	if err != nil {
		return err
	}

	lx := lexer.New()
	tokens, synErr := lx.Tokenize(src)
	if synErr != nil {
		fmt.Fprintf(os.Stderr, "Lex error: %v\n", synErr)
		os.Exit(1)
		return nil
	}

	if cmd.Bool("json") {
		return printTokensJSON(os.Stdout, tokens)
	}
	printTokensText(os.Stdout, tokens)
	return nil
}

func printTokensText(w io.Writer, tokens []lexer.Token) {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%4d: %s\n", i, tok)
	}
}

func printTokensJSON(w io.Writer, tokens []lexer.Token) error {
	type jsonToken struct {
		Kind   string `json:"kind"`
		Value  string `json:"value,omitempty"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}
	out := make([]jsonToken, len(tokens))
	for i, tok := range tokens {
		out[i] = jsonToken{
			Kind:   tok.Kind.String(),
			Value:  tok.Value.String(),
			Line:   tok.Span.Line,
			Column: tok.Span.Column,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
