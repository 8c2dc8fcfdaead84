package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wudi/phlex/ast"
	"github.com/wudi/phlex/parser"
)

var parseCommand = &cli.Command{
	Name:  "parse",
	Usage: "parse a source file and print its AST",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "input file (default: stdin)",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "output format: json or tree",
			Value: "json",
		},
	},
	Action: parseAction,
}

func parseAction(ctx context.Context, cmd *cli.Command) error {
	src, err := readInput(cmd.String("file"))
	if err != nil {
		return err
	}

	prog, perr := parser.ParseSource(src)
	if perr != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", perr)
		os.Exit(1)
		return nil
	}

	switch cmd.String("format") {
	case "tree":
		printTree(os.Stdout, prog, 0)
		return nil
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(prog)
	}
}

// printTree renders the generic Node.Children() traversal spec.md §6
// requires every AST node to support, as an indented outline.
func printTree(w io.Writer, n ast.Node, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), n.Tag())
	for _, child := range n.Children() {
		if child == nil {
			continue
		}
		printTree(w, child, depth+1)
	}
}
