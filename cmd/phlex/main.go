// Command phlex is the CLI front end for the lexer/parser library
// (spec.md §6, "CLI front end"). It is a thin consumer: everything it
// does reduces to a call into package lexer or package parser followed
// by formatting the result.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "phlex",
		Usage: "tokenize and parse PHP-like source files",
		Commands: []*cli.Command{
			tokenizeCommand,
			parseCommand,
			replCommand,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Println("phlex: tokenize and parse PHP-like source files")
			fmt.Println("Commands: tokenize, parse, repl")
			fmt.Println("Run 'phlex <command> --help' for command-specific options.")
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readInput reads the file named by path, or stdin when path is "" or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
