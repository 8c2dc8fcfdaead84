package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v3"

	"github.com/wudi/phlex/parser"
)

var replCommand = &cli.Command{
	Name:  "repl",
	Usage: "read one script at a time and print its parse result or first diagnostic",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return runREPL()
	},
}

func runREPL() error {
	rl, err := readline.New("phlex> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("phlex interactive parser. Enter a script, end with a blank line; Ctrl+D to quit.")

	for {
		var lines []string
		for {
			line, err := rl.Readline()
			if err != nil {
				return nil
			}
			if strings.TrimSpace(line) == "" {
				break
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}

		src := strings.Join(lines, "\n")
		rl.SaveHistory(src)

		prog, perr := parser.ParseSource([]byte(src))
		if perr != nil {
			fmt.Printf("Parse error: %v\n", perr)
			continue
		}
		fmt.Printf("parsed %d statement(s)\n", len(prog.Statements))
		for i, stmt := range prog.Statements {
			fmt.Printf("  %d: %s\n", i, stmt.Tag())
		}
	}
}
