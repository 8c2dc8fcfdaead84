// Command phlex-fixture is the golden-file test harness collaborator
// named in spec.md §6: it walks a directory of fixtures, parses (or
// tokenizes) each one, and compares the result against a golden file.
// It is a thin consumer of the lexer/parser library — no parsing logic
// lives here.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/wudi/phlex/ast"
	"github.com/wudi/phlex/lexer"
	"github.com/wudi/phlex/parser"
)

// Manifest describes the fixtures under a directory, read from
// manifest.yaml. Each entry names an input file relative to the
// manifest and the golden file its output is checked against.
type Manifest struct {
	Fixtures []FixtureSpec `yaml:"fixtures"`
}

// FixtureSpec is one manifest entry. Kind selects which golden file
// comparison applies: "ast" (default) parses the input and compares the
// printed tree against Golden; "lexer-error" and "parser-error" expect
// tokenizing or parsing to fail and compare the error message.
type FixtureSpec struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Golden string `yaml:"golden"`
	Kind   string `yaml:"kind"`
}

// Result is one fixture's outcome, part of the JSON report this command
// prints to stdout.
type Result struct {
	Name   string `json:"name"`
	Pass   bool   `json:"pass"`
	Detail string `json:"detail,omitempty"`
}

// Report is the harness's JSON summary for one run.
type Report struct {
	RunID     string        `json:"run_id"`
	Dir       string        `json:"dir"`
	Timestamp string        `json:"timestamp"`
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Results   []Result      `json:"results"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: phlex-fixture <fixtures-dir>")
		os.Exit(2)
	}
	dir := os.Args[1]

	report, err := runFixtures(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)

	if report.Failed > 0 {
		os.Exit(1)
	}
}

func runFixtures(dir string) (*Report, error) {
	manifestPath := filepath.Join(dir, "manifest.yaml")
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	start := time.Now()
	report := &Report{
		RunID:     uuid.New().String(),
		Dir:       dir,
		Timestamp: start.UTC().Format(time.RFC3339),
	}

	for _, spec := range manifest.Fixtures {
		result := runFixture(dir, spec)
		report.Results = append(report.Results, result)
		report.Total++
		if result.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	report.Elapsed = time.Since(start)

	return report, nil
}

func runFixture(dir string, spec FixtureSpec) Result {
	inputPath := filepath.Join(dir, spec.Input)
	goldenPath := filepath.Join(dir, spec.Golden)

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return Result{Name: spec.Name, Pass: false, Detail: fmt.Sprintf("reading input: %v", err)}
	}

	wantBytes, err := os.ReadFile(goldenPath)
	if err != nil {
		return Result{Name: spec.Name, Pass: false, Detail: fmt.Sprintf("reading golden: %v", err)}
	}
	want := strings.TrimRight(string(wantBytes), "\n")

	var got string
	switch spec.Kind {
	case "lexer-error":
		lx := lexer.New()
		_, synErr := lx.Tokenize(src)
		if synErr == nil {
			return Result{Name: spec.Name, Pass: false, Detail: "expected a lexer error, tokenizing succeeded"}
		}
		got = synErr.Error()
	case "parser-error":
		_, perr := parser.ParseSource(src)
		if perr == nil {
			return Result{Name: spec.Name, Pass: false, Detail: "expected a parser error, parsing succeeded"}
		}
		got = perr.Error()
	default:
		prog, perr := parser.ParseSource(src)
		if perr != nil {
			return Result{Name: spec.Name, Pass: false, Detail: fmt.Sprintf("unexpected parse error: %v", perr)}
		}
		got = renderTree(prog, 0)
	}

	got = strings.TrimRight(got, "\n")
	if got != want {
		return Result{Name: spec.Name, Pass: false, Detail: fmt.Sprintf("mismatch:\n--- want ---\n%s\n--- got ---\n%s", want, got)}
	}
	return Result{Name: spec.Name, Pass: true}
}

func renderTree(n ast.Node, depth int) string {
	var b strings.Builder
	writeTree(&b, n, depth)
	return b.String()
}

func writeTree(b *strings.Builder, n ast.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Tag())
	b.WriteByte('\n')
	for _, child := range n.Children() {
		if child == nil {
			continue
		}
		writeTree(b, child, depth+1)
	}
}
