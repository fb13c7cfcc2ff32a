// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"xpresso/internal/diag"
	"xpresso/internal/grammar"
	"xpresso/internal/lexer"
	"xpresso/internal/parser"
	"xpresso/internal/parsetree"
	"xpresso/internal/source"
	"xpresso/internal/token"
)

var (
	verbose    bool
	output     string
	showTokens bool
	showTree   bool
	dotPath    string
)

var rootCmd = &cobra.Command{
	Use:   "xpresso <file>",
	Short: "Tokenize and parse an X-presso source file",
	Long: `xpresso runs the X-presso front end over one source file: the lexer
produces a token stream, the parser builds a parse tree, and every
lexical and syntax diagnostic is reported together at the end.

Diagnostics never change the exit status; only an unreadable input
file does.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include whitespace and comment tokens in dumps, print timing")
	rootCmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	rootCmd.Flags().BoolVar(&showTokens, "tokens", false, "print the token dump")
	rootCmd.Flags().BoolVar(&showTree, "tree", false, "print the parse tree")
	rootCmd.Flags().StringVar(&dotPath, "dot", "", "write the parse tree in Graphviz dot format to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	path := args[0]

	cursor, err := source.FromFile(path)
	if err != nil {
		return err
	}

	sink := diag.NewSink()
	lx := lexer.New(cursor, sink)
	tokens := lx.ScanTokens()

	p := parser.NewParser(grammar.New(), tokens, sink)
	tree := p.ParseProgram()

	if dotPath != "" {
		if err := os.WriteFile(dotPath, []byte(tree.DOT()), 0o644); err != nil {
			return fmt.Errorf("write dot file: %w", err)
		}
	}

	switch output {
	case "json":
		return renderJSON(tokens, sink, tree)
	case "text":
		renderText(path, cursor.Source(), tokens, sink, tree, time.Since(startTime))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", output)
	}
}

func renderText(path, src string, tokens []token.Token, sink *diag.Sink, tree *parsetree.Tree, elapsed time.Duration) {
	if showTokens {
		for _, t := range tokens {
			if !verbose && (t.Kind == token.WHITESPACE || t.Kind == token.COMMENT) {
				continue
			}
			fmt.Printf("%-18s %-12q %d:%d\n", t.Kind, t.Lexeme, t.Position.Line, t.Position.Column)
		}
		fmt.Println()
	}

	if showTree {
		fmt.Print(tree.String())
		fmt.Println()
	}

	reporter := diag.NewReporter(path, src)
	fmt.Print(reporter.FormatAll(sink))

	if sink.HasErrors() {
		color.Red("Parsed %s with %d diagnostic(s)", path, sink.Len())
	} else {
		color.Green("Successfully parsed %s", path)
	}
	if verbose {
		fmt.Printf("finished in %s\n", formatDuration(elapsed))
	}
}

type tokenDump struct {
	Type   string `json:"type"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonReport struct {
	Tokens      []tokenDump       `json:"tokens"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
	Tree        *parsetree.Tree   `json:"tree"`
}

func renderJSON(tokens []token.Token, sink *diag.Sink, tree *parsetree.Tree) error {
	report := jsonReport{
		Tokens:      make([]tokenDump, 0, len(tokens)),
		Diagnostics: sink.All(),
		Tree:        tree,
	}
	if report.Diagnostics == nil {
		report.Diagnostics = []diag.Diagnostic{}
	}
	for _, t := range tokens {
		if !verbose && (t.Kind == token.WHITESPACE || t.Kind == token.COMMENT) {
			continue
		}
		report.Tokens = append(report.Tokens, tokenDump{
			Type:   t.Kind.String(),
			Lexeme: t.Lexeme,
			Line:   t.Position.Line,
			Column: t.Position.Column,
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
