package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/linea-lang/linea/automata"
	"github.com/linea-lang/linea/driver"
	"github.com/linea-lang/linea/lexer"
	"github.com/linea-lang/linea/linearize"
)

var cli struct {
	Compile CompileCmd `cmd:"" default:"withargs" help:"Compile a program to its operation sequence"`
	Lex     LexCmd     `cmd:"" help:"Print the token stream of a program"`
	Scan    ScanCmd    `cmd:"" help:"Classify a program with the scanner battery"`
	Dfa     DfaCmd     `cmd:"" help:"Build a machine from a regex and try words against it"`
	Repl    ReplCmd    `cmd:"" help:"Compile statements interactively"`
}

func main() {
	ctx := kong.Parse(&cli)
	if err := ctx.Run(); err != nil {
		printDiagnostics(err)
		os.Exit(1)
	}
}

var errorPrefix = color.New(color.FgRed).SprintFunc()

// printDiagnostics prints one line per diagnostic, flattening accumulated
// errors.
func printDiagnostics(err error) {
	if errs, ok := err.(interface{ Unwrap() []error }); ok {
		for _, err := range errs.Unwrap() {
			printDiagnostics(err)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", errorPrefix("error:"), err)
}

type CompileCmd struct {
	Path string `arg:"" help:"Source file to compile."`
}

func (cmd *CompileCmd) Run() error {
	ops, err := driver.CompileFile(cmd.Path)
	if err != nil {
		return err
	}
	fmt.Println(linearize.Render(ops))
	return nil
}

type LexCmd struct {
	Path string `arg:"" help:"Source file to tokenize."`
}

func (cmd *LexCmd) Run() error {
	source, err := os.ReadFile(cmd.Path)
	if err != nil {
		return err
	}
	tokens, err := lexer.Lex(string(source))
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Println(tok)
	}
	return nil
}

type ScanCmd struct {
	Path string `arg:"" help:"Source file to classify."`
}

func (cmd *ScanCmd) Run() error {
	source, err := os.ReadFile(cmd.Path)
	if err != nil {
		return err
	}
	classified, err := automata.Classify(source)
	if err != nil {
		return err
	}
	for _, c := range classified {
		fmt.Printf("%s\t%s\n", c.Lexeme, c.Class)
	}

	fmt.Println()
	fmt.Println("symbol table:")
	table := automata.SymbolTable(classified)
	lexemes := make([]string, 0, len(table))
	for lexeme := range table {
		lexemes = append(lexemes, lexeme)
	}
	sort.Strings(lexemes)
	for _, lexeme := range lexemes {
		fmt.Printf("%s\t%s\n", lexeme, table[lexeme])
	}
	return nil
}

type DfaCmd struct {
	Regex    string `arg:"" help:"Regex to build the machine from."`
	Alphabet string `arg:"" help:"Symbols the machine reads."`
}

func (cmd *DfaCmd) Run() error {
	nfa, err := automata.NewNFA(cmd.Regex, cmd.Alphabet, 1)
	if err != nil {
		return err
	}
	fmt.Println("nfa:")
	fmt.Print(nfa)

	dfa := automata.SubsetConstruct(nfa)
	fmt.Println("dfa:")
	fmt.Print(dfa)

	line := liner.NewLiner()
	defer line.Close()
	for {
		word, err := line.Prompt("word> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}
		line.AppendHistory(word)
		if dfa.Accepts(word) {
			fmt.Println("accepted")
		} else {
			fmt.Println("rejected")
		}
	}
}

type ReplCmd struct{}

var history = filepath.Join(xdg.DataHome, "linea", ".linea_history")

func (cmd *ReplCmd) Run() error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}
		line.AppendHistory(input)

		ops, err := driver.Compile(input)
		if err != nil {
			printDiagnostics(err)
			continue
		}
		fmt.Println(linearize.Render(ops))
	}
}
