package automata

import (
	"fmt"
	"strings"
)

// Lexical classes recognized by the scanner battery.
const (
	ClassIgnored     = "ignored"
	ClassIdentifier  = "identifier"
	ClassKeyword     = "keyword"
	ClassOperator    = "operator"
	ClassPunctuation = "punctuation"
	ClassInteger     = "integer"
)

// Classified is a lexeme together with the class of the machine that won it.
type Classified struct {
	Lexeme string
	Class  string
}

type UnclassifiableInputError struct {
	Line   int
	Column int
	Byte   byte
}

func (e UnclassifiableInputError) Error() string {
	return fmt.Sprintf("no machine accepts %q at %d:%d", e.Byte, e.Line, e.Column)
}

type machine struct {
	class string
	dfa   *DFA
}

// battery returns the scanner machines in order. On lexemes of equal length
// the machine listed later wins, so the keyword machine must come after the
// identifier machine to shadow it.
func battery() []machine {
	return []machine{
		{ClassIgnored, ignoredDFA()},
		{ClassIdentifier, identifierDFA()},
		{ClassKeyword, keywordDFA("print")},
		{ClassOperator, singleSymbolDFA("+-*/=")},
		{ClassPunctuation, singleSymbolDFA("();")},
		{ClassInteger, integerDFA()},
	}
}

// Classify splits src into classified lexemes by maximal munch: every
// machine scans the remaining input and the longest lexeme wins, later
// machines winning ties. Ignored lexemes are consumed but not reported.
func Classify(src []byte) ([]Classified, error) {
	machines := battery()

	classified := []Classified{}
	line, column := 1, 1
	rest := src
	for len(rest) > 0 {
		var lexeme []byte
		var class string
		for _, m := range machines {
			candidate, _ := m.dfa.LongestAccepted(rest)
			if len(candidate) > 0 && len(candidate) >= len(lexeme) {
				lexeme, class = candidate, m.class
			}
		}
		if len(lexeme) == 0 {
			return nil, UnclassifiableInputError{Line: line, Column: column, Byte: rest[0]}
		}
		if class != ClassIgnored {
			classified = append(classified, Classified{Lexeme: string(lexeme), Class: class})
		}
		for _, b := range lexeme {
			if b == '\n' {
				line, column = line+1, 1
			} else {
				column++
			}
		}
		rest = rest[len(lexeme):]
	}
	return classified, nil
}

// SymbolTable maps each distinct lexeme to its class, keeping the first
// classification when a lexeme repeats.
func SymbolTable(classified []Classified) map[string]string {
	table := map[string]string{}
	for _, c := range classified {
		if _, ok := table[c.Lexeme]; !ok {
			table[c.Lexeme] = c.Class
		}
	}
	return table
}

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

func mustDFA(dfa *DFA, err error) *DFA {
	if err != nil {
		panic(err)
	}
	return dfa
}

// identifierDFA accepts a letter followed by letters and digits. A leading
// digit falls into a dead state so integers never classify as identifiers.
func identifierDFA() *DFA {
	alphabet := letters + digits
	states := []State{{Label: '0'}, {Label: 'L', Accepting: true}, {Label: 'D'}}

	transitions := make([][]Arrow, len(states))
	for i, s := range states {
		for _, symbol := range alphabet {
			target := s.Label
			if s.Label == '0' {
				if strings.ContainsRune(letters, symbol) {
					target = 'L'
				} else {
					target = 'D'
				}
			}
			transitions[i] = append(transitions[i], Arrow{Symbol: symbol, Target: target})
		}
	}
	return mustDFA(NewDFA(states, alphabet, transitions))
}

// keywordDFA accepts exactly keyword, one state per letter with a shared
// dead state for any wrong turn. The keyword's letters must be distinct
// since they double as state labels.
func keywordDFA(keyword string) *DFA {
	runes := []rune(keyword)

	states := []State{{Label: '0'}}
	for _, r := range runes {
		states = append(states, State{Label: r})
	}
	states[len(states)-1].Accepting = true
	states = append(states, State{Label: 'E'})

	transitions := make([][]Arrow, len(states))
	for i := range states {
		for _, symbol := range runes {
			target := 'E'
			if i < len(runes) && symbol == runes[i] {
				target = runes[i]
			}
			transitions[i] = append(transitions[i], Arrow{Symbol: symbol, Target: target})
		}
	}
	return mustDFA(NewDFA(states, keyword, transitions))
}

// integerDFA accepts one or more digits.
func integerDFA() *DFA {
	states := []State{{Label: '0'}, {Label: 'I', Accepting: true}}

	transitions := make([][]Arrow, len(states))
	for i := range states {
		for _, symbol := range digits {
			transitions[i] = append(transitions[i], Arrow{Symbol: symbol, Target: 'I'})
		}
	}
	return mustDFA(NewDFA(states, digits, transitions))
}

func ignoredDFA() *DFA {
	return singleSymbolDFA(" \t\r\n")
}

// singleSymbolDFA accepts exactly one symbol of alphabet.
func singleSymbolDFA(alphabet string) *DFA {
	states := []State{{Label: '0'}, {Label: '1', Accepting: true}, {Label: 'E'}}

	transitions := make([][]Arrow, len(states))
	for i, s := range states {
		for _, symbol := range alphabet {
			target := '1'
			if s.Label != '0' {
				target = 'E'
			}
			transitions[i] = append(transitions[i], Arrow{Symbol: symbol, Target: target})
		}
	}
	return mustDFA(NewDFA(states, alphabet, transitions))
}
