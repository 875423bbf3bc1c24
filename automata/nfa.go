package automata

import (
	"fmt"
	"strings"
)

// NFA is a nondeterministic finite automaton over a rune alphabet. State 0 is
// the initial state. Accepting states carry a positive mark; in a union of
// machines the mark tells which machine accepted.
type NFA struct {
	marks      []int
	alphabet   []rune
	transition [][][]int // [state][symbol] -> target states; the last column is epsilon
	symbols    map[rune]int
}

type InvalidRegexError struct {
	Regex  string
	Reason string
}

func (e InvalidRegexError) Error() string {
	return fmt.Sprintf("invalid regex %q: %s", e.Regex, e.Reason)
}

// NewNFA builds a machine accepting the language of regex over alphabet via
// Thompson construction. The regex supports `|`, `*`, grouping parentheses,
// implicit concatenation and backslash escapes, with `\e` meaning epsilon.
// The accepting state carries mark, which must be positive.
func NewNFA(regex, alphabet string, mark int) (*NFA, error) {
	runes := []rune(alphabet)

	frag, err := fragmentFromRegex(regex, runes)
	if err != nil {
		return nil, err
	}

	// add a fresh accepting state and wire the fragment's dangling
	// out-arrow to it
	width := len(runes) + 1
	transition := append(frag.transition, make([][]int, width))
	final := len(transition) - 1
	transition[frag.outState][frag.outSymbol] = append(transition[frag.outState][frag.outSymbol], final)

	marks := make([]int, len(transition))
	marks[final] = mark

	symbols := make(map[rune]int, len(runes))
	for i, r := range runes {
		symbols[r] = i
	}

	return &NFA{marks: marks, alphabet: runes, transition: transition, symbols: symbols}, nil
}

// Union merges machines under a new initial state with epsilon transitions to
// each of their initial states. Every accepting state keeps the mark of the
// machine it came from.
func Union(nfas ...*NFA) *NFA {
	// merged alphabet keeps first-seen symbol order
	var alphabet []rune
	symbols := map[rune]int{}
	marks := []int{0}
	for _, nfa := range nfas {
		for _, r := range nfa.alphabet {
			if _, ok := symbols[r]; !ok {
				symbols[r] = len(alphabet)
				alphabet = append(alphabet, r)
			}
		}
		marks = append(marks, nfa.marks...)
	}

	width := len(alphabet) + 1
	epsilon := width - 1
	transition := [][][]int{make([][]int, width)}

	starts := []int{}
	offset := 1
	for _, nfa := range nfas {
		starts = append(starts, offset)
		subEpsilon := len(nfa.alphabet)
		for _, row := range nfa.transition {
			newRow := make([][]int, width)
			for symbolIndex, targets := range row {
				if targets == nil {
					continue
				}
				translated := make([]int, len(targets))
				for i, t := range targets {
					translated[i] = offset + t
				}
				if symbolIndex == subEpsilon {
					newRow[epsilon] = translated
				} else {
					newRow[symbols[nfa.alphabet[symbolIndex]]] = translated
				}
			}
			transition = append(transition, newRow)
		}
		offset += len(nfa.transition)
	}
	transition[0][epsilon] = starts

	return &NFA{marks: marks, alphabet: alphabet, transition: transition, symbols: symbols}
}

// epsilonClosure returns every state reachable from states through epsilon
// transitions alone, states themselves included, in ascending order.
func (n *NFA) epsilonClosure(states []int) []int {
	epsilon := len(n.alphabet)
	inClosure := make([]bool, len(n.transition))

	stack := append([]int{}, states...)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if inClosure[s] {
			continue
		}
		inClosure[s] = true
		for _, t := range n.transition[s][epsilon] {
			if !inClosure[t] {
				stack = append(stack, t)
			}
		}
	}

	var closure []int
	for s, ok := range inClosure {
		if ok {
			closure = append(closure, s)
		}
	}
	return closure
}

// markOf returns the highest mark among states. Machines added later carry
// higher marks, so they win when a subset accepts for more than one machine.
func (n *NFA) markOf(states []int) int {
	mark := 0
	for _, s := range states {
		if n.marks[s] > mark {
			mark = n.marks[s]
		}
	}
	return mark
}

func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q\n", string(n.alphabet))
	for state, row := range n.transition {
		fmt.Fprintf(&b, "%d %v %d\n", state, row, n.marks[state])
	}
	return b.String()
}

// fragment is a partially built machine with one dangling out-arrow
// (outState, outSymbol) waiting to be wired to whatever comes next.
type fragment struct {
	transition [][][]int
	outState   int
	outSymbol  int
}

const operators = ")(|+*" // lowest to highest precedence

func prec(op rune) int {
	return strings.IndexRune(operators, op)
}

// regexToPostfix makes concatenation explicit as `+` and converts the regex
// to postfix with a shunting-yard pass. Escaped characters travel as a
// backslash followed by the raw character.
func regexToPostfix(regex string) ([]rune, error) {
	var tokens []rune
	previousWasTerm := false
	escape := false
	for _, r := range regex {
		if escape {
			tokens = append(tokens, r)
			escape = false
			previousWasTerm = true
			continue
		}
		isOperator := strings.ContainsRune(operators, r)
		if previousWasTerm && (r == '(' || !isOperator) {
			tokens = append(tokens, '+')
		}
		if r == '\\' {
			tokens = append(tokens, r)
			escape = true
			continue
		}
		previousWasTerm = r == ')' || r == '*' || !isOperator
		tokens = append(tokens, r)
	}
	if escape {
		return nil, InvalidRegexError{Regex: regex, Reason: "trailing escape"}
	}

	var postfix, stack []rune
	for _, r := range tokens {
		if escape {
			postfix = append(postfix, r)
			escape = false
			continue
		}
		if r == '\\' {
			postfix = append(postfix, r)
			escape = true
			continue
		}
		switch {
		case r == '(':
			stack = append(stack, r)
		case r == ')':
			for {
				if len(stack) == 0 {
					return nil, InvalidRegexError{Regex: regex, Reason: "unmatched `)`"}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top == '(' {
					break
				}
				postfix = append(postfix, top)
			}
		case strings.ContainsRune(operators, r):
			for len(stack) > 0 && prec(stack[len(stack)-1]) >= prec(r) {
				postfix = append(postfix, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, r)
		default:
			postfix = append(postfix, r)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top == '(' {
			return nil, InvalidRegexError{Regex: regex, Reason: "unmatched `(`"}
		}
		postfix = append(postfix, top)
	}

	return postfix, nil
}

func fragmentFromRegex(regex string, alphabet []rune) (fragment, error) {
	postfix, err := regexToPostfix(regex)
	if err != nil {
		return fragment{}, err
	}

	var stack []fragment
	pop := func() (fragment, bool) {
		if len(stack) == 0 {
			return fragment{}, false
		}
		frag := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return frag, true
	}

	escape := false
	for _, r := range postfix {
		if escape {
			escape = false
			if r == 'e' {
				stack = append(stack, epsilonFragment(alphabet))
				continue
			}
			frag, err := symbolFragment(r, alphabet, regex)
			if err != nil {
				return fragment{}, err
			}
			stack = append(stack, frag)
			continue
		}
		if r == '\\' {
			escape = true
			continue
		}

		if !strings.ContainsRune(operators, r) {
			frag, err := symbolFragment(r, alphabet, regex)
			if err != nil {
				return fragment{}, err
			}
			stack = append(stack, frag)
			continue
		}

		switch r {
		case '*':
			frag, ok := pop()
			if !ok {
				return fragment{}, InvalidRegexError{Regex: regex, Reason: "`*` needs an operand"}
			}
			stack = append(stack, starFragment(frag))
		case '+':
			second, okSecond := pop()
			first, okFirst := pop()
			if !okSecond || !okFirst {
				return fragment{}, InvalidRegexError{Regex: regex, Reason: "concatenation needs two operands"}
			}
			stack = append(stack, concatFragments(first, second))
		case '|':
			second, okSecond := pop()
			first, okFirst := pop()
			if !okSecond || !okFirst {
				return fragment{}, InvalidRegexError{Regex: regex, Reason: "`|` needs two operands"}
			}
			stack = append(stack, unionFragments(first, second))
		default:
			return fragment{}, InvalidRegexError{Regex: regex, Reason: fmt.Sprintf("unexpected operator %q", r)}
		}
	}

	if len(stack) != 1 {
		return fragment{}, InvalidRegexError{Regex: regex, Reason: "empty or unbalanced expression"}
	}
	return stack[0], nil
}

func symbolFragment(symbol rune, alphabet []rune, regex string) (fragment, error) {
	for i, r := range alphabet {
		if r == symbol {
			return fragment{
				transition: [][][]int{make([][]int, len(alphabet)+1)},
				outState:   0,
				outSymbol:  i,
			}, nil
		}
	}
	return fragment{}, InvalidRegexError{Regex: regex, Reason: fmt.Sprintf("symbol %q is not in the alphabet", symbol)}
}

func epsilonFragment(alphabet []rune) fragment {
	return fragment{
		transition: [][][]int{make([][]int, len(alphabet)+1)},
		outState:   0,
		outSymbol:  len(alphabet),
	}
}

func (f fragment) shifted(shift int) fragment {
	transition := make([][][]int, len(f.transition))
	for state, row := range f.transition {
		newRow := make([][]int, len(row))
		for symbol, targets := range row {
			if targets == nil {
				continue
			}
			shiftedTargets := make([]int, len(targets))
			for i, t := range targets {
				shiftedTargets[i] = t + shift
			}
			newRow[symbol] = shiftedTargets
		}
		transition[state] = newRow
	}
	return fragment{transition: transition, outState: f.outState + shift, outSymbol: f.outSymbol}
}

func concatFragments(a, b fragment) fragment {
	aStates := len(a.transition)
	b = b.shifted(aStates)

	transition := append(a.transition, b.transition...)
	// wire a's dangling out-arrow to b's initial state
	transition[a.outState][a.outSymbol] = append(transition[a.outState][a.outSymbol], aStates)

	return fragment{transition: transition, outState: b.outState, outSymbol: b.outSymbol}
}

func unionFragments(a, b fragment) fragment {
	width := len(a.transition[0])
	epsilon := width - 1
	aStates := len(a.transition)

	// layout: new initial state, a's states, b's states, new out-state
	a = a.shifted(1)
	b = b.shifted(1 + aStates)

	transition := [][][]int{make([][]int, width)}
	transition = append(transition, a.transition...)
	transition = append(transition, b.transition...)
	transition = append(transition, make([][]int, width))

	out := len(transition) - 1
	transition[0][epsilon] = []int{1, 1 + aStates}
	transition[a.outState][a.outSymbol] = append(transition[a.outState][a.outSymbol], out)
	transition[b.outState][b.outSymbol] = append(transition[b.outState][b.outSymbol], out)

	return fragment{transition: transition, outState: out, outSymbol: epsilon}
}

func starFragment(f fragment) fragment {
	width := len(f.transition[0])
	epsilon := width - 1

	// a new initial state doubles as the out-state, so the empty word is
	// in the language and the body can loop
	f = f.shifted(1)
	transition := append([][][]int{make([][]int, width)}, f.transition...)
	transition[0][epsilon] = []int{1}
	transition[f.outState][f.outSymbol] = append(transition[f.outState][f.outSymbol], 0)

	return fragment{transition: transition, outState: 0, outSymbol: epsilon}
}
