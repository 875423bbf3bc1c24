package automata

import (
	"fmt"
	"sort"
	"strings"
)

// DFA is a deterministic finite automaton over a rune alphabet. State 0 is
// the initial state and the transition table is total, so a run never gets
// stuck on a symbol the alphabet knows.
type DFA struct {
	marks      []int
	alphabet   []rune
	transition [][]int
	symbols    map[rune]int
}

// State labels a DFA state for NewDFA. The label only matters as a name for
// Arrow targets.
type State struct {
	Label     rune
	Accepting bool
}

// Arrow sends Symbol to the state labeled Target.
type Arrow struct {
	Symbol rune
	Target rune
}

// NewDFA builds a machine from labeled states. The first state is the
// initial state and transitions[i] lists the arrows leaving states[i];
// symbols without an arrow fall back to the initial state. Accepting states
// carry mark 1.
func NewDFA(states []State, alphabet string, transitions [][]Arrow) (*DFA, error) {
	stateIndex := make(map[rune]int, len(states))
	marks := make([]int, len(states))
	for i, s := range states {
		stateIndex[s.Label] = i
		if s.Accepting {
			marks[i] = 1
		}
	}

	runes := []rune(alphabet)
	symbols := make(map[rune]int, len(runes))
	for i, r := range runes {
		symbols[r] = i
	}

	transition := make([][]int, len(states))
	for i := range transition {
		transition[i] = make([]int, len(runes))
	}
	for from, arrows := range transitions {
		if from >= len(states) {
			return nil, fmt.Errorf("transitions for unknown state %d", from)
		}
		for _, arrow := range arrows {
			symbol, ok := symbols[arrow.Symbol]
			if !ok {
				return nil, fmt.Errorf("symbol %q is not in the alphabet %q", arrow.Symbol, alphabet)
			}
			target, ok := stateIndex[arrow.Target]
			if !ok {
				return nil, fmt.Errorf("arrow to unknown state %q", arrow.Target)
			}
			transition[from][symbol] = target
		}
	}

	return &DFA{marks: marks, alphabet: runes, transition: transition, symbols: symbols}, nil
}

// SubsetConstruct determinizes nfa. Each DFA state stands for a set of NFA
// states closed under epsilon transitions and takes the highest mark in the
// set.
func SubsetConstruct(nfa *NFA) *DFA {
	width := len(nfa.alphabet)
	start := nfa.epsilonClosure([]int{0})

	subsetIndex := map[string]int{fmt.Sprint(start): 0}
	transition := [][]int{make([]int, width)}
	marks := []int{nfa.markOf(start)}

	stack := [][]int{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		currentIndex := subsetIndex[fmt.Sprint(current)]

		for symbol := 0; symbol < width; symbol++ {
			var move []int
			seen := map[int]bool{}
			for _, s := range current {
				for _, t := range nfa.transition[s][symbol] {
					if !seen[t] {
						seen[t] = true
						move = append(move, t)
					}
				}
			}
			sort.Ints(move)
			candidate := nfa.epsilonClosure(move)

			key := fmt.Sprint(candidate)
			index, ok := subsetIndex[key]
			if !ok {
				index = len(transition)
				subsetIndex[key] = index
				transition = append(transition, make([]int, width))
				marks = append(marks, nfa.markOf(candidate))
				stack = append(stack, candidate)
			}
			transition[currentIndex][symbol] = index
		}
	}

	symbols := make(map[rune]int, width)
	for i, r := range nfa.alphabet {
		symbols[r] = i
	}

	return &DFA{
		marks:      marks,
		alphabet:   append([]rune{}, nfa.alphabet...),
		transition: transition,
		symbols:    symbols,
	}
}

// Accepts reports whether the machine accepts word. A symbol outside the
// alphabet rejects immediately.
func (d *DFA) Accepts(word string) bool {
	state := 0
	for _, r := range word {
		symbol, ok := d.symbols[r]
		if !ok {
			return false
		}
		state = d.transition[state][symbol]
	}
	return d.marks[state] != 0
}

// LongestAccepted runs the machine over input by maximal munch: it returns
// the longest nonempty prefix that ends in an accepting state together with
// that state's mark. The run stops at the first byte outside the alphabet.
// When no such prefix exists the lexeme is empty and the mark is 0.
func (d *DFA) LongestAccepted(input []byte) ([]byte, int) {
	state := 0
	length, mark := 0, 0
	for i, b := range input {
		symbol, ok := d.symbols[rune(b)]
		if !ok {
			break
		}
		state = d.transition[state][symbol]
		if d.marks[state] != 0 {
			length, mark = i+1, d.marks[state]
		}
	}
	return input[:length], mark
}

func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q\n", string(d.alphabet))
	for state, row := range d.transition {
		fmt.Fprintf(&b, "%d %v %d\n", state, row, d.marks[state])
	}
	return b.String()
}
