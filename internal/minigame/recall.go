package minigame

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
)

var memorySymbols = []string{"BOOK", "PEN", "CAP", "MEMO"}

type card struct {
	symbol  string
	matched bool
}

// memory is a pairs game. Mismatches only cost time; it cannot be failed.
type memory struct {
	cards    []card
	feedback string
}

func newMemory(rng *core.RNG) *memory {
	m := &memory{}
	for _, s := range memorySymbols {
		m.cards = append(m.cards, card{symbol: s}, card{symbol: s})
	}
	rng.Shuffle(len(m.cards), func(i, j int) {
		m.cards[i], m.cards[j] = m.cards[j], m.cards[i]
	})
	return m
}

func (m *memory) Kind() gamestate.TaskKind { return gamestate.TaskMemory }
func (m *memory) Placeholder() string { return "two card numbers, e.g. 1 5" }
func (m *memory) Feedback() string { return m.feedback }

func (m *memory) Prompt() []string {
	var row strings.Builder
	for i, c := range m.cards {
		if i > 0 {
			row.WriteString(" ")
		}
		if c.matched {
			fmt.Fprintf(&row, "[%s]", c.symbol)
		} else {
			fmt.Fprintf(&row, "[ %d ]", i+1)
		}
	}
	return []string{"Match all the pairs!", "", row.String(), "", fmt.Sprintf("%d / %d pairs", m.matchedPairs(), len(m.cards)/2)}
}

func (m *memory) Submit(input string) Outcome {
	fields := strings.Fields(strings.ReplaceAll(input, ",", " "))
	if len(fields) != 2 {
		m.feedback = "Flip two cards by number."
		return Pending
	}
	a, errA := strconv.Atoi(fields[0])
	b, errB := strconv.Atoi(fields[1])
	if errA != nil || errB != nil || a == b || !m.faceDown(a-1) || !m.faceDown(b-1) {
		m.feedback = "Pick two different face-down cards."
		return Pending
	}

	first, second := &m.cards[a-1], &m.cards[b-1]
	if first.symbol != second.symbol {
		m.feedback = fmt.Sprintf("%d is %s, %d is %s. No match.", a, first.symbol, b, second.symbol)
		return Pending
	}
	first.matched, second.matched = true, true
	if m.matchedPairs() == len(m.cards)/2 {
		m.feedback = "Task Completed!"
		return Solved
	}
	m.feedback = "Match!"
	return Pending
}

func (m *memory) faceDown(i int) bool {
	return i >= 0 && i < len(m.cards) && !m.cards[i].matched
}

func (m *memory) matchedPairs() int {
	n := 0
	for _, c := range m.cards {
		if c.matched {
			n++
		}
	}
	return n / 2
}

var noteTermSets = [][]string{
	{"Focus", "Study", "Learn", "Practice"},
	{"Read", "Write", "Review", "Prepare"},
	{"Plan", "Execute", "Complete", "Succeed"},
	{"Think", "Analyze", "Solve", "Achieve"},
}

// notes asks for every term of a set to be typed once.
type notes struct {
	terms     []string
	memorized []string
	feedback  string
}

func newNotes(rng *core.RNG) *notes {
	return &notes{terms: pick(rng, noteTermSets)}
}

func (n *notes) Kind() gamestate.TaskKind { return gamestate.TaskNotes }
func (n *notes) Placeholder() string { return "type a term" }
func (n *notes) Feedback() string { return n.feedback }

func (n *notes) Prompt() []string {
	lines := []string{"Type each word to memorize it:", ""}
	for _, t := range n.terms {
		mark := "  "
		if slices.Contains(n.memorized, t) {
			mark = "✓ "
		}
		lines = append(lines, mark+t)
	}
	return append(lines, "", fmt.Sprintf("%d / %d memorized", len(n.memorized), len(n.terms)))
}

func (n *notes) Submit(input string) Outcome {
	word := normalize(input)
	if word == "" {
		return Pending
	}
	i := slices.IndexFunc(n.terms, func(t string) bool { return strings.ToLower(t) == word })
	if i < 0 {
		n.feedback = fmt.Sprintf("%q is not on the list.", strings.TrimSpace(input))
		return Pending
	}
	if !slices.Contains(n.memorized, n.terms[i]) {
		n.memorized = append(n.memorized, n.terms[i])
	}
	if len(n.memorized) == len(n.terms) {
		n.feedback = "Task Completed!"
		return Solved
	}
	n.feedback = "Memorized " + n.terms[i] + "."
	return Pending
}
