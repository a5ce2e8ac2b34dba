package minigame

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
)

var notebookPhrases = []string{
	"I will focus on my studies",
	"Stay focused and work hard",
	"Complete tasks before deadline",
	"Avoid all distractions today",
	"Success requires dedication",
}

type notebook struct {
	phrase   string
	feedback string
}

func newNotebook(rng *core.RNG) *notebook {
	return &notebook{phrase: pick(rng, notebookPhrases)}
}

func (n *notebook) Kind() gamestate.TaskKind { return gamestate.TaskNotebook }
func (n *notebook) Placeholder() string { return "type the phrase" }
func (n *notebook) Feedback() string { return n.feedback }

func (n *notebook) Prompt() []string {
	return []string{"Type this phrase:", "", fmt.Sprintf("%q", n.phrase)}
}

func (n *notebook) Submit(input string) Outcome {
	if strings.TrimSpace(input) == "" {
		return Pending
	}
	if normalize(input) == strings.ToLower(n.phrase) {
		n.feedback = "Task Completed!"
		return Solved
	}
	n.feedback = "Incorrect Answer!"
	return Failed
}

type problem struct {
	question string
	answer   string
}

var calculatorProblems = []problem{
	{"7 × 8", "56"},
	{"9 × 6", "54"},
	{"12 × 5", "60"},
	{"8 × 9", "72"},
	{"11 × 7", "77"},
	{"6 × 13", "78"},
}

type calculator struct {
	problem  problem
	feedback string
}

func newCalculator(rng *core.RNG) *calculator {
	return &calculator{problem: pick(rng, calculatorProblems)}
}

func (c *calculator) Kind() gamestate.TaskKind { return gamestate.TaskCalculator }
func (c *calculator) Placeholder() string { return "answer" }
func (c *calculator) Feedback() string { return c.feedback }

func (c *calculator) Prompt() []string {
	return []string{"Solve:", "", c.problem.question + " = ?"}
}

func (c *calculator) Submit(input string) Outcome {
	answer := strings.TrimSpace(input)
	if answer == "" {
		return Pending
	}
	if answer == c.problem.answer {
		c.feedback = "Task Completed!"
		return Solved
	}
	c.feedback = "Incorrect Answer!"
	return Failed
}

type quiz struct {
	question string
	options  [4]string
	correct  string
}

var textbookQuizzes = []quiz{
	{"What is the capital of France?", [4]string{"London", "Berlin", "Paris", "Madrid"}, "c"},
	{"What is 2 + 2?", [4]string{"3", "4", "5", "6"}, "b"},
	{"Which planet is closest to the Sun?", [4]string{"Venus", "Earth", "Mercury", "Mars"}, "c"},
	{"How many days are in a week?", [4]string{"5", "6", "7", "8"}, "c"},
}

var optionLetters = [4]string{"A", "B", "C", "D"}

type textbook struct {
	quiz     quiz
	feedback string
}

func newTextbook(rng *core.RNG) *textbook {
	return &textbook{quiz: pick(rng, textbookQuizzes)}
}

func (t *textbook) Kind() gamestate.TaskKind { return gamestate.TaskTextbook }
func (t *textbook) Placeholder() string { return "A-D" }
func (t *textbook) Feedback() string { return t.feedback }

func (t *textbook) Prompt() []string {
	lines := []string{t.quiz.question, ""}
	for i, opt := range t.quiz.options {
		lines = append(lines, fmt.Sprintf("%s) %s", optionLetters[i], opt))
	}
	return lines
}

func (t *textbook) Submit(input string) Outcome {
	choice := normalize(input)
	switch choice {
	case "a", "b", "c", "d":
	default:
		t.feedback = "Pick one of A, B, C or D."
		return Pending
	}
	if choice == t.quiz.correct {
		t.feedback = "Task Completed!"
		return Solved
	}
	t.feedback = "Incorrect Answer!"
	return Failed
}
