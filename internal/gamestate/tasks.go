package gamestate

// TaskKind selects which challenge a task presents.
type TaskKind string

const (
	TaskNotebook   TaskKind = "notebook"
	TaskCalculator TaskKind = "calculator"
	TaskTextbook   TaskKind = "textbook"
	TaskMemory     TaskKind = "memory"
	TaskNotes      TaskKind = "notes"
)

// TaskDef is the fixed description of a task.
type TaskDef struct {
	ID          string
	Name        string
	Description string
	Kind        TaskKind
}

// Task is a TaskDef plus its per-run progress.
// Idle is !Active && !Completed. Completed is terminal until the next run.
type Task struct {
	TaskDef
	Completed bool
	Active    bool
}

// DefaultTasks returns the five study tasks.
func DefaultTasks() []TaskDef {
	return []TaskDef{
		{ID: "notebook", Name: "Write in Notebook", Description: "Copy the focus phrase into your notebook", Kind: TaskNotebook},
		{ID: "calculator", Name: "Solve Math Problem", Description: "Work out the multiplication", Kind: TaskCalculator},
		{ID: "textbook", Name: "Answer Quiz", Description: "Answer the textbook question", Kind: TaskTextbook},
		{ID: "memory", Name: "Memory Cards", Description: "Match all the pairs", Kind: TaskMemory},
		{ID: "notes", Name: "Review Notes", Description: "Memorize every key term", Kind: TaskNotes},
	}
}

func newTasks(defs []TaskDef) []Task {
	tasks := make([]Task, len(defs))
	for i, d := range defs {
		tasks[i] = Task{TaskDef: d}
	}
	return tasks
}
