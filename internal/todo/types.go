package todo

import "fmt"

// Task is a single to-do entry.
type Task struct {
	ID        int    `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

func (t Task) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] #%d %s", mark, t.ID, t.Text)
}

// DefaultTasks returns the seed list used when nothing has been persisted yet.
func DefaultTasks() []Task {
	return []Task{
		{ID: 1, Text: "Complete online JavaScript course", Completed: true},
		{ID: 2, Text: "Jog around the park 3x"},
		{ID: 3, Text: "10 minutes meditation"},
		{ID: 4, Text: "Read for 1 hour"},
		{ID: 5, Text: "Pick up groceries"},
		{ID: 6, Text: "Complete Todo App on Frontend Mentor"},
	}
}

// ItemsLeft counts the tasks that are not completed.
func ItemsLeft(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// ItemsLabel renders an items-left count for display.
func ItemsLabel(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

// IDs returns the ids of tasks in order.
func IDs(tasks []Task) []int {
	ids := make([]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func nextIDFor(tasks []Task) int {
	max := 0
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}
