package todo

import (
	"fmt"
	"strings"
)

// Saver persists the full ordered task sequence.
type Saver interface {
	SaveTasks(tasks []Task) error
}

// Observer is called after every effective mutation with a snapshot of the
// tasks and the number of tasks not yet completed.
type Observer func(tasks []Task, itemsLeft int)

// Store owns the ordered task list.
type Store struct {
	tasks     []Task
	nextID    int
	saver     Saver
	observers []Observer
}

// NewStore creates a store holding tasks in the given order.
// A nil saver keeps the store purely in memory.
func NewStore(saver Saver, tasks []Task) *Store {
	s := &Store{
		tasks:  make([]Task, len(tasks)),
		nextID: nextIDFor(tasks),
		saver:  saver,
	}
	copy(s.tasks, tasks)
	return s
}

// Subscribe registers an observer for mutations.
func (s *Store) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	s.observers = append(s.observers, fn)
}

// Tasks returns a copy of the ordered task list.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// NextID returns the id the next added task will receive.
func (s *Store) NextID() int {
	return s.nextID
}

// ItemsLeft returns the number of tasks not yet completed.
func (s *Store) ItemsLeft() int {
	return ItemsLeft(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Add inserts a new task at the head of the list.
// Text is trimmed; blank text is ignored and Add returns nil, nil.
func (s *Store) Add(text string) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	task := Task{ID: s.nextID, Text: text}
	s.nextID++

	s.tasks = append(s.tasks, Task{})
	copy(s.tasks[1:], s.tasks)
	s.tasks[0] = task

	return &task, s.commit()
}

// Toggle flips the completed flag of the task with the given id.
// It reports whether a task was found.
func (s *Store) Toggle(id int) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return true, s.commit()
}

// Remove deletes the task with the given id.
// It reports whether a task was found.
func (s *Store) Remove(id int) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true, s.commit()
}

// ClearCompleted removes every completed task and returns how many were removed.
func (s *Store) ClearCompleted() (int, error) {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, s.commit()
}

// SetOrder rearranges the list to follow ids.
//
// Ids that do not resolve to a task, and repeated ids, are skipped. Tasks
// whose ids are absent keep their positions; the listed tasks fill the
// positions they occupied before, in the order given. A full permutation
// therefore becomes the new order exactly, and a partial one (a filtered
// view) only rearranges the tasks it names. The set of tasks never changes.
// SetOrder reports whether the order changed.
func (s *Store) SetOrder(ids []int) (bool, error) {
	pos := make(map[int]int, len(s.tasks))
	for i, t := range s.tasks {
		pos[t.ID] = i
	}

	slots := make([]bool, len(s.tasks))
	ordered := make([]Task, 0, len(ids))
	for _, id := range ids {
		i, ok := pos[id]
		if !ok || slots[i] {
			continue
		}
		slots[i] = true
		ordered = append(ordered, s.tasks[i])
	}

	next := make([]Task, len(s.tasks))
	k := 0
	changed := false
	for i, t := range s.tasks {
		if slots[i] {
			t = ordered[k]
			k++
		}
		if t.ID != s.tasks[i].ID {
			changed = true
		}
		next[i] = t
	}
	if !changed {
		return false, nil
	}

	s.tasks = next
	return true, s.commit()
}

func (s *Store) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// commit persists the current list and then notifies observers.
// Observers run even when saving fails since the in-memory list has changed.
func (s *Store) commit() error {
	var err error
	if s.saver != nil {
		if saveErr := s.saver.SaveTasks(s.Tasks()); saveErr != nil {
			err = fmt.Errorf("save tasks: %w", saveErr)
		}
	}
	if len(s.observers) > 0 {
		snapshot := s.Tasks()
		left := ItemsLeft(snapshot)
		for _, fn := range s.observers {
			fn(snapshot, left)
		}
	}
	return err
}

// MoveTo returns ids with id moved to index. The index is clamped to the
// list bounds. Unknown ids return a copy of ids unchanged.
func MoveTo(ids []int, id, index int) []int {
	out := make([]int, 0, len(ids))
	from := -1
	for i, v := range ids {
		if v == id && from < 0 {
			from = i
			continue
		}
		out = append(out, v)
	}
	if from < 0 {
		return append([]int(nil), ids...)
	}
	if index < 0 {
		index = 0
	}
	if index > len(out) {
		index = len(out)
	}
	out = append(out, 0)
	copy(out[index+1:], out[index:])
	out[index] = id
	return out
}
