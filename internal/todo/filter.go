package todo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFilter is returned when a filter name is not all, active or completed.
var ErrUnknownFilter = errors.New("unknown filter")

// Filter selects a view of the task list.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Label returns the capitalized name shown on filter tabs.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// ParseFilter converts a filter name to a Filter.
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed":
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("%w %q, must be one of: all, active, completed", ErrUnknownFilter, name)
}

// Match reports whether a task belongs to the filter's view.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the tasks matching filter, preserving order.
// The input slice is never modified.
func Apply(tasks []Task, filter Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Selector tracks the active filter. The zero value shows all tasks.
type Selector struct {
	current Filter
}

// Current returns the active filter.
func (s *Selector) Current() Filter {
	return s.current
}

// Set makes f the active filter.
func (s *Selector) Set(f Filter) {
	s.current = f
}

// SetFilter selects a filter by name. Unknown names are rejected and the
// active filter is left unchanged.
func (s *Selector) SetFilter(name string) error {
	f, err := ParseFilter(name)
	if err != nil {
		return err
	}
	s.current = f
	return nil
}

// Next advances to the following filter, wrapping around.
func (s *Selector) Next() Filter {
	s.current = Filters[(int(s.current)+1)%len(Filters)]
	return s.current
}

// Apply derives the active view from tasks.
func (s *Selector) Apply(tasks []Task) []Task {
	return Apply(tasks, s.current)
}
