// Package output renders task lists for the ls command.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasklane/internal/todo"
)

// ErrUnknownFormat is returned for an unsupported output format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how a task list is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name. Empty means text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w %q, must be one of: text, json, yaml", ErrUnknownFormat, name)
}

// Listing is a filtered view of the store as written by the json and yaml
// formats.
type Listing struct {
	Filter    string      `json:"filter" yaml:"filter"`
	ItemsLeft int         `json:"items_left" yaml:"items_left"`
	Tasks     []todo.Task `json:"tasks" yaml:"tasks"`
}

// Write renders tasks in format f. itemsLeft counts the whole store, not
// just the visible tasks.
func Write(w io.Writer, f Format, filter todo.Filter, tasks []todo.Task, itemsLeft int) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	listing := Listing{Filter: filter.String(), ItemsLeft: itemsLeft, Tasks: tasks}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(listing); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		for _, t := range tasks {
			FormatTask(w, t)
		}
		fmt.Fprintln(w, todo.ItemsLabel(itemsLeft))
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
}

// FormatTask writes one task line.
// Format: "{ID:>4}  [x] {TEXT}\n"
func FormatTask(w io.Writer, t todo.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", t.ID, mark, normalizeText(t.Text))
}

// normalizeText keeps a task on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
