package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasklane/internal/todo"
)

// Keys used by the Adapter.
const (
	TasksKey = "tasks"
	ThemeKey = "theme"
)

const tasksSchemaURL = "tasks.schema.json"

//go:embed tasks.schema.json
var tasksSchemaJSON string

var (
	tasksSchemaOnce sync.Once
	tasksSchema     *jsonschema.Schema
	tasksSchemaErr  error
)

// PersistenceError reports a failure reading, writing or decoding a key.
type PersistenceError struct {
	Op  string // read, write, decode, validate, encode
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Adapter maps the task list and theme onto a KV.
type Adapter struct {
	kv KV
}

// NewAdapter returns an Adapter over kv.
func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// KV returns the underlying store.
func (a *Adapter) KV() KV {
	return a.kv
}

// LoadTasks reads the persisted task list. ok is false when nothing has
// been saved yet. Unreadable, malformed or schema-invalid data is reported as
// a *PersistenceError.
func (a *Adapter) LoadTasks() (tasks []todo.Task, ok bool, err error) {
	data, ok, err := a.kv.Get(TasksKey)
	if err != nil {
		return nil, false, &PersistenceError{Op: "read", Key: TasksKey, Err: err}
	}
	if !ok {
		return nil, false, nil
	}

	if err := validateTasks(data); err != nil {
		return nil, true, err
	}

	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, true, &PersistenceError{Op: "decode", Key: TasksKey, Err: err}
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}

	seen := make(map[int]bool, len(tasks))
	for i, t := range tasks {
		if seen[t.ID] {
			return nil, true, &PersistenceError{
				Op:  "validate",
				Key: TasksKey,
				Err: fmt.Errorf("[%d].id: duplicate id %d", i, t.ID),
			}
		}
		seen[t.ID] = true
	}

	return tasks, true, nil
}

// SaveTasks replaces the persisted task list.
func (a *Adapter) SaveTasks(tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: TasksKey, Err: err}
	}
	if err := a.kv.Set(TasksKey, data); err != nil {
		return &PersistenceError{Op: "write", Key: TasksKey, Err: err}
	}
	return nil
}

// LoadTheme returns the persisted theme name as stored.
func (a *Adapter) LoadTheme() (string, bool, error) {
	data, ok, err := a.kv.Get(ThemeKey)
	if err != nil {
		return "", false, &PersistenceError{Op: "read", Key: ThemeKey, Err: err}
	}
	if !ok {
		return "", false, nil
	}
	return strings.TrimSpace(string(data)), true, nil
}

// SaveTheme replaces the persisted theme name.
func (a *Adapter) SaveTheme(name string) error {
	if err := a.kv.Set(ThemeKey, []byte(name)); err != nil {
		return &PersistenceError{Op: "write", Key: ThemeKey, Err: err}
	}
	return nil
}

func compiledTasksSchema() (*jsonschema.Schema, error) {
	tasksSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(tasksSchemaURL, strings.NewReader(tasksSchemaJSON)); err != nil {
			tasksSchemaErr = fmt.Errorf("add tasks schema: %w", err)
			return
		}
		tasksSchema, tasksSchemaErr = compiler.Compile(tasksSchemaURL)
	})
	return tasksSchema, tasksSchemaErr
}

func validateTasks(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return &PersistenceError{Op: "decode", Key: TasksKey, Err: err}
	}

	schema, err := compiledTasksSchema()
	if err != nil {
		return &PersistenceError{Op: "validate", Key: TasksKey, Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return &PersistenceError{Op: "validate", Key: TasksKey, Err: schemaCause(err)}
	}
	return nil
}

// schemaCause reduces a schema validation error to its first leaf cause.
func schemaCause(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if path := jsonPointerToPath(ve.InstanceLocation); path != "" {
		return fmt.Errorf("%s: %s", path, ve.Message)
	}
	return fmt.Errorf("%s", ve.Message)
}

// jsonPointerToPath converts a JSON Pointer such as "/0/id" to "[0].id".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
