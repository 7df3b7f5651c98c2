// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/tasklane/internal/output"
	"github.com/nibzard/tasklane/internal/theme"
	"github.com/nibzard/tasklane/internal/todo"
)

// isolate points HOME and the working directory at fresh temp dirs so no
// real config, store or log is touched.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "TASKLANE_") {
			t.Setenv(name, "")
		}
	}
	wd := t.TempDir()
	t.Chdir(wd)
	return wd
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("run %v: expected no error, got %v", args, err)
	}
	return out
}

func listedIDs(t *testing.T, args ...string) []int {
	t.Helper()
	out := mustRun(t, append(args, "ls", "-format", "json")...)
	var listing output.Listing
	if err := json.Unmarshal([]byte(out), &listing); err != nil {
		t.Fatalf("decode ls output: %v\n%s", err, out)
	}
	return todo.IDs(listing.Tasks)
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	isolate(t)

	t.Run("shows help with -h flag", func(t *testing.T) {
		out, err := runCLI(t, "-h")
		if err != nil {
			t.Errorf("expected no error with -h, got %v", err)
		}
		if !strings.Contains(out, "Commands:") {
			t.Errorf("expected usage, got %q", out)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		out := mustRun(t, "help")
		if !strings.Contains(out, "order <id,id,...>") {
			t.Errorf("expected usage, got %q", out)
		}
	})

	t.Run("shows version", func(t *testing.T) {
		for _, args := range [][]string{{"-v"}, {"--version"}, {"version"}} {
			out := mustRun(t, args...)
			if out != "tasklane version dev\n" {
				t.Errorf("%v: got %q", args, out)
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		_, err := runCLI(t, "unknown-command")
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("invalid store returns error", func(t *testing.T) {
		_, err := runCLI(t, "-store", "redis", "ls")
		if err == nil || !strings.Contains(err.Error(), "invalid store") {
			t.Errorf("expected invalid store error, got %v", err)
		}
	})

	t.Run("tui requires a terminal", func(t *testing.T) {
		_, err := runCLI(t, "-store", "memory")
		if err == nil || !strings.Contains(err.Error(), "TTY") {
			t.Errorf("expected TTY error, got %v", err)
		}
	})
}

func TestListSeedsDefaults(t *testing.T) {
	isolate(t)

	out := mustRun(t, "ls")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 6 tasks and a footer, got:\n%s", out)
	}
	if lines[0] != "   1  [x] Complete online JavaScript course" {
		t.Errorf("first line: got %q", lines[0])
	}
	if lines[6] != "5 items left" {
		t.Errorf("footer: got %q", lines[6])
	}
}

func TestAddPersists(t *testing.T) {
	isolate(t)

	out := mustRun(t, "add", "Buy", "milk")
	if out != "   7  [ ] Buy milk\n" {
		t.Errorf("add output: got %q", out)
	}

	listing := mustRun(t, "ls")
	if !strings.HasPrefix(listing, "   7  [ ] Buy milk\n") {
		t.Errorf("new task should be first:\n%s", listing)
	}
	if !strings.HasSuffix(listing, "6 items left\n") {
		t.Errorf("footer:\n%s", listing)
	}
}

func TestAddBlankIsNoop(t *testing.T) {
	isolate(t)

	if out := mustRun(t, "add", "   "); out != "" {
		t.Errorf("expected no output, got %q", out)
	}
	if got := listedIDs(t); len(got) != 6 {
		t.Errorf("store changed: %v", got)
	}
}

func TestToggleAndClear(t *testing.T) {
	isolate(t)

	if out := mustRun(t, "toggle", "2"); out != "   2  [x] Jog around the park 3x\n" {
		t.Errorf("toggle output: got %q", out)
	}
	out := mustRun(t, "clear")
	if !strings.HasPrefix(out, "Cleared 2 completed tasks\n") {
		t.Errorf("clear output: got %q", out)
	}
	if got := listedIDs(t); !equalIDs(got, []int{3, 4, 5, 6}) {
		t.Errorf("after clear: got %v", got)
	}
}

func TestRemove(t *testing.T) {
	isolate(t)

	out := mustRun(t, "rm", "#3")
	if out != "Removed #3 10 minutes meditation\n" {
		t.Errorf("rm output: got %q", out)
	}
	if got := listedIDs(t); !equalIDs(got, []int{1, 2, 4, 5, 6}) {
		t.Errorf("after rm: got %v", got)
	}
}

func TestIDErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"toggle", "x"}, `invalid task id "x"`},
		{[]string{"toggle", "0"}, `invalid task id "0"`},
		{[]string{"toggle", "99"}, "task 99 not found"},
		{[]string{"rm", "99"}, "task 99 not found"},
		{[]string{"rm"}, "usage: tasklane rm <id>"},
		{[]string{"mv", "99", "1"}, "task 99 not found"},
		{[]string{"mv", "2", "zero"}, `invalid position "zero"`},
		{[]string{"order"}, "usage: tasklane order"},
		{[]string{"order", "1,a"}, `invalid task id "a"`},
	}
	for _, tt := range tests {
		_, err := runCLI(t, tt.args...)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%v: expected error containing %q, got %v", tt.args, tt.want, err)
		}
	}
}

func TestOrder(t *testing.T) {
	isolate(t)

	mustRun(t, "order", "6,1,2,3,4,5")
	if got := listedIDs(t); !equalIDs(got, []int{6, 1, 2, 3, 4, 5}) {
		t.Errorf("after order: got %v", got)
	}

	// Ids left out keep their slots.
	mustRun(t, "order", "5", "6")
	if got := listedIDs(t); !equalIDs(got, []int{5, 1, 2, 3, 4, 6}) {
		t.Errorf("partial order: got %v", got)
	}
}

func TestMove(t *testing.T) {
	isolate(t)

	mustRun(t, "mv", "6", "1")
	if got := listedIDs(t); !equalIDs(got, []int{6, 1, 2, 3, 4, 5}) {
		t.Errorf("mv to top: got %v", got)
	}
	mustRun(t, "mv", "6", "100")
	if got := listedIDs(t); !equalIDs(got, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("mv past end: got %v", got)
	}
}

func TestListFilters(t *testing.T) {
	isolate(t)

	if got := listedIDs(t, "-store", "file"); len(got) != 6 {
		t.Errorf("all: got %v", got)
	}

	out := mustRun(t, "ls", "-filter", "completed", "-format", "json")
	var listing output.Listing
	if err := json.Unmarshal([]byte(out), &listing); err != nil {
		t.Fatal(err)
	}
	if listing.Filter != "completed" || !equalIDs(todo.IDs(listing.Tasks), []int{1}) || listing.ItemsLeft != 5 {
		t.Errorf("completed listing: %+v", listing)
	}

	out = mustRun(t, "ls", "active")
	if strings.Contains(out, "[x]") {
		t.Errorf("active listing shows completed tasks:\n%s", out)
	}

	out = mustRun(t, "ls", "-format", "yaml")
	if !strings.Contains(out, "filter: all") || !strings.Contains(out, "text: Jog around the park 3x") {
		t.Errorf("yaml listing:\n%s", out)
	}

	_, err := runCLI(t, "ls", "-filter", "done")
	if !errors.Is(err, todo.ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}
	_, err = runCLI(t, "ls", "-format", "xml")
	if !errors.Is(err, output.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestThemeCommand(t *testing.T) {
	isolate(t)

	if out := mustRun(t, "theme"); out != theme.Dark.Icon()+" dark\n" {
		t.Errorf("default theme: got %q", out)
	}
	if out := mustRun(t, "-theme", "light", "theme"); out != theme.Light.Icon()+" light\n" {
		t.Errorf("configured theme: got %q", out)
	}

	mustRun(t, "theme", "light")
	if out := mustRun(t, "theme"); out != theme.Light.Icon()+" light\n" {
		t.Errorf("saved theme: got %q", out)
	}
	if out := mustRun(t, "theme", "toggle"); out != theme.Dark.Icon()+" dark\n" {
		t.Errorf("toggle: got %q", out)
	}

	_, err := runCLI(t, "theme", "blue")
	if !errors.Is(err, theme.ErrUnknownTheme) {
		t.Errorf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	wd := isolate(t)

	mustRun(t, "-store", "sqlite", "add", "Water plants")
	if _, err := os.Stat(filepath.Join(wd, ".tasklane", "store.db")); err != nil {
		t.Errorf("sqlite database not created: %v", err)
	}
	got := listedIDs(t, "-store", "sqlite")
	if len(got) != 7 || got[0] != 7 {
		t.Errorf("sqlite listing: got %v", got)
	}
	if got := listedIDs(t); len(got) != 6 {
		t.Errorf("file store should be separate, got %v", got)
	}
}

func TestCorruptStoreFallsBackToSeed(t *testing.T) {
	wd := isolate(t)

	dir := filepath.Join(wd, ".tasklane", "store")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tasks"), []byte(`[{"id":"1"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if got := listedIDs(t); !equalIDs(got, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("expected seed, got %v", got)
	}

	out := mustRun(t, "logs")
	if !strings.Contains(out, "using defaults") {
		t.Errorf("expected warning in log, got:\n%s", out)
	}
}

func TestConfigCommand(t *testing.T) {
	isolate(t)

	out := mustRun(t, "-store", "memory", "config")
	if !strings.Contains(out, `store = "memory"`) {
		t.Errorf("config output:\n%s", out)
	}

	out = mustRun(t, "-store", "memory", "config", "-sources")
	if !strings.Contains(out, "store") || !strings.Contains(out, "flag") {
		t.Errorf("sources output:\n%s", out)
	}

	out = mustRun(t, "config", "-example")
	if !strings.Contains(out, "# tasklane configuration file") {
		t.Errorf("example output:\n%s", out)
	}
}

func TestLogsCommand(t *testing.T) {
	isolate(t)

	if out := mustRun(t, "logs"); out != "No log files found.\n" {
		t.Errorf("empty logs: got %q", out)
	}

	mustRun(t, "add", "Buy milk")
	out := mustRun(t, "logs", "-n", "5")
	if !strings.Contains(out, "task added") {
		t.Errorf("expected add in log, got:\n%s", out)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"#7", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseID(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseID(%q): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"6,1,2", []string{"6", "1", "2"}},
		{" 6 , 1 ,, ", []string{"6", "1"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.in, ",")
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q): got %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndTrim(%q): got %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}
