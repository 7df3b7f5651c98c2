// Package cmd implements the CLI command structure for tasklane.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nibzard/tasklane/internal/app"
	"github.com/nibzard/tasklane/internal/config"
	"github.com/nibzard/tasklane/internal/logging"
	"github.com/nibzard/tasklane/internal/output"
	"github.com/nibzard/tasklane/internal/theme"
	"github.com/nibzard/tasklane/internal/todo"
	"github.com/nibzard/tasklane/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasklane CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklane", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	// No subcommand means the interactive list
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	c := &cli{cfg: cfg, stdout: stdout, stderr: stderr}

	switch subcommand {
	case "tui":
		return c.withApp(func(a *app.App) error { return tuiCommand(ctx, c, a, remainingArgs) })
	case "add":
		return c.withApp(func(a *app.App) error { return addCommand(c, a, remainingArgs) })
	case "ls", "list":
		return c.withApp(func(a *app.App) error { return lsCommand(c, a, remainingArgs) })
	case "toggle":
		return c.withApp(func(a *app.App) error { return toggleCommand(c, a, remainingArgs) })
	case "rm", "remove":
		return c.withApp(func(a *app.App) error { return rmCommand(c, a, remainingArgs) })
	case "clear":
		return c.withApp(func(a *app.App) error { return clearCommand(c, a, remainingArgs) })
	case "mv", "move":
		return c.withApp(func(a *app.App) error { return mvCommand(c, a, remainingArgs) })
	case "order":
		return c.withApp(func(a *app.App) error { return orderCommand(c, a, remainingArgs) })
	case "theme":
		return c.withApp(func(a *app.App) error { return themeCommand(c, a, remainingArgs) })
	case "logs":
		return logsCommand(ctx, c, remainingArgs)
	case "config":
		return configCommand(c, cws, remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// cli carries what every subcommand needs.
type cli struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

// withApp opens a run log and the application state around fn.
func (c *cli) withApp(fn func(a *app.App) error) error {
	runLog, err := logging.NewRunLogger(c.cfg.LogDir, c.cfg.ProjectRoot, logOptions(c.cfg))
	logger := logging.Discard()
	if err != nil {
		fmt.Fprintf(c.stderr, "Warning: logging disabled: %v\n", err)
	} else {
		logger = runLog.Logger
	}
	defer runLog.Close()

	a, err := app.Open(c.cfg, logger)
	if err != nil {
		logger.Error("open app", "err", err)
		return err
	}
	defer a.Close()

	if err := fn(a); err != nil {
		logger.Error("command failed", "err", err)
		return err
	}
	return nil
}

func logOptions(cfg *config.Config) logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	opts.ReportTimestamp = cfg.LogTimestamps
	opts.ReportCaller = cfg.LogCaller
	return opts
}

// tuiCommand launches the TUI.
func tuiCommand(ctx context.Context, c *cli, a *app.App, args []string) error {
	fs := flag.NewFlagSet("tasklane tui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	mouse := fs.Bool("mouse", c.cfg.Mouse, "Enable mouse click and drag")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	a.Logger().Info("tui started", "tasks", a.Store().Len(), "theme", a.Theme())
	return ui.RunTUI(ctx, a, ui.WithMouse(*mouse))
}

// addCommand adds a task. Blank text is ignored.
func addCommand(c *cli, a *app.App, args []string) error {
	task, err := a.Store().Add(strings.Join(args, " "))
	if task != nil {
		a.Logger().Info("task added", "id", task.ID)
		output.FormatTask(c.stdout, *task)
	}
	return err
}

// lsCommand lists tasks in display order.
func lsCommand(c *cli, a *app.App, args []string) error {
	fs := flag.NewFlagSet("tasklane ls", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	filterName := fs.String("filter", "all", "Filter (all|active|completed)")
	formatName := fs.String("format", "text", "Output format (text|json|yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// A bare filter name is accepted too: tasklane ls active
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		*filterName = remaining[0]
	}

	if err := a.Selector().SetFilter(*filterName); err != nil {
		return err
	}
	format, err := output.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	return output.Write(c.stdout, format, a.Selector().Current(), a.Visible(), a.Store().ItemsLeft())
}

// toggleCommand flips a task's completed flag.
func toggleCommand(c *cli, a *app.App, args []string) error {
	id, err := singleID("toggle", args)
	if err != nil {
		return err
	}
	changed, err := a.Store().Toggle(id)
	if !changed && err == nil {
		return fmt.Errorf("task %d not found", id)
	}
	if task, ok := a.Store().Get(id); ok {
		output.FormatTask(c.stdout, task)
	}
	return err
}

// rmCommand removes a task.
func rmCommand(c *cli, a *app.App, args []string) error {
	id, err := singleID("rm", args)
	if err != nil {
		return err
	}
	task, _ := a.Store().Get(id)
	removed, err := a.Store().Remove(id)
	if !removed && err == nil {
		return fmt.Errorf("task %d not found", id)
	}
	fmt.Fprintf(c.stdout, "Removed #%d %s\n", task.ID, task.Text)
	return err
}

// clearCommand removes every completed task.
func clearCommand(c *cli, a *app.App, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	n, err := a.Store().ClearCompleted()
	fmt.Fprintf(c.stdout, "Cleared %d completed %s\n", n, plural(n, "task", "tasks"))
	fmt.Fprintln(c.stdout, todo.ItemsLabel(a.Store().ItemsLeft()))
	return err
}

// mvCommand moves a task to a 1-based position in the full list.
func mvCommand(c *cli, a *app.App, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: tasklane mv <id> <position>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil || pos < 1 {
		return fmt.Errorf("invalid position %q", args[1])
	}
	if _, ok := a.Store().Get(id); !ok {
		return fmt.Errorf("task %d not found", id)
	}

	ids := todo.IDs(a.Store().Tasks())
	if _, err := a.Store().SetOrder(todo.MoveTo(ids, id, pos-1)); err != nil {
		return err
	}
	return output.Write(c.stdout, output.FormatText, todo.FilterAll, a.Store().Tasks(), a.Store().ItemsLeft())
}

// orderCommand applies an explicit id order, e.g. "6,1,2". Ids left out
// keep their positions.
func orderCommand(c *cli, a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tasklane order <id,id,...>")
	}
	var ids []int
	for _, arg := range args {
		for _, part := range splitAndTrim(arg, ",") {
			id, err := parseID(part)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
	}
	changed, err := a.Store().SetOrder(ids)
	if err != nil {
		return err
	}
	a.Logger().Info("order applied", "changed", changed, "ids", ids)
	return output.Write(c.stdout, output.FormatText, todo.FilterAll, a.Store().Tasks(), a.Store().ItemsLeft())
}

// themeCommand shows or sets the theme.
func themeCommand(c *cli, a *app.App, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if len(args) == 1 {
		switch strings.ToLower(strings.TrimSpace(args[0])) {
		case "toggle":
			if _, err := a.ToggleTheme(); err != nil {
				return err
			}
		default:
			name, err := theme.ParseStrict(args[0])
			if err != nil {
				return err
			}
			if err := a.SetTheme(name); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(c.stdout, "%s %s\n", a.Theme().Icon(), a.Theme())
	return nil
}

// logsCommand prints the latest run log for this project.
func logsCommand(ctx context.Context, c *cli, args []string) error {
	fs := flag.NewFlagSet("tasklane logs", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(c.cfg.LogDir, c.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(c.stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(c.stderr, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(c.stderr, "(Ctrl+C to stop)")
	}
	return logging.TailLog(ctx, c.stdout, logPath, *n, *follow)
}

// configCommand prints the effective configuration.
func configCommand(c *cli, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklane config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	example := fs.Bool("example", false, "Print an example config file")
	sources := fs.Bool("sources", false, "Show where each value came from")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(c.stdout, config.ExampleConfig())
		return nil
	}
	if *sources {
		for _, path := range cws.Files {
			fmt.Fprintf(c.stdout, "# read %s\n", path)
		}
		keys := make([]string, 0, len(cws.Sources))
		for k := range cws.Sources {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(c.stdout, "%-15s %s\n", k, cws.Sources[k])
		}
		return nil
	}
	return cws.Config.WriteTOML(c.stdout)
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasklane version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasklane - a terminal to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklane [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Launch the interactive list (default command)")
	fmt.Fprintln(w, "  add <text...>       Add a task")
	fmt.Fprintln(w, "  ls [filter]         List tasks (all|active|completed)")
	fmt.Fprintln(w, "  toggle <id>         Toggle a task's completed flag")
	fmt.Fprintln(w, "  rm <id>             Remove a task")
	fmt.Fprintln(w, "  clear               Remove completed tasks")
	fmt.Fprintln(w, "  mv <id> <position>  Move a task to a position (1 = top)")
	fmt.Fprintln(w, "  order <id,id,...>   Reorder tasks")
	fmt.Fprintln(w, "  theme [name]        Show or set the theme (dark|light|toggle)")
	fmt.Fprintln(w, "  logs                Print the latest run log")
	fmt.Fprintln(w, "  config              Print the effective configuration")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -filter string")
	fmt.Fprintln(w, "        Filter (all|active|completed) (default \"all\")")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (text|json|yaml) (default \"text\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options (use with 'logs' command):")
	fmt.Fprintln(w, "  -f, -follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example            Print an example config file")
	fmt.Fprintln(w, "  -sources            Show where each value came from")
}

func singleID(command string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: tasklane %s <id>", command)
	}
	return parseID(args[0])
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

// splitAndTrim splits a string by separator and trims whitespace from each part.
func splitAndTrim(s, sep string) []string {
	var result []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
