// Package logging configures leveled loggers that write to per-run log files.
//
// The terminal belongs to the TUI while it runs, so log output goes to a file
// under <log_dir>/<project-slug>/<run-id>.log. The logs command finds the
// newest file for the current project and tails it.
package logging

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LogExt is the extension of run log files.
const LogExt = ".log"

var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Options holds configuration for a logger.
type Options struct {
	Level           string
	Format          string
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns default options for logging.
func DefaultOptions() Options {
	return Options{
		Level:  "info",
		Format: "text",
		Prefix: "tasklane",
	}
}

// New returns a charmbracelet logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter(opts.Format),
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func formatter(name string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// RunLogger owns the log file of a single invocation.
type RunLogger struct {
	Dir     string
	RunID   string
	LogPath string
	Logger  *log.Logger
	file    *os.File
}

// NewRunLogger creates the project's log directory under baseDir and opens a
// fresh log file for this run.
func NewRunLogger(baseDir, workDir string, opts Options) (*RunLogger, error) {
	logDir, err := FindLogDir(baseDir, workDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID()
	logPath := filepath.Join(logDir, id+LogExt)
	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	logger, err := New(file, opts)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &RunLogger{
		Dir:     logDir,
		RunID:   id,
		LogPath: logPath,
		Logger:  logger,
		file:    file,
	}, nil
}

// Close closes the log file.
func (r *RunLogger) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

// FindLogDir returns the log directory for runs started in workDir:
// <baseDir>/<dirname>-<hash>. A relative baseDir is taken from workDir.
func FindLogDir(baseDir, workDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("log base dir is empty")
	}
	if workDir == "" {
		workDir = "."
	}
	root, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve work dir: %w", err)
	}
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(root, baseDir)
	}
	return filepath.Join(filepath.Clean(baseDir), projectSlug(root)), nil
}

// projectSlug names a project's log directory. The hash keeps two
// checkouts with the same directory name apart.
func projectSlug(root string) string {
	sum := sha1.Sum([]byte(root))
	return slugify(filepath.Base(root)) + "-" + hex.EncodeToString(sum[:4])
}

// slugify keeps letters, digits, dot, dash and underscore, folding every
// other run of characters into one underscore.
func slugify(name string) string {
	slug := strings.Trim(unsafeRun.ReplaceAllString(name, "_"), "_")
	if slug == "" {
		return "project"
	}
	return slug
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// FindLatestLog finds the newest run log in a directory.
// It returns "" without error when the directory does not exist.
func FindLatestLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), LogExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(logDir, entry.Name())
		}
	}
	return latest, nil
}

// TailLog copies the last n lines of path to w (all of it when n <= 0).
// With follow set it keeps copying appended data until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		err = copyLastLines(w, file, n)
	} else {
		_, err = io.Copy(w, file)
	}
	if err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return err
			}
		}
	}
}

// copyLastLines writes the last n lines of r to w, leaving r at EOF so a
// follow can pick up from there.
func copyLastLines(w io.Writer, r io.Reader, n int) error {
	ring := make([]string, 0, n)
	next := 0
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if len(ring) < n {
				ring = append(ring, line)
			} else {
				ring[next] = line
				next = (next + 1) % n
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read log file: %w", err)
		}
	}
	for i := range ring {
		if _, err := io.WriteString(w, ring[(next+i)%len(ring)]); err != nil {
			return err
		}
	}
	return nil
}
