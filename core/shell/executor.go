package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/metrics"
	"github.com/josephlewis42/minish/core/vos"
)

const (
	// StatusFailure is recorded for builtins that reported an error.
	StatusFailure = 1
	// StatusNotFound is recorded for commands that couldn't be resolved.
	StatusNotFound = 127
)

// ExitError is returned by Execute when the interpreter should stop.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Executor performs parsed commands against a virtual OS.
type Executor struct {
	OS      vos.VOS
	Events  logger.EventRecorder
	Metrics *metrics.Metrics
	Color   *ColorPrinter
	// Log receives operator diagnostics such as event log write failures.
	Log *log.Logger

	// MaxScriptDepth limits how deeply exec may nest.
	MaxScriptDepth int

	depth int
}

// NewExecutor creates an executor configured from cfg. Events, metrics and
// logs are discarded until set by the caller.
func NewExecutor(virtualOS vos.VOS, cfg *config.Configuration) *Executor {
	return &Executor{
		OS:             virtualOS,
		Events:         &logger.NopRecorder{},
		Color:          &ColorPrinter{Mode: cfg.Color, Out: virtualOS.Stdout()},
		Log:            log.New(io.Discard, "", 0),
		MaxScriptDepth: cfg.MaxScriptDepth,
	}
}

// Execute runs cmd. Failures are reported to the user and never returned, the
// only error is an *ExitError for Exit commands.
func (e *Executor) Execute(ctx context.Context, cmd Command) error {
	e.Metrics.ObserveCommand(string(cmd.Kind()))
	start := time.Now()

	var status int
	switch c := cmd.(type) {
	case Exit:
		e.ran(cmd, "", c.Code, start)
		return &ExitError{Code: c.Code}
	case Echo:
		status = e.echo(c)
	case Type:
		status = e.typeOf(c)
	case ChangeDirectory:
		status = e.changeDirectory(c)
	case ShellLocation:
		status = e.shellLocation(c)
	case RunScript:
		status = e.runScript(ctx, c)
	case External:
		// Externals record their own events since the resolved path and
		// child status are only known there.
		e.external(ctx, c)
		return nil
	default:
		panic(fmt.Sprintf("unknown command %T", cmd))
	}

	e.ran(cmd, "", status, start)
	return nil
}

// ExecuteLine parses and runs a single line, blank lines are ignored.
func (e *Executor) ExecuteLine(ctx context.Context, line string) error {
	cmd, err := Parse(line)
	if errors.Is(err, ErrEmptyLine) {
		return nil
	}
	if err != nil {
		return err
	}
	return e.Execute(ctx, cmd)
}

func (e *Executor) echo(c Echo) int {
	e.println(strings.Join(c.Args, " "))
	return 0
}

func (e *Executor) typeOf(c Type) int {
	switch {
	case c.Target == "":
		e.reportf(c, "type: not enough arguments")
		return StatusFailure
	case IsBuiltin(c.Target):
		e.println(fmt.Sprintf("%s is a shell builtin", c.Target))
		return 0
	}

	path, err := vos.LookPath(e.OS, c.Target)
	if err != nil {
		e.println(fmt.Sprintf("%s not found", c.Target))
		return StatusFailure
	}
	e.println(fmt.Sprintf("%s is %s", c.Target, path))
	return 0
}

func (e *Executor) changeDirectory(c ChangeDirectory) int {
	dir := c.Dir
	if dir == "" {
		home, err := e.OS.UserHomeDir()
		if err != nil {
			e.reportf(c, "cd: %v", err)
			return StatusFailure
		}
		dir = home
	}

	if _, err := e.OS.Stat(dir); err != nil {
		e.reportf(c, "%s: No such file or directory", c.Dir)
		return StatusFailure
	}

	if err := e.OS.Chdir(dir); err != nil {
		e.reportf(c, "cd: %s: %v", dir, err)
		return StatusFailure
	}
	return 0
}

func (e *Executor) shellLocation(c ShellLocation) int {
	exe, err := e.OS.Executable()
	if err != nil {
		e.reportf(c, "shell: %v", err)
		return StatusFailure
	}
	e.println(filepath.Dir(exe))
	return 0
}

func (e *Executor) external(ctx context.Context, c External) {
	start := time.Now()

	path, err := vos.LookPath(e.OS, c.Name)
	if err != nil {
		e.record(&logger.UnknownCommand{Command: c.Argv()})
		e.Metrics.ObserveError(string(c.Kind()))
		e.println(e.Color.Sprintf(ColorBoldRed, "%s: command not found", c.Name))
		return
	}

	proc := vos.Command(path, c.Name, c.Args...)
	proc.Stdin = e.OS.Stdin()
	proc.Stdout = e.OS.Stdout()
	proc.Stderr = e.OS.Stderr()

	status, err := e.OS.Run(ctx, proc)
	if err != nil {
		e.reportf(c, "%s: %v", c.Name, err)
		return
	}

	elapsed := time.Since(start)
	e.Metrics.ObserveChild(elapsed, status)
	e.ran(c, path, status, start)
}

func (e *Executor) ran(cmd Command, resolved string, status int, start time.Time) {
	e.record(&logger.RunCommand{
		Command:             cmd.Argv(),
		Kind:                string(cmd.Kind()),
		ResolvedCommandPath: resolved,
		ExitStatus:          status,
		DurationMicros:      time.Since(start).Microseconds(),
	})
}

func (e *Executor) record(event logger.LogType) {
	if e.Events == nil {
		return
	}
	if err := e.Events.Record(event); err != nil && e.Log != nil {
		e.Log.Printf("couldn't record event: %v", err)
	}
}

// reportf tells the user about a failed command.
func (e *Executor) reportf(cmd Command, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)

	e.record(&logger.CommandError{Command: cmd.Argv(), Error: msg})
	e.Metrics.ObserveError(string(cmd.Kind()))
	e.println(e.Color.Sprintf(ColorBoldRed, "%s", msg))
}

func (e *Executor) println(msg string) {
	fmt.Fprintln(e.OS.Stdout(), msg)
}
