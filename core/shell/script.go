package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/josephlewis42/minish/core/logger"
)

// Replay executes each line of r in order. Blank lines are skipped and
// failures of individual lines don't stop the replay. If a line parses to Exit
// replay stops and the *ExitError is returned; callers decide whether it ends
// the interpreter.
func (e *Executor) Replay(ctx context.Context, r io.Reader) (lines int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines++

		cmd, err := Parse(scanner.Text())
		if errors.Is(err, ErrEmptyLine) {
			continue
		}
		if err != nil {
			return lines, err
		}

		if err := e.Execute(ctx, cmd); err != nil {
			return lines, err
		}
	}

	return lines, scanner.Err()
}

func (e *Executor) runScript(ctx context.Context, c RunScript) int {
	replay := &logger.ScriptReplay{Path: c.File, Args: c.Args, Depth: e.depth + 1}
	defer func() {
		e.Metrics.ObserveReplay(replay.Outcome)
		e.record(replay)
	}()

	if e.depth >= e.MaxScriptDepth {
		replay.Outcome = logger.ReplayTooDeep
		e.reportf(c, "exec: %s: maximum script depth exceeded", c.File)
		return StatusFailure
	}

	info, err := e.stat(c.File)
	switch {
	case err != nil:
		replay.Outcome = logger.ReplayNotFound
		e.reportf(c, "%s: No such file or directory", c.File)
		return StatusFailure
	case info.IsDir():
		replay.Outcome = logger.ReplayReadError
		e.reportf(c, "exec: %s: is a directory", c.File)
		return StatusFailure
	case info.Mode().Perm()&0111 == 0:
		replay.Outcome = logger.ReplayPermissionDenied
		e.reportf(c, "%s: Permission denied", c.File)
		return StatusFailure
	}

	f, err := e.OS.Open(c.File)
	if err != nil {
		replay.Outcome = logger.ReplayReadError
		e.reportf(c, "exec: %s: %v", c.File, err)
		return StatusFailure
	}
	defer f.Close()

	e.depth++
	lines, err := e.Replay(ctx, f)
	e.depth--
	replay.Lines = lines

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		// Exit only ends the script, not the interpreter.
		replay.Outcome = logger.ReplayExited
	case err != nil:
		replay.Outcome = logger.ReplayReadError
		e.reportf(c, "exec: %s: %v", c.File, err)
		return StatusFailure
	default:
		replay.Outcome = logger.ReplayCompleted
	}
	return 0
}

// stat is Stat except the empty name never exists, even though relative
// filesystems resolve it to the working directory.
func (e *Executor) stat(name string) (os.FileInfo, error) {
	if name == "" {
		return nil, os.ErrNotExist
	}
	return e.OS.Stat(name)
}
