package logger

// LogEntry is a single line of the event log. Exactly one of the event fields
// is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart   *SessionStart   `json:"session_start,omitempty"`
	SessionEnd     *SessionEnd     `json:"session_end,omitempty"`
	RunCommand     *RunCommand     `json:"run_command,omitempty"`
	UnknownCommand *UnknownCommand `json:"unknown_command,omitempty"`
	ScriptReplay   *ScriptReplay   `json:"script_replay,omitempty"`
	CommandError   *CommandError   `json:"command_error,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	isLogType()
}

// GetLogType returns the event held by the entry or nil.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.ScriptReplay != nil:
		return le.ScriptReplay
	case le.CommandError != nil:
		return le.CommandError
	default:
		return nil
	}
}

func (le *LogEntry) setLogType(event LogType) {
	switch event := event.(type) {
	case *SessionStart:
		le.SessionStart = event
	case *SessionEnd:
		le.SessionEnd = event
	case *RunCommand:
		le.RunCommand = event
	case *UnknownCommand:
		le.UnknownCommand = event
	case *ScriptReplay:
		le.ScriptReplay = event
	case *CommandError:
		le.CommandError = event
	}
}

// Session modes.
const (
	ModeInteractive = "interactive"
	ModeScript      = "script"
	ModeCommand     = "command"
)

// SessionStart is logged when the interpreter starts reading commands.
type SessionStart struct {
	Mode       string `json:"mode"`
	Pid        int    `json:"pid"`
	WorkingDir string `json:"working_dir"`
}

// SessionEnd is logged when the interpreter stops.
type SessionEnd struct {
	ExitStatus int `json:"exit_status"`
}

// RunCommand is logged for every builtin or external command that ran.
type RunCommand struct {
	Command             []string `json:"command"`
	Kind                string   `json:"kind"`
	ResolvedCommandPath string   `json:"resolved_command_path,omitempty"`
	ExitStatus          int      `json:"exit_status"`
	DurationMicros      int64    `json:"duration_micros"`
}

// UnknownCommand is logged when a name couldn't be resolved.
type UnknownCommand struct {
	Command []string `json:"command"`
}

// Script replay outcomes.
const (
	ReplayCompleted        = "completed"
	ReplayExited           = "exited"
	ReplayNotFound         = "not_found"
	ReplayPermissionDenied = "permission_denied"
	ReplayReadError        = "read_error"
	ReplayTooDeep          = "too_deep"
)

// ScriptReplay is logged once per exec of a script file.
type ScriptReplay struct {
	Path    string   `json:"path"`
	Args    []string `json:"args,omitempty"`
	Depth   int      `json:"depth"`
	Lines   int      `json:"lines"`
	Outcome string   `json:"outcome"`
}

// CommandError is logged when a command failed in a way the user was told
// about.
type CommandError struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (*SessionStart) isLogType()   {}
func (*SessionEnd) isLogType()     {}
func (*RunCommand) isLogType()     {}
func (*UnknownCommand) isLogType() {}
func (*ScriptReplay) isLogType()   {}
func (*CommandError) isLogType()   {}
