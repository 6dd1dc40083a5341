package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries int        `json:"invalid_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	ScriptReplay   ScriptReplayReport   `json:"script_replay_report"`
	CommandError   CommandErrorReport   `json:"command_error_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		r.Sessions.Increment(event.Mode)
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *ScriptReplay:
		r.ScriptReplay.update(event)
	case *CommandError:
		r.CommandError.update(event)
	case *SessionEnd:
		// Ignore
	default:
		r.InvalidEntries++
	}
}

type RunCommandReport struct {
	// Kinds of commands run, builtin names or "external".
	Kinds StrCounter `json:"kinds"`
	// Resolved paths of external commands.
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Exit statuses of external commands.
	ExitStatuses StrCounter `json:"exit_statuses"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.Kinds.Increment(rc.Kind)
	if rc.ResolvedCommandPath != "" {
		r.ResolvedCommandPaths.Increment(rc.ResolvedCommandPath)
		r.ExitStatuses.Increment(fmt.Sprintf("%d", rc.ExitStatus))
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(uc *UnknownCommand) {
	if len(uc.Command) > 0 {
		r.CommandNames.Increment(uc.Command[0])
	}
}

type ScriptReplayReport struct {
	Count    int        `json:"count"`
	Paths    StrCounter `json:"paths"`
	Outcomes StrCounter `json:"outcomes"`
	MaxDepth int        `json:"max_depth"`
}

func (r *ScriptReplayReport) update(sr *ScriptReplay) {
	r.Count++
	r.Paths.Increment(sr.Path)
	r.Outcomes.Increment(sr.Outcome)
	if sr.Depth > r.MaxDepth {
		r.MaxDepth = sr.Depth
	}
}

type CommandErrorReport struct {
	Errors *PathCounter `json:"errors"`
}

func (r *CommandErrorReport) update(ce *CommandError) {
	if r.Errors == nil {
		r.Errors = NewPathCounter("command", "error")
	}
	r.Errors.Increment(strings.Join(ce.Command, " "), ce.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Count returns the number of times the tuple was seen.
func (ctr *PathCounter) Count(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
