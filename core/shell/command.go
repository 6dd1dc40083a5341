package shell

import "sort"

// Kind names a Command variant. Builtin kinds are the builtin's name.
type Kind string

const (
	KindExit     Kind = "exit"
	KindEcho     Kind = "echo"
	KindType     Kind = "type"
	KindCd       Kind = "cd"
	KindShell    Kind = "shell"
	KindExec     Kind = "exec"
	KindExternal Kind = "external"
)

// builtins is the single table of builtin names used by both Parse and the
// type builtin.
var builtins = map[string]Kind{
	string(KindExit):  KindExit,
	string(KindEcho):  KindEcho,
	string(KindType):  KindType,
	string(KindCd):    KindCd,
	string(KindShell): KindShell,
	string(KindExec):  KindExec,
}

// IsBuiltin reports whether name is implemented inside the interpreter.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// BuiltinNames returns the sorted names of all builtins.
func BuiltinNames() []string {
	var out []string
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Command is a parsed line. The set of implementations is closed: Exit, Echo,
// Type, ChangeDirectory, ShellLocation, RunScript and External.
type Command interface {
	// Kind returns the variant of the command.
	Kind() Kind
	// Argv returns the command as it was typed, without extra whitespace.
	Argv() []string

	isCommand()
}

// Exit terminates the interpreter with Code.
type Exit struct {
	Code int
}

// Echo prints Args joined by spaces.
type Echo struct {
	Args []string
}

// Type reports how Target would be run.
type Type struct {
	Target string
}

// ChangeDirectory changes the working directory to Dir, or home if Dir is
// empty.
type ChangeDirectory struct {
	Dir string
}

// ShellLocation reports the directory holding the interpreter executable.
type ShellLocation struct{}

// RunScript replays the lines of File as commands. Args are recorded but not
// interpreted.
type RunScript struct {
	File string
	Args []string
}

// External runs the program Name resolved on the search path.
type External struct {
	Name string
	Args []string
}

func (Exit) Kind() Kind            { return KindExit }
func (Echo) Kind() Kind            { return KindEcho }
func (Type) Kind() Kind            { return KindType }
func (ChangeDirectory) Kind() Kind { return KindCd }
func (ShellLocation) Kind() Kind   { return KindShell }
func (RunScript) Kind() Kind       { return KindExec }
func (External) Kind() Kind        { return KindExternal }

func (c Exit) Argv() []string { return []string{string(KindExit)} }
func (c Echo) Argv() []string { return append([]string{string(KindEcho)}, c.Args...) }
func (c Type) Argv() []string { return withOptional(KindType, c.Target) }
func (c ChangeDirectory) Argv() []string {
	return withOptional(KindCd, c.Dir)
}
func (c ShellLocation) Argv() []string { return []string{string(KindShell)} }
func (c RunScript) Argv() []string {
	return append(withOptional(KindExec, c.File), c.Args...)
}
func (c External) Argv() []string { return append([]string{c.Name}, c.Args...) }

func (Exit) isCommand()            {}
func (Echo) isCommand()            {}
func (Type) isCommand()            {}
func (ChangeDirectory) isCommand() {}
func (ShellLocation) isCommand()   {}
func (RunScript) isCommand()       {}
func (External) isCommand()        {}

func withOptional(kind Kind, arg string) []string {
	if arg == "" {
		return []string{string(kind)}
	}
	return []string{string(kind), arg}
}
