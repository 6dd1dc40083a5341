package shell

import "errors"

// ErrEmptyLine is returned by Parse for lines without any tokens.
var ErrEmptyLine = errors.New("empty line")

// Parse converts a line into a Command. The first token picks a builtin,
// anything else is an external program.
func Parse(line string) (Command, error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return nil, ErrEmptyLine
	}

	name, args := tokens[0], tokens[1:]
	if len(args) == 0 {
		args = nil
	}
	kind, ok := builtins[name]
	if !ok {
		return External{Name: name, Args: args}, nil
	}

	switch kind {
	case KindExit:
		return Exit{Code: 0}, nil
	case KindEcho:
		return Echo{Args: args}, nil
	case KindType:
		return Type{Target: arg(args, 0)}, nil
	case KindCd:
		return ChangeDirectory{Dir: arg(args, 0)}, nil
	case KindShell:
		return ShellLocation{}, nil
	case KindExec:
		var scriptArgs []string
		if len(args) > 1 {
			scriptArgs = args[1:]
		}
		return RunScript{File: arg(args, 0), Args: scriptArgs}, nil
	default:
		panic("unhandled builtin: " + name)
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
