package shell

import (
	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minish/core/vos"
)

// NewReadline creates a line editor attached to the streams of virtualOS.
func NewReadline(virtualOS vos.VOS, isTerminal bool) (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(virtualOS.Stdin()),
		Stdout: virtualOS.Stdout(),
		Stderr: virtualOS.Stderr(),

		HistoryLimit: -1,

		FuncIsTerminal: func() bool {
			return isTerminal
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}
