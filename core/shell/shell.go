package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

// DefaultPrompt is used when no prompt template is configured.
const DefaultPrompt = `\w \$ `

// LineReader reads lines of user input after showing a prompt.
// *readline.Instance implements it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

var _ LineReader = (*readline.Instance)(nil)

// Shell is the interactive read, parse and execute loop.
type Shell struct {
	Executor *Executor
	Reader   LineReader
	// PromptTemplate supports \w for the working directory and \$ for the
	// prompt character.
	PromptTemplate string
}

// NewShell creates a shell reading from reader.
func NewShell(executor *Executor, reader LineReader, prompt string) *Shell {
	return &Shell{
		Executor:       executor,
		Reader:         reader,
		PromptTemplate: prompt,
	}
}

// Prompt renders the prompt template for the current state.
func (s *Shell) Prompt() string {
	prompt := s.PromptTemplate
	if prompt == "" {
		prompt = DefaultPrompt
	}

	pwd, err := s.Executor.OS.Getwd()
	if err != nil {
		pwd = "?"
	}

	prompt = strings.ReplaceAll(prompt, `\w`, pwd)
	prompt = strings.ReplaceAll(prompt, `\$`, "$")
	return prompt
}

// Run reads and executes lines until input ends or exit is run. It returns
// the status the interpreter should exit with.
func (s *Shell) Run(ctx context.Context) (int, error) {
	for {
		s.Reader.SetPrompt(s.Prompt())
		line, err := s.Reader.Readline()

		switch {
		case err == io.EOF:
			return 0, nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			return 1, err
		}

		if code, done, err := exitStatus(s.Executor.ExecuteLine(ctx, line)); done {
			return code, err
		}
	}
}

// RunScript replays the lines of a file as the top level program. Unlike the
// exec builtin the file doesn't need to be executable and exit ends the
// interpreter.
func (s *Shell) RunScript(ctx context.Context, name string) (int, error) {
	f, err := s.Executor.OS.Open(name)
	if err != nil {
		return 1, err
	}
	defer f.Close()

	_, err = s.Executor.Replay(ctx, f)
	if code, done, err := exitStatus(err); done {
		return code, err
	}
	return 0, nil
}

// RunCommand executes a single line.
func (s *Shell) RunCommand(ctx context.Context, line string) (int, error) {
	if code, done, err := exitStatus(s.Executor.ExecuteLine(ctx, line)); done {
		return code, err
	}
	return 0, nil
}

// exitStatus interprets an error from the executor. done is false if the
// interpreter should keep going.
func exitStatus(err error) (code int, done bool, outErr error) {
	var exitErr *ExitError
	switch {
	case err == nil:
		return 0, false, nil
	case errors.As(err, &exitErr):
		return exitErr.Code, true, nil
	default:
		return 1, true, err
	}
}

// PromptReader is a LineReader for input that isn't a terminal.
type PromptReader struct {
	prompt  string
	out     io.Writer
	scanner *bufio.Scanner
}

var _ LineReader = (*PromptReader)(nil)

// NewPromptReader reads lines from in, writing prompts to out.
func NewPromptReader(in io.Reader, out io.Writer) *PromptReader {
	return &PromptReader{
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// SetPrompt implements LineReader.
func (p *PromptReader) SetPrompt(prompt string) {
	p.prompt = prompt
}

// Readline implements LineReader.
func (p *PromptReader) Readline() (string, error) {
	fmt.Fprint(p.out, p.prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}
