package cmd

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/metrics"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/ttylog"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var commandLine string

func runInterpreter(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	diag := newLogger(cmd)

	configuration, err := loadConfig(diag)
	if err != nil {
		return err
	}

	if err := loadEnvFiles(diag, append(configuration.EnvFilePaths(), envFiles...)); err != nil {
		return err
	}

	events, closeEvents, err := openEventLog(configuration, diag)
	if err != nil {
		return err
	}
	defer closeEvents()

	var files vos.VIO = vos.NewVIOAdapter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	transcript, err := configuration.OpenTranscript()
	if err != nil {
		return err
	}
	if transcript != nil {
		defer transcript.Close()
		diag.Printf("Recording transcript to %q", transcript.Name())
		files = newTranscriptRecorder(files, transcript, diag)
	}

	hostOS := vos.NewHostOS(files)

	executor := shell.NewExecutor(hostOS, configuration)
	executor.Events = events
	executor.Metrics = metrics.New()
	executor.Log = diag

	mode := logger.ModeInteractive
	switch {
	case commandLine != "":
		mode = logger.ModeCommand
	case len(args) == 1:
		mode = logger.ModeScript
	}

	wd, _ := hostOS.Getwd()
	recordEvent(events, diag, &logger.SessionStart{Mode: mode, Pid: os.Getpid(), WorkingDir: wd})

	ctx := context.Background()
	var code int
	switch mode {
	case logger.ModeCommand:
		sh := shell.NewShell(executor, nil, configuration.Prompt)
		code, err = sh.RunCommand(ctx, commandLine)

	case logger.ModeScript:
		sh := shell.NewShell(executor, nil, configuration.Prompt)
		code, err = sh.RunScript(ctx, args[0])

	default:
		reader, closeReader, rlErr := newLineReader(hostOS)
		if rlErr != nil {
			return rlErr
		}
		defer closeReader()

		sh := shell.NewShell(executor, reader, configuration.Prompt)
		code, err = sh.Run(ctx)
	}

	recordEvent(events, diag, &logger.SessionEnd{ExitStatus: code})

	if path := configuration.MetricsTextfilePath(); path != "" {
		diag.Printf("Writing metrics to %q", path)
		if err := executor.Metrics.WriteTextfile(path); err != nil {
			diag.Printf("Couldn't write metrics: %v", err)
		}
	}

	exitCode = code
	return err
}

// openEventLog starts a new session in the configured event log.
func openEventLog(configuration *config.Configuration, diag *log.Logger) (logger.EventRecorder, func(), error) {
	fd, err := configuration.OpenEventLog()
	switch {
	case err != nil:
		return nil, nil, err
	case fd == nil:
		return &logger.NopRecorder{}, func() {}, nil
	}

	session := logger.NewJsonLinesLogRecorder(fd).NewSession()
	diag.Printf("Logging events for session %s to %q", session.SessionID(), fd.Name())

	return session, func() { fd.Close() }, nil
}

func recordEvent(events logger.EventRecorder, diag *log.Logger, event logger.LogType) {
	if err := events.Record(event); err != nil {
		diag.Printf("Couldn't record event: %v", err)
	}
}

// newTranscriptRecorder copies the session output to w as an asciicast.
func newTranscriptRecorder(files vos.VIO, w io.Writer, diag *log.Logger) vos.VIO {
	exe, _ := os.Executable()
	env := map[string]string{"SHELL": exe, "TERM": os.Getenv("TERM")}

	recorder := ttylog.NewRecorder(files, ttylog.NewAsciicastLogSink(w, "minish session", env))
	recorder.Log = diag
	return recorder
}

type fdReader interface {
	Fd() uintptr
}

// newLineReader uses a line editor on terminals and plain line reads
// otherwise.
func newLineReader(hostOS vos.VOS) (shell.LineReader, func(), error) {
	if in, ok := vos.UnwrapReader(hostOS.Stdin()).(fdReader); ok && isatty.IsTerminal(in.Fd()) {
		rl, err := shell.NewReadline(hostOS, true)
		if err != nil {
			return nil, nil, err
		}
		return rl, func() { rl.Close() }, nil
	}

	return shell.NewPromptReader(hostOS.Stdin(), hostOS.Stdout()), func() {}, nil
}
