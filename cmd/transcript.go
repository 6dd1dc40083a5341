package cmd

import (
	"os"
	"time"

	"github.com/josephlewis42/minish/core/ttylog"
	"github.com/spf13/cobra"
)

var idleTimeLimit time.Duration

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Explore recorded session transcripts.",
}

// playCommand replays a transcript with its original timing
var playCommand = &cobra.Command{
	Use:   "play FILE." + ttylog.AsciicastFileExt,
	Short: "Replay a recorded session in the terminal.",
	Long:  `Plays a recorded session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, sink)
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), sink)
	},
}

// catCommand prints a transcript without delays
var catCommand = &cobra.Command{
	Use:   "cat FILE." + ttylog.AsciicastFileExt,
	Short: "Print full output of a recorded session.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), sink)
	},
}

func init() {
	rootCmd.AddCommand(transcriptCmd)
	transcriptCmd.AddCommand(playCommand)
	transcriptCmd.AddCommand(catCommand)

	playCommand.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
}
