package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the interpreter event log.",
}

var reportCommand = &cobra.Command{
	Use:   "report [LOG]",
	Short: "Show a report of events from LOG or the configured event log.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := openReportSource(cmd, args)
		if err != nil {
			return err
		}
		defer fd.Close()

		var report logger.Report
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func openReportSource(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) > 0 {
		return os.Open(args[0])
	}

	config, err := loadConfig(newLogger(cmd))
	if err != nil {
		return nil, err
	}
	return config.ReadEventLog()
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
}
