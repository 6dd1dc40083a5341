package cmd

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/josephlewis42/minish/core/config"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	envFiles []string
	verbose  bool

	// exitCode is set by commands that end the process with a status other
	// than the one cobra picks.
	exitCode int
)

// newLogger creates the operator diagnostics logger, silent unless verbose.
func newLogger(cmd *cobra.Command) *log.Logger {
	out := io.Discard
	if verbose {
		out = cmd.ErrOrStderr()
	}
	return log.New(out, "[minish] ", 0)
}

// loadConfig loads the configuration named by --config or the built-in
// defaults.
func loadConfig(logger *log.Logger) (*config.Configuration, error) {
	if cfgPath == "" {
		logger.Println("Using built-in configuration")
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadEnvFiles adds variables from dotenv files to the environment without
// overriding ones already set.
func loadEnvFiles(logger *log.Logger, files []string) error {
	if len(files) == 0 {
		return nil
	}

	logger.Printf("Loading environment from %q", files)
	return godotenv.Load(files...)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minish [flags] [SCRIPT]",
	Short: "A minimal command interpreter",
	Long: `A minimal command interpreter.

With no arguments minish prompts for commands on standard input. Given SCRIPT
it runs the lines of the file instead, and with -c it runs a single line.

Builtins: cd, echo, exec, exit, shell, type. Anything else is looked up on PATH.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInterpreter,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file, or directory holding config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit")
	rootCmd.Flags().StringArrayVar(&envFiles, "env-file", nil, "load environment variables from a dotenv file, may be repeated")
}
