package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const programName = "simboot"

var (
	// CLI flags shared by every command
	configPath string // YAML config file
	logLevel   string // Log verbosity level
	logFile    string // Durable diagnostic log path
	historyDB  string // SQLite run history path

	// cfg is the effective configuration, resolved before any command runs.
	cfg = DefaultConfig()
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           programName,
	Short:         "Bootstrap a simulation from a scenario file",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd.Flags(), &c)

		level, err := logrus.ParseLevel(c.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
		}
		logrus.SetLevel(level)
		cfg = c
		return nil
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	addConfigFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
