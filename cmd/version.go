package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev" // set with -ldflags "-X github.com/simboot/simboot/cmd.version=..."

// versionCmd prints the program name and version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", programName, version)
	},
}
