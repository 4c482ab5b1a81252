package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simboot/simboot/sim"
)

// listCmd prints the className identifiers this binary can construct.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered simulations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listSimulations(cmd.OutOrStdout(), sim.DefaultRegistry)
	},
}

func listSimulations(w io.Writer, reg *sim.Registry) {
	for _, name := range reg.Names() {
		fmt.Fprintln(w, name)
	}
}
