package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simboot/simboot/sim"
	"github.com/simboot/simboot/sim/scenario"
)

var errInvalidScenarios = errors.New("some scenarios are invalid")

// validateCmd checks scenario files without running anything.
var validateCmd = &cobra.Command{
	Use:   "validate <scenario>...",
	Short: "Check that scenarios load and name a registered simulation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateScenarios(cmd.OutOrStdout(), sim.DefaultRegistry, args)
	},
}

// validateScenarios reports one line per path and fails if any path is
// unusable.
func validateScenarios(w io.Writer, reg *sim.Registry, paths []string) error {
	bad := 0
	for _, path := range paths {
		desc, err := scenario.LoadFile(path)
		if err == nil {
			_, err = reg.Resolve(desc.ClassName())
		}
		if err != nil {
			bad++
			fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(w, "ok   %s (className %s, %d nodes)\n", path, desc.ClassName(), desc.Root.Count())
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d: %w", bad, len(paths), errInvalidScenarios)
	}
	return nil
}
