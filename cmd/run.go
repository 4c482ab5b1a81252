package cmd

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simboot/simboot/sim"
	"github.com/simboot/simboot/sim/diag"
	"github.com/simboot/simboot/sim/history"
	"github.com/simboot/simboot/sim/scenario"
)

var interactive bool // Prompt for a scenario path when none is given

// runCmd loads the selected scenario and runs the simulation it names. The
// command exits 0 whether or not the simulation succeeded; the outcome is in
// the diagnostic log.
var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Load a scenario and run the simulation it names",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if len(args) == 1 {
			c.Scenario = args[0]
		}
		var chooser scenario.Chooser = scenario.StaticChooser{Path: c.Scenario}
		if c.Scenario == "" && interactive {
			chooser = scenario.NewPromptChooser(cmd.InOrStdin(), cmd.OutOrStdout())
		}
		_, err := runScenario(cmd.Context(), c, chooser, cmd.OutOrStdout(), cmd.ErrOrStderr())
		return err
	},
}

// runScenario is the whole bootstrap for one process: open the sink, launch
// whatever the chooser selects, record it and close the sink. Only a failure
// to open or close the durable log is returned as an error.
func runScenario(ctx context.Context, c Config, chooser scenario.Chooser, stdout, stderr io.Writer) (out sim.RunOutcome, err error) {
	level, perr := logrus.ParseLevel(c.LogLevel)
	if perr != nil {
		level = logrus.InfoLevel
	}
	sink, err := diag.Open(c.LogFile, stdout, diag.WithVersion(programName, version), diag.WithLevel(level))
	if err != nil {
		return out, err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	// Implementation logs go through the standard logger; mirror them too.
	prev := logrus.StandardLogger().Out
	logrus.SetOutput(sink)
	defer logrus.SetOutput(prev)

	l := sim.NewLauncher(sim.DefaultRegistry, sink, diag.NewConsoleNotifier(stderr, c.LogFile))
	if c.HistoryDB != "" {
		store, herr := history.Open(ctx, c.HistoryDB)
		if herr != nil {
			sink.Logger().WithError(herr).Warn("run history disabled")
		} else {
			defer store.Close()
			l.Recorder = store
		}
	}

	out = l.LaunchFrom(ctx, chooser)
	sink.Logger().WithField("status", out.Status).Debug("bootstrap finished")
	return out, nil
}

func init() {
	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for a scenario path when none is given")
}
