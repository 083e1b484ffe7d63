// Command intentconflict enumerates all minimal conflicts and maximal
// realizable subsets of a routing-intent file over a topology file.
//
//	intentconflict intents.json topology.json --bias MUSes --output report.json
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &application{}

	cmd := &cobra.Command{
		Use:   "intentconflict <intents.json> <topology.json>",
		Short: "Enumerate conflicting and realizable routing-intent subsets",
		Long: `intentconflict loads a routing-intent file and a topology file,
then enumerates every minimal unsatisfiable subset (MUS, an
irreducible conflict) and every maximal satisfiable subset (MSS) of
the intents over symbolic link weights. The report is written as JSON.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd.Context(), args[0], args[1])
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&app.flags.Bias, "bias", "MUSes", "seed bias: MUSes or MSSes")
	fl.BoolVar(&app.flags.Maximize, "maximize", false, "emit extremal seeds (skips one grow/shrink per seed)")
	fl.Float64Var(&app.flags.TimeoutSeconds, "timeout", 0, "wall-clock limit in seconds (0 = none)")
	fl.IntVar(&app.flags.MaxResults, "max-results", 0, "stop after this many results (0 = unlimited)")
	fl.IntVar(&app.flags.CEGARRounds, "cegar-rounds", 0, "refinement cap per oracle call (0 = default)")
	fl.IntVar(&app.flags.PathLimit, "path-limit", 0, "shortest-path enumeration cap (0 = default)")
	fl.StringVarP(&app.flags.Output, "output", "o", "", "write the JSON report here instead of stdout")
	fl.StringVar(&app.configPath, "config", "", "YAML run-config file (flags override it)")
	fl.BoolVarP(&app.verbose, "verbose", "v", false, "debug logging")
	fl.BoolVarP(&app.quiet, "quiet", "q", false, "errors only")

	return cmd
}
