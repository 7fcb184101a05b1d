package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// SolveCmd evaluates every named query of a scenario file.
var SolveCmd = &cobra.Command{
	Use:   "solve <scenario.toml>",
	Short: "Evaluate a scenario's named queries",
	Long: `Load a scenario file, combine its witnesses, and print the
belief/plausibility interval for each named query.

By default queries run through the Monte Carlo estimator; --coarse switches
to the fast analytic fold.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, compiled, ev, err := compile(cmd, args[0])
		if err != nil {
			return err
		}
		if len(compiled.Queries) == 0 {
			pterm.Warning.Println("Scenario declares no queries")
			return nil
		}

		data := pterm.TableData{{"Query", "Constraint", "Belief", "Plausibility"}}
		for _, q := range compiled.Queries {
			res, err := ev.eval(q.Constraint)
			if err != nil {
				return err
			}
			data = append(data, []string{
				q.Name,
				q.Constraint.Schema(),
				fmt.Sprintf("%.4f", res.Belief),
				fmt.Sprintf("%.4f", res.Plausibility),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	addEvalFlags(SolveCmd)
}
