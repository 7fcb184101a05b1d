package commands

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/opensift/credence/frame"
	"github.com/opensift/credence/fuse"
)

// RankCmd ranks concrete joint hypotheses by plausibility.
var RankCmd = &cobra.Command{
	Use:   "rank <scenario.toml>",
	Short: "Rank joint hypotheses by plausibility",
	Long: `Enumerate every concrete assignment consistent with the --fix
constraints, query each one against the combined evidence, and print the
top hypotheses ordered by plausibility.

Example:
  credence rank examples/cluedo.toml --fix suspect=plum --top 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")
		fixes, _ := cmd.Flags().GetStringArray("fix")

		s, compiled, ev, err := compile(cmd, args[0])
		if err != nil {
			return err
		}

		terms := make([]frame.Term, 0, len(fixes))
		for _, fix := range fixes {
			term, err := parseFix(s, fix)
			if err != nil {
				return err
			}
			terms = append(terms, term)
		}
		base, err := compiled.Frame.NewConstraint(terms...)
		if err != nil {
			return err
		}

		type hypothesis struct {
			schema string
			result fuse.Interval
		}
		var ranked []hypothesis
		for assignment := range base.Assignments() {
			terms := make([]frame.Term, len(assignment))
			for slot, option := range assignment {
				terms[slot] = frame.Allow(slot, option)
			}
			q, err := compiled.Frame.NewConstraint(terms...)
			if err != nil {
				return err
			}
			res, err := ev.eval(q)
			if err != nil {
				return err
			}
			ranked = append(ranked, hypothesis{schema: q.Schema(), result: res})
		}

		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].result.Plausibility != ranked[j].result.Plausibility {
				return ranked[i].result.Plausibility > ranked[j].result.Plausibility
			}
			if ranked[i].result.Belief != ranked[j].result.Belief {
				return ranked[i].result.Belief > ranked[j].result.Belief
			}
			return ranked[i].schema < ranked[j].schema
		})
		if top > 0 && len(ranked) > top {
			ranked = ranked[:top]
		}

		data := pterm.TableData{{"Hypothesis", "Belief", "Plausibility"}}
		for _, h := range ranked {
			data = append(data, []string{
				h.schema,
				fmt.Sprintf("%.4f", h.result.Belief),
				fmt.Sprintf("%.4f", h.result.Plausibility),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	addEvalFlags(RankCmd)
	RankCmd.Flags().Int("top", 10, "How many hypotheses to print (0 = all)")
	RankCmd.Flags().StringArray("fix", nil, "Restrict a slot before enumerating, as slot=option[,option...] (repeatable)")
}
