package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/opensift/credence/frame"
)

// SweepCmd evaluates every single option of one slot in turn.
var SweepCmd = &cobra.Command{
	Use:   "sweep <scenario.toml>",
	Short: "Evaluate every single option of one slot",
	Long: `For each option of the chosen slot, query the combined evidence with
the singleton constraint allowing only that option, and print one
belief/plausibility row per option.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slotName, _ := cmd.Flags().GetString("slot")

		s, compiled, ev, err := compile(cmd, args[0])
		if err != nil {
			return err
		}
		slot, err := s.SlotIndex(slotName)
		if err != nil {
			return err
		}

		data := pterm.TableData{{s.Slots[slot].Name, "Belief", "Plausibility"}}
		for _, option := range compiled.Frame.Alphabet(slot) {
			q, err := compiled.Frame.NewConstraint(frame.Allow(slot, option))
			if err != nil {
				return err
			}
			res, err := ev.eval(q)
			if err != nil {
				return err
			}
			data = append(data, []string{
				option,
				fmt.Sprintf("%.4f", res.Belief),
				fmt.Sprintf("%.4f", res.Plausibility),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	addEvalFlags(SweepCmd)
	SweepCmd.Flags().String("slot", "", "Slot to sweep (required)")
	SweepCmd.MarkFlagRequired("slot")
}
