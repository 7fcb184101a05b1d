package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opensift/credence/cmd/credence/commands"
	"github.com/opensift/credence/logger"
)

var rootCmd = &cobra.Command{
	Use:   "credence",
	Short: "credence - Dempster-Shafer evidence engine",
	Long: `credence - belief and plausibility bounds from uncertain evidence.

credence combines independent, partially-specified sources of evidence
(witness statements, sensor reports, annotations) declared in a scenario
file, and answers queries with Dempster-Shafer belief/plausibility bounds.

Available commands:
  solve   - Evaluate a scenario's named queries
  sweep   - Evaluate every single option of one slot
  rank    - Rank joint hypotheses by plausibility
  version - Show version information

Examples:
  credence solve examples/cluedo.toml
  credence sweep examples/cluedo.toml --slot weapon
  credence rank examples/cluedo.toml --fix suspect=plum --top 10`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Structured JSON log output")

	rootCmd.AddCommand(commands.SolveCmd)
	rootCmd.AddCommand(commands.SweepCmd)
	rootCmd.AddCommand(commands.RankCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
