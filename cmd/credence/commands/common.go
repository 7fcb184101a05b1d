package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/opensift/credence/errors"
	"github.com/opensift/credence/frame"
	"github.com/opensift/credence/fuse"
	"github.com/opensift/credence/logger"
	"github.com/opensift/credence/scenario"
)

// addEvalFlags registers the flags shared by every query-running command.
func addEvalFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("trials", "n", 10000, "Monte Carlo trial count")
	cmd.Flags().Uint64("seed", 1, "Pseudorandom seed (sequential runs are reproducible)")
	cmd.Flags().IntP("workers", "w", 1, "Goroutines for Monte Carlo trials (>1 gives up reproducibility)")
	cmd.Flags().Bool("coarse", false, "Use the analytic estimate instead of Monte Carlo")
}

// evaluator runs queries against a compiled scenario with the estimator the
// user picked.
type evaluator struct {
	engine *fuse.Engine
	trials int
	coarse bool
}

func (ev evaluator) eval(q frame.Constraint) (fuse.Interval, error) {
	if ev.coarse {
		return ev.engine.Coarse(q)
	}
	return ev.engine.Approx(q, ev.trials)
}

// compile loads and builds the scenario at path, wiring in the command's
// evaluation flags.
func compile(cmd *cobra.Command, path string) (*scenario.Scenario, *scenario.Compiled, evaluator, error) {
	trials, _ := cmd.Flags().GetInt("trials")
	seed, _ := cmd.Flags().GetUint64("seed")
	workers, _ := cmd.Flags().GetInt("workers")
	coarse, _ := cmd.Flags().GetBool("coarse")

	s, err := scenario.Load(path)
	if err != nil {
		return nil, nil, evaluator{}, err
	}
	compiled, err := s.Build(
		fuse.WithSeed(seed),
		fuse.WithWorkers(workers),
		fuse.WithLogger(logger.Named("fuse")),
	)
	if err != nil {
		return nil, nil, evaluator{}, err
	}

	logger.Infow("scenario compiled",
		"path", path,
		"slots", compiled.Frame.Slots(),
		"witnesses", compiled.Engine.Sources(),
		"method", compiled.Engine.Method())

	return s, compiled, evaluator{engine: compiled.Engine, trials: trials, coarse: coarse}, nil
}

// parseFix splits a repeatable "slot=opt1,opt2" flag value into a frame term.
func parseFix(s *scenario.Scenario, fix string) (frame.Term, error) {
	name, opts, found := strings.Cut(fix, "=")
	if !found || opts == "" {
		return frame.Term{}, errors.Configurationf("malformed --fix %q, want slot=option[,option...]", fix)
	}
	slot, err := s.SlotIndex(name)
	if err != nil {
		return frame.Term{}, err
	}
	return frame.Allow(slot, strings.Split(opts, ",")...), nil
}
