package fuse

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/opensift/credence/errors"
	"github.com/opensift/credence/frame"
)

// Approx estimates belief/plausibility for q over n Monte Carlo trials.
//
// Each trial draws exactly one focal element from every registered source
// (sources in registration order) and conjoins the draws into one combined
// constraint. A consistent combination counts toward belief when it implies
// q and toward plausibility when it intersects q; an inconsistent one is
// resolved by the engine's conflict method. With a single worker the random
// stream is consumed in a fixed order, so runs with the same seed are
// exactly reproducible; with several workers each one draws from its own
// uncorrelated substream and the counters are reduced atomically.
func (e *Engine) Approx(q frame.Constraint, n int) (Interval, error) {
	if err := e.checkQuery(q); err != nil {
		return Interval{}, err
	}
	if n <= 0 {
		return Interval{}, errors.InvalidQueryf("trial count must be positive, got %d", n)
	}

	var belief, plausibility, conflicts atomic.Int64

	workers := e.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		rng := rand.New(rand.NewPCG(e.seed, 0))
		e.runTrials(rng, q, n, &belief, &plausibility, &conflicts)
	} else {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			batch := n / workers
			if w < n%workers {
				batch++
			}
			// Stream 0 is reserved for the sequential path; each worker
			// seeds an independent PCG substream.
			rng := rand.New(rand.NewPCG(e.seed, uint64(w)+1))
			wg.Add(1)
			go func() {
				defer wg.Done()
				e.runTrials(rng, q, batch, &belief, &plausibility, &conflicts)
			}()
		}
		wg.Wait()
	}

	res := Interval{
		Belief:       float64(belief.Load()) / float64(n),
		Plausibility: float64(plausibility.Load()) / float64(n),
	}
	e.log.Debugw("approx query",
		"query", q.Schema(),
		"trials", n,
		"workers", workers,
		"conflict_trials", conflicts.Load(),
		"belief", res.Belief,
		"plausibility", res.Plausibility)
	return res, nil
}

// runTrials executes n independent trials, drawing one focal element per
// source per trial from rng.
func (e *Engine) runTrials(rng *rand.Rand, q frame.Constraint, n int, belief, plausibility, conflicts *atomic.Int64) {
	var bel, pl, conf int64
	drawn := make([]frame.Constraint, len(e.masses))

	for t := 0; t < n; t++ {
		combined := e.frame.Omega()
		for i, m := range e.masses {
			drawn[i] = m.Draw(rng)
			// Frames were verified at AddMass; Conjoin cannot fail here.
			combined, _ = combined.Conjoin(drawn[i])
		}

		if !combined.IsEmpty() {
			if combined.Implies(q) {
				bel++
			}
			if combined.Intersects(q) {
				pl++
			}
			continue
		}

		// The drawn focal elements are mutually inconsistent.
		conf++
		switch e.method {
		case Yager:
			// Conflicting mass is reassigned to ignorance, which intersects
			// every query.
			pl++
		case DuboisPrade:
			all, any := true, false
			for _, d := range drawn {
				if !d.Implies(q) {
					all = false
				}
				if d.Intersects(q) {
					any = true
				}
			}
			if all {
				bel++
			}
			if any {
				pl++
			}
		}
	}

	belief.Add(bel)
	plausibility.Add(pl)
	conflicts.Add(conf)
}
