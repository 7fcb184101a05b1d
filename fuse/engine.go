// Package fuse combines independent sources of evidence and answers
// belief/plausibility queries over a shared hypothesis frame.
//
// An Engine holds validated mass functions, one per source, plus a conflict
// resolution method used when sampled evidence is mutually inconsistent. Two
// estimators are offered: Coarse, a fast analytic fold, and Approx, a Monte
// Carlo estimator. Coarse computes exact Dempster combination only for the
// restricted family where every focal element of every source implies the
// query, is disjoint from it, or is the universal constraint; outside that
// family it is a structural approximation and its result is not a guaranteed
// Bel/Pl bound.
package fuse

import (
	"go.uber.org/zap"

	"github.com/opensift/credence/errors"
	"github.com/opensift/credence/frame"
	"github.com/opensift/credence/mass"
)

// Method selects how conflicting sampled evidence is resolved in Approx.
type Method string

const (
	// Yager reassigns all conflicting mass to ignorance: a conflicting trial
	// counts toward plausibility (ignorance intersects everything) but never
	// toward belief.
	Yager Method = "yager"

	// DuboisPrade resolves conflicts by falling back to the individually
	// drawn focal elements: a trial counts toward belief when every drawn
	// element implies the query, and toward plausibility when at least one
	// intersects it.
	DuboisPrade Method = "dubois-prade"
)

// ParseMethod converts a method name to a Method tag.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case Yager:
		return Yager, nil
	case DuboisPrade:
		return DuboisPrade, nil
	}
	return "", errors.Configurationf("unknown combination method %q", s)
}

// Interval is a belief/plausibility pair: the lower and upper probability
// bounds assigned to a query.
type Interval struct {
	Belief       float64
	Plausibility float64
}

// Engine combines registered mass functions. Registration mutates the
// engine; querying does not, so a fully built engine may serve concurrent
// queries.
type Engine struct {
	method  Method
	masses  []*mass.Function
	frame   *frame.Frame
	seed    uint64
	workers int
	log     *zap.SugaredLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed fixes the pseudorandom seed used by Approx. Sequential runs with
// the same seed are exactly reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithWorkers sets the number of goroutines Approx spreads its trials
// across. Values below 2 keep the sequential, deterministic path.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithLogger attaches a logger for Debug-level diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine with the given conflict resolution method.
func New(method Method, opts ...Option) (*Engine, error) {
	if method != Yager && method != DuboisPrade {
		return nil, errors.Configurationf("unknown combination method %q", method)
	}
	e := &Engine{method: method, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Method returns the engine's conflict resolution method.
func (e *Engine) Method() Method {
	return e.method
}

// Sources returns the number of registered mass functions.
func (e *Engine) Sources() int {
	return len(e.masses)
}

// AddMass validates a mass function and registers it as one evidence source.
// All sources must share one frame.
func (e *Engine) AddMass(m *mass.Function) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "registering mass")
	}
	if e.frame == nil {
		e.frame = m.Frame()
	} else if e.frame != m.Frame() {
		return errors.DomainMismatchf("mass built over a different frame")
	}
	e.masses = append(e.masses, m)
	e.log.Debugw("registered evidence source",
		"sources", len(e.masses),
		"focal_elements", m.Len())
	return nil
}

// checkQuery enforces the shared Coarse/Approx preconditions.
func (e *Engine) checkQuery(q frame.Constraint) error {
	if len(e.masses) == 0 {
		return errors.InvalidQueryf("no evidence sources registered")
	}
	if q.Frame() != e.frame {
		return errors.DomainMismatchf("query built over a different frame")
	}
	if q.IsEmpty() {
		return errors.InvalidQueryf("query is the empty constraint")
	}
	if q.IsOmega() {
		return errors.InvalidQueryf("query is the universal constraint")
	}
	return nil
}

// Coarse computes the analytic belief/plausibility estimate for q.
//
// For each source, mass is split into support for q (focal elements implying
// it), support against q (focal elements disjoint from it), and a residual
// ignorance term. With a single source the result is exact. With several,
// the per-source (a, b, u) triples are folded pairwise, left to right, in
// registration order; the fold is associative and commutative up to
// floating-point rounding, so registration order does not matter.
func (e *Engine) Coarse(q frame.Constraint) (Interval, error) {
	if err := e.checkQuery(q); err != nil {
		return Interval{}, err
	}

	a, b := support(e.masses[0], q)
	u := 1 - a - b

	if len(e.masses) == 1 {
		return Interval{Belief: a, Plausibility: 1 - b}, nil
	}

	for _, m := range e.masses[1:] {
		ai, bi := support(m, q)
		ui := 1 - ai - bi
		a, b, u =
			a*ai+a*ui+u*ai,
			b*bi+b*ui+u*bi,
			u*ui+a*bi+b*ai
	}

	res := Interval{Belief: a, Plausibility: 1 - b}
	e.log.Debugw("coarse query",
		"query", q.Schema(),
		"belief", res.Belief,
		"plausibility", res.Plausibility)
	return res, nil
}

// support sums the mass committed to q and the mass committed against q.
func support(m *mass.Function, q frame.Constraint) (a, b float64) {
	for _, f := range m.Focals() {
		if f.Constraint.Implies(q) {
			a += f.P
		}
		if !f.Constraint.Intersects(q) {
			b += f.P
		}
	}
	return a, b
}
