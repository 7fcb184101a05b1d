package fuse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensift/credence/frame"
	"github.com/opensift/credence/fuse"
	"github.com/opensift/credence/mass"
)

func TestApproxBeliefNeverExceedsPlausibility(t *testing.T) {
	f, err := frame.NewUniform(2, []string{"a", "b", "c"})
	require.NoError(t, err)

	m1 := mass.New()
	c1, err := f.NewConstraint(frame.Allow(0, "a", "b"))
	require.NoError(t, err)
	require.NoError(t, m1.Add(c1, 0.5))
	require.NoError(t, m1.Add(f.Omega(), 0.5))

	m2 := mass.New()
	c2, err := f.NewConstraint(frame.Allow(0, "c"), frame.Allow(1, "a"))
	require.NoError(t, err)
	require.NoError(t, m2.Add(c2, 0.8))
	require.NoError(t, m2.Add(f.Omega(), 0.2))

	q, err := f.NewConstraint(frame.Allow(0, "a"))
	require.NoError(t, err)

	for _, method := range []fuse.Method{fuse.Yager, fuse.DuboisPrade} {
		for seed := uint64(0); seed < 5; seed++ {
			e, err := fuse.New(method, fuse.WithSeed(seed))
			require.NoError(t, err)
			require.NoError(t, e.AddMass(m1))
			require.NoError(t, e.AddMass(m2))

			res, err := e.Approx(q, 999)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.Belief, 0.0)
			assert.GreaterOrEqual(t, res.Plausibility, res.Belief,
				"method %s seed %d", method, seed)
			assert.LessOrEqual(t, res.Plausibility, 1.0)
		}
	}
}

func TestApproxConvergesToCoarseOnTernaryFamily(t *testing.T) {
	// On the {q, ¬q, Ω} family the analytic fold is exact, so the Monte
	// Carlo estimate must approach it for large n.
	f := binaryFrame(t)
	q := singleton(t, f, "a")

	for _, method := range []fuse.Method{fuse.Yager, fuse.DuboisPrade} {
		e, err := fuse.New(method, fuse.WithSeed(11))
		require.NoError(t, err)
		require.NoError(t, e.AddMass(ternaryMass(t, f, 0.2, 0.3, 0.5)))
		require.NoError(t, e.AddMass(ternaryMass(t, f, 0.6, 0.1, 0.3)))

		exact, err := e.Coarse(q)
		require.NoError(t, err)
		require.InDelta(t, 0.48, exact.Belief, 1e-12)
		require.InDelta(t, 0.83, exact.Plausibility, 1e-12)

		estimate, err := e.Approx(q, 20000)
		require.NoError(t, err)
		assert.InDelta(t, exact.Belief, estimate.Belief, 0.02, "method %s", method)
		assert.InDelta(t, exact.Plausibility, estimate.Plausibility, 0.02, "method %s", method)
	}
}

func TestConflictPolicyDivergence(t *testing.T) {
	// Two single-focal, fully disjoint sources and a query disjoint from
	// both: every trial is a pure conflict.
	f, err := frame.NewUniform(1, []string{"a", "b", "c"})
	require.NoError(t, err)

	m1 := mass.New()
	ca, err := f.NewConstraint(frame.Allow(0, "a"))
	require.NoError(t, err)
	require.NoError(t, m1.Add(ca, 1))

	m2 := mass.New()
	cb, err := f.NewConstraint(frame.Allow(0, "b"))
	require.NoError(t, err)
	require.NoError(t, m2.Add(cb, 1))

	q, err := f.NewConstraint(frame.Allow(0, "c"))
	require.NoError(t, err)

	yager, err := fuse.New(fuse.Yager, fuse.WithSeed(3))
	require.NoError(t, err)
	require.NoError(t, yager.AddMass(m1))
	require.NoError(t, yager.AddMass(m2))
	res, err := yager.Approx(q, 999)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Belief)
	assert.Equal(t, 1.0, res.Plausibility, "Yager reassigns conflict to ignorance")

	dp, err := fuse.New(fuse.DuboisPrade, fuse.WithSeed(3))
	require.NoError(t, err)
	require.NoError(t, dp.AddMass(m1))
	require.NoError(t, dp.AddMass(m2))
	res, err = dp.Approx(q, 999)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Belief)
	assert.Equal(t, 0.0, res.Plausibility, "no drawn element touches the query")
}

func TestApproxSequentialIsReproducible(t *testing.T) {
	f := binaryFrame(t)
	q := singleton(t, f, "a")

	run := func() fuse.Interval {
		e, err := fuse.New(fuse.DuboisPrade, fuse.WithSeed(99))
		require.NoError(t, err)
		require.NoError(t, e.AddMass(ternaryMass(t, f, 0.3, 0.2, 0.5)))
		require.NoError(t, e.AddMass(ternaryMass(t, f, 0.1, 0.4, 0.5)))
		res, err := e.Approx(q, 5000)
		require.NoError(t, err)
		return res
	}

	first := run()
	second := run()
	assert.Equal(t, first, second, "same seed, same sequential draw order")
}

func TestApproxParallelMatchesSequentialInDistribution(t *testing.T) {
	f := binaryFrame(t)
	q := singleton(t, f, "a")

	build := func(workers int) *fuse.Engine {
		e, err := fuse.New(fuse.Yager, fuse.WithSeed(17), fuse.WithWorkers(workers))
		require.NoError(t, err)
		require.NoError(t, e.AddMass(ternaryMass(t, f, 0.2, 0.3, 0.5)))
		require.NoError(t, e.AddMass(ternaryMass(t, f, 0.6, 0.1, 0.3)))
		return e
	}

	sequential, err := build(1).Approx(q, 20000)
	require.NoError(t, err)
	parallel, err := build(4).Approx(q, 20000)
	require.NoError(t, err)

	// Different random streams, same distribution: both sit near the exact
	// fold values.
	assert.InDelta(t, sequential.Belief, parallel.Belief, 0.02)
	assert.InDelta(t, sequential.Plausibility, parallel.Plausibility, 0.02)
	assert.GreaterOrEqual(t, parallel.Plausibility, parallel.Belief)
}

func TestApproxSingleSourceMatchesClosedForm(t *testing.T) {
	f, err := frame.NewUniform(1, []string{"a", "b", "c"})
	require.NoError(t, err)

	m := mass.New()
	ab, err := f.NewConstraint(frame.Allow(0, "a", "b"))
	require.NoError(t, err)
	a, err := f.NewConstraint(frame.Allow(0, "a"))
	require.NoError(t, err)
	c, err := f.NewConstraint(frame.Allow(0, "c"))
	require.NoError(t, err)
	require.NoError(t, m.Add(ab, 0.1))
	require.NoError(t, m.Add(a, 0.7))
	require.NoError(t, m.Add(c, 0.2))

	e, err := fuse.New(fuse.DuboisPrade, fuse.WithSeed(5))
	require.NoError(t, err)
	require.NoError(t, e.AddMass(m))

	// Querying {c}: only the {c} focal implies or intersects it.
	res, err := e.Approx(c, 20000)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, res.Belief, 0.02)
	assert.InDelta(t, 0.2, res.Plausibility, 0.02)
}
