// Package mass implements basic probability assignments over frame
// constraints: the discrete mass functions of Dempster-Shafer theory.
//
// A Function is built incrementally with Add, validated with Validate, and is
// effectively immutable once handed to an inference engine. Each focal
// element is a constraint carrying a probability; the probabilities must sum
// to 1 within Tolerance before the function may be sampled or combined.
package mass

import (
	"math"
	"math/rand/v2"

	"github.com/opensift/credence/errors"
	"github.com/opensift/credence/frame"
)

// Tolerance is the uniform slack allowed when checking that probabilities
// accumulate to 1. It absorbs floating-point rounding, nothing more.
const Tolerance = 1e-8

// Focal is one focal element: a constraint with its assigned probability.
type Focal struct {
	Constraint frame.Constraint
	P          float64
}

// Function is an ordered basic probability assignment over the constraints
// of a single frame.
type Function struct {
	frame *frame.Frame
	focal []Focal
	total float64
}

// New creates an empty mass function. The frame is bound by the first Add;
// all further focal elements must come from the same frame.
func New() *Function {
	return &Function{}
}

// Add appends a focal element. The probability must lie in [0,1] and must
// not push the running total past 1 (within Tolerance); violating either
// bound fails the call and leaves the function unchanged.
func (m *Function) Add(c frame.Constraint, p float64) error {
	if c.Frame() == nil {
		return errors.Configurationf("focal element has no frame")
	}
	if c.IsEmpty() {
		// Dempster-Shafer mass functions assign no mass to the contradiction.
		return errors.Configurationf("focal element is the empty constraint")
	}
	if m.frame == nil {
		m.frame = c.Frame()
	} else if m.frame != c.Frame() {
		return errors.DomainMismatchf("focal element from a different frame")
	}
	if p < 0 || p > 1 {
		return errors.Normalizationf("focal probability %v outside [0,1]", p)
	}
	if m.total+p > 1+Tolerance {
		return errors.Normalizationf("total mass %v exceeds 1", m.total+p)
	}
	m.focal = append(m.focal, Focal{Constraint: c, P: p})
	m.total += p
	return nil
}

// Len returns the number of focal elements.
func (m *Function) Len() int {
	return len(m.focal)
}

// Total returns the accumulated probability mass.
func (m *Function) Total() float64 {
	return m.total
}

// Frame returns the frame the focal elements belong to, or nil before the
// first Add.
func (m *Function) Frame() *frame.Frame {
	return m.frame
}

// Focals returns a copy of the focal elements in insertion order.
func (m *Function) Focals() []Focal {
	out := make([]Focal, len(m.focal))
	copy(out, m.focal)
	return out
}

// Validate checks normalization: the total mass must equal 1 within
// Tolerance.
func (m *Function) Validate() error {
	if math.Abs(m.total-1) > Tolerance {
		return errors.Normalizationf("total mass is %v, want 1", m.total)
	}
	return nil
}

// Draw picks one focal element at random, proportional to its probability.
// Probabilities are used as-is, with no renormalization; the function must
// be validated before drawing.
func (m *Function) Draw(rng *rand.Rand) frame.Constraint {
	u := rng.Float64()
	cum := 0.0
	for _, f := range m.focal {
		cum += f.P
		if u < cum {
			return f.Constraint
		}
	}
	// Rounding slack can leave u just past the final cumulative sum.
	return m.focal[len(m.focal)-1].Constraint
}

// Sample draws k focal elements independently, with replacement, returning
// them in draw order.
func (m *Function) Sample(rng *rand.Rand, k int) []frame.Constraint {
	out := make([]frame.Constraint, k)
	for i := range out {
		out[i] = m.Draw(rng)
	}
	return out
}
