// Package frame defines multi-slot hypothesis frames and bitset-encoded
// constraints over them.
//
// A Frame fixes the universe of discourse: a number of slots (attributes of a
// hypothesis, e.g. suspect / place / weapon) and, per slot, an ordered
// alphabet of option labels. A Constraint restricts each slot to a subset of
// its alphabet; the universal constraint Ω leaves every slot unconstrained,
// while a constraint that rules out every option of some slot is empty (a
// contradiction). Constraints are immutable values: set operations return new
// constraints rather than mutating their receivers.
package frame

import (
	"slices"

	"github.com/opensift/credence/errors"
)

// Frame is an immutable hypothesis universe: slot count and per-slot option
// alphabets. All constraints over the universe are created through it.
type Frame struct {
	alphabets [][]string
	index     []map[string]int
	omega     []mask // precomputed per-slot all-ones masks
}

// New creates a frame with one alphabet per slot. Alphabets may differ in
// size between slots. Every alphabet must be non-empty and free of duplicate
// labels; at least one slot is required.
func New(alphabets ...[]string) (*Frame, error) {
	if len(alphabets) == 0 {
		return nil, errors.Configurationf("frame requires at least one slot")
	}

	f := &Frame{
		alphabets: make([][]string, len(alphabets)),
		index:     make([]map[string]int, len(alphabets)),
		omega:     make([]mask, len(alphabets)),
	}
	for slot, alphabet := range alphabets {
		if len(alphabet) == 0 {
			return nil, errors.Configurationf("slot %d has an empty alphabet", slot)
		}
		idx := make(map[string]int, len(alphabet))
		for i, label := range alphabet {
			if _, dup := idx[label]; dup {
				return nil, errors.Configurationf("slot %d has duplicate option %q", slot, label)
			}
			idx[label] = i
		}
		f.alphabets[slot] = slices.Clone(alphabet)
		f.index[slot] = idx
		f.omega[slot] = fullMask(len(alphabet))
	}
	return f, nil
}

// NewUniform creates a frame where every one of the given slots shares the
// same alphabet, matching the common case of symmetric hypothesis spaces.
func NewUniform(slots int, alphabet []string) (*Frame, error) {
	if slots <= 0 {
		return nil, errors.Configurationf("frame requires a positive slot count, got %d", slots)
	}
	alphabets := make([][]string, slots)
	for i := range alphabets {
		alphabets[i] = alphabet
	}
	return New(alphabets...)
}

// Slots returns the number of slots in the frame.
func (f *Frame) Slots() int {
	return len(f.alphabets)
}

// Alphabet returns a copy of the option labels for the given slot.
func (f *Frame) Alphabet(slot int) []string {
	return slices.Clone(f.alphabets[slot])
}

// Term restricts one slot to an explicit set of allowed options. Slots not
// named by any term are left unconstrained; there is deliberately no way to
// express "no options allowed" at construction time — an empty allowed set
// only ever arises from conjoining incompatible constraints.
type Term struct {
	slot   int
	labels []string
}

// Allow builds a term permitting only the given options for a slot.
func Allow(slot int, labels ...string) Term {
	return Term{slot: slot, labels: labels}
}

// NewConstraint creates a constraint from the given slot terms. Every term's
// slot index must be valid, each label must belong to that slot's alphabet,
// no slot may be named twice, and no term may carry an empty allowed set.
func (f *Frame) NewConstraint(terms ...Term) (Constraint, error) {
	slots := make([]mask, len(f.omega))
	for i, omega := range f.omega {
		slots[i] = omega.clone()
	}
	seen := make(map[int]bool, len(terms))
	for _, t := range terms {
		if t.slot < 0 || t.slot >= len(f.alphabets) {
			return Constraint{}, errors.Configurationf("slot %d out of range [0, %d)", t.slot, len(f.alphabets))
		}
		if seen[t.slot] {
			return Constraint{}, errors.Configurationf("slot %d constrained twice", t.slot)
		}
		seen[t.slot] = true
		if len(t.labels) == 0 {
			return Constraint{}, errors.WithHint(
				errors.Configurationf("slot %d has an empty allowed set", t.slot),
				"omit the slot to leave it unconstrained")
		}
		m := newMask(len(f.alphabets[t.slot]))
		for _, label := range t.labels {
			i, ok := f.index[t.slot][label]
			if !ok {
				return Constraint{}, errors.Configurationf("option %q not in slot %d's alphabet", label, t.slot)
			}
			m.set(i)
		}
		slots[t.slot] = m
	}
	return Constraint{frame: f, slots: slots}, nil
}

// Omega returns the universal constraint: every slot unconstrained.
func (f *Frame) Omega() Constraint {
	slots := make([]mask, len(f.omega))
	for i, omega := range f.omega {
		slots[i] = omega.clone()
	}
	return Constraint{frame: f, slots: slots}
}

// decode returns the labels of the options set in m for the given slot,
// in alphabet order.
func (f *Frame) decode(slot int, m mask) []string {
	labels := make([]string, 0, m.count())
	for i, label := range f.alphabets[slot] {
		if m.has(i) {
			labels = append(labels, label)
		}
	}
	return labels
}
