package frame

import "math/bits"

// mask is a fixed-width bitset over one slot's option alphabet.
// Bit i set means option i of that slot is allowed. Bits beyond the
// alphabet size are always zero, so whole-word comparisons are valid.
type mask []uint64

const wordBits = 64

// newMask returns an all-zero mask with capacity for n options.
func newMask(n int) mask {
	return make(mask, (n+wordBits-1)/wordBits)
}

// fullMask returns the all-ones mask for an n-option alphabet.
func fullMask(n int) mask {
	m := newMask(n)
	for i := range m {
		m[i] = ^uint64(0)
	}
	if rem := n % wordBits; rem != 0 {
		m[len(m)-1] = (uint64(1) << uint(rem)) - 1
	}
	return m
}

func (m mask) clone() mask {
	out := make(mask, len(m))
	copy(out, m)
	return out
}

func (m mask) set(i int) {
	m[i/wordBits] |= uint64(1) << uint(i%wordBits)
}

func (m mask) has(i int) bool {
	return m[i/wordBits]&(uint64(1)<<uint(i%wordBits)) != 0
}

// and returns a new mask holding the intersection of m and o.
func (m mask) and(o mask) mask {
	out := make(mask, len(m))
	for i := range m {
		out[i] = m[i] & o[i]
	}
	return out
}

// or returns a new mask holding the union of m and o.
func (m mask) or(o mask) mask {
	out := make(mask, len(m))
	for i := range m {
		out[i] = m[i] | o[i]
	}
	return out
}

func (m mask) isZero() bool {
	for _, w := range m {
		if w != 0 {
			return false
		}
	}
	return true
}

// subsetOf reports whether every bit of m is also set in o.
func (m mask) subsetOf(o mask) bool {
	for i := range m {
		if m[i]&o[i] != m[i] {
			return false
		}
	}
	return true
}

// intersects reports whether m and o share at least one bit.
func (m mask) intersects(o mask) bool {
	for i := range m {
		if m[i]&o[i] != 0 {
			return true
		}
	}
	return false
}

func (m mask) equal(o mask) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}

func (m mask) count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}
