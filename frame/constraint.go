package frame

import (
	"iter"
	"strings"

	"github.com/opensift/credence/errors"
)

// Constraint is a bitset-per-slot restriction of a frame's hypothesis space.
// Constraints are immutable: Conjoin and Hull return new values. The zero
// Constraint is not meaningful; constraints are created through a Frame.
type Constraint struct {
	frame *Frame
	slots []mask
}

// Frame returns the frame this constraint was built from.
func (c Constraint) Frame() *Frame {
	return c.frame
}

// IsEmpty reports whether the constraint is unsatisfiable: some slot has no
// allowed options left.
func (c Constraint) IsEmpty() bool {
	for _, m := range c.slots {
		if m.isZero() {
			return true
		}
	}
	return false
}

// IsOmega reports whether the constraint is universal: every slot allows its
// full alphabet.
func (c Constraint) IsOmega() bool {
	for i, m := range c.slots {
		if !m.equal(c.frame.omega[i]) {
			return false
		}
	}
	return true
}

// Implies reports whether c is at least as specific as o: every slot's
// allowed set is contained in o's. Constraints from different frames are
// unrelated and never imply one another.
func (c Constraint) Implies(o Constraint) bool {
	if c.frame != o.frame {
		return false
	}
	for i, m := range c.slots {
		if !m.subsetOf(o.slots[i]) {
			return false
		}
	}
	return true
}

// Intersects reports whether c and o admit at least one common assignment:
// every slot's allowed sets overlap. Constraints from different frames never
// intersect.
func (c Constraint) Intersects(o Constraint) bool {
	if c.frame != o.frame {
		return false
	}
	for i, m := range c.slots {
		if !m.intersects(o.slots[i]) {
			return false
		}
	}
	return true
}

// Conjoin returns the intersection of c and o: per-slot bitwise AND. The
// result may be empty when the constraints are incompatible. Both operands
// must come from the same frame.
func (c Constraint) Conjoin(o Constraint) (Constraint, error) {
	if c.frame != o.frame {
		return Constraint{}, errors.DomainMismatchf("conjoining constraints from different frames")
	}
	slots := make([]mask, len(c.slots))
	for i, m := range c.slots {
		slots[i] = m.and(o.slots[i])
	}
	return Constraint{frame: c.frame, slots: slots}, nil
}

// Hull returns the per-slot upper hull of c and o: per-slot bitwise OR. Note
// that the hull may admit assignments neither operand does; it is the
// tightest slot-wise constraint covering both. Both operands must come from
// the same frame.
func (c Constraint) Hull(o Constraint) (Constraint, error) {
	if c.frame != o.frame {
		return Constraint{}, errors.DomainMismatchf("hulling constraints from different frames")
	}
	slots := make([]mask, len(c.slots))
	for i, m := range c.slots {
		slots[i] = m.or(o.slots[i])
	}
	return Constraint{frame: c.frame, slots: slots}, nil
}

// Equal reports whether c and o are the same constraint over the same frame.
func (c Constraint) Equal(o Constraint) bool {
	if c.frame != o.frame || len(c.slots) != len(o.slots) {
		return false
	}
	for i, m := range c.slots {
		if !m.equal(o.slots[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of concrete assignments the constraint admits:
// the product of per-slot allowed-option counts.
func (c Constraint) Count() int {
	n := 1
	for _, m := range c.slots {
		n *= m.count()
	}
	return n
}

// Assignments returns a lazy, restartable sequence of every concrete
// assignment consistent with the constraint: the Cartesian product of the
// per-slot allowed options, slot 0 varying slowest. An empty constraint
// yields nothing. Each yielded slice is freshly allocated.
func (c Constraint) Assignments() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		if c.IsEmpty() {
			return
		}
		options := make([][]string, len(c.slots))
		for i, m := range c.slots {
			options[i] = c.frame.decode(i, m)
		}
		idx := make([]int, len(options))
		for {
			tuple := make([]string, len(options))
			for i, j := range idx {
				tuple[i] = options[i][j]
			}
			if !yield(tuple) {
				return
			}
			// Odometer increment, last slot fastest.
			k := len(idx) - 1
			for k >= 0 {
				idx[k]++
				if idx[k] < len(options[k]) {
					break
				}
				idx[k] = 0
				k--
			}
			if k < 0 {
				return
			}
		}
	}
}

// Schema renders the constraint for diagnostics: one token per slot, "*" for
// a fully unconstrained slot, otherwise the allowed labels in braces.
func (c Constraint) Schema() string {
	var b strings.Builder
	for i, m := range c.slots {
		if i > 0 {
			b.WriteByte(' ')
		}
		if m.equal(c.frame.omega[i]) {
			b.WriteByte('*')
			continue
		}
		b.WriteByte('{')
		b.WriteString(strings.Join(c.frame.decode(i, m), ","))
		b.WriteByte('}')
	}
	return b.String()
}
