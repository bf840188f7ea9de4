// Package cartesian models combinatorial test families: named finite value
// sets whose cartesian product defines one logical test per combination.
package cartesian

import (
	"strconv"
	"strings"
)

// Set is one named axis of a cartesian space.
type Set struct {
	Name   string
	Values []any
}

// NewSet builds a Set from its name and values.
func NewSet(name string, values ...any) Set {
	return Set{Name: name, Values: values}
}

// Space is an ordered tuple of sets. Declaration order is significant: it is
// both the order of values handed to the test body and the order of the
// identifier segments appended by DescribeState.
type Space []Set

// Size returns the number of combinations in the space, i.e. the product of
// the set sizes. Any zero-size set makes the whole space empty.
func (s Space) Size() int {
	n := 1
	for _, set := range s {
		n *= len(set.Values)
	}
	if len(s) == 0 {
		return 0
	}
	return n
}

// Product enumerates a space's combinations with a mixed-radix odometer:
// dimension 0 varies fastest. One Product belongs to one registered
// combinatorial test and its state survives exactly one full run.
type Product struct {
	space     Space
	indices   []int
	iteration uint32
}

// NewProduct creates an odometer over space, positioned at the first
// combination (all indices zero).
func NewProduct(space Space) *Product {
	return &Product{
		space:   space,
		indices: make([]int, len(space)),
	}
}

// Current returns the combination selected by the odometer: one value from
// each set, in declaration order. Must not be called on an empty space.
func (p *Product) Current() []any {
	values := make([]any, len(p.space))
	for i, set := range p.space {
		values[i] = set.Values[p.indices[i]]
	}
	return values
}

// Iteration returns the number of Advance calls made so far. It counts
// unconditionally — wraparound does not reset it — and is only meaningful
// for ordering diagnostics within a single pass.
func (p *Product) Iteration() uint32 {
	return p.iteration
}

// Advance steps the odometer: increment dimension 0, carrying into higher
// dimensions on overflow. It returns true while a next combination exists
// and false once the counter has cycled back to all-zero.
func (p *Product) Advance() bool {
	p.iteration++
	for i := range p.indices {
		p.indices[i]++
		if p.indices[i] < len(p.space[i].Values) {
			return true
		}
		p.indices[i] = 0
	}
	return false
}

// Reset returns every index to zero. The iteration counter is left alone.
func (p *Product) Reset() {
	for i := range p.indices {
		p.indices[i] = 0
	}
}

// DescribeState appends one "_<setName>[<index>]" segment per dimension, in
// declaration order. Together with the owning test's identifier this names
// each combination uniquely and filterably.
func (p *Product) DescribeState(b *strings.Builder) {
	for i, set := range p.space {
		b.WriteByte('_')
		b.WriteString(set.Name)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(p.indices[i]))
		b.WriteByte(']')
	}
}
