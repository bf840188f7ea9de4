package registry

import (
	"strings"

	"github.com/zyndor/xm/internal/cartesian"
)

// joinSuiteName separates the suite from the test name in identifiers.
const joinSuiteName = '_'

// Base carries the bookkeeping every node kind shares: suite, name, and
// ownership of the next link. Suite and name are immutable once linked.
type Base struct {
	suite, name string
	next        Node
}

func (b *Base) Suite() string {
	return b.suite
}

// Describe appends "<suite>_<name>" to the identifier under construction.
func (b *Base) Describe(sb *strings.Builder) {
	sb.WriteString(b.suite)
	sb.WriteByte(joinSuiteName)
	sb.WriteString(b.name)
}

func (b *Base) link(n Node) {
	b.next = n
}

// Simple is a single-shot test node: one registration, one execution.
type Simple struct {
	Base
	body func()
}

// NewSimple creates a node for a plain test body.
func NewSimple(suite, name string, body func()) *Simple {
	return &Simple{Base: Base{suite: suite, name: name}, body: body}
}

func (s *Simple) Execute() {
	s.body()
}

func (s *Simple) NextLogical() Node {
	return s.next
}

// Combinatorial is a test family node: one registration slot that the
// traversal expands into one logical test per combination of its space.
type Combinatorial struct {
	Base
	product *cartesian.Product
	body    func(values []any, iteration uint32)
}

// NewCombinatorial creates a node owning an odometer over space. The caller
// must guard against empty spaces; see the package-level registration API.
func NewCombinatorial(suite, name string, space cartesian.Space, body func(values []any, iteration uint32)) *Combinatorial {
	return &Combinatorial{
		Base:    Base{suite: suite, name: name},
		product: cartesian.NewProduct(space),
		body:    body,
	}
}

func (c *Combinatorial) Execute() {
	c.body(c.product.Current(), c.product.Iteration())
}

// Describe appends the base identifier plus the current odometer state, so
// each combination is individually nameable and filterable.
func (c *Combinatorial) Describe(sb *strings.Builder) {
	c.Base.Describe(sb)
	c.product.DescribeState(sb)
}

// NextLogical masquerades the node as its own successor until the product
// space is exhausted, then rewinds the odometer for any later run and hands
// over to the registration successor.
func (c *Combinatorial) NextLogical() Node {
	if c.product.Advance() {
		return c
	}
	c.product.Reset()
	return c.next
}
