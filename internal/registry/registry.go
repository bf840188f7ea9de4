// Package registry holds the process-wide list of registered tests.
//
// The registry is an intrusive, append-only, singly linked list. Nodes are
// linked once, at registration, and never removed; traversal happens through
// NextLogical, which lets a combinatorial node stand in for several logical
// tests without the registry knowing about multiplicities.
//
// Registration happens during single-threaded package initialization and a
// run traverses single-threaded too; the registry is unsynchronized by
// contract, not by enforcement.
package registry

import "strings"

// Node is one logical entry in the test list.
type Node interface {
	// Suite returns the suite the node belongs to.
	Suite() string

	// Describe appends the node's full identifier to b:
	// <suite>_<name> plus any combinatorial state suffix.
	Describe(b *strings.Builder)

	// Execute runs the test body once. Failures surface as panics and are
	// contained by the runner, not here.
	Execute()

	// NextLogical returns the node to visit after this one. A combinatorial
	// node returns itself while combinations remain; otherwise this is the
	// registration successor, or nil at the end of the list.
	NextLogical() Node
}

// linker is the write side of the intrusive next pointer. Every node kind in
// this package embeds Base and so implements it.
type linker interface {
	link(Node)
}

// Registry is an append-only list of test nodes.
type Registry struct {
	head Node
	tail linker
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

var defaultRegistry = New()

// Default returns the process-wide registry that the package-level
// registration functions append to.
func Default() *Registry {
	return defaultRegistry
}

// Register appends n to the list. Order is preserved exactly; suite grouping
// in the report relies on same-suite tests registering contiguously, which
// is the caller's concern.
func (r *Registry) Register(n Node) {
	if r.tail != nil {
		r.tail.link(n)
	} else {
		r.head = n
	}
	r.tail = n.(linker)
}

// Head returns the first registered node, or nil when nothing is registered.
// Re-entrant runs re-walk from here.
func (r *Registry) Head() Node {
	return r.head
}
