// Package query implements the Pattern Evaluator: it consumes a basic
// graph pattern built by an external SPARQL algebra (see pkg/sparql for a
// minimal one) and turns it into a restartable lazy sequence of variable
// bindings by driving pkg/store's indexes.
package query

import (
	"fmt"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

// TriplePattern is one triple of a basic graph pattern: each position
// holds either a bound rdf.Term or a *store.Variable.
type TriplePattern struct {
	Subject   any
	Predicate any
	Object    any
}

// BasicGraphPattern is a conjunction of triple patterns sharing one graph
// specification: a bound term (named graph or DefaultGraph), a
// *store.Variable, or nil for "any graph".
type BasicGraphPattern struct {
	Patterns []TriplePattern
	Graph    any
}

// Binding is a partial function from variable name to term.
type Binding struct {
	Vars map[string]rdf.Term
}

// NewBinding returns an empty binding.
func NewBinding() *Binding {
	return &Binding{Vars: make(map[string]rdf.Term)}
}

// Clone returns an independent copy of b.
func (b *Binding) Clone() *Binding {
	out := NewBinding()
	for k, v := range b.Vars {
		out.Vars[k] = v
	}
	return out
}

// BindingIterator is the pattern evaluator's restartable lazy sequence of
// bindings. Next never panics on a failure: it returns false and Err
// reports the failure, matching the no-local-swallowing rule in §7 ("an
// error surfaces at the iterator consumer as the next produced item being
// an error sentinel").
type BindingIterator interface {
	Next() bool
	Binding() *Binding
	Err() error
	Close() error
}

// Evaluate runs bgp against s, extending each binding in initial. Patterns
// are joined left to right in source order (no cost-based reordering is
// performed here; an external optimizer may have already reordered bgp's
// patterns before calling in).
func Evaluate(s *store.QuadStore, bgp *BasicGraphPattern, initial []*Binding) BindingIterator {
	if len(initial) == 0 {
		initial = []*Binding{NewBinding()}
	}
	return &bgpIterator{
		store:   s,
		bgp:     bgp,
		seeds:   initial,
		seedIdx: -1,
	}
}

// frame is one stack level of the depth-first join: the QuadIterator
// scanning pattern[index], opened against the binding active when the
// frame was pushed.
type frame struct {
	index  int
	parent *Binding
	it     store.QuadIterator
}

type bgpIterator struct {
	store   *store.QuadStore
	bgp     *BasicGraphPattern
	seeds   []*Binding
	seedIdx int

	stack   []*frame
	current *Binding
	err     error
	closed  bool
}

func (it *bgpIterator) Next() bool {
	if it.closed || it.err != nil {
		return false
	}
	for {
		if len(it.stack) == 0 {
			it.seedIdx++
			if it.seedIdx >= len(it.seeds) {
				return false
			}
			if len(it.bgp.Patterns) == 0 {
				it.current = it.seeds[it.seedIdx].Clone()
				return true
			}
			f, err := it.openFrame(0, it.seeds[it.seedIdx])
			if err != nil {
				it.err = err
				return false
			}
			it.stack = append(it.stack, f)
		}

		top := it.stack[len(it.stack)-1]
		if !top.it.Next() {
			top.it.Close() // nolint:errcheck
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		quad, err := top.it.Quad()
		if err != nil {
			it.err = err
			return false
		}

		extended, ok := it.extend(top.parent, top.index, quad)
		if !ok {
			continue // inconsistent with a prior binding of the same variable
		}

		if top.index == len(it.bgp.Patterns)-1 {
			it.current = extended
			return true
		}

		next, err := it.openFrame(top.index+1, extended)
		if err != nil {
			it.err = err
			return false
		}
		it.stack = append(it.stack, next)
	}
}

func (it *bgpIterator) Binding() *Binding { return it.current }
func (it *bgpIterator) Err() error       { return it.err }

func (it *bgpIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	for _, f := range it.stack {
		f.it.Close() // nolint:errcheck
	}
	it.stack = nil
	return nil
}

// openFrame substitutes binding into bgp.Patterns[index] and opens a
// QuadIterator for it.
func (it *bgpIterator) openFrame(index int, binding *Binding) (*frame, error) {
	tp := it.bgp.Patterns[index]
	pattern := &store.Pattern{
		Subject:   substitute(tp.Subject, binding),
		Predicate: substitute(tp.Predicate, binding),
		Object:    substitute(tp.Object, binding),
		Graph:     substitute(it.bgp.Graph, binding),
	}
	qit, err := it.store.QuadsForPattern(pattern)
	if err != nil {
		return nil, err
	}
	return &frame{index: index, parent: binding, it: qit}, nil
}

// substitute resolves pos (an rdf.Term, a *store.Variable, or nil) against
// binding, returning a bound term when possible and the variable itself
// (or nil) otherwise, which pkg/store treats as unbound.
func substitute(pos any, binding *Binding) any {
	v, ok := pos.(*store.Variable)
	if !ok {
		return pos
	}
	if t, bound := binding.Vars[v.Name]; bound {
		return t
	}
	return v
}

// extend tries to grow parent with the variable/term pairs discovered in
// quad for pattern index, rejecting matches inconsistent with a prior
// binding of the same variable within this result.
func (it *bgpIterator) extend(parent *Binding, index int, quad *rdf.Quad) (*Binding, bool) {
	tp := it.bgp.Patterns[index]
	result := parent.Clone()

	bind := func(pos any, term rdf.Term) bool {
		v, ok := pos.(*store.Variable)
		if !ok {
			return true
		}
		if existing, already := result.Vars[v.Name]; already {
			return existing.Equals(term)
		}
		result.Vars[v.Name] = term
		return true
	}

	if !bind(tp.Subject, quad.Subject) {
		return nil, false
	}
	if !bind(tp.Predicate, quad.Predicate) {
		return nil, false
	}
	if !bind(tp.Object, quad.Object) {
		return nil, false
	}
	if !bind(it.bgp.Graph, quad.Graph) {
		return nil, false
	}
	return result, true
}

// errUnsupportedPosition names a pattern position this evaluator cannot
// handle; no code in this package returns it.
var errUnsupportedPosition = fmt.Errorf("query: unsupported pattern position")
