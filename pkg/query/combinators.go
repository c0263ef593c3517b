package query

import (
	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

// Project restricts each binding to vars, in order; a variable absent from
// the underlying binding is simply omitted rather than erroring, matching
// SPARQL's treatment of an unbound projected variable.
func Project(inner BindingIterator, vars []string) BindingIterator {
	return &projectIterator{inner: inner, vars: vars}
}

type projectIterator struct {
	inner BindingIterator
	vars  []string
}

func (p *projectIterator) Next() bool   { return p.inner.Next() }
func (p *projectIterator) Err() error   { return p.inner.Err() }
func (p *projectIterator) Close() error { return p.inner.Close() }
func (p *projectIterator) Binding() *Binding {
	src := p.inner.Binding()
	out := NewBinding()
	for _, v := range p.vars {
		if t, ok := src.Vars[v]; ok {
			out.Vars[v] = t
		}
	}
	return out
}

// Distinct suppresses bindings equal (by lexical form of every bound
// term, per the quad-identity resolution in the design notes) to one
// already produced. It necessarily buffers the set of bindings seen so
// far, trading memory for the lazy-iterator contract elsewhere in this
// package.
func Distinct(inner BindingIterator) BindingIterator {
	return &distinctIterator{inner: inner, seen: make(map[string]struct{})}
}

type distinctIterator struct {
	inner BindingIterator
	seen  map[string]struct{}
}

func (d *distinctIterator) Next() bool {
	for d.inner.Next() {
		key := bindingKey(d.inner.Binding())
		if _, ok := d.seen[key]; ok {
			continue
		}
		d.seen[key] = struct{}{}
		return true
	}
	return false
}

func (d *distinctIterator) Binding() *Binding { return d.inner.Binding() }
func (d *distinctIterator) Err() error         { return d.inner.Err() }
func (d *distinctIterator) Close() error       { return d.inner.Close() }

func bindingKey(b *Binding) string {
	// Deterministic key: variable names are joined in the map's natural
	// iteration order is not stable, so sort is required for correctness
	// of Distinct rather than just its performance.
	names := make([]string, 0, len(b.Vars))
	for k := range b.Vars {
		names = append(names, k)
	}
	sortStrings(names)
	key := make([]byte, 0, 64)
	for _, n := range names {
		key = append(key, n...)
		key = append(key, 0)
		key = append(key, termKey(b.Vars[n])...)
		key = append(key, 0)
	}
	return string(key)
}

func termKey(t rdf.Term) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// sortStrings is a tiny insertion sort: these slices are a handful of
// variable names, nowhere near large enough to warrant sort.Strings'
// import-graph weight for this one call site.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Offset skips the first n results.
func Offset(inner BindingIterator, n int) BindingIterator {
	return &offsetIterator{inner: inner, remaining: n}
}

type offsetIterator struct {
	inner     BindingIterator
	remaining int
	skipped   bool
}

func (o *offsetIterator) Next() bool {
	if !o.skipped {
		o.skipped = true
		for o.remaining > 0 {
			if !o.inner.Next() {
				return false
			}
			o.remaining--
		}
	}
	return o.inner.Next()
}

func (o *offsetIterator) Binding() *Binding { return o.inner.Binding() }
func (o *offsetIterator) Err() error         { return o.inner.Err() }
func (o *offsetIterator) Close() error       { return o.inner.Close() }

// Limit stops after n results.
func Limit(inner BindingIterator, n int) BindingIterator {
	return &limitIterator{inner: inner, remaining: n}
}

type limitIterator struct {
	inner     BindingIterator
	remaining int
}

func (l *limitIterator) Next() bool {
	if l.remaining <= 0 {
		return false
	}
	if !l.inner.Next() {
		return false
	}
	l.remaining--
	return true
}

func (l *limitIterator) Binding() *Binding { return l.inner.Binding() }
func (l *limitIterator) Err() error         { return l.inner.Err() }
func (l *limitIterator) Close() error       { return l.inner.Close() }

// Filter drops bindings for which keep returns false. keep is expected to
// be an expression evaluator supplied by the SPARQL layer (e.g. FILTER).
func Filter(inner BindingIterator, keep func(*Binding) (bool, error)) BindingIterator {
	return &filterIterator{inner: inner, keep: keep}
}

type filterIterator struct {
	inner BindingIterator
	keep  func(*Binding) (bool, error)
	err   error
}

func (f *filterIterator) Next() bool {
	if f.err != nil {
		return false
	}
	for f.inner.Next() {
		ok, err := f.keep(f.inner.Binding())
		if err != nil {
			f.err = err
			return false
		}
		if ok {
			return true
		}
	}
	return false
}

func (f *filterIterator) Binding() *Binding { return f.inner.Binding() }
func (f *filterIterator) Close() error      { return f.inner.Close() }
func (f *filterIterator) Err() error {
	if f.err != nil {
		return f.err
	}
	return f.inner.Err()
}

// Ask reports whether iter produces at least one binding, consuming at
// most one result regardless of how many the pattern would otherwise
// match — the restartable-lazy contract means this never materializes
// the full result set just to answer a boolean question.
func Ask(iter BindingIterator) (bool, error) {
	defer iter.Close()
	if iter.Next() {
		return true, nil
	}
	return false, iter.Err()
}

// ConstructTemplate is a triple pattern whose positions may reference
// variables bound by the BGP, blank nodes scoped to one result row, or
// fixed terms.
type ConstructTemplate struct {
	Patterns []TriplePattern
}

// Construct substitutes each binding from iter into template, producing
// the triples named by CONSTRUCT. A blank node appearing in the template
// is freshly allocated per solution row (per SPARQL semantics) via
// newBlank, not shared across rows.
func Construct(iter BindingIterator, template *ConstructTemplate, newBlank func() *rdf.BlankNode) ([]*rdf.Triple, error) {
	defer iter.Close()

	var out []*rdf.Triple
	for iter.Next() {
		binding := iter.Binding()
		rowBlanks := make(map[string]*rdf.BlankNode)
		for _, tp := range template.Patterns {
			s, ok := resolveTemplateTerm(tp.Subject, binding, rowBlanks, newBlank)
			if !ok {
				continue
			}
			p, ok := resolveTemplateTerm(tp.Predicate, binding, rowBlanks, newBlank)
			if !ok {
				continue
			}
			o, ok := resolveTemplateTerm(tp.Object, binding, rowBlanks, newBlank)
			if !ok {
				continue
			}
			out = append(out, &rdf.Triple{Subject: s, Predicate: p, Object: o})
		}
	}
	return out, iter.Err()
}

func resolveTemplateTerm(pos any, binding *Binding, rowBlanks map[string]*rdf.BlankNode, newBlank func() *rdf.BlankNode) (rdf.Term, bool) {
	switch v := pos.(type) {
	case *store.Variable:
		t, ok := binding.Vars[v.Name]
		return t, ok
	case *rdf.BlankNode:
		if bn, ok := rowBlanks[v.ID]; ok {
			return bn, true
		}
		bn := newBlank()
		rowBlanks[v.ID] = bn
		return bn, true
	case rdf.Term:
		return v, true
	default:
		return nil, false
	}
}
