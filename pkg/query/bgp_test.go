package query

import (
	"testing"

	"github.com/aleksaelezovic/trigo/internal/storage"
	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

func newTestStore(t *testing.T) *store.QuadStore {
	t.Helper()
	s := store.NewQuadStore(storage.NewMemoryStorage())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustInsert(t *testing.T, s *store.QuadStore, sub, pred, obj string) {
	t.Helper()
	q := &rdf.Quad{
		Subject:   rdf.NewNamedNode(sub),
		Predicate: rdf.NewNamedNode(pred),
		Object:    rdf.NewNamedNode(obj),
		Graph:     rdf.NewDefaultGraph(),
	}
	if err := s.Insert(q); err != nil {
		t.Fatalf("Insert: %v", err)
	}
}

func drainBindings(t *testing.T, it BindingIterator) []*Binding {
	t.Helper()
	defer it.Close()

	var out []*Binding
	for it.Next() {
		out = append(out, it.Binding().Clone())
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iterator error: %v", err)
	}
	return out
}

func TestEvaluate_SingleTriplePattern(t *testing.T) {
	s := newTestStore(t)
	mustInsert(t, s, "http://ex/alice", "http://ex/knows", "http://ex/bob")
	mustInsert(t, s, "http://ex/alice", "http://ex/knows", "http://ex/carol")

	bgp := &BasicGraphPattern{
		Patterns: []TriplePattern{
			{Subject: rdf.NewNamedNode("http://ex/alice"), Predicate: rdf.NewNamedNode("http://ex/knows"), Object: store.NewVariable("friend")},
		},
	}

	bindings := drainBindings(t, Evaluate(s, bgp, nil))
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}
	for _, b := range bindings {
		if _, ok := b.Vars["friend"]; !ok {
			t.Fatal("expected every binding to bind ?friend")
		}
	}
}

func TestEvaluate_JoinAcrossPatterns(t *testing.T) {
	s := newTestStore(t)
	mustInsert(t, s, "http://ex/alice", "http://ex/knows", "http://ex/bob")
	mustInsert(t, s, "http://ex/bob", "http://ex/knows", "http://ex/carol")
	mustInsert(t, s, "http://ex/alice", "http://ex/knows", "http://ex/dave")

	bgp := &BasicGraphPattern{
		Patterns: []TriplePattern{
			{Subject: rdf.NewNamedNode("http://ex/alice"), Predicate: rdf.NewNamedNode("http://ex/knows"), Object: store.NewVariable("x")},
			{Subject: store.NewVariable("x"), Predicate: rdf.NewNamedNode("http://ex/knows"), Object: store.NewVariable("y")},
		},
	}

	bindings := drainBindings(t, Evaluate(s, bgp, nil))
	if len(bindings) != 1 {
		t.Fatalf("expected exactly 1 join result (alice->bob->carol), got %d", len(bindings))
	}
	got := bindings[0]
	if !got.Vars["x"].Equals(rdf.NewNamedNode("http://ex/bob")) {
		t.Fatalf("expected ?x = bob, got %s", got.Vars["x"])
	}
	if !got.Vars["y"].Equals(rdf.NewNamedNode("http://ex/carol")) {
		t.Fatalf("expected ?y = carol, got %s", got.Vars["y"])
	}
}

func TestEvaluate_RepeatedVariableRequiresConsistentBinding(t *testing.T) {
	s := newTestStore(t)
	mustInsert(t, s, "http://ex/alice", "http://ex/knows", "http://ex/bob")
	mustInsert(t, s, "http://ex/alice", "http://ex/likes", "http://ex/coffee")

	bgp := &BasicGraphPattern{
		Patterns: []TriplePattern{
			{Subject: store.NewVariable("p"), Predicate: rdf.NewNamedNode("http://ex/knows"), Object: store.NewVariable("friend")},
			{Subject: store.NewVariable("p"), Predicate: rdf.NewNamedNode("http://ex/likes"), Object: store.NewVariable("thing")},
		},
	}

	bindings := drainBindings(t, Evaluate(s, bgp, nil))
	if len(bindings) != 1 {
		t.Fatalf("expected 1 binding where ?p is consistently alice, got %d", len(bindings))
	}
}

func TestEvaluate_EmptyPatternYieldsOneEmptyBinding(t *testing.T) {
	s := newTestStore(t)
	bgp := &BasicGraphPattern{}

	bindings := drainBindings(t, Evaluate(s, bgp, nil))
	if len(bindings) != 1 {
		t.Fatalf("expected exactly 1 binding for an empty pattern, got %d", len(bindings))
	}
}

func TestEvaluate_NoMatchYieldsNoBindings(t *testing.T) {
	s := newTestStore(t)
	mustInsert(t, s, "http://ex/alice", "http://ex/knows", "http://ex/bob")

	bgp := &BasicGraphPattern{
		Patterns: []TriplePattern{
			{Subject: rdf.NewNamedNode("http://ex/nobody"), Predicate: store.NewVariable("p"), Object: store.NewVariable("o")},
		},
	}

	bindings := drainBindings(t, Evaluate(s, bgp, nil))
	if len(bindings) != 0 {
		t.Fatalf("expected no bindings, got %d", len(bindings))
	}
}
