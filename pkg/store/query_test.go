package store

import (
	"testing"

	"github.com/aleksaelezovic/trigo/internal/storage"
	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

func drainQuads(t *testing.T, it QuadIterator) []*rdf.Quad {
	t.Helper()
	defer it.Close()

	var out []*rdf.Quad
	for it.Next() {
		q, err := it.Quad()
		if err != nil {
			t.Fatalf("Quad: %v", err)
		}
		out = append(out, q)
	}
	return out
}

func seedTestStore(t *testing.T) *QuadStore {
	t.Helper()
	s := NewQuadStore(storage.NewMemoryStorage())
	t.Cleanup(func() { _ = s.Close() })

	data := [][3]string{
		{"http://ex/alice", "http://ex/knows", "http://ex/bob"},
		{"http://ex/alice", "http://ex/knows", "http://ex/carol"},
		{"http://ex/bob", "http://ex/knows", "http://ex/carol"},
	}
	for _, d := range data {
		if err := s.Insert(quad(d[0], d[1], d[2])); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	return s
}

func TestQuadsForPattern_BoundSubject(t *testing.T) {
	s := seedTestStore(t)

	pattern := &Pattern{
		Subject:   rdf.NewNamedNode("http://ex/alice"),
		Predicate: NewVariable("p"),
		Object:    NewVariable("o"),
		Graph:     nil,
	}
	it, err := s.QuadsForPattern(pattern)
	if err != nil {
		t.Fatalf("QuadsForPattern: %v", err)
	}
	got := drainQuads(t, it)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for alice as subject, got %d", len(got))
	}
}

func TestQuadsForPattern_AllVariables(t *testing.T) {
	s := seedTestStore(t)

	pattern := &Pattern{
		Subject:   NewVariable("s"),
		Predicate: NewVariable("p"),
		Object:    NewVariable("o"),
	}
	it, err := s.QuadsForPattern(pattern)
	if err != nil {
		t.Fatalf("QuadsForPattern: %v", err)
	}
	got := drainQuads(t, it)
	if len(got) != 3 {
		t.Fatalf("expected 3 matches scanning everything, got %d", len(got))
	}
}

func TestQuadsForPattern_NoMatch(t *testing.T) {
	s := seedTestStore(t)

	pattern := &Pattern{
		Subject:   rdf.NewNamedNode("http://ex/nobody"),
		Predicate: NewVariable("p"),
		Object:    NewVariable("o"),
	}
	it, err := s.QuadsForPattern(pattern)
	if err != nil {
		t.Fatalf("QuadsForPattern: %v", err)
	}
	got := drainQuads(t, it)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestQuadsForPattern_BoundSubjectAndPredicate(t *testing.T) {
	s := seedTestStore(t)

	pattern := &Pattern{
		Subject:   rdf.NewNamedNode("http://ex/alice"),
		Predicate: rdf.NewNamedNode("http://ex/knows"),
		Object:    rdf.NewNamedNode("http://ex/bob"),
	}
	it, err := s.QuadsForPattern(pattern)
	if err != nil {
		t.Fatalf("QuadsForPattern: %v", err)
	}
	got := drainQuads(t, it)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 fully-bound match, got %d", len(got))
	}
}

func TestSelectIndexPicksLongestBoundPrefix(t *testing.T) {
	s := NewQuadStore(storage.NewMemoryStorage())
	defer s.Close()

	table, _ := s.selectIndex(&Pattern{
		Subject:   NewVariable("s"),
		Predicate: NewVariable("p"),
		Object:    NewVariable("o"),
		Graph:     rdf.NewDefaultGraph(),
	})
	if table != TableGSPO {
		t.Fatalf("expected GSPO for a graph-only-bound pattern, got %s", table)
	}

	table, _ = s.selectIndex(&Pattern{
		Subject:   rdf.NewNamedNode("http://ex/a"),
		Predicate: NewVariable("p"),
		Object:    NewVariable("o"),
	})
	if table != TableSPOG {
		t.Fatalf("expected SPOG for a subject-only-bound pattern, got %s", table)
	}
}
