package store

import (
	"testing"

	"github.com/aleksaelezovic/trigo/internal/storage"
	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

func newTestStore(t *testing.T) *QuadStore {
	t.Helper()
	s := NewQuadStore(storage.NewMemoryStorage())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func quad(s, p, o string) *rdf.Quad {
	return &rdf.Quad{
		Subject:   rdf.NewNamedNode(s),
		Predicate: rdf.NewNamedNode(p),
		Object:    rdf.NewNamedNode(o),
		Graph:     rdf.NewDefaultGraph(),
	}
}

func TestInsertContains(t *testing.T) {
	s := newTestStore(t)
	q := quad("http://ex/a", "http://ex/p", "http://ex/b")

	ok, err := s.Contains(q)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if ok {
		t.Fatal("expected quad to be absent before insert")
	}

	if err := s.Insert(q); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	ok, err = s.Contains(q)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Fatal("expected quad to be present after insert")
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	q := quad("http://ex/a", "http://ex/p", "http://ex/b")

	if err := s.Insert(q); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Insert(q); err != nil {
		t.Fatalf("second Insert: %v", err)
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 quad after duplicate insert, got %d", n)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	q := quad("http://ex/a", "http://ex/p", "http://ex/b")

	if err := s.Insert(q); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Remove(q); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	ok, err := s.Contains(q)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if ok {
		t.Fatal("expected quad to be absent after Remove")
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty store, got %d quads", n)
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := newTestStore(t)
	q := quad("http://ex/a", "http://ex/p", "http://ex/b")
	if err := s.Remove(q); err != nil {
		t.Fatalf("Remove of absent quad should not error: %v", err)
	}
}

func TestLenCountsDistinctQuads(t *testing.T) {
	s := newTestStore(t)
	quads := []*rdf.Quad{
		quad("http://ex/a", "http://ex/p", "http://ex/1"),
		quad("http://ex/a", "http://ex/p", "http://ex/2"),
		quad("http://ex/b", "http://ex/p", "http://ex/1"),
	}
	for _, q := range quads {
		if err := s.Insert(q); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != int64(len(quads)) {
		t.Fatalf("expected %d quads, got %d", len(quads), n)
	}
}
