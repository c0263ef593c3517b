package storage

import (
	"testing"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

func TestMemoryInsertContainsLen(t *testing.T) {
	qs := store.NewQuadStore(NewMemoryStorage())

	q := rdf.NewQuad(
		rdf.NewNamedNode("http://ex/s"),
		rdf.NewNamedNode("http://ex/p"),
		rdf.NewNamedNode("http://ex/o"),
		rdf.NewDefaultGraph(),
	)

	if err := qs.Insert(q); err != nil {
		t.Fatalf("insert: %v", err)
	}

	ok, err := qs.Contains(q)
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if !ok {
		t.Error("expected contains true")
	}

	n, err := qs.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 1 {
		t.Errorf("expected len 1, got %d", n)
	}

	// duplicate insert is a no-op
	if err := qs.Insert(q); err != nil {
		t.Fatalf("re-insert: %v", err)
	}
	n, _ = qs.Len()
	if n != 1 {
		t.Errorf("expected len still 1 after duplicate insert, got %d", n)
	}
}

func TestMemoryInsertRemoveContains(t *testing.T) {
	qs := store.NewQuadStore(NewMemoryStorage())

	q := rdf.NewQuad(
		rdf.NewNamedNode("http://ex/s"),
		rdf.NewNamedNode("http://ex/p"),
		rdf.NewNamedNode("http://ex/o"),
		rdf.NewDefaultGraph(),
	)

	if err := qs.Insert(q); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := qs.Remove(q); err != nil {
		t.Fatalf("remove: %v", err)
	}

	ok, err := qs.Contains(q)
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if ok {
		t.Error("expected contains false after remove")
	}
}

func TestMemoryPatternMatch(t *testing.T) {
	qs := store.NewQuadStore(NewMemoryStorage())

	q := rdf.NewQuad(
		rdf.NewNamedNode("http://ex/s"),
		rdf.NewNamedNode("http://ex/p"),
		rdf.NewNamedNode("http://ex/o"),
		rdf.NewDefaultGraph(),
	)
	if err := qs.Insert(q); err != nil {
		t.Fatalf("insert: %v", err)
	}

	iter, err := qs.QuadsForPattern(&store.Pattern{
		Subject:   store.NewVariable("s"),
		Predicate: rdf.NewNamedNode("http://ex/p"),
		Object:    store.NewVariable("o"),
	})
	if err != nil {
		t.Fatalf("quads for pattern: %v", err)
	}
	defer iter.Close()

	count := 0
	for iter.Next() {
		got, err := iter.Quad()
		if err != nil {
			t.Fatalf("quad: %v", err)
		}
		if !got.Subject.Equals(q.Subject) || !got.Object.Equals(q.Object) {
			t.Errorf("unexpected quad %v", got)
		}
		count++
	}
	if count != 1 {
		t.Errorf("expected 1 match, got %d", count)
	}
}

func TestMemoryIndexConsistency(t *testing.T) {
	qs := store.NewQuadStore(NewMemoryStorage())

	quads := []*rdf.Quad{
		rdf.NewQuad(rdf.NewNamedNode("http://ex/a"), rdf.NewNamedNode("http://ex/p"), rdf.NewNamedNode("http://ex/b"), rdf.NewDefaultGraph()),
		rdf.NewQuad(rdf.NewNamedNode("http://ex/b"), rdf.NewNamedNode("http://ex/p"), rdf.NewNamedNode("http://ex/c"), rdf.NewNamedNode("http://ex/g")),
	}
	for _, q := range quads {
		if err := qs.Insert(q); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	count := func(pattern *store.Pattern) int {
		iter, err := qs.QuadsForPattern(pattern)
		if err != nil {
			t.Fatalf("quads for pattern: %v", err)
		}
		defer iter.Close()
		n := 0
		for iter.Next() {
			if _, err := iter.Quad(); err != nil {
				t.Fatalf("quad: %v", err)
			}
			n++
		}
		return n
	}

	// Four of the six indexes are exercised, each by a pattern whose bound
	// prefix matches only that index's natural leading columns.
	if n := count(&store.Pattern{Subject: quads[0].Subject, Predicate: quads[0].Predicate, Object: quads[0].Object}); n != 1 {
		t.Errorf("SPOG-style scan: expected 1, got %d", n)
	}
	if n := count(&store.Pattern{Predicate: rdf.NewNamedNode("http://ex/p")}); n != 2 {
		t.Errorf("POSG-style scan: expected 2, got %d", n)
	}
	if n := count(&store.Pattern{Object: rdf.NewNamedNode("http://ex/b")}); n != 1 {
		t.Errorf("OSPG-style scan: expected 1, got %d", n)
	}
	if n := count(&store.Pattern{Graph: rdf.NewNamedNode("http://ex/g")}); n != 1 {
		t.Errorf("GSPO-style scan: expected 1, got %d", n)
	}
}
