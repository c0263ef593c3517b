package storage

import (
	"testing"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

func TestBatchInsertAndQuery(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer backend.Close()

	qs := store.NewQuadStore(backend)

	quads := []*rdf.Quad{
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/alice"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Alice"),
			rdf.NewDefaultGraph(),
		),
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/bob"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Bob"),
			rdf.NewDefaultGraph(),
		),
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/charlie"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Charlie"),
			rdf.NewNamedNode("http://example.org/graph1"),
		),
	}

	for _, q := range quads {
		if err := qs.Insert(q); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}

	count, err := qs.Len()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}

	pattern := &store.Pattern{
		Subject:   store.NewVariable("s"),
		Predicate: store.NewVariable("p"),
		Object:    store.NewVariable("o"),
		Graph:     rdf.NewDefaultGraph(),
	}

	iter, err := qs.QuadsForPattern(pattern)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	defer iter.Close()

	defaultGraphCount := 0
	for iter.Next() {
		quad, err := iter.Quad()
		if err != nil {
			t.Fatalf("failed to get quad: %v", err)
		}
		defaultGraphCount++
		if quad.Graph.Type() != rdf.TermTypeDefaultGraph {
			t.Errorf("expected default graph, got type %d", quad.Graph.Type())
		}
	}
	if defaultGraphCount != 2 {
		t.Errorf("expected 2 quads in default graph, got %d", defaultGraphCount)
	}

	namedGraphPattern := &store.Pattern{
		Subject:   store.NewVariable("s"),
		Predicate: store.NewVariable("p"),
		Object:    store.NewVariable("o"),
		Graph:     rdf.NewNamedNode("http://example.org/graph1"),
	}

	iter2, err := qs.QuadsForPattern(namedGraphPattern)
	if err != nil {
		t.Fatalf("failed to query named graph: %v", err)
	}
	defer iter2.Close()

	namedGraphCount := 0
	for iter2.Next() {
		quad, err := iter2.Quad()
		if err != nil {
			t.Fatalf("failed to get quad from named graph: %v", err)
		}
		namedGraphCount++

		subjectNode, ok := quad.Subject.(*rdf.NamedNode)
		if !ok {
			t.Error("failed to cast subject to NamedNode")
		} else if subjectNode.IRI != "http://example.org/charlie" {
			t.Errorf("expected charlie, got %s", subjectNode.IRI)
		}
	}
	if namedGraphCount != 1 {
		t.Errorf("expected 1 quad in named graph, got %d", namedGraphCount)
	}
}

func TestBatchInsertAndQuerySpecificValues(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer backend.Close()

	qs := store.NewQuadStore(backend)

	aliceNode := rdf.NewNamedNode("http://example.org/alice")
	nameProperty := rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name")
	aliceLiteral := rdf.NewLiteral("Alice")

	quads := []*rdf.Quad{
		rdf.NewQuad(aliceNode, nameProperty, aliceLiteral, rdf.NewDefaultGraph()),
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/alice"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/age"),
			rdf.NewLiteralWithDatatype("30", rdf.XSDInteger),
			rdf.NewDefaultGraph(),
		),
	}
	for _, q := range quads {
		if err := qs.Insert(q); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}

	pattern := &store.Pattern{
		Subject:   aliceNode,
		Predicate: nameProperty,
		Object:    store.NewVariable("o"),
		Graph:     rdf.NewDefaultGraph(),
	}

	iter, err := qs.QuadsForPattern(pattern)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	defer iter.Close()

	found := false
	for iter.Next() {
		quad, err := iter.Quad()
		if err != nil {
			t.Fatalf("failed to get quad: %v", err)
		}
		literal, ok := quad.Object.(*rdf.Literal)
		if !ok {
			t.Error("failed to cast object to Literal")
		} else if literal.Value != "Alice" {
			t.Errorf("expected 'Alice', got '%s'", literal.Value)
		} else {
			found = true
		}
	}
	if !found {
		t.Error("did not find alice's name")
	}
}

func TestBatchDeleteAndQuery(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer backend.Close()

	qs := store.NewQuadStore(backend)

	quads := []*rdf.Quad{
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/alice"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Alice"),
			rdf.NewDefaultGraph(),
		),
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/bob"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Bob"),
			rdf.NewDefaultGraph(),
		),
	}
	for _, q := range quads {
		if err := qs.Insert(q); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}

	count, err := qs.Len()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2 before delete, got %d", count)
	}

	if err := qs.Remove(quads[0]); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	count, err = qs.Len()
	if err != nil {
		t.Fatalf("failed to count after delete: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1 after delete, got %d", count)
	}

	pattern := &store.Pattern{
		Subject:   store.NewVariable("s"),
		Predicate: store.NewVariable("p"),
		Object:    store.NewVariable("o"),
		Graph:     rdf.NewDefaultGraph(),
	}

	iter, err := qs.QuadsForPattern(pattern)
	if err != nil {
		t.Fatalf("failed to query after delete: %v", err)
	}
	defer iter.Close()

	foundBob, foundAlice := false, false
	for iter.Next() {
		quad, err := iter.Quad()
		if err != nil {
			t.Fatalf("failed to get quad: %v", err)
		}
		subject, ok := quad.Subject.(*rdf.NamedNode)
		if !ok {
			t.Error("expected NamedNode subject")
			continue
		}
		switch subject.IRI {
		case "http://example.org/bob":
			foundBob = true
		case "http://example.org/alice":
			foundAlice = true
		}
	}
	if !foundBob {
		t.Error("Bob should still be present after delete")
	}
	if foundAlice {
		t.Error("Alice should be deleted")
	}
}
