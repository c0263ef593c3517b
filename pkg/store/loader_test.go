package store

import (
	"errors"
	"testing"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

func TestLoadGraphDefaultsToDefaultGraph(t *testing.T) {
	s := newTestStore(t)

	triples := []*rdf.Triple{
		rdf.NewTriple(rdf.NewNamedNode("http://ex/a"), rdf.NewNamedNode("http://ex/p"), rdf.NewNamedNode("http://ex/b")),
	}
	if err := s.LoadGraph(triples, nil); err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}

	ok, err := s.Contains(&rdf.Quad{
		Subject:   rdf.NewNamedNode("http://ex/a"),
		Predicate: rdf.NewNamedNode("http://ex/p"),
		Object:    rdf.NewNamedNode("http://ex/b"),
		Graph:     rdf.NewDefaultGraph(),
	})
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Fatal("expected triple to land in the default graph")
	}
}

func TestLoadGraphHonorsTargetGraph(t *testing.T) {
	s := newTestStore(t)

	triples := []*rdf.Triple{
		rdf.NewTriple(rdf.NewNamedNode("http://ex/a"), rdf.NewNamedNode("http://ex/p"), rdf.NewNamedNode("http://ex/b")),
	}
	target := rdf.NewNamedNode("http://ex/graph1")
	if err := s.LoadGraph(triples, target); err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}

	ok, err := s.Contains(&rdf.Quad{
		Subject:   rdf.NewNamedNode("http://ex/a"),
		Predicate: rdf.NewNamedNode("http://ex/p"),
		Object:    rdf.NewNamedNode("http://ex/b"),
		Graph:     target,
	})
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Fatal("expected triple to land in the named target graph")
	}
}

func TestLoadGraphBlankNodesIsolatedPerCall(t *testing.T) {
	s := newTestStore(t)

	doc := []*rdf.Triple{
		rdf.NewTriple(rdf.NewBlankNode("x"), rdf.NewNamedNode("http://ex/p"), rdf.NewNamedNode("http://ex/val")),
	}

	if err := s.LoadGraph(doc, nil); err != nil {
		t.Fatalf("first LoadGraph: %v", err)
	}
	if err := s.LoadGraph(doc, nil); err != nil {
		t.Fatalf("second LoadGraph: %v", err)
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected the label \"x\" to be renamed independently each load, producing 2 distinct quads, got %d", n)
	}
}

func TestLoadDatasetHonorsQuadGraphNames(t *testing.T) {
	s := newTestStore(t)

	quads := []*rdf.Quad{
		{
			Subject:   rdf.NewNamedNode("http://ex/a"),
			Predicate: rdf.NewNamedNode("http://ex/p"),
			Object:    rdf.NewNamedNode("http://ex/b"),
			Graph:     rdf.NewNamedNode("http://ex/g1"),
		},
		{
			Subject:   rdf.NewNamedNode("http://ex/c"),
			Predicate: rdf.NewNamedNode("http://ex/p"),
			Object:    rdf.NewNamedNode("http://ex/d"),
			Graph:     rdf.NewNamedNode("http://ex/g2"),
		},
	}
	if err := s.LoadDataset(quads); err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	it, err := s.QuadsForPattern(&Pattern{
		Subject:   NewVariable("s"),
		Predicate: NewVariable("p"),
		Object:    NewVariable("o"),
		Graph:     rdf.NewNamedNode("http://ex/g1"),
	})
	if err != nil {
		t.Fatalf("QuadsForPattern: %v", err)
	}
	got := drainQuads(t, it)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 quad in g1, got %d", len(got))
	}
}

func TestLoadGraphWithSyntax_RejectsGraphForQuadSyntax(t *testing.T) {
	s := newTestStore(t)

	err := LoadGraphWithSyntax(s, SyntaxNQuads, rdf.NewNamedNode("http://ex/g"),
		func() ([]*rdf.Triple, error) { return nil, nil },
		func() ([]*rdf.Quad, error) { return nil, nil },
	)
	if err == nil {
		t.Fatal("expected an error when a target graph is given for a quad-producing syntax")
	}
	if _, ok := err.(*GraphNameNotApplicableError); !ok {
		t.Fatalf("expected *GraphNameNotApplicableError, got %T", err)
	}
}

func TestLoadGraphWithSyntax_DispatchesTriplesForTurtle(t *testing.T) {
	s := newTestStore(t)

	called := false
	err := LoadGraphWithSyntax(s, SyntaxTurtle, nil,
		func() ([]*rdf.Triple, error) {
			called = true
			return []*rdf.Triple{
				rdf.NewTriple(rdf.NewNamedNode("http://ex/a"), rdf.NewNamedNode("http://ex/p"), rdf.NewNamedNode("http://ex/b")),
			}, nil
		},
		func() ([]*rdf.Quad, error) {
			t.Fatal("quad callback should not run for a triple-producing syntax")
			return nil, nil
		},
	)
	if err != nil {
		t.Fatalf("LoadGraphWithSyntax: %v", err)
	}
	if !called {
		t.Fatal("expected the triple parser callback to run")
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 quad loaded, got %d", n)
	}
}

var errParseBoom = errors.New("boom")

func TestLoadGraphWithSyntax_WrapsParseError(t *testing.T) {
	s := newTestStore(t)

	err := LoadGraphWithSyntax(s, SyntaxNTriples, nil,
		func() ([]*rdf.Triple, error) { return nil, errParseBoom },
		func() ([]*rdf.Quad, error) { return nil, nil },
	)
	if err == nil {
		t.Fatal("expected a wrapped parse error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Unwrap() != errParseBoom {
		t.Fatal("expected ParseError to unwrap to the underlying parser error")
	}
}
