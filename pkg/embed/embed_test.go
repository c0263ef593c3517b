package embed

import (
	"strings"
	"testing"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

func TestOpenConnectInsertContains(t *testing.T) {
	db := Open()
	defer db.Close()
	conn := db.Connect()

	q := &rdf.Quad{
		Subject:   rdf.NewNamedNode("http://ex/a"),
		Predicate: rdf.NewNamedNode("http://ex/p"),
		Object:    rdf.NewNamedNode("http://ex/b"),
		Graph:     rdf.NewDefaultGraph(),
	}
	if err := conn.Insert(q); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	ok, err := conn.Contains(q)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Fatal("expected the inserted quad to be present")
	}

	n, err := conn.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 quad, got %d", n)
	}
}

func TestLoadGraphTurtle(t *testing.T) {
	db := Open()
	defer db.Close()
	conn := db.Connect()

	data := `<http://ex/a> <http://ex/p> <http://ex/b> .`
	if err := conn.LoadGraph(strings.NewReader(data), store.SyntaxTurtle, nil); err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}

	n, err := conn.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 quad loaded from Turtle, got %d", n)
	}
}

func TestLoadDatasetNQuadsPreservesGraph(t *testing.T) {
	db := Open()
	defer db.Close()
	conn := db.Connect()

	data := `<http://ex/a> <http://ex/p> <http://ex/b> <http://ex/g1> .`
	if err := conn.LoadDataset(strings.NewReader(data), store.SyntaxNQuads); err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	it, err := conn.QuadsForPattern(&store.Pattern{
		Subject:   store.NewVariable("s"),
		Predicate: store.NewVariable("p"),
		Object:    store.NewVariable("o"),
		Graph:     rdf.NewNamedNode("http://ex/g1"),
	})
	if err != nil {
		t.Fatalf("QuadsForPattern: %v", err)
	}
	defer it.Close()

	if !it.Next() {
		t.Fatal("expected a quad in graph g1")
	}
}

func TestLoadGraphRejectsTargetGraphForQuadSyntax(t *testing.T) {
	db := Open()
	defer db.Close()
	conn := db.Connect()

	err := conn.LoadGraph(strings.NewReader(""), store.SyntaxNQuads, rdf.NewNamedNode("http://ex/g"))
	if err == nil {
		t.Fatal("expected an error supplying a target graph for a quad-producing syntax")
	}
	if _, ok := err.(*store.GraphNameNotApplicableError); !ok {
		t.Fatalf("expected *store.GraphNameNotApplicableError, got %T", err)
	}
}

func TestPrepareQueryAndExec(t *testing.T) {
	db := Open()
	defer db.Close()
	conn := db.Connect()

	if err := conn.Insert(&rdf.Quad{
		Subject:   rdf.NewNamedNode("http://ex/a"),
		Predicate: rdf.NewNamedNode("http://ex/p"),
		Object:    rdf.NewNamedNode("http://ex/b"),
		Graph:     rdf.NewDefaultGraph(),
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	pq, err := conn.PrepareQuery("ASK { <http://ex/a> <http://ex/p> <http://ex/b> }")
	if err != nil {
		t.Fatalf("PrepareQuery: %v", err)
	}

	if _, err := pq.Exec(); err != nil {
		t.Fatalf("Exec: %v", err)
	}
}

func TestPrepareQueryRejectsBadSyntax(t *testing.T) {
	db := Open()
	defer db.Close()
	conn := db.Connect()

	if _, err := conn.PrepareQuery("SELECT not valid !!"); err == nil {
		t.Fatal("expected a parse error for malformed SPARQL")
	}
}
