package sparql

import (
	"testing"

	"github.com/aleksaelezovic/trigo/internal/storage"
	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/sparql/executor"
	"github.com/aleksaelezovic/trigo/pkg/sparql/parser"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	s := store.NewQuadStore(storage.NewMemoryStorage())
	t.Cleanup(func() { _ = s.Close() })

	q := &rdf.Quad{
		Subject:   rdf.NewNamedNode("http://ex/alice"),
		Predicate: rdf.NewNamedNode("http://ex/knows"),
		Object:    rdf.NewNamedNode("http://ex/bob"),
		Graph:     rdf.NewDefaultGraph(),
	}
	if err := s.Insert(q); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return NewEngine(s)
}

func TestEngineQuery_Select(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Query("SELECT ?friend WHERE { <http://ex/alice> <http://ex/knows> ?friend }")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	sel, ok := result.(*executor.SelectResult)
	if !ok {
		t.Fatalf("expected *executor.SelectResult, got %T", result)
	}
	if len(sel.Bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(sel.Bindings))
	}
}

func TestEngineQuery_Ask(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Query("ASK { <http://ex/alice> <http://ex/knows> <http://ex/bob> }")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	ask, ok := result.(*executor.AskResult)
	if !ok {
		t.Fatalf("expected *executor.AskResult, got %T", result)
	}
	if !ask.Result {
		t.Fatal("expected ASK to report true for a known quad")
	}
}

func TestEngineQuery_ParseErrorIsWrapped(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Query("SELECT ?x WHERE { not valid sparql !!")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if _, ok := err.(*QueryParseError); !ok {
		t.Fatalf("expected *QueryParseError, got %T", err)
	}
}

func TestEngineExecuteParsed_RunsAnAlreadyParsedQuery(t *testing.T) {
	engine := newTestEngine(t)

	ast, err := parser.NewParser("ASK { <http://ex/alice> <http://ex/knows> <http://ex/bob> }").Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	result, err := engine.ExecuteParsed(ast)
	if err != nil {
		t.Fatalf("ExecuteParsed: %v", err)
	}
	if !result.(*executor.AskResult).Result {
		t.Fatal("expected the pre-parsed ASK to be true")
	}
}
