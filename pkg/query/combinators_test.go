package query

import (
	"testing"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

func bindingsOf(rows ...map[string]rdf.Term) []*Binding {
	out := make([]*Binding, len(rows))
	for i, row := range rows {
		b := NewBinding()
		for k, v := range row {
			b.Vars[k] = v
		}
		out[i] = b
	}
	return out
}

// sliceIterator is a trivial BindingIterator over a fixed slice, used to
// exercise the combinators without going through pkg/store.
type sliceIterator struct {
	rows []*Binding
	pos  int
}

func (s *sliceIterator) Next() bool {
	s.pos++
	return s.pos < len(s.rows)
}
func (s *sliceIterator) Binding() *Binding { return s.rows[s.pos] }
func (s *sliceIterator) Err() error        { return nil }
func (s *sliceIterator) Close() error      { return nil }

func newSliceIterator(rows ...map[string]rdf.Term) BindingIterator {
	return &sliceIterator{rows: bindingsOf(rows...), pos: -1}
}

func TestProject_OmitsUnlistedAndUnboundVars(t *testing.T) {
	it := Project(newSliceIterator(
		map[string]rdf.Term{"x": rdf.NewNamedNode("http://ex/a"), "y": rdf.NewNamedNode("http://ex/b")},
	), []string{"x", "z"})
	defer it.Close()

	if !it.Next() {
		t.Fatal("expected one row")
	}
	b := it.Binding()
	if _, ok := b.Vars["y"]; ok {
		t.Fatal("expected ?y to be dropped by projection")
	}
	if _, ok := b.Vars["z"]; ok {
		t.Fatal("expected ?z to be omitted since it was never bound")
	}
	if !b.Vars["x"].Equals(rdf.NewNamedNode("http://ex/a")) {
		t.Fatal("expected ?x to survive projection")
	}
}

func TestDistinct_SuppressesDuplicateBindings(t *testing.T) {
	it := Distinct(newSliceIterator(
		map[string]rdf.Term{"x": rdf.NewNamedNode("http://ex/a")},
		map[string]rdf.Term{"x": rdf.NewNamedNode("http://ex/a")},
		map[string]rdf.Term{"x": rdf.NewNamedNode("http://ex/b")},
	))
	defer it.Close()

	count := 0
	for it.Next() {
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 distinct bindings, got %d", count)
	}
}

func TestOffsetAndLimit(t *testing.T) {
	rows := []map[string]rdf.Term{
		{"x": rdf.NewIntegerLiteral(1)},
		{"x": rdf.NewIntegerLiteral(2)},
		{"x": rdf.NewIntegerLiteral(3)},
		{"x": rdf.NewIntegerLiteral(4)},
	}
	it := Limit(Offset(newSliceIterator(rows...), 1), 2)
	defer it.Close()

	var got []string
	for it.Next() {
		got = append(got, it.Binding().Vars["x"].String())
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows after offset 1 / limit 2, got %d", len(got))
	}
	if got[0] != rdf.NewIntegerLiteral(2).String() {
		t.Fatalf("expected first row to be 2, got %s", got[0])
	}
}

func TestFilter_DropsRejectedBindings(t *testing.T) {
	rows := []map[string]rdf.Term{
		{"x": rdf.NewIntegerLiteral(1)},
		{"x": rdf.NewIntegerLiteral(2)},
		{"x": rdf.NewIntegerLiteral(3)},
	}
	keepEven := func(b *Binding) (bool, error) {
		lit, ok := b.Vars["x"].(*rdf.Literal)
		return ok && (lit.Value == "2"), nil
	}
	it := Filter(newSliceIterator(rows...), keepEven)
	defer it.Close()

	count := 0
	for it.Next() {
		count++
	}
	if count != 1 {
		t.Fatalf("expected 1 row to pass the filter, got %d", count)
	}
}

func TestFilter_PropagatesError(t *testing.T) {
	rows := []map[string]rdf.Term{{"x": rdf.NewIntegerLiteral(1)}}
	boom := errTestBoom
	it := Filter(newSliceIterator(rows...), func(*Binding) (bool, error) { return false, boom })
	defer it.Close()

	if it.Next() {
		t.Fatal("expected Next to return false when keep errors")
	}
	if it.Err() != boom {
		t.Fatalf("expected the filter error to surface via Err(), got %v", it.Err())
	}
}

func TestAsk_TrueOnFirstMatch(t *testing.T) {
	it := newSliceIterator(map[string]rdf.Term{"x": rdf.NewIntegerLiteral(1)})
	ok, err := Ask(it)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !ok {
		t.Fatal("expected Ask to report true for a non-empty iterator")
	}
}

func TestAsk_FalseOnEmpty(t *testing.T) {
	ok, err := Ask(newSliceIterator())
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ok {
		t.Fatal("expected Ask to report false for an empty iterator")
	}
}

func TestConstruct_SubstitutesBindingsAndAllocatesFreshBlanksPerRow(t *testing.T) {
	rows := []map[string]rdf.Term{
		{"name": rdf.NewLiteral("Alice")},
		{"name": rdf.NewLiteral("Bob")},
	}
	template := &ConstructTemplate{
		Patterns: []TriplePattern{
			{Subject: rdf.NewBlankNode("person"), Predicate: rdf.NewNamedNode("http://ex/name"), Object: store.NewVariable("name")},
		},
	}

	var next int
	newBlank := func() *rdf.BlankNode {
		next++
		return rdf.NewBlankNode(rdf.NewIntegerLiteral(int64(next)).String())
	}

	triples, err := Construct(newSliceIterator(rows...), template, newBlank)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if len(triples) != 2 {
		t.Fatalf("expected 2 triples, got %d", len(triples))
	}
	if triples[0].Subject.Equals(triples[1].Subject) {
		t.Fatal("expected a fresh blank node per result row")
	}
}

var errTestBoom = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
