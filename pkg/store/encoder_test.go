package store

import (
	"testing"

	"github.com/aleksaelezovic/trigo/internal/storage"
	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

func roundTrip(t *testing.T, term rdf.Term) rdf.Term {
	t.Helper()
	s := storage.NewMemoryStorage()
	defer s.Close()

	enc := NewTermEncoder()
	dec := NewTermDecoder()
	dict := NewDictionary()

	txn, err := s.Begin(true)
	if err != nil {
		t.Fatalf("Begin(true): %v", err)
	}
	defer txn.Rollback()

	encoded, err := enc.EncodeTerm(txn, dict, term)
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	decoded, err := dec.DecodeTerm(txn, dict, encoded)
	if err != nil {
		t.Fatalf("DecodeTerm: %v", err)
	}
	return decoded
}

func TestEncodeDecodeRoundTrip_NamedNode(t *testing.T) {
	got := roundTrip(t, rdf.NewNamedNode("http://example.org/a"))
	want := rdf.NewNamedNode("http://example.org/a")
	if !got.Equals(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEncodeDecodeRoundTrip_BlankNode(t *testing.T) {
	got := roundTrip(t, rdf.NewBlankNode("b1"))
	want := rdf.NewBlankNode("b1")
	if !got.Equals(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEncodeDecodeRoundTrip_DefaultGraph(t *testing.T) {
	got := roundTrip(t, rdf.NewDefaultGraph())
	if got.Type() != rdf.TermTypeDefaultGraph {
		t.Fatalf("expected default graph, got %s", got)
	}
}

func TestEncodeDecodeRoundTrip_PlainLiteral(t *testing.T) {
	got := roundTrip(t, rdf.NewLiteral("hello"))
	want := rdf.NewLiteral("hello")
	if !got.Equals(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEncodeDecodeRoundTrip_LangLiteral(t *testing.T) {
	got := roundTrip(t, rdf.NewLiteralWithLanguage("bonjour", "fr"))
	want := rdf.NewLiteralWithLanguage("bonjour", "fr")
	if !got.Equals(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEncodeDecodeRoundTrip_TypedLiteral(t *testing.T) {
	got := roundTrip(t, rdf.NewLiteralWithDatatype("custom", rdf.NewNamedNode("http://example.org/myType")))
	want := rdf.NewLiteralWithDatatype("custom", rdf.NewNamedNode("http://example.org/myType"))
	if !got.Equals(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEncodeDecodeRoundTrip_IntegerLiteral(t *testing.T) {
	got := roundTrip(t, rdf.NewIntegerLiteral(-42))
	want := rdf.NewIntegerLiteral(-42)
	if !got.Equals(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEncodeDecodeRoundTrip_BooleanLiteral(t *testing.T) {
	got := roundTrip(t, rdf.NewBooleanLiteral(true))
	want := rdf.NewBooleanLiteral(true)
	if !got.Equals(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEncodeQuadKeyOrdersByByteContent(t *testing.T) {
	enc := NewTermEncoder()
	var a, b EncodedTerm
	a[0] = 1
	b[0] = 2

	keyAB := enc.EncodeQuadKey(a, b)
	keyBA := enc.EncodeQuadKey(b, a)
	if len(keyAB) != 2*EncodedTermSize || len(keyBA) != 2*EncodedTermSize {
		t.Fatalf("expected keys of length %d, got %d and %d", 2*EncodedTermSize, len(keyAB), len(keyBA))
	}
	if keyAB[0] != 1 || keyBA[0] != 2 {
		t.Fatal("expected EncodeQuadKey to preserve argument order")
	}
}
