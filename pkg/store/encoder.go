package store

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

// EncodedTermSize is the on-the-wire width of an EncodedTerm: one
// discriminant byte plus a 16-byte payload.
const EncodedTermSize = 17

// termEncoder is the default TermEncoder. It has no state of its own: all
// state lives in the transaction and dictionary passed to EncodeTerm.
type termEncoder struct{}

// NewTermEncoder returns the store's term encoder.
func NewTermEncoder() TermEncoder { return &termEncoder{} }

func (e *termEncoder) EncodeTerm(txn Transaction, dict *Dictionary, term rdf.Term) (EncodedTerm, error) {
	var encoded EncodedTerm
	switch t := term.(type) {
	case *rdf.DefaultGraph:
		encoded[0] = byte(rdf.TermTypeDefaultGraph)
		return encoded, nil
	case *rdf.NamedNode:
		return e.encodeInterned(txn, dict, rdf.TermTypeNamedNode, t.IRI)
	case *rdf.BlankNode:
		return e.encodeInterned(txn, dict, rdf.TermTypeBlankNode, t.ID)
	case *rdf.Literal:
		return e.encodeLiteral(txn, dict, t)
	default:
		return encoded, fmt.Errorf("store: unsupported term type %T", term)
	}
}

// encodeInterned handles the single-id discriminants: NamedNode, BlankNode,
// plain StringLiteral.
func (e *termEncoder) encodeInterned(txn Transaction, dict *Dictionary, typ rdf.TermType, s string) (EncodedTerm, error) {
	var encoded EncodedTerm
	encoded[0] = byte(typ)
	id, err := dict.Intern(txn, s)
	if err != nil {
		return encoded, err
	}
	b := id.Bytes()
	copy(encoded[1:9], b[:])
	return encoded, nil
}

func (e *termEncoder) encodeLiteral(txn Transaction, dict *Dictionary, lit *rdf.Literal) (EncodedTerm, error) {
	if lit.Datatype != nil {
		switch lit.Datatype.IRI {
		case rdf.XSDInteger.IRI:
			if v, err := strconv.ParseInt(strings.TrimSpace(lit.Value), 10, 64); err == nil {
				return e.encodeInt64(rdf.TermTypeIntegerLiteral, v), nil
			}
		case rdf.XSDDecimal.IRI:
			if v, err := strconv.ParseFloat(strings.TrimSpace(lit.Value), 64); err == nil {
				return e.encodeFloat64(rdf.TermTypeDecimalLiteral, v), nil
			}
		case rdf.XSDFloat.IRI:
			if v, err := strconv.ParseFloat(strings.TrimSpace(lit.Value), 32); err == nil {
				return e.encodeFloat32(rdf.TermTypeFloatLiteral, float32(v)), nil
			}
		case rdf.XSDDouble.IRI:
			if v, err := strconv.ParseFloat(strings.TrimSpace(lit.Value), 64); err == nil {
				return e.encodeFloat64(rdf.TermTypeDoubleLiteral, v), nil
			}
		case rdf.XSDBoolean.IRI:
			if v, err := strconv.ParseBool(strings.TrimSpace(lit.Value)); err == nil {
				return e.encodeBool(v), nil
			}
		case rdf.XSDDateTime.IRI:
			if t, ok := parseDateTime(lit.Value); ok {
				return e.encodeInt64(rdf.TermTypeDateTimeLiteral, t.UnixNano()), nil
			}
		case rdf.XSDString.IRI:
			return e.encodeInterned(txn, dict, rdf.TermTypeStringLiteral, lit.Value)
		}
		// Datatype present but value doesn't fit a canonical inline form
		// (or is a datatype the store has no inline variant for): fall
		// back to TypedLiteral{lex_id, datatype_id}, two interned ids.
		return e.encodeTwoIDs(txn, dict, rdf.TermTypeTypedLiteral, lit.Value, lit.Datatype.IRI)
	}

	if lit.Language != "" {
		return e.encodeTwoIDs(txn, dict, rdf.TermTypeLangStringLiteral, lit.Value, strings.ToLower(lit.Language))
	}

	return e.encodeInterned(txn, dict, rdf.TermTypeStringLiteral, lit.Value)
}

// encodeTwoIDs packs two interned dictionary ids (8 bytes each) into the
// 16-byte payload: LangStringLiteral{lex_id, lang_id} and
// TypedLiteral{lex_id, datatype_id}.
func (e *termEncoder) encodeTwoIDs(txn Transaction, dict *Dictionary, typ rdf.TermType, a, b string) (EncodedTerm, error) {
	var encoded EncodedTerm
	encoded[0] = byte(typ)

	idA, err := dict.Intern(txn, a)
	if err != nil {
		return encoded, err
	}
	idB, err := dict.Intern(txn, b)
	if err != nil {
		return encoded, err
	}
	ba := idA.Bytes()
	bb := idB.Bytes()
	copy(encoded[1:9], ba[:])
	copy(encoded[9:17], bb[:])
	return encoded, nil
}

func (e *termEncoder) encodeInt64(typ rdf.TermType, v int64) EncodedTerm {
	var encoded EncodedTerm
	encoded[0] = byte(typ)
	binary.BigEndian.PutUint64(encoded[1:9], uint64(v)) // #nosec G115 - bit-pattern conversion for binary encoding
	return encoded
}

func (e *termEncoder) encodeFloat64(typ rdf.TermType, v float64) EncodedTerm {
	var encoded EncodedTerm
	encoded[0] = byte(typ)
	binary.BigEndian.PutUint64(encoded[1:9], math.Float64bits(v))
	return encoded
}

func (e *termEncoder) encodeFloat32(typ rdf.TermType, v float32) EncodedTerm {
	var encoded EncodedTerm
	encoded[0] = byte(typ)
	binary.BigEndian.PutUint32(encoded[1:5], math.Float32bits(v))
	return encoded
}

func (e *termEncoder) encodeBool(v bool) EncodedTerm {
	var encoded EncodedTerm
	encoded[0] = byte(rdf.TermTypeBooleanLiteral)
	if v {
		encoded[1] = 1
	}
	return encoded
}

func parseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
	}
	return time.Time{}, false
}

// EncodeQuadKey concatenates encoded terms, in the given order, into one
// index key. The result sorts lexicographically the same way the
// concatenated EncodedTerm payloads do, which is what makes prefix scans
// correct.
func (e *termEncoder) EncodeQuadKey(terms ...EncodedTerm) []byte {
	result := make([]byte, 0, len(terms)*EncodedTermSize)
	for _, t := range terms {
		result = append(result, t[:]...)
	}
	return result
}
