package store

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

type termDecoder struct{}

// NewTermDecoder returns the store's term decoder.
func NewTermDecoder() TermDecoder { return &termDecoder{} }

func (d *termDecoder) DecodeTerm(txn Transaction, dict *Dictionary, encoded EncodedTerm) (rdf.Term, error) {
	typ := rdf.TermType(encoded[0])

	switch typ {
	case rdf.TermTypeDefaultGraph:
		return rdf.NewDefaultGraph(), nil

	case rdf.TermTypeNamedNode:
		s, err := dict.Resolve(txn, DictIDFromBytes(encoded[1:9]))
		if err != nil {
			return nil, err
		}
		return rdf.NewNamedNode(s), nil

	case rdf.TermTypeBlankNode:
		s, err := dict.Resolve(txn, DictIDFromBytes(encoded[1:9]))
		if err != nil {
			return nil, err
		}
		return rdf.NewBlankNode(s), nil

	case rdf.TermTypeStringLiteral:
		s, err := dict.Resolve(txn, DictIDFromBytes(encoded[1:9]))
		if err != nil {
			return nil, err
		}
		return rdf.NewLiteral(s), nil

	case rdf.TermTypeLangStringLiteral:
		lex, err := dict.Resolve(txn, DictIDFromBytes(encoded[1:9]))
		if err != nil {
			return nil, err
		}
		lang, err := dict.Resolve(txn, DictIDFromBytes(encoded[9:17]))
		if err != nil {
			return nil, err
		}
		return rdf.NewLiteralWithLanguage(lex, lang), nil

	case rdf.TermTypeTypedLiteral:
		lex, err := dict.Resolve(txn, DictIDFromBytes(encoded[1:9]))
		if err != nil {
			return nil, err
		}
		dt, err := dict.Resolve(txn, DictIDFromBytes(encoded[9:17]))
		if err != nil {
			return nil, err
		}
		return rdf.NewLiteralWithDatatype(lex, rdf.NewNamedNode(dt)), nil

	case rdf.TermTypeIntegerLiteral:
		v := int64(binary.BigEndian.Uint64(encoded[1:9])) // #nosec G115 - bit-pattern conversion for binary decoding
		return rdf.NewIntegerLiteral(v), nil

	case rdf.TermTypeDecimalLiteral:
		v := math.Float64frombits(binary.BigEndian.Uint64(encoded[1:9]))
		return rdf.NewDecimalLiteral(v), nil

	case rdf.TermTypeFloatLiteral:
		v := math.Float32frombits(binary.BigEndian.Uint32(encoded[1:5]))
		return rdf.NewLiteralWithDatatype(formatFloat32(v), rdf.XSDFloat), nil

	case rdf.TermTypeDoubleLiteral:
		v := math.Float64frombits(binary.BigEndian.Uint64(encoded[1:9]))
		return rdf.NewDoubleLiteral(v), nil

	case rdf.TermTypeBooleanLiteral:
		return rdf.NewBooleanLiteral(encoded[1] != 0), nil

	case rdf.TermTypeDateTimeLiteral:
		nanos := int64(binary.BigEndian.Uint64(encoded[1:9])) // #nosec G115 - bit-pattern conversion for timestamp decoding
		return rdf.NewDateTimeLiteral(time.Unix(0, nanos).UTC()), nil

	default:
		return nil, fmt.Errorf("store: unknown encoded term discriminant %d", typ)
	}
}

func formatFloat32(v float32) string {
	if v == float32(int64(v)) {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%g", v)
}
