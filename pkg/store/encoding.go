package store

import (
	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

// EncodedTerm is the fixed-width currency of the indexes: a one-byte
// discriminant (rdf.TermType) followed by a 16-byte payload. Encoded
// terms are totally ordered by byte content, which is what defines every
// index's sort order.
type EncodedTerm [17]byte

// TermEncoder turns decoded RDF terms into their fixed-width index
// representation, interning dictionary strings as a side effect of
// encoding (through the supplied transaction and dictionary).
type TermEncoder interface {
	// EncodeTerm encodes term, interning any strings it needs into dict
	// under txn. Numeric/boolean/datetime terms that fit an inline
	// variant never touch the dictionary.
	EncodeTerm(txn Transaction, dict *Dictionary, term rdf.Term) (EncodedTerm, error)

	// EncodeQuadKey concatenates encoded terms, in the given order, into
	// one index key.
	EncodeQuadKey(terms ...EncodedTerm) []byte
}

// TermDecoder is the pure inverse of TermEncoder: decode(encode(t)) == t
// for any term originating from the same dictionary.
type TermDecoder interface {
	// DecodeTerm decodes encoded back into a term, resolving any
	// dictionary ids it references through dict under txn.
	DecodeTerm(txn Transaction, dict *Dictionary, encoded EncodedTerm) (rdf.Term, error)
}
