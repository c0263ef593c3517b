package store

import (
	"fmt"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

// QuadStore maintains the six ordered indexes over encoded quads described
// in the design, backed by a pluggable Storage (in-memory or BadgerDB).
type QuadStore struct {
	storage Storage
	encoder TermEncoder
	decoder TermDecoder
	dict    *Dictionary

	// blankCounter is the writer-owned monotonic source for blank node
	// ids allocated by the Loader Adapter (see loader.go).
	blankCounter uint64
}

// NewQuadStore wraps storage with the encoder/decoder/dictionary.
func NewQuadStore(storage Storage) *QuadStore {
	return &QuadStore{
		storage: storage,
		encoder: NewTermEncoder(),
		decoder: NewTermDecoder(),
		dict:    NewDictionary(),
	}
}

// Close closes the underlying storage.
func (s *QuadStore) Close() error {
	return s.storage.Close()
}

// Insert adds quad to all six indexes. A quad already present is a no-op
// (Insert never creates a duplicate, and never errors on that account).
func (s *QuadStore) Insert(quad *rdf.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	if err := s.insertInTxn(txn, quad); err != nil {
		return err
	}
	return txn.Commit()
}

// InsertEncoded adds an already-encoded quad to all six indexes within an
// existing writer transaction. This is the path the Loader Adapter uses so
// that bulk loads never decode a quad only to re-encode it.
func (s *QuadStore) InsertEncoded(txn Transaction, sE, pE, oE, gE EncodedTerm) error {
	keys := s.indexKeys(sE, pE, oE, gE)
	empty := []byte{}
	for i, table := range indexTables {
		if err := txn.Set(table, keys[i], empty); err != nil {
			return fmt.Errorf("store: insert into %s: %w", table, err)
		}
	}
	return nil
}

func (s *QuadStore) insertInTxn(txn Transaction, quad *rdf.Quad) error {
	sE, pE, oE, gE, err := s.encodeQuad(txn, quad)
	if err != nil {
		return err
	}
	return s.InsertEncoded(txn, sE, pE, oE, gE)
}

// Remove deletes quad from all six indexes. Removing an absent quad is a
// no-op.
func (s *QuadStore) Remove(quad *rdf.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	sE, pE, oE, gE, err := s.encodeQuad(txn, quad)
	if err != nil {
		return err
	}

	keys := s.indexKeys(sE, pE, oE, gE)
	for i, table := range indexTables {
		if err := txn.Delete(table, keys[i]); err != nil {
			return fmt.Errorf("store: delete from %s: %w", table, err)
		}
	}
	return txn.Commit()
}

// Contains reports whether quad is present, via a point lookup on SPOG (or
// GSPO when the graph is the only bound distinguishing factor — SPOG
// always has all four positions bound for a concrete quad, so SPOG alone
// suffices).
func (s *QuadStore) Contains(quad *rdf.Quad) (bool, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return false, err
	}
	defer txn.Rollback()

	sE, pE, oE, gE, err := s.encodeQuad(txn, quad)
	if err != nil {
		return false, err
	}

	key := s.encoder.EncodeQuadKey(sE, pE, oE, gE)
	_, err = txn.Get(TableSPOG, key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Len returns the cardinality of the store (counted off the SPOG index,
// which holds exactly the same quad set as the other five by the index
// consistency invariant).
func (s *QuadStore) Len() (int64, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return 0, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableSPOG, nil, nil)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	var n int64
	for it.Next() {
		n++
	}
	return n, nil
}

func (s *QuadStore) encodeQuad(txn Transaction, quad *rdf.Quad) (sE, pE, oE, gE EncodedTerm, err error) {
	if sE, err = s.encoder.EncodeTerm(txn, s.dict, quad.Subject); err != nil {
		return
	}
	if pE, err = s.encoder.EncodeTerm(txn, s.dict, quad.Predicate); err != nil {
		return
	}
	if oE, err = s.encoder.EncodeTerm(txn, s.dict, quad.Object); err != nil {
		return
	}
	if gE, err = s.encoder.EncodeTerm(txn, s.dict, quad.Graph); err != nil {
		return
	}
	return
}

// indexKeys returns the six index keys, in indexTables order, for one
// encoded quad: subject, predicate, object, graph permuted per §4.4.
func (s *QuadStore) indexKeys(sE, pE, oE, gE EncodedTerm) [6][]byte {
	return [6][]byte{
		s.encoder.EncodeQuadKey(sE, pE, oE, gE), // SPOG
		s.encoder.EncodeQuadKey(pE, oE, sE, gE), // POSG
		s.encoder.EncodeQuadKey(oE, sE, pE, gE), // OSPG
		s.encoder.EncodeQuadKey(gE, sE, pE, oE), // GSPO
		s.encoder.EncodeQuadKey(gE, pE, oE, sE), // GPOS
		s.encoder.EncodeQuadKey(gE, oE, sE, pE), // GOSP
	}
}

func (s *QuadStore) decodeTerm(txn Transaction, encoded EncodedTerm) (rdf.Term, error) {
	return s.decoder.DecodeTerm(txn, s.dict, encoded)
}
