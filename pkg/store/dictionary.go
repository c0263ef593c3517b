package store

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"
)

// DictID is the string dictionary's 64-bit identifier. Zero is reserved
// and never returned by Intern.
//
// Rather than a monotonic counter backed by a separate bytes->id column
// family, the id is the xxh3 hash of the interned bytes: a string's id is
// then derivable without any lookup at all, and is trivially stable
// across reopen without needing to persist a counter. TableID2Str only
// needs the id->bytes direction because of this. A 64-bit hash has a
// non-zero collision probability at very large dictionary sizes; that
// tradeoff is accepted here the same way it is in content-addressed term
// stores generally.
type DictID uint64

// HashDictID computes the id a string would be interned under.
func HashDictID(s string) DictID {
	h := xxh3.HashString(s)
	if h == 0 {
		h = 1 // zero is reserved
	}
	return DictID(h)
}

// Bytes renders id as the big-endian 8-byte key used in TableID2Str and
// embedded in EncodedTerm payloads.
func (id DictID) Bytes() [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b
}

// DictIDFromBytes reads an id back from an 8-byte big-endian slice.
func DictIDFromBytes(b []byte) DictID {
	return DictID(binary.BigEndian.Uint64(b))
}

// Dictionary is the bidirectional string<->id mapping described in the
// design: append-only, thread-safe for lookup, writes serialized by the
// caller's writer transaction.
type Dictionary struct{}

// NewDictionary creates a dictionary view over a transaction's TableID2Str.
func NewDictionary() *Dictionary { return &Dictionary{} }

// Intern stores s under its content id if not already present, and
// returns the id. Safe to call redundantly: re-interning identical bytes
// is a no-op write.
func (d *Dictionary) Intern(txn Transaction, s string) (DictID, error) {
	id := HashDictID(s)
	key := id.Bytes()
	existing, err := txn.Get(TableID2Str, key[:])
	if err == nil {
		if bytes.Equal(existing, []byte(s)) {
			return id, nil
		}
		// Two distinct strings hashed to the same id: the one failure mode
		// this scheme cannot paper over. Surface it rather than alias the
		// new string onto the existing entry.
		return id, &DictionaryCorruptedError{ID: id}
	}
	if err != ErrNotFound {
		return id, err
	}
	if err := txn.Set(TableID2Str, key[:], []byte(s)); err != nil {
		// A read-only transaction (term encoding during a query, not a
		// write) can't persist a new entry. The id is a pure hash of s,
		// so it's still correct to return without writing: a query
		// term that was never interned simply won't match any index
		// entry, which is a normal empty result rather than an error.
		if err == ErrTransactionRO {
			return id, nil
		}
		return id, err
	}
	return id, nil
}

// Resolve looks up the bytes previously interned under id. A miss means
// an index references an id with no dictionary entry: DictionaryCorrupted.
func (d *Dictionary) Resolve(txn Transaction, id DictID) (string, error) {
	key := id.Bytes()
	b, err := txn.Get(TableID2Str, key[:])
	if err != nil {
		if err == ErrNotFound {
			return "", &DictionaryCorruptedError{ID: id}
		}
		return "", err
	}
	return string(b), nil
}

// DictionaryCorruptedError is a fatal consistency violation: an id appears
// in an index but has no dictionary entry, or two distinct strings hash
// to the same id.
type DictionaryCorruptedError struct {
	ID DictID
}

func (e *DictionaryCorruptedError) Error() string {
	return fmt.Sprintf("dictionary corrupted: id %d has no entry or holds a different string", e.ID)
}
