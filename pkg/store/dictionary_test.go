package store

import (
	"testing"

	"github.com/aleksaelezovic/trigo/internal/storage"
)

func withWriteTxn(t *testing.T, s Storage, fn func(Transaction)) {
	t.Helper()
	txn, err := s.Begin(true)
	if err != nil {
		t.Fatalf("Begin(true): %v", err)
	}
	defer txn.Rollback()
	fn(txn)
}

func TestDictionaryInternAndResolve(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()
	dict := NewDictionary()

	var id DictID
	withWriteTxn(t, s, func(txn Transaction) {
		var err error
		id, err = dict.Intern(txn, "http://example.org/a")
		if err != nil {
			t.Fatalf("Intern: %v", err)
		}
	})

	withWriteTxn(t, s, func(txn Transaction) {
		got, err := dict.Resolve(txn, id)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if got != "http://example.org/a" {
			t.Fatalf("expected round-tripped string, got %q", got)
		}
	})
}

func TestDictionaryInternIsIdempotent(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()
	dict := NewDictionary()

	withWriteTxn(t, s, func(txn Transaction) {
		id1, err := dict.Intern(txn, "http://example.org/a")
		if err != nil {
			t.Fatalf("Intern: %v", err)
		}
		id2, err := dict.Intern(txn, "http://example.org/a")
		if err != nil {
			t.Fatalf("second Intern: %v", err)
		}
		if id1 != id2 {
			t.Fatalf("expected stable id across re-intern, got %d and %d", id1, id2)
		}
	})
}

func TestDictionaryResolveMissIsCorrupted(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()
	dict := NewDictionary()

	withWriteTxn(t, s, func(txn Transaction) {
		_, err := dict.Resolve(txn, DictID(12345))
		if err == nil {
			t.Fatal("expected DictionaryCorruptedError for an id with no entry")
		}
		if _, ok := err.(*DictionaryCorruptedError); !ok {
			t.Fatalf("expected *DictionaryCorruptedError, got %T", err)
		}
	})
}

func TestDictionaryInternOnReadOnlyTxnDoesNotError(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()
	dict := NewDictionary()

	txn, err := s.Begin(false)
	if err != nil {
		t.Fatalf("Begin(false): %v", err)
	}
	defer txn.Rollback()

	id, err := dict.Intern(txn, "http://example.org/never-written")
	if err != nil {
		t.Fatalf("Intern on read-only txn should not error, got: %v", err)
	}
	if id != HashDictID("http://example.org/never-written") {
		t.Fatalf("expected the pure-hash id even when not persisted")
	}
}

func TestHashDictIDNeverZero(t *testing.T) {
	if HashDictID("") == 0 {
		t.Fatal("HashDictID must never return the reserved zero id")
	}
}
