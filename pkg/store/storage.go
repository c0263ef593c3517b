package store

import (
	"errors"
)

var (
	// ErrNotFound is returned by Transaction.Get when a key is absent.
	ErrNotFound = errors.New("key not found")
	// ErrTransactionRO is returned when a write is attempted on a read-only transaction.
	ErrTransactionRO = errors.New("transaction is read-only")
)

// Storage is the interface implemented by the two backends (in-memory,
// BadgerDB-backed) that the Quad Store is built on.
type Storage interface {
	// Begin starts a new transaction. A writable transaction is exclusive
	// (single-writer); a read-only transaction observes a stable snapshot
	// and may run concurrently with other readers and a live writer.
	Begin(writable bool) (Transaction, error)

	// Close closes the storage.
	Close() error

	// Sync flushes writes to stable storage.
	Sync() error
}

// Transaction represents a database transaction with snapshot isolation.
type Transaction interface {
	Get(table Table, key []byte) ([]byte, error)
	Set(table Table, key, value []byte) error
	Delete(table Table, key []byte) error

	// Scan iterates in key order over the keys of table that begin with
	// start (every key when start is nil), stopping before end when end is
	// non-nil. A key that does not begin with start ends the scan.
	Scan(table Table, start, end []byte) (Iterator, error)

	Commit() error
	Rollback() error
}

// Iterator iterates over key/value pairs within one table.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Close() error
}

// Table identifies one of the logical column families backing the store:
// the string dictionary and the six quad indexes described in the design
// (one per key permutation of subject/predicate/object/graph).
type Table byte

const (
	// TableID2Str is the dictionary's id -> bytes column family. The
	// reverse direction (bytes -> id) is not a separate column family:
	// the id itself is a content hash of the bytes (see dictionary.go), so
	// looking a string up by content never requires scanning this table.
	TableID2Str Table = iota

	// TableSPOG orders keys (subject, predicate, object, graph) and
	// serves patterns bound on a leading run of {s}, {s,p}, {s,p,o}, and
	// also acts as the canonical index for point lookups (Contains).
	TableSPOG
	// TablePOSG orders keys (predicate, object, subject, graph).
	TablePOSG
	// TableOSPG orders keys (object, subject, predicate, graph).
	TableOSPG
	// TableGSPO orders keys (graph, subject, predicate, object).
	TableGSPO
	// TableGPOS orders keys (graph, predicate, object, subject).
	TableGPOS
	// TableGOSP orders keys (graph, object, subject, predicate).
	TableGOSP

	// TableCount is the number of logical column families.
	TableCount
)

func (t Table) String() string {
	switch t {
	case TableID2Str:
		return "id2str"
	case TableSPOG:
		return "spog"
	case TablePOSG:
		return "posg"
	case TableOSPG:
		return "ospg"
	case TableGSPO:
		return "gspo"
	case TableGPOS:
		return "gpos"
	case TableGOSP:
		return "gosp"
	default:
		return "unknown"
	}
}

// indexTables lists the six quad indexes, in the tie-break order used by
// selectIndex when more than one index covers the same number of bound
// positions.
var indexTables = [6]Table{TableSPOG, TablePOSG, TableOSPG, TableGSPO, TableGPOS, TableGOSP}

// TablePrefix returns the one-byte namespace prefix for a table.
func TablePrefix(table Table) []byte {
	return []byte{byte(table)}
}

// PrefixKey namespaces key under table.
func PrefixKey(table Table, key []byte) []byte {
	result := make([]byte, 1+len(key))
	result[0] = byte(table)
	copy(result[1:], key)
	return result
}
