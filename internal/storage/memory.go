package storage

import (
	"bytes"
	"sync"

	"github.com/aleksaelezovic/trigo/pkg/store"
	"github.com/petar/GoLLRB/llrb"
)

// kvItem is one LLRB node: a key/value pair ordered by key bytes.
type kvItem struct {
	key   []byte
	value []byte
}

func (a *kvItem) Less(than llrb.Item) bool {
	return bytes.Compare(a.key, than.(*kvItem).key) < 0
}

// MemoryStorage implements store.Storage with one ordered tree per table,
// guarded by a single reader/writer lock: a writer transaction holds the
// lock exclusively for its lifetime, a reader transaction holds it shared
// for its lifetime, so every iterator sees a view no concurrent writer can
// disturb.
type MemoryStorage struct {
	mu     sync.RWMutex
	tables [store.TableCount]*llrb.LLRB
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	m := &MemoryStorage{}
	for i := range m.tables {
		m.tables[i] = llrb.New()
	}
	return m
}

func (m *MemoryStorage) Begin(writable bool) (store.Transaction, error) {
	if writable {
		m.mu.Lock()
	} else {
		m.mu.RLock()
	}
	return &memoryTransaction{storage: m, writable: writable}, nil
}

func (m *MemoryStorage) Close() error { return nil }
func (m *MemoryStorage) Sync() error  { return nil }

type memoryTransaction struct {
	storage  *MemoryStorage
	writable bool
	done     bool
}

func (t *memoryTransaction) unlock() {
	if t.done {
		return
	}
	t.done = true
	if t.writable {
		t.storage.mu.Unlock()
	} else {
		t.storage.mu.RUnlock()
	}
}

func (t *memoryTransaction) Get(table store.Table, key []byte) ([]byte, error) {
	item := t.storage.tables[table].Get(&kvItem{key: key})
	if item == nil {
		return nil, store.ErrNotFound
	}
	return append([]byte{}, item.(*kvItem).value...), nil
}

func (t *memoryTransaction) Set(table store.Table, key, value []byte) error {
	if !t.writable {
		return store.ErrTransactionRO
	}
	t.storage.tables[table].ReplaceOrInsert(&kvItem{
		key:   append([]byte{}, key...),
		value: append([]byte{}, value...),
	})
	return nil
}

func (t *memoryTransaction) Delete(table store.Table, key []byte) error {
	if !t.writable {
		return store.ErrTransactionRO
	}
	t.storage.tables[table].Delete(&kvItem{key: key})
	return nil
}

func (t *memoryTransaction) Scan(table store.Table, start, end []byte) (store.Iterator, error) {
	var items []*kvItem
	pivot := &kvItem{key: start}
	t.storage.tables[table].AscendGreaterOrEqual(pivot, func(i llrb.Item) bool {
		kv := i.(*kvItem)
		if end != nil && bytes.Compare(kv.key, end) >= 0 {
			return false
		}
		if start != nil && !bytes.HasPrefix(kv.key, start) {
			return false
		}
		items = append(items, kv)
		return true
	})
	return &memoryIterator{items: items, pos: -1}, nil
}

func (t *memoryTransaction) Commit() error {
	t.unlock()
	return nil
}

func (t *memoryTransaction) Rollback() error {
	t.unlock()
	return nil
}

// memoryIterator walks a pre-collected, already-ordered snapshot slice: the
// scan that built it ran entirely under the transaction's lock, so nothing
// further needs locking during iteration.
type memoryIterator struct {
	items []*kvItem
	pos   int
}

func (it *memoryIterator) Next() bool {
	it.pos++
	return it.pos < len(it.items)
}

func (it *memoryIterator) Key() []byte {
	if it.pos < 0 || it.pos >= len(it.items) {
		return nil
	}
	return it.items[it.pos].key
}

func (it *memoryIterator) Value() ([]byte, error) {
	if it.pos < 0 || it.pos >= len(it.items) {
		return nil, store.ErrNotFound
	}
	return it.items[it.pos].value, nil
}

func (it *memoryIterator) Close() error { return nil }
