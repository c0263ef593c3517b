package store

import (
	"fmt"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

// Pattern is a quad pattern: each position is either a bound rdf.Term or a
// *Variable. A nil Graph means "any graph" (not the same as the default
// graph, which is represented as an explicit *rdf.DefaultGraph term).
type Pattern struct {
	Subject   any
	Predicate any
	Object    any
	Graph     any
}

// Variable is an unbound pattern position, named for the binding it
// produces.
type Variable struct {
	Name string
}

func NewVariable(name string) *Variable { return &Variable{Name: name} }

func (v *Variable) String() string { return "?" + v.Name }

func isVariable(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(*Variable)
	return ok
}

// QuadIterator is a pull-based, forward-only cursor over quads matching a
// pattern; it has no way to rewind. Decoding happens lazily per Quad() call.
type QuadIterator interface {
	Next() bool
	Quad() (*rdf.Quad, error)
	Close() error
}

// keyOrders maps each of the six indexes to the SPOG-dimension order its
// key is built from (0=subject, 1=predicate, 2=object, 3=graph).
var keyOrders = map[Table][4]int{
	TableSPOG: {0, 1, 2, 3},
	TablePOSG: {1, 2, 0, 3},
	TableOSPG: {2, 0, 1, 3},
	TableGSPO: {3, 0, 1, 2},
	TableGPOS: {3, 1, 2, 0},
	TableGOSP: {3, 2, 0, 1},
}

// QuadsForPattern selects the index whose leading bound columns cover the
// most bound positions in pattern, and returns a lazy iterator over the
// matching quads. The iterator cannot be rewound; each call starts a new
// scan.
func (s *QuadStore) QuadsForPattern(pattern *Pattern) (QuadIterator, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return nil, err
	}

	table, order := s.selectIndex(pattern)
	prefix, err := s.buildScanPrefix(txn, pattern, order)
	if err != nil {
		txn.Rollback() // nolint:errcheck
		return nil, err
	}

	it, err := txn.Scan(table, prefix, nil)
	if err != nil {
		txn.Rollback() // nolint:errcheck
		return nil, err
	}

	return &quadIterator{store: s, txn: txn, it: it, order: order}, nil
}

// selectIndex picks the index whose key order has the longest bound
// prefix, breaking ties by the fixed order SPOG,POSG,OSPG,GSPO,GPOS,GOSP.
func (s *QuadStore) selectIndex(pattern *Pattern) (Table, [4]int) {
	bound := [4]bool{
		!isVariable(pattern.Subject),
		!isVariable(pattern.Predicate),
		!isVariable(pattern.Object),
		pattern.Graph != nil && !isVariable(pattern.Graph),
	}

	best := TableSPOG
	bestOrder := keyOrders[TableSPOG]
	bestScore := -1
	for _, table := range indexTables {
		order := keyOrders[table]
		score := 0
		for _, pos := range order {
			if !bound[pos] {
				break
			}
			score++
		}
		if score > bestScore {
			bestScore = score
			best = table
			bestOrder = order
		}
	}
	return best, bestOrder
}

// buildScanPrefix encodes the bound leading columns of order into a scan
// prefix. An unbound graph in the pattern is treated as "any graph" (no
// graph term appended), not as the default graph.
func (s *QuadStore) buildScanPrefix(txn Transaction, pattern *Pattern, order [4]int) ([]byte, error) {
	positions := [4]any{pattern.Subject, pattern.Predicate, pattern.Object, pattern.Graph}

	var prefix []byte
	for _, pos := range order {
		term := positions[pos]
		if isVariable(term) {
			break
		}
		encoded, err := s.encoder.EncodeTerm(txn, s.dict, term.(rdf.Term))
		if err != nil {
			return nil, err
		}
		prefix = append(prefix, encoded[:]...)
	}
	return prefix, nil
}

type quadIterator struct {
	store  *QuadStore
	txn    Transaction
	it     Iterator
	order  [4]int
	closed bool
}

func (qi *quadIterator) Next() bool {
	if qi.closed {
		return false
	}
	return qi.it.Next()
}

func (qi *quadIterator) Quad() (*rdf.Quad, error) {
	if qi.closed {
		return nil, fmt.Errorf("store: iterator closed")
	}
	key := qi.it.Key()
	if len(key) != 4*EncodedTermSize {
		return nil, fmt.Errorf("store: corrupt index key length %d", len(key))
	}

	var spog [4]EncodedTerm
	for i, pos := range qi.order {
		copy(spog[pos][:], key[i*EncodedTermSize:(i+1)*EncodedTermSize])
	}

	subject, err := qi.store.decodeTerm(qi.txn, spog[0])
	if err != nil {
		return nil, fmt.Errorf("store: decode subject: %w", err)
	}
	predicate, err := qi.store.decodeTerm(qi.txn, spog[1])
	if err != nil {
		return nil, fmt.Errorf("store: decode predicate: %w", err)
	}
	object, err := qi.store.decodeTerm(qi.txn, spog[2])
	if err != nil {
		return nil, fmt.Errorf("store: decode object: %w", err)
	}
	graph, err := qi.store.decodeTerm(qi.txn, spog[3])
	if err != nil {
		return nil, fmt.Errorf("store: decode graph: %w", err)
	}

	return &rdf.Quad{Subject: subject, Predicate: predicate, Object: object, Graph: graph}, nil
}

func (qi *quadIterator) Close() error {
	if qi.closed {
		return nil
	}
	qi.closed = true
	qi.it.Close() // nolint:errcheck
	return qi.txn.Rollback()
}
