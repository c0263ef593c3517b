package store

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

// GraphNameNotApplicableError is returned when a caller supplies a target
// graph to a quad-producing syntax (NQuads, TriG): those carry their own
// graph name per quad, so a target graph has nowhere to apply.
type GraphNameNotApplicableError struct{}

func (e *GraphNameNotApplicableError) Error() string {
	return "store: graph name not applicable to a quad-producing syntax"
}

// ParseError wraps an external RDF parser's failure during a load.
type ParseError struct {
	Syntax string
	Err    error
}

func (e *ParseError) Error() string { return fmt.Sprintf("store: parse error (%s): %v", e.Syntax, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// blankNodeArena is the Loader Adapter's per-document mapping from a
// parser's blank-node label to a freshly allocated store-side blank node.
// It is short-lived: built fresh for each LoadGraph/LoadDataset call and
// discarded once the document is fully inserted, so the same label in two
// different documents never collides.
type blankNodeArena struct {
	store   *QuadStore
	mapping map[string]*rdf.BlankNode
}

func newBlankNodeArena(s *QuadStore) *blankNodeArena {
	return &blankNodeArena{store: s, mapping: make(map[string]*rdf.BlankNode)}
}

// rename maps a parser-local blank node to this load's store-side blank
// node, allocating one on first sight of the label.
func (a *blankNodeArena) rename(label string) *rdf.BlankNode {
	if bn, ok := a.mapping[label]; ok {
		return bn
	}
	bn := rdf.NewBlankNode(a.store.nextBlankNodeID())
	a.mapping[label] = bn
	return bn
}

// rewriteTerm returns term with any blank node renamed through the arena;
// other term kinds pass through unchanged.
func (a *blankNodeArena) rewriteTerm(term rdf.Term) rdf.Term {
	if bn, ok := term.(*rdf.BlankNode); ok {
		return a.rename(bn.ID)
	}
	return term
}

// nextBlankNodeID is the writer-owned, monotonic blank-node id source
// described in §5. It is process-lifetime monotonic: a fresh process that
// reopens a persistent store starts renumbering from zero again, which is
// sound for the per-load disjointness invariant (§8) this is spec'd
// against, but does mean two processes loading into the same persistent
// store concurrently is not supported — consistent with the store's
// single-writer discipline.
func (s *QuadStore) nextBlankNodeID() string {
	n := atomic.AddUint64(&s.blankCounter, 1)
	return "b" + strconv.FormatUint(n, 36)
}

// LoadGraph ingests triples (NTriples, Turtle, RDFXML) into targetGraph
// (the default graph if nil). The triples are already parsed by the
// caller's RDF syntax parser.
func (s *QuadStore) LoadGraph(triples []*rdf.Triple, targetGraph rdf.Term) error {
	if targetGraph == nil {
		targetGraph = rdf.NewDefaultGraph()
	}

	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	arena := newBlankNodeArena(s)
	for _, triple := range triples {
		quad := &rdf.Quad{
			Subject:   arena.rewriteTerm(triple.Subject),
			Predicate: triple.Predicate,
			Object:    arena.rewriteTerm(triple.Object),
			Graph:     targetGraph,
		}
		if err := s.insertInTxn(txn, quad); err != nil {
			return err
		}
	}
	return txn.Commit()
}

// LoadDataset ingests a stream of quads (NQuads, TriG); each quad's own
// graph name is honored.
func (s *QuadStore) LoadDataset(quads []*rdf.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	arena := newBlankNodeArena(s)
	for _, quad := range quads {
		rewritten := &rdf.Quad{
			Subject:   arena.rewriteTerm(quad.Subject),
			Predicate: quad.Predicate,
			Object:    arena.rewriteTerm(quad.Object),
			Graph:     arena.rewriteTerm(quad.Graph),
		}
		if err := s.insertInTxn(txn, rewritten); err != nil {
			return err
		}
	}
	return txn.Commit()
}

// LoadGraphWithSyntax is the entry point matching the embedding API's
// connection.load_graph(reader, syntax, graph?, base_iri?): it rejects a
// target graph for a quad-producing syntax instead of silently ignoring
// it.
func LoadGraphWithSyntax(s *QuadStore, syntax Syntax, targetGraph rdf.Term, parseTriples func() ([]*rdf.Triple, error), parseQuads func() ([]*rdf.Quad, error)) error {
	if syntax.producesQuads() {
		if targetGraph != nil {
			return &GraphNameNotApplicableError{}
		}
		quads, err := parseQuads()
		if err != nil {
			return &ParseError{Syntax: string(syntax), Err: err}
		}
		return s.LoadDataset(quads)
	}
	triples, err := parseTriples()
	if err != nil {
		return &ParseError{Syntax: string(syntax), Err: err}
	}
	return s.LoadGraph(triples, targetGraph)
}
