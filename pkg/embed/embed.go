// Package embed is the bridge other Go programs embed the database
// through: open a Store, take a Connection off it, insert/remove/query
// quads and run SPARQL, without reaching into pkg/store or pkg/sparql
// directly.
package embed

import (
	"bytes"
	"io"

	"github.com/aleksaelezovic/trigo/internal/storage"
	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/sparql"
	"github.com/aleksaelezovic/trigo/pkg/sparql/executor"
	"github.com/aleksaelezovic/trigo/pkg/sparql/parser"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

// Store is an opened database: either in-memory or backed by a directory
// on disk. It holds no open Connection of its own; Connect opens one.
type Store struct {
	quadStore *store.QuadStore
}

// Open creates an in-memory store. Data does not survive process exit.
func Open() *Store {
	return &Store{quadStore: store.NewQuadStore(storage.NewMemoryStorage())}
}

// OpenPersistent opens (creating if absent) a disk-backed store rooted at
// path.
func OpenPersistent(path string) (*Store, error) {
	backend, err := storage.NewBadgerStorage(path)
	if err != nil {
		return nil, &sparql.IoError{Op: "open store at " + path, Err: err}
	}
	return &Store{quadStore: store.NewQuadStore(backend)}, nil
}

// Connect returns a Connection over this store. Connections are cheap;
// callers may open as many as they like.
func (s *Store) Connect() *Connection {
	return &Connection{store: s.quadStore, engine: sparql.NewEngine(s.quadStore)}
}

// Close releases the store's underlying storage.
func (s *Store) Close() error {
	return s.quadStore.Close()
}

// Connection is a handle for reading and writing quads and running
// queries against one Store.
type Connection struct {
	store  *store.QuadStore
	engine *sparql.Engine
}

// Insert adds one quad.
func (c *Connection) Insert(quad *rdf.Quad) error {
	return c.store.Insert(quad)
}

// Remove deletes one quad.
func (c *Connection) Remove(quad *rdf.Quad) error {
	return c.store.Remove(quad)
}

// Contains reports whether quad is present.
func (c *Connection) Contains(quad *rdf.Quad) (bool, error) {
	return c.store.Contains(quad)
}

// QuadsForPattern returns an iterator over quads matching pattern. Any of
// Subject/Predicate/Object/Graph may be a *store.Variable to leave that
// position unbound.
func (c *Connection) QuadsForPattern(pattern *store.Pattern) (store.QuadIterator, error) {
	return c.store.QuadsForPattern(pattern)
}

// Len returns the number of quads currently stored.
func (c *Connection) Len() (int64, error) {
	return c.store.Len()
}

// LoadGraph reads triples from reader in the given syntax and inserts
// them into targetGraph (the default graph if nil). syntax must not be
// one of the quad-producing syntaxes (NQuads, TriG); use LoadDataset for
// those.
func (c *Connection) LoadGraph(reader io.Reader, syntax store.Syntax, targetGraph rdf.Term) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return &sparql.IoError{Op: "read graph data", Err: err}
	}

	return store.LoadGraphWithSyntax(c.store, syntax, targetGraph,
		func() ([]*rdf.Triple, error) {
			switch syntax {
			case store.SyntaxTurtle:
				return rdf.NewTurtleParser(string(data)).Parse()
			case store.SyntaxNTriples:
				return rdf.NewNTriplesParser(string(data)).Parse()
			case store.SyntaxRdfXML:
				quads, err := rdf.NewRDFXMLParser().Parse(bytes.NewReader(data))
				if err != nil {
					return nil, err
				}
				return quadsToTriples(quads), nil
			default:
				return nil, &store.UnsupportedSyntaxError{MimeType: string(syntax)}
			}
		},
		func() ([]*rdf.Quad, error) {
			return nil, &store.GraphNameNotApplicableError{}
		},
	)
}

// LoadDataset reads quads from reader in the given syntax (NQuads or
// TriG); each quad's own graph name is honored.
func (c *Connection) LoadDataset(reader io.Reader, syntax store.Syntax) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return &sparql.IoError{Op: "read dataset data", Err: err}
	}

	return store.LoadGraphWithSyntax(c.store, syntax, nil,
		func() ([]*rdf.Triple, error) {
			return nil, &store.UnsupportedSyntaxError{MimeType: string(syntax)}
		},
		func() ([]*rdf.Quad, error) {
			switch syntax {
			case store.SyntaxNQuads:
				return rdf.NewNQuadsParser(string(data)).Parse()
			case store.SyntaxTriG:
				return rdf.NewTriGParser(string(data)).Parse()
			default:
				return nil, &store.UnsupportedSyntaxError{MimeType: string(syntax)}
			}
		},
	)
}

// PrepareQuery parses a SPARQL query once, returning a PreparedQuery that
// can be executed repeatedly without re-parsing.
func (c *Connection) PrepareQuery(text string) (*PreparedQuery, error) {
	ast, err := parser.NewParser(text).Parse()
	if err != nil {
		return nil, &sparql.QueryParseError{Query: text, Err: err}
	}

	return &PreparedQuery{engine: c.engine, query: ast}, nil
}

func quadsToTriples(quads []*rdf.Quad) []*rdf.Triple {
	triples := make([]*rdf.Triple, len(quads))
	for i, q := range quads {
		triples[i] = rdf.NewTriple(q.Subject, q.Predicate, q.Object)
	}
	return triples
}

// PreparedQuery is a parsed SPARQL query bound to a Connection's engine.
type PreparedQuery struct {
	engine *sparql.Engine
	query  *parser.Query
}

// Exec re-optimizes and executes the prepared query against the
// connection's current store contents, and returns its result.
func (q *PreparedQuery) Exec() (executor.QueryResult, error) {
	return q.engine.ExecuteParsed(q.query)
}
