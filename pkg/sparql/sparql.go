// Package sparql ties the parser, optimizer and executor into one
// query-string-in, QueryResult-out call, used by pkg/embed; pkg/server
// does not use it and wires the three stages itself.
package sparql

import (
	"github.com/aleksaelezovic/trigo/pkg/sparql/executor"
	"github.com/aleksaelezovic/trigo/pkg/sparql/optimizer"
	"github.com/aleksaelezovic/trigo/pkg/sparql/parser"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

// Engine runs SPARQL queries against one quad store.
type Engine struct {
	store    *store.QuadStore
	executor *executor.Executor
}

// NewEngine creates a query engine over store.
func NewEngine(s *store.QuadStore) *Engine {
	return &Engine{
		store:    s,
		executor: executor.NewExecutor(s),
	}
}

// Query parses, optimizes and executes a SPARQL query string.
func (e *Engine) Query(queryString string) (executor.QueryResult, error) {
	query, err := parser.NewParser(queryString).Parse()
	if err != nil {
		return nil, &QueryParseError{Query: queryString, Err: err}
	}
	return e.ExecuteParsed(query)
}

// ExecuteParsed optimizes and executes an already-parsed query, skipping
// the parse step for callers (e.g. pkg/embed.PreparedQuery) that parsed
// once up front.
func (e *Engine) ExecuteParsed(query *parser.Query) (executor.QueryResult, error) {
	count, err := e.store.Len()
	if err != nil {
		return nil, &IoError{Op: "store length", Err: err}
	}
	stats := &optimizer.Statistics{TotalTriples: count}
	opt := optimizer.NewOptimizer(stats)

	plan, err := opt.Optimize(query)
	if err != nil {
		return nil, &QueryEvaluationError{Reason: "optimization failed", Err: err}
	}

	result, err := e.executor.Execute(plan)
	if err != nil {
		return nil, &QueryEvaluationError{Reason: "execution failed", Err: err}
	}

	return result, nil
}
