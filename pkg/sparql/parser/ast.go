package parser

import (
	"github.com/aleksaelezovic/trigo/pkg/rdf"
)

// Query is a parsed SPARQL query, tagged by QueryType with exactly one of
// the variant fields populated.
type Query struct {
	QueryType QueryType
	Select    *SelectQuery
	Construct *ConstructQuery
	Ask       *AskQuery
	Describe  *DescribeQuery
}

// QueryType identifies which of SELECT/CONSTRUCT/ASK/DESCRIBE a Query is.
type QueryType int

const (
	QueryTypeSelect QueryType = iota
	QueryTypeConstruct
	QueryTypeAsk
	QueryTypeDescribe
)

// SelectQuery is a SELECT query's variant fields.
type SelectQuery struct {
	Variables []*Variable       // nil means SELECT *
	Distinct  bool              // DISTINCT modifier
	Reduced   bool              // REDUCED modifier (mutually exclusive with Distinct)
	Where     *GraphPattern     // WHERE clause
	GroupBy   []*GroupCondition // GROUP BY clause
	Having    []*Filter         // HAVING clause
	OrderBy   []*OrderCondition // ORDER BY clause
	Limit     *int              // LIMIT clause
	Offset    *int              // OFFSET clause
}

// GroupCondition is one GROUP BY key. Variable is nil for a parenthesised
// expression key, which the parser skips without keeping.
type GroupCondition struct {
	Variable *Variable
}

// ConstructQuery is a CONSTRUCT query's variant fields.
type ConstructQuery struct {
	Template []*TriplePattern
	Where    *GraphPattern
}

// AskQuery is an ASK query's variant fields.
type AskQuery struct {
	Where *GraphPattern
}

// DescribeQuery is a DESCRIBE query's variant fields: either an explicit
// resource list, a WHERE clause that supplies resources dynamically, or
// both.
type DescribeQuery struct {
	Resources []*rdf.NamedNode
	Where     *GraphPattern
}

// GraphPattern is one node of the WHERE-clause tree: a basic graph pattern
// (Patterns/Filters/Binds) plus any nested UNION/OPTIONAL/GRAPH/MINUS
// children. Elements additionally records triples/filters/binds in source
// order, for callers (e.g. an optimizer honoring filter placement) that
// care about interleaving rather than just the grouped slices.
type GraphPattern struct {
	Type     GraphPatternType
	Patterns []*TriplePattern
	Filters  []*Filter
	Binds    []*Bind
	Elements []PatternElement
	Children []*GraphPattern
	Graph    *GraphTerm
}

// GraphPatternType distinguishes a basic graph pattern from the compound
// pattern forms that nest one.
type GraphPatternType int

const (
	GraphPatternTypeBasic GraphPatternType = iota
	GraphPatternTypeUnion
	GraphPatternTypeOptional
	GraphPatternTypeGraph
	GraphPatternTypeMinus
)

// PatternElement tags one source-order member of a GraphPattern's body:
// exactly one of Triple, Filter, or Bind is set.
type PatternElement struct {
	Triple *TriplePattern
	Filter *Filter
	Bind   *Bind
}

// TriplePattern is a triple with possibly-variable positions.
type TriplePattern struct {
	Subject   TermOrVariable
	Predicate TermOrVariable
	Object    TermOrVariable
}

// TermOrVariable holds either a bound rdf.Term or a SPARQL variable.
type TermOrVariable struct {
	Term     rdf.Term
	Variable *Variable
}

// IsVariable reports whether this position is unbound.
func (t *TermOrVariable) IsVariable() bool {
	return t.Variable != nil
}

// Variable is a SPARQL variable reference (the "?name"/"$name" without the
// sigil).
type Variable struct {
	Name string
}

// GraphTerm names the graph of a GRAPH pattern: a bound IRI or a variable.
type GraphTerm struct {
	IRI      *rdf.NamedNode
	Variable *Variable
}

// Filter is a FILTER clause's boolean expression.
type Filter struct {
	Expression Expression
}

// Bind is a BIND(expr AS ?var) clause.
type Bind struct {
	Expression Expression
	Variable   *Variable
}

// Expression is a SPARQL filter/bind expression tree node.
type Expression interface {
	expressionNode()
}

// BinaryExpression is a two-operand operator application.
type BinaryExpression struct {
	Left     Expression
	Operator Operator
	Right    Expression
}

func (e *BinaryExpression) expressionNode() {}

// UnaryExpression is a one-operand operator application (e.g. !, unary -).
type UnaryExpression struct {
	Operator Operator
	Operand  Expression
}

func (e *UnaryExpression) expressionNode() {}

// VariableExpression is a bare variable reference inside an expression.
type VariableExpression struct {
	Variable *Variable
}

func (e *VariableExpression) expressionNode() {}

// LiteralExpression is a constant term inside an expression.
type LiteralExpression struct {
	Literal rdf.Term
}

func (e *LiteralExpression) expressionNode() {}

// FunctionCallExpression is a built-in function application (BOUND, STR,
// REGEX, ...).
type FunctionCallExpression struct {
	Function  string
	Arguments []Expression
}

func (e *FunctionCallExpression) expressionNode() {}

// ExistsExpression is an EXISTS/NOT EXISTS filter.
type ExistsExpression struct {
	Not     bool
	Pattern GraphPattern
}

func (e *ExistsExpression) expressionNode() {}

// InExpression is an IN/NOT IN membership test.
type InExpression struct {
	Not        bool
	Expression Expression
	Values     []Expression
}

func (e *InExpression) expressionNode() {}

// Operator is an expression operator.
type Operator int

const (
	// Logical operators
	OpAnd Operator = iota
	OpOr
	OpNot

	// Comparison operators
	OpEqual
	OpNotEqual
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual

	// Arithmetic operators
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide

	// String operators
	OpRegex
	OpStr
	OpLang
	OpDatatype

	// Numeric operators
	OpIsNumeric
	OpAbs
	OpCeil
	OpFloor
	OpRound
)

// OrderCondition is one ORDER BY key.
type OrderCondition struct {
	Expression Expression
	Ascending  bool
}
