// Package optimizer turns a parsed SPARQL query into an execution plan: a
// tree of QueryPlan nodes the executor walks with a Volcano-style iterator.
package optimizer

import (
	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/sparql/parser"
)

// Optimizer builds an execution plan from a parsed query.
type Optimizer struct {
	stats *Statistics
}

// Statistics holds cardinality estimates used for selectivity-based
// reordering.
type Statistics struct {
	TotalTriples int64
}

// NewOptimizer creates a query optimizer informed by stats.
func NewOptimizer(stats *Statistics) *Optimizer {
	return &Optimizer{
		stats: stats,
	}
}

// Optimize builds an execution plan for query.
func (o *Optimizer) Optimize(query *parser.Query) (*OptimizedQuery, error) {
	optimized := &OptimizedQuery{
		Original: query,
	}

	switch query.QueryType {
	case parser.QueryTypeSelect:
		plan, err := o.optimizeSelect(query.Select)
		if err != nil {
			return nil, err
		}
		optimized.Plan = plan
	case parser.QueryTypeAsk:
		plan, err := o.optimizeAsk(query.Ask)
		if err != nil {
			return nil, err
		}
		optimized.Plan = plan
	case parser.QueryTypeConstruct:
		plan, err := o.optimizeConstruct(query.Construct)
		if err != nil {
			return nil, err
		}
		optimized.Plan = plan
	case parser.QueryTypeDescribe:
		plan, err := o.optimizeDescribe(query.Describe)
		if err != nil {
			return nil, err
		}
		optimized.Plan = plan
	}

	return optimized, nil
}

// OptimizedQuery pairs the original parse tree with its execution plan.
type OptimizedQuery struct {
	Original *parser.Query
	Plan     QueryPlan
}

// QueryPlan is one node of an execution plan.
type QueryPlan interface {
	planNode()
}

// ScanPlan scans the store for one triple pattern.
type ScanPlan struct {
	Pattern *parser.TriplePattern
}

func (p *ScanPlan) planNode() {}

// JoinPlan joins two sub-plans' bindings.
type JoinPlan struct {
	Left  QueryPlan
	Right QueryPlan
	Type  JoinType
}

func (p *JoinPlan) planNode() {}

// JoinType is the join algorithm a JoinPlan should use.
type JoinType int

const (
	JoinTypeNestedLoop JoinType = iota
	JoinTypeHashJoin
	JoinTypeMergeJoin
)

// FilterPlan drops bindings that fail a FILTER expression.
type FilterPlan struct {
	Input  QueryPlan
	Filter *parser.Filter
}

func (p *FilterPlan) planNode() {}

// ProjectionPlan keeps only the selected variables of each binding.
type ProjectionPlan struct {
	Input     QueryPlan
	Variables []*parser.Variable
}

func (p *ProjectionPlan) planNode() {}

// OrderByPlan sorts bindings by one or more expressions.
type OrderByPlan struct {
	Input   QueryPlan
	OrderBy []*parser.OrderCondition
}

func (p *OrderByPlan) planNode() {}

// LimitPlan caps the number of bindings produced.
type LimitPlan struct {
	Input QueryPlan
	Limit int
}

func (p *LimitPlan) planNode() {}

// OffsetPlan skips a fixed number of bindings.
type OffsetPlan struct {
	Input  QueryPlan
	Offset int
}

func (p *OffsetPlan) planNode() {}

// DistinctPlan deduplicates bindings.
type DistinctPlan struct {
	Input QueryPlan
}

func (p *DistinctPlan) planNode() {}

// ConstructPlan builds triples from a template against Input's bindings.
type ConstructPlan struct {
	Input    QueryPlan
	Template []*parser.TriplePattern
}

func (p *ConstructPlan) planNode() {}

// DescribePlan resolves the concise bounded description of either a fixed
// resource list or the resources a WHERE clause binds.
type DescribePlan struct {
	Input     QueryPlan
	Resources []rdf.Term
}

func (p *DescribePlan) planNode() {}

// GraphPlan restricts Input to quads from a named graph.
type GraphPlan struct {
	Input QueryPlan
	Graph *parser.GraphTerm
}

func (p *GraphPlan) planNode() {}

// BindPlan assigns an expression's value to a variable in each binding.
type BindPlan struct {
	Input      QueryPlan
	Expression parser.Expression
	Variable   *parser.Variable
}

func (p *BindPlan) planNode() {}

// OptionalPlan is a left outer join: every Left binding survives, extended
// by Right when Right matches.
type OptionalPlan struct {
	Left  QueryPlan
	Right QueryPlan
}

func (p *OptionalPlan) planNode() {}

// UnionPlan is the union of Left's and Right's bindings.
type UnionPlan struct {
	Left  QueryPlan
	Right QueryPlan
}

func (p *UnionPlan) planNode() {}

// MinusPlan is set difference: Left bindings with no compatible Right
// binding.
type MinusPlan struct {
	Left  QueryPlan
	Right QueryPlan
}

func (p *MinusPlan) planNode() {}

func (o *Optimizer) optimizeSelect(query *parser.SelectQuery) (QueryPlan, error) {
	plan, err := o.optimizeGraphPattern(query.Where)
	if err != nil {
		return nil, err
	}

	if len(query.OrderBy) > 0 {
		plan = &OrderByPlan{
			Input:   plan,
			OrderBy: query.OrderBy,
		}
	}

	if query.Distinct {
		plan = &DistinctPlan{
			Input: plan,
		}
	}

	if query.Variables != nil {
		plan = &ProjectionPlan{
			Input:     plan,
			Variables: query.Variables,
		}
	}

	if query.Offset != nil {
		plan = &OffsetPlan{
			Input:  plan,
			Offset: *query.Offset,
		}
	}

	if query.Limit != nil {
		plan = &LimitPlan{
			Input: plan,
			Limit: *query.Limit,
		}
	}

	return plan, nil
}

func (o *Optimizer) optimizeAsk(query *parser.AskQuery) (QueryPlan, error) {
	plan, err := o.optimizeGraphPattern(query.Where)
	if err != nil {
		return nil, err
	}

	return &LimitPlan{
		Input: plan,
		Limit: 1,
	}, nil
}

func (o *Optimizer) optimizeConstruct(query *parser.ConstructQuery) (QueryPlan, error) {
	plan, err := o.optimizeGraphPattern(query.Where)
	if err != nil {
		return nil, err
	}

	return &ConstructPlan{
		Input:    plan,
		Template: query.Template,
	}, nil
}

// optimizeDescribe builds a DescribePlan. A DESCRIBE with an explicit
// resource list and no WHERE clause needs no plan at all to drive (the
// executor resolves Resources directly); a DESCRIBE WHERE needs Input to
// discover its resources dynamically.
func (o *Optimizer) optimizeDescribe(query *parser.DescribeQuery) (QueryPlan, error) {
	plan := &DescribePlan{}

	for _, resource := range query.Resources {
		plan.Resources = append(plan.Resources, resource)
	}

	if query.Where != nil {
		innerPlan, err := o.optimizeGraphPattern(query.Where)
		if err != nil {
			return nil, err
		}
		plan.Input = innerPlan
	}

	return plan, nil
}

func (o *Optimizer) optimizeGraphPattern(pattern *parser.GraphPattern) (QueryPlan, error) {
	switch pattern.Type {
	case parser.GraphPatternTypeBasic:
		return o.optimizeBasicGraphPattern(pattern)
	case parser.GraphPatternTypeGraph:
		return o.optimizeGraphGraphPattern(pattern)
	default:
		return o.optimizeBasicGraphPattern(pattern)
	}
}

func (o *Optimizer) optimizeGraphGraphPattern(pattern *parser.GraphPattern) (QueryPlan, error) {
	innerPlan, err := o.optimizeBasicGraphPattern(pattern)
	if err != nil {
		return nil, err
	}

	return &GraphPlan{
		Input: innerPlan,
		Graph: pattern.Graph,
	}, nil
}

func (o *Optimizer) optimizeBasicGraphPattern(pattern *parser.GraphPattern) (QueryPlan, error) {
	var plan QueryPlan

	if len(pattern.Patterns) > 0 {
		orderedPatterns := o.reorderBySelectivity(pattern.Patterns)

		plan = &ScanPlan{Pattern: orderedPatterns[0]}

		for i := 1; i < len(orderedPatterns); i++ {
			rightPlan := &ScanPlan{Pattern: orderedPatterns[i]}
			joinType := o.selectJoinType(plan, rightPlan)

			plan = &JoinPlan{
				Left:  plan,
				Right: rightPlan,
				Type:  joinType,
			}
		}
	}

	for _, child := range pattern.Children {
		childPlan, err := o.optimizeGraphPattern(child)
		if err != nil {
			return nil, err
		}

		if childPlan == nil {
			continue
		}
		if plan == nil {
			plan = childPlan
			continue
		}

		switch child.Type {
		case parser.GraphPatternTypeOptional:
			plan = &OptionalPlan{Left: plan, Right: childPlan}
		case parser.GraphPatternTypeUnion:
			plan = &UnionPlan{Left: plan, Right: childPlan}
		case parser.GraphPatternTypeMinus:
			plan = &MinusPlan{Left: plan, Right: childPlan}
		default:
			plan = &JoinPlan{Left: plan, Right: childPlan, Type: JoinTypeNestedLoop}
		}
	}

	for _, filter := range pattern.Filters {
		if plan != nil {
			plan = &FilterPlan{Input: plan, Filter: filter}
		}
	}

	for _, bind := range pattern.Binds {
		if plan != nil {
			plan = &BindPlan{Input: plan, Expression: bind.Expression, Variable: bind.Variable}
		}
	}

	return plan, nil
}

// reorderBySelectivity moves the more selective (more bound) triple
// patterns first, a greedy approximation to a cost-based join order.
func (o *Optimizer) reorderBySelectivity(patterns []*parser.TriplePattern) []*parser.TriplePattern {
	ordered := make([]*parser.TriplePattern, len(patterns))
	copy(ordered, patterns)

	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if o.estimateSelectivity(ordered[j]) < o.estimateSelectivity(ordered[i]) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	return ordered
}

// estimateSelectivity scores a pattern; lower means fewer expected matches.
func (o *Optimizer) estimateSelectivity(pattern *parser.TriplePattern) float64 {
	selectivity := 1.0

	if !pattern.Subject.IsVariable() {
		selectivity *= 0.01
	}
	if !pattern.Predicate.IsVariable() {
		selectivity *= 0.1
	}
	if !pattern.Object.IsVariable() {
		selectivity *= 0.1
	}

	return selectivity
}

// selectJoinType picks the join algorithm for a JoinPlan. Nested loop is
// the only one the executor implements today.
func (o *Optimizer) selectJoinType(left, right QueryPlan) JoinType {
	return JoinTypeNestedLoop
}
