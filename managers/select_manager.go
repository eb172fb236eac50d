// Package managers provides a fluent API for building SELECT statements
// around window function calls.
package managers

import (
	"github.com/bawdo/wincall/nodes"
	"github.com/bawdo/wincall/plugins"
)

// SelectManager provides a fluent API for building SELECT queries.
// It wraps a SelectCore and applies transformer plugins before SQL generation.
type SelectManager struct {
	treeManager
	Core *nodes.SelectCore
}

// NewSelectManager creates a new SelectManager with the given table as FROM.
// If from is nil, the FROM clause is left unset.
func NewSelectManager(from nodes.Node) *SelectManager {
	return &SelectManager{Core: &nodes.SelectCore{From: from}}
}

// Select sets the projection list, replacing any existing projections.
func (m *SelectManager) Select(projections ...nodes.Node) *SelectManager {
	m.Core.Projections = projections
	return m
}

// Project is an alias for Select.
func (m *SelectManager) Project(projections ...nodes.Node) *SelectManager {
	return m.Select(projections...)
}

// AddProjection appends to the projection list.
func (m *SelectManager) AddProjection(projections ...nodes.Node) *SelectManager {
	m.Core.Projections = append(m.Core.Projections, projections...)
	return m
}

// From sets or changes the FROM source.
func (m *SelectManager) From(table nodes.Node) *SelectManager {
	m.Core.From = table
	return m
}

// Window appends one or more named window definitions to the WINDOW clause.
func (m *SelectManager) Window(defs ...*nodes.WindowDefinition) *SelectManager {
	m.Core.Windows = append(m.Core.Windows, defs...)
	return m
}

// Order sets the ORDER BY clause. Pass OrderingNode values
// (e.g., table.Col("name").Asc()).
func (m *SelectManager) Order(orderings ...nodes.Node) *SelectManager {
	m.Core.Orders = orderings
	return m
}

// Limit sets the LIMIT value.
func (m *SelectManager) Limit(n int) *SelectManager {
	m.Core.Limit = nodes.Literal(n)
	return m
}

// Take is an alias for Limit.
func (m *SelectManager) Take(n int) *SelectManager {
	return m.Limit(n)
}

// Use registers a transformer plugin to be applied before SQL generation.
func (m *SelectManager) Use(t plugins.Transformer) *SelectManager {
	m.addTransformer(t)
	return m
}

// toSQLCore applies all registered transformers to a copy of the SelectCore,
// then generates SQL using the given visitor.
func (m *SelectManager) toSQLCore(v nodes.Visitor) (string, error) {
	core := m.CloneCore()
	for _, t := range m.transformers {
		var err error
		core, err = t.TransformSelect(core)
		if err != nil {
			return "", err
		}
	}
	return core.Accept(v), nil
}

// ToSQL applies all registered transformers and generates SQL with parameters.
// Parameters are collected when the visitor has parameterisation enabled.
func (m *SelectManager) ToSQL(v nodes.Visitor) (string, []any, error) {
	return toSQLParams(v, m.toSQLCore)
}

// Accept implements the Node interface. It renders the untransformed core.
func (m *SelectManager) Accept(v nodes.Visitor) string {
	return m.Core.Accept(v)
}

// CloneCore returns a shallow copy of the SelectCore so transformers
// don't modify the original.
func (m *SelectManager) CloneCore() *nodes.SelectCore {
	projections := make([]nodes.Node, len(m.Core.Projections))
	copy(projections, m.Core.Projections)

	windows := make([]*nodes.WindowDefinition, len(m.Core.Windows))
	copy(windows, m.Core.Windows)

	orders := make([]nodes.Node, len(m.Core.Orders))
	copy(orders, m.Core.Orders)

	return &nodes.SelectCore{
		From:        m.Core.From,
		Projections: projections,
		Windows:     windows,
		Orders:      orders,
		Limit:       m.Core.Limit,
	}
}
