// Package nodes defines the AST node types produced when a window-function
// call is resolved, together with the argument expressions they bind.
package nodes

// Node is the interface that all AST nodes implement.
type Node interface {
	Accept(visitor Visitor) string
}

// Visitor defines the interface for walking the AST and producing output.
// Concrete visitors (e.g., Postgres, MySQL, DOT) implement this interface.
type Visitor interface {
	VisitTable(node *Table) string
	VisitAttribute(node *Attribute) string
	VisitLiteral(node *LiteralNode) string
	VisitStar(node *StarNode) string
	VisitSqlLiteral(node *SqlLiteral) string
	VisitOrdering(node *OrderingNode) string
	VisitSelectCore(node *SelectCore) string
	VisitNamedFunction(node *NamedFunctionNode) string
	VisitWindowFunction(node *WindowFuncNode) string
	VisitOver(node *OverNode) string
	VisitAlias(node *AliasNode) string
}

// Parameterizer is implemented by visitors that support parameterized queries.
// Callers use type assertion to extract collected parameters after SQL generation.
type Parameterizer interface {
	Params() []any
	Reset()
}

// Literal wraps a raw Go value into a LiteralNode. If val already
// implements Node, it is returned as-is.
func Literal(val any) Node {
	if n, ok := val.(Node); ok {
		return n
	}
	return &LiteralNode{Value: val}
}

// Null returns a literal that renders as SQL NULL.
func Null() *LiteralNode {
	return &LiteralNode{}
}

// IntValue reports the integer held by n when n is an integer literal.
func IntValue(n Node) (int64, bool) {
	lit, ok := n.(*LiteralNode)
	if !ok {
		return 0, false
	}
	switch v := lit.Value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// IsNull reports whether n is the NULL literal.
func IsNull(n Node) bool {
	lit, ok := n.(*LiteralNode)
	return ok && lit.Value == nil
}
