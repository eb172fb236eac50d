package nodes

// LiteralNode wraps a raw Go value (string, int, float, bool, etc.) as an AST node.
// A nil Value is the SQL NULL literal.
type LiteralNode struct {
	Value any
}

func (n *LiteralNode) Accept(v Visitor) string { return v.VisitLiteral(n) }

// StarNode represents a SQL star (*) or qualified star (table.*).
type StarNode struct {
	Table *Table // nil for unqualified *
}

func (n *StarNode) Accept(v Visitor) string { return v.VisitStar(n) }

// SqlLiteral represents a raw SQL fragment injected verbatim into the query.
//
// SECURITY: The Raw field is rendered directly into SQL output without escaping
// or parameterization. Never pass user-controlled input to NewSqlLiteral.
type SqlLiteral struct {
	Raw string
}

func NewSqlLiteral(raw string) *SqlLiteral {
	return &SqlLiteral{Raw: raw}
}

func (n *SqlLiteral) Accept(v Visitor) string { return v.VisitSqlLiteral(n) }

// Star returns an unqualified StarNode representing SQL *.
func Star() *StarNode {
	return &StarNode{}
}
