package nodes

// SelectCore represents the data container for a SELECT clause.
// The fluent API for building queries lives in the managers package.
type SelectCore struct {
	From        Node
	Projections []Node
	Windows     []*WindowDefinition // WINDOW definitions
	Orders      []Node              // OrderingNode values
	Limit       Node                // nil or LiteralNode
}

func (n *SelectCore) Accept(v Visitor) string { return v.VisitSelectCore(n) }
