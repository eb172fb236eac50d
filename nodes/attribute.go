package nodes

// Attribute represents a column reference. Relation is nil for an
// unqualified column.
type Attribute struct {
	Name     string
	Relation Node // *Table or nil
}

// NewAttribute creates an Attribute bound to relation.
func NewAttribute(relation Node, name string) *Attribute {
	return &Attribute{Name: name, Relation: relation}
}

// Column creates an unqualified column reference.
func Column(name string) *Attribute {
	return &Attribute{Name: name}
}

func (a *Attribute) Accept(v Visitor) string { return v.VisitAttribute(a) }

// Asc creates an ascending OrderingNode for this column.
func (a *Attribute) Asc() *OrderingNode {
	return &OrderingNode{Expr: a, Direction: Asc}
}

// Desc creates a descending OrderingNode for this column.
func (a *Attribute) Desc() *OrderingNode {
	return &OrderingNode{Expr: a, Direction: Desc}
}
