package parser

import (
	"strings"

	"github.com/bawdo/wincall/builders"
	"github.com/bawdo/wincall/nodes"
	"github.com/pingcap/errors"
)

// Options maps the call's FROM and null-treatment clauses onto builder
// options. Omitted clauses keep the SQL defaults.
func (c *Call) Options() builders.Options {
	return builders.Options{
		FromLast:    strings.EqualFold(c.From, "LAST"),
		IgnoreNulls: strings.EqualFold(c.Nulls, "IGNORE"),
	}
}

// HasNullsClause reports whether RESPECT NULLS or IGNORE NULLS was written.
func (c *Call) HasNullsClause() bool {
	return c.Nulls != ""
}

// Build resolves the call against reg and returns the window node, wrapped
// in an OverNode when the call has an OVER clause. A null-treatment clause
// selects the nulls table. Unqualified columns are qualified with table when
// it is non-nil. Arity failures are reported to r as well as returned.
func (c *Call) Build(reg *builders.Registry, r builders.Reporter, table *nodes.Table) (nodes.Node, error) {
	if c.From != "" && !builders.NewFunctionName(c.Name).Is(builders.NameNthValue) {
		return nil, ErrFromClause.GenWithStackByArgs(strings.ToUpper(c.From), c.Name)
	}
	b, ok := reg.Lookup(c.Name, c.HasNullsClause())
	if !ok {
		return nil, ErrNotWindowFunction.GenWithStackByArgs(c.Name)
	}

	args := make([]nodes.Node, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.node(table)
	}
	n, err := b.Create(r, c.Name, nodes.NewArgList(args...), c.Options())
	if err != nil {
		return nil, errors.Trace(err)
	}
	if c.Over == nil {
		return n, nil
	}

	over := nodes.NewOverNode(n)
	if c.Over.Spec == nil {
		over.WindowName = c.Over.Name
		return over, nil
	}
	over.Window = c.Over.Spec.definition(table)
	return over, nil
}

func (w *Window) definition(table *nodes.Table) *nodes.WindowDefinition {
	def := nodes.NewWindowDef()
	for _, p := range w.Partition {
		def.PartitionBy = append(def.PartitionBy, p.node(table))
	}
	for _, o := range w.Order {
		ord := &nodes.OrderingNode{Expr: o.Expr.node(table), Direction: nodes.Asc}
		if strings.EqualFold(o.Dir, "DESC") {
			ord.Direction = nodes.Desc
		}
		def.OrderBy = append(def.OrderBy, ord)
	}
	if w.Frame != nil {
		w.Frame.apply(def)
	}
	return def
}

func (f *Frame) apply(def *nodes.WindowDefinition) {
	set := def.Rows
	if strings.EqualFold(f.Type, "RANGE") {
		set = def.Range
	}
	if f.Only != nil {
		set(f.Only.node())
		return
	}
	set(f.Start.node(), f.End.node())
}

func (b *Bound) node() nodes.FrameBound {
	following := strings.EqualFold(b.Dir, "FOLLOWING")
	switch {
	case b.Current:
		return nodes.CurrentRow()
	case b.Unbounded && following:
		return nodes.UnboundedFollowing()
	case b.Unbounded:
		return nodes.UnboundedPreceding()
	case following:
		return nodes.Following(nodes.Literal(*b.Offset))
	default:
		return nodes.Preceding(nodes.Literal(*b.Offset))
	}
}

func (e *Expr) node(table *nodes.Table) nodes.Node {
	switch {
	case e.Null:
		return nodes.Null()
	case e.Float != nil:
		return nodes.Literal(*e.Float)
	case e.Int != nil:
		return nodes.Literal(*e.Int)
	case e.String != nil:
		return nodes.Literal(unquote(*e.String))
	case e.Func != nil:
		args := make([]nodes.Node, len(e.Func.Args))
		for i, a := range e.Func.Args {
			args[i] = a.node(table)
		}
		return nodes.NewNamedFunction(strings.ToUpper(e.Func.Name), args...)
	default:
		return e.Column.node(table)
	}
}

func (c *ColumnRef) node(table *nodes.Table) nodes.Node {
	if len(c.Parts) == 2 {
		return nodes.NewTable(c.Parts[0]).Col(c.Parts[1])
	}
	if table != nil {
		return table.Col(c.Parts[0])
	}
	return nodes.Column(c.Parts[0])
}

// unquote strips the surrounding quotes of a SQL string literal and
// collapses doubled quotes.
func unquote(s string) string {
	return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
}
