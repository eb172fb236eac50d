package visitors

import (
	"strings"

	"github.com/bawdo/wincall/nodes"
)

// FormattingVisitor wraps any nodes.Visitor (dialect visitor) and produces
// human-readable multi-line SQL. VisitSelectCore and VisitOver are real
// implementations; every other method delegates to the inner visitor.
type FormattingVisitor struct {
	inner nodes.Visitor
}

var _ nodes.Visitor = (*FormattingVisitor)(nil)
var _ nodes.Parameterizer = (*FormattingVisitor)(nil)

// NewFormattingVisitor constructs a FormattingVisitor wrapping the given
// dialect visitor.
func NewFormattingVisitor(inner nodes.Visitor) *FormattingVisitor {
	if inner == nil {
		panic("wincall: FormattingVisitor requires a non-nil inner visitor")
	}
	return &FormattingVisitor{inner: inner}
}

// Params delegates to the inner visitor if it implements nodes.Parameterizer,
// otherwise returns nil.
func (f *FormattingVisitor) Params() []any {
	if p, ok := f.inner.(nodes.Parameterizer); ok {
		return p.Params()
	}
	return nil
}

// Reset delegates to the inner visitor if it implements nodes.Parameterizer.
func (f *FormattingVisitor) Reset() {
	if p, ok := f.inner.(nodes.Parameterizer); ok {
		p.Reset()
	}
}

func (f *FormattingVisitor) VisitTable(node *nodes.Table) string {
	return f.inner.VisitTable(node)
}

func (f *FormattingVisitor) VisitAttribute(node *nodes.Attribute) string {
	return f.inner.VisitAttribute(node)
}

func (f *FormattingVisitor) VisitLiteral(node *nodes.LiteralNode) string {
	return f.inner.VisitLiteral(node)
}

func (f *FormattingVisitor) VisitStar(node *nodes.StarNode) string {
	return f.inner.VisitStar(node)
}

func (f *FormattingVisitor) VisitSqlLiteral(node *nodes.SqlLiteral) string {
	return f.inner.VisitSqlLiteral(node)
}

func (f *FormattingVisitor) VisitOrdering(node *nodes.OrderingNode) string {
	return f.inner.VisitOrdering(node)
}

func (f *FormattingVisitor) VisitNamedFunction(node *nodes.NamedFunctionNode) string {
	return f.inner.VisitNamedFunction(node)
}

func (f *FormattingVisitor) VisitWindowFunction(node *nodes.WindowFuncNode) string {
	return f.inner.VisitWindowFunction(node)
}

func (f *FormattingVisitor) VisitAlias(node *nodes.AliasNode) string {
	return node.Expr.Accept(f) + " AS " + nodes.NewTable(node.Name).Accept(f.inner)
}

// VisitOver puts the window specification of an inline OVER clause on its
// own indented line.
func (f *FormattingVisitor) VisitOver(node *nodes.OverNode) string {
	if node.WindowName != "" || node.Window == nil {
		return f.inner.VisitOver(node)
	}
	return node.Expr.Accept(f.inner) + "\n\t\tOVER " + RenderWindowDef(f.inner, node.Window)
}

// VisitSelectCore renders each clause on its own line with leading-comma
// projection and ordering lists.
func (f *FormattingVisitor) VisitSelectCore(node *nodes.SelectCore) string {
	var sb strings.Builder

	// Leading-comma projections.
	sb.WriteString("SELECT")
	if len(node.Projections) == 0 {
		sb.WriteString(" *")
	} else {
		sb.WriteString(" ")
		sb.WriteString(node.Projections[0].Accept(f))
		for _, p := range node.Projections[1:] {
			sb.WriteString("\n\t,")
			sb.WriteString(p.Accept(f))
		}
	}

	if node.From != nil {
		sb.WriteString("\nFROM ")
		sb.WriteString(node.From.Accept(f.inner))
	}

	if len(node.Windows) > 0 {
		sb.WriteString("\nWINDOW ")
		for i, w := range node.Windows {
			if i > 0 {
				sb.WriteString(", ")
			}
			// Render the window name using the inner visitor for correct quoting.
			sb.WriteString(nodes.NewTable(w.Name).Accept(f.inner))
			sb.WriteString(" AS ")
			sb.WriteString(RenderWindowDef(f.inner, &nodes.WindowDefinition{
				PartitionBy: w.PartitionBy,
				OrderBy:     w.OrderBy,
				Frame:       w.Frame,
			}))
		}
	}

	if len(node.Orders) > 0 {
		sb.WriteString("\nORDER BY ")
		sb.WriteString(node.Orders[0].Accept(f.inner))
		for _, o := range node.Orders[1:] {
			sb.WriteString("\n\t,")
			sb.WriteString(o.Accept(f.inner))
		}
	}

	if node.Limit != nil {
		sb.WriteString("\nLIMIT ")
		sb.WriteString(node.Limit.Accept(f.inner))
	}

	return sb.String()
}
