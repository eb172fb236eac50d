// Package visitors provides SQL dialect generators that walk the AST.
package visitors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/wincall/internal/quoting"
	"github.com/bawdo/wincall/nodes"
	"golang.org/x/text/cases"
)

// Option configures a visitor at construction time.
type Option func(*baseVisitor)

// WithParams enables parameterized query mode. When enabled, literal values
// are replaced with bind placeholders and collected for separate retrieval.
func WithParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = true
	}
}

// WithoutParams disables parameterized query mode.
//
// When disabled, literal values are interpolated directly into the SQL string
// with basic escaping only. Use it for display and debugging, never for
// untrusted input.
func WithoutParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = false
	}
}

// baseVisitor implements the shared SQL generation logic used by all dialects.
// Dialect-specific visitors embed *baseVisitor and set the outer field to
// themselves, enabling correct virtual dispatch through the Visitor interface.
type baseVisitor struct {
	// outer is the concrete dialect visitor. All recursive Accept calls
	// go through outer so that dialect overrides are respected.
	outer nodes.Visitor

	// quoteIdent quotes a SQL identifier (table name, column name).
	quoteIdent func(string) string

	// parameterize enables bind-parameter mode.
	parameterize bool

	// params accumulates bind parameter values during SQL generation.
	params []any

	// paramIndex tracks the next parameter number (1-based).
	paramIndex int

	// placeholder returns the bind placeholder for a given parameter index.
	// PostgreSQL uses $1, $2; MySQL/SQLite use ?.
	placeholder func(int) string
}

// applyOptions applies functional options to the baseVisitor.
func (b *baseVisitor) applyOptions(opts []Option) {
	for _, o := range opts {
		o(b)
	}
}

// Params returns the collected bind parameters from the last SQL generation.
func (b *baseVisitor) Params() []any {
	return b.params
}

// Reset clears collected parameters for reuse.
func (b *baseVisitor) Reset() {
	b.params = nil
	b.paramIndex = 0
}

func (b *baseVisitor) VisitTable(n *nodes.Table) string {
	return b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitAttribute(n *nodes.Attribute) string {
	if n.Relation == nil {
		return b.quoteIdent(n.Name)
	}
	return b.quoteIdent(nodes.RelationName(n.Relation)) + "." + b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return b.literalToSQL(n.Value)
}

func (b *baseVisitor) literalToSQL(val any) string {
	// nil always renders as NULL keyword, never parameterized.
	if val == nil {
		return "NULL"
	}

	// In parameterize mode, emit a placeholder and collect the value.
	if b.parameterize {
		b.paramIndex++
		b.params = append(b.params, val)
		return b.placeholder(b.paramIndex)
	}

	switch v := val.(type) {
	case string:
		return "'" + quoting.EscapeString(v) + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		panic(fmt.Sprintf("wincall: unsupported literal type %T", v))
	}
}

func (b *baseVisitor) VisitStar(n *nodes.StarNode) string {
	if n.Table != nil {
		return b.quoteIdent(n.Table.Name) + ".*"
	}
	return "*"
}

func (b *baseVisitor) VisitSqlLiteral(n *nodes.SqlLiteral) string {
	return n.Raw
}

func (b *baseVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	expr := n.Expr.Accept(b.outer)
	if n.Direction == nodes.Desc {
		expr += " DESC"
	} else {
		expr += " ASC"
	}
	switch n.Nulls {
	case nodes.NullsFirst:
		expr += " NULLS FIRST"
	case nodes.NullsLast:
		expr += " NULLS LAST"
	}
	return expr
}

func (b *baseVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string {
	validateSQLFunctionName(n.Name)
	return n.Name + "(" + b.joinArgs(n.Args) + ")"
}

// VisitWindowFunction renders a resolved window call. Operands synthesized
// by the builders are folded back into SQL syntax: a defaulted offset is
// omitted, and the direction and null-treatment flags become FROM LAST and
// IGNORE NULLS modifiers after the argument list.
func (b *baseVisitor) VisitWindowFunction(n *nodes.WindowFuncNode) string {
	name := sqlFunctionName(n.Name)
	validateSQLFunctionName(name)

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString("(")
	switch n.Kind {
	case nodes.WinRank, nodes.WinRowNumber:
	case nodes.WinNthValue:
		sb.WriteString(n.Arg(nodes.ArgValue).Accept(b.outer))
		if name == "NTH_VALUE" {
			sb.WriteString(", ")
			sb.WriteString(b.inlineInt(n.Arg(nodes.ArgOffset)))
		}
	case nodes.WinLeadLag:
		sb.WriteString(n.Arg(nodes.ArgValue).Accept(b.outer))
		sb.WriteString(", ")
		sb.WriteString(b.inlineInt(n.Arg(nodes.ArgOffset)))
		sb.WriteString(", ")
		sb.WriteString(n.Arg(nodes.ArgDefault).Accept(b.outer))
	case nodes.WinNtile:
		sb.WriteString(b.inlineInt(n.Arg(0)))
	default:
		sb.WriteString(b.joinArgs(n.Args))
	}
	sb.WriteString(")")

	if n.Kind == nodes.WinNthValue && name == "NTH_VALUE" && flagIsZero(n.Arg(nodes.ArgFromFirst)) {
		sb.WriteString(" FROM LAST")
	}
	if (n.Kind == nodes.WinNthValue || n.Kind == nodes.WinLeadLag) && flagIsZero(n.Arg(nodes.ArgRespectNulls)) {
		sb.WriteString(" IGNORE NULLS")
	}
	return sb.String()
}

// inlineInt renders integer literals verbatim even in parameterized mode;
// offsets and bucket counts must be constants in MySQL.
func (b *baseVisitor) inlineInt(n nodes.Node) string {
	if v, ok := nodes.IntValue(n); ok {
		return strconv.FormatInt(v, 10)
	}
	return n.Accept(b.outer)
}

// flagIsZero reports whether a synthesized 0/1 flag operand is 0.
func flagIsZero(n nodes.Node) bool {
	v, ok := nodes.IntValue(n)
	return ok && v == 0
}

func (b *baseVisitor) VisitOver(n *nodes.OverNode) string {
	var sb strings.Builder
	sb.WriteString(n.Expr.Accept(b.outer))
	sb.WriteString(" OVER ")
	if n.WindowName != "" {
		sb.WriteString(b.quoteIdent(n.WindowName))
	} else {
		sb.WriteString(b.renderWindowDef(n.Window))
	}
	return sb.String()
}

func (b *baseVisitor) VisitAlias(n *nodes.AliasNode) string {
	return n.Expr.Accept(b.outer) + " AS " + b.quoteIdent(n.Name)
}

func (b *baseVisitor) joinArgs(args []nodes.Node) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Accept(b.outer)
	}
	return strings.Join(parts, ", ")
}

// sqlFunctionName upper-cases the case fold of name, so any spelling the
// registry matches (such as a Kelvin sign for K) renders as its ASCII form.
func sqlFunctionName(name string) string {
	return strings.ToUpper(cases.Fold().String(name))
}

// validateSQLFunctionName panics if the function name contains characters
// outside the set of letters, digits, and underscores.
// This prevents SQL injection through crafted function names.
func validateSQLFunctionName(name string) {
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' {
			panic(fmt.Sprintf("wincall: invalid SQL function name character %q in %q", string(c), name))
		}
	}
}

// renderWindowDef renders a window definition as SQL: (PARTITION BY ... ORDER BY ... ROWS/RANGE ...)
func (b *baseVisitor) renderWindowDef(w *nodes.WindowDefinition) string {
	if w == nil {
		return "()"
	}
	var parts []string
	if len(w.PartitionBy) > 0 {
		parts = append(parts, "PARTITION BY "+b.joinArgs(w.PartitionBy))
	}
	if len(w.OrderBy) > 0 {
		parts = append(parts, "ORDER BY "+b.joinArgs(w.OrderBy))
	}
	if w.Frame != nil {
		parts = append(parts, b.renderFrame(w.Frame))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Frame type SQL keywords.
var frameTypeSQL = [...]string{
	nodes.FrameRows:  "ROWS",
	nodes.FrameRange: "RANGE",
}

// renderFrame renders a window frame as SQL.
func (b *baseVisitor) renderFrame(f *nodes.WindowFrame) string {
	if f.End == nil {
		return frameTypeSQL[f.Type] + " " + b.renderBound(f.Start)
	}
	return frameTypeSQL[f.Type] + " BETWEEN " + b.renderBound(f.Start) + " AND " + b.renderBound(*f.End)
}

// renderBound renders a single frame bound as SQL.
func (b *baseVisitor) renderBound(fb nodes.FrameBound) string {
	switch fb.Type {
	case nodes.BoundUnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case nodes.BoundPreceding:
		return b.inlineInt(fb.Offset) + " PRECEDING"
	case nodes.BoundCurrentRow:
		return "CURRENT ROW"
	case nodes.BoundFollowing:
		return b.inlineInt(fb.Offset) + " FOLLOWING"
	case nodes.BoundUnboundedFollowing:
		return "UNBOUNDED FOLLOWING"
	default:
		return ""
	}
}

func (b *baseVisitor) VisitSelectCore(n *nodes.SelectCore) string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	b.writeProjections(&sb, n.Projections)
	b.writeFrom(&sb, n.From)
	b.writeWindowClause(&sb, n.Windows)
	b.writeClause(&sb, " ORDER BY ", n.Orders, ", ")
	b.writeNodeClause(&sb, " LIMIT ", n.Limit)

	return sb.String()
}

// writeClause writes "keyword item1 sep item2 sep ..." if items is non-empty.
func (b *baseVisitor) writeClause(sb *strings.Builder, keyword string, items []nodes.Node, sep string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(keyword)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(item.Accept(b.outer))
	}
}

// writeNodeClause writes "keyword node" if node is non-nil.
func (b *baseVisitor) writeNodeClause(sb *strings.Builder, keyword string, n nodes.Node) {
	if n != nil {
		sb.WriteString(keyword)
		sb.WriteString(n.Accept(b.outer))
	}
}

func (b *baseVisitor) writeProjections(sb *strings.Builder, projections []nodes.Node) {
	if len(projections) == 0 {
		sb.WriteString("*")
		return
	}
	sb.WriteString(b.joinArgs(projections))
}

func (b *baseVisitor) writeFrom(sb *strings.Builder, from nodes.Node) {
	if from != nil {
		sb.WriteString(" FROM ")
		sb.WriteString(from.Accept(b.outer))
	}
}

func (b *baseVisitor) writeWindowClause(sb *strings.Builder, windows []*nodes.WindowDefinition) {
	if len(windows) == 0 {
		return
	}
	sb.WriteString(" WINDOW ")
	for i, w := range windows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.quoteIdent(w.Name))
		sb.WriteString(" AS ")
		sb.WriteString(b.renderWindowDef(&nodes.WindowDefinition{
			PartitionBy: w.PartitionBy,
			OrderBy:     w.OrderBy,
			Frame:       w.Frame,
		}))
	}
}

// RenderWindowDef renders a window definition with v, which may be any
// visitor wrapping a dialect visitor.
func RenderWindowDef(v nodes.Visitor, w *nodes.WindowDefinition) string {
	b := &baseVisitor{
		outer:      v,
		quoteIdent: func(s string) string { return nodes.NewTable(s).Accept(v) },
	}
	return b.renderWindowDef(w)
}
