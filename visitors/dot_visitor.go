package visitors

import (
	"fmt"
	"strings"

	"github.com/bawdo/wincall/nodes"
)

// Color constants for DOT node categories.
const (
	colorTable     = "#6CA6CD" // blue: tables, select cores
	colorAttribute = "#B0D4E8" // light blue: attributes, stars, aliases
	colorLiteral   = "#D3D3D3" // grey: literals
	colorFlag      = "#FFEB80" // yellow: synthesized flag operands
	colorOrdering  = "#CDA0E0" // purple: ordering
	colorFunction  = "#87CEEB" // sky blue: functions, windows
)

// dotNode represents a single node in the DOT graph.
type dotNode struct {
	id    string
	label string
	color string
}

// dotEdge represents a directed edge between two nodes in the DOT graph.
type dotEdge struct {
	from  string
	to    string
	label string
}

// DotVisitor walks the AST and produces Graphviz DOT output.
// It implements nodes.Visitor.
type DotVisitor struct {
	nextID    int
	nodes     []dotNode
	edges     []dotEdge
	parentID  string
	edgeLabel string
}

var _ nodes.Visitor = (*DotVisitor)(nil)

// NewDotVisitor creates a new DotVisitor ready to walk an AST.
func NewDotVisitor() *DotVisitor {
	return &DotVisitor{}
}

// addNode creates a new DOT node with the given label and color, returning its ID.
func (dv *DotVisitor) addNode(label, color string) string {
	id := fmt.Sprintf("n%d", dv.nextID)
	dv.nextID++
	dv.nodes = append(dv.nodes, dotNode{id: id, label: label, color: color})
	return id
}

// addEdge records a directed edge from one node to another.
func (dv *DotVisitor) addEdge(from, to, label string) {
	dv.edges = append(dv.edges, dotEdge{from: from, to: to, label: label})
}

// visitChild saves and restores the parent context, sets the edge label,
// and calls child.Accept to recursively visit the child node.
func (dv *DotVisitor) visitChild(parentID, label string, child nodes.Node) string {
	if child == nil {
		return ""
	}
	savedParent := dv.parentID
	savedLabel := dv.edgeLabel
	dv.parentID = parentID
	dv.edgeLabel = label
	result := child.Accept(dv)
	dv.parentID = savedParent
	dv.edgeLabel = savedLabel
	return result
}

// connectToParent adds an edge from the current parentID to nodeID if a parent exists.
func (dv *DotVisitor) connectToParent(nodeID string) {
	if dv.parentID != "" {
		dv.addEdge(dv.parentID, nodeID, dv.edgeLabel)
	}
}

// NodeCount returns the number of nodes accumulated so far.
func (dv *DotVisitor) NodeCount() int {
	return len(dv.nodes)
}

// ToDot renders the accumulated graph.
func (dv *DotVisitor) ToDot() string {
	var sb strings.Builder

	sb.WriteString("digraph AST {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")

	for _, n := range dv.nodes {
		fmt.Fprintf(&sb, "  %s [label=\"%s\", fillcolor=\"%s\"];\n", n.id, escapeLabel(n.label), n.color)
	}
	for _, e := range dv.edges {
		if e.label != "" {
			fmt.Fprintf(&sb, "  %s -> %s [label=\"%s\"];\n", e.from, e.to, e.label)
		} else {
			fmt.Fprintf(&sb, "  %s -> %s;\n", e.from, e.to)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// escapeLabel escapes double quotes in DOT labels.
// Backslash sequences like \n are intentional DOT line breaks and are preserved.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

// --- Visitor interface implementation ---

func (dv *DotVisitor) VisitTable(n *nodes.Table) string {
	id := dv.addNode("Table\\n"+n.Name, colorTable)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitAttribute(n *nodes.Attribute) string {
	label := "Attribute\\n"
	if qualifier := nodes.RelationName(n.Relation); qualifier != "" {
		label += qualifier + "."
	}
	label += n.Name
	id := dv.addNode(label, colorAttribute)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	label := "Literal\\nNULL"
	if n.Value != nil {
		label = fmt.Sprintf("Literal\\n%v", n.Value)
	}
	id := dv.addNode(label, colorLiteral)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitStar(n *nodes.StarNode) string {
	label := "Star\\n*"
	if n.Table != nil {
		label = "Star\\n" + n.Table.Name + ".*"
	}
	id := dv.addNode(label, colorAttribute)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitSqlLiteral(n *nodes.SqlLiteral) string {
	id := dv.addNode("SqlLiteral\\n"+n.Raw, colorLiteral)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	dir := "ASC"
	if n.Direction == nodes.Desc {
		dir = "DESC"
	}
	switch n.Nulls {
	case nodes.NullsFirst:
		dir += "\\nNULLS FIRST"
	case nodes.NullsLast:
		dir += "\\nNULLS LAST"
	}
	id := dv.addNode("Order\\n"+dir, colorOrdering)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitSelectCore(n *nodes.SelectCore) string {
	id := dv.addNode("SelectCore", colorTable)
	dv.connectToParent(id)

	dv.visitChild(id, "FROM", n.From)
	dv.visitChildList(id, "SELECT", n.Projections)
	for i, w := range n.Windows {
		winID := dv.addNode("WINDOW\\n"+w.Name, colorFunction)
		dv.addEdge(id, winID, fmt.Sprintf("WINDOW[%d]", i))
		dv.visitWindowDef(winID, w)
	}
	dv.visitChildList(id, "ORDER", n.Orders)
	dv.visitChild(id, "LIMIT", n.Limit)
	return id
}

// visitChildList visits a slice of nodes as indexed children (e.g. "SELECT[0]", "SELECT[1]").
func (dv *DotVisitor) visitChildList(parentID, prefix string, items []nodes.Node) {
	for i, item := range items {
		dv.visitChild(parentID, fmt.Sprintf("%s[%d]", prefix, i), item)
	}
}

func (dv *DotVisitor) visitWindowDef(parentID string, w *nodes.WindowDefinition) {
	dv.visitChildList(parentID, "PARTITION", w.PartitionBy)
	dv.visitChildList(parentID, "ORDER", w.OrderBy)
	if w.Frame != nil {
		frameLabel := "ROWS"
		if w.Frame.Type == nodes.FrameRange {
			frameLabel = "RANGE"
		}
		frameID := dv.addNode("Frame\\n"+frameLabel, colorFunction)
		dv.addEdge(parentID, frameID, "FRAME")
	}
}

func (dv *DotVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string {
	id := dv.addNode(n.Name, colorFunction)
	dv.connectToParent(id)
	dv.visitChildList(id, "ARG", n.Args)
	return id
}

// Edge labels for the operands of four-operand window nodes.
var (
	nthValueOperands = [...]string{"VALUE", "OFFSET", "FROM_FIRST", "RESPECT_NULLS"}
	leadLagOperands  = [...]string{"VALUE", "OFFSET", "DEFAULT", "RESPECT_NULLS"}
)

func (dv *DotVisitor) VisitWindowFunction(n *nodes.WindowFuncNode) string {
	id := dv.addNode(n.Name+"\\n("+n.Kind.String()+")", colorFunction)
	dv.connectToParent(id)

	var labels []string
	switch n.Kind {
	case nodes.WinNthValue:
		labels = nthValueOperands[:]
	case nodes.WinLeadLag:
		labels = leadLagOperands[:]
	}
	for i, arg := range n.Args {
		label := fmt.Sprintf("ARG[%d]", i)
		if i < len(labels) {
			label = labels[i]
		}
		if i == nodes.ArgRespectNulls || (n.Kind == nodes.WinNthValue && i == nodes.ArgFromFirst) {
			dv.visitFlag(id, label, arg)
			continue
		}
		dv.visitChild(id, label, arg)
	}
	return id
}

// visitFlag draws a synthesized 0/1 operand in its own color.
func (dv *DotVisitor) visitFlag(parentID, label string, arg nodes.Node) {
	v, ok := nodes.IntValue(arg)
	if !ok {
		dv.visitChild(parentID, label, arg)
		return
	}
	flagID := dv.addNode(fmt.Sprintf("Flag\\n%d", v), colorFlag)
	dv.addEdge(parentID, flagID, label)
}

func (dv *DotVisitor) VisitOver(n *nodes.OverNode) string {
	label := "OVER"
	if n.WindowName != "" {
		label = "OVER\\n" + n.WindowName
	}
	id := dv.addNode(label, colorFunction)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	if n.Window != nil {
		dv.visitWindowDef(id, n.Window)
	}
	return id
}

func (dv *DotVisitor) VisitAlias(n *nodes.AliasNode) string {
	id := dv.addNode("Alias\\n"+n.Name, colorAttribute)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}
