package nodes

// WindowKind identifies the node kind produced for a window function call.
// Several SQL functions share a kind; the node's Name tells them apart.
type WindowKind int

const (
	WinRank WindowKind = iota
	WinRowNumber
	WinNthValue
	WinLeadLag
	WinMedian
	WinNtile
)

var windowKindNames = [...]string{
	WinRank:      "rank",
	WinRowNumber: "row_number",
	WinNthValue:  "nth_value",
	WinLeadLag:   "lead_lag",
	WinMedian:    "median",
	WinNtile:     "ntile",
}

func (k WindowKind) String() string {
	if k < 0 || int(k) >= len(windowKindNames) {
		return "unknown"
	}
	return windowKindNames[k]
}

// Operand positions of nth-value and lead-lag nodes.
const (
	ArgValue        = 0
	ArgOffset       = 1
	ArgFromFirst    = 2 // nth-value
	ArgDefault      = 2 // lead-lag
	ArgRespectNulls = 3
)

// FrameType specifies ROWS or RANGE for a window frame.
type FrameType int

const (
	FrameRows FrameType = iota
	FrameRange
)

// BoundType specifies a window frame boundary.
type BoundType int

const (
	BoundUnboundedPreceding BoundType = iota
	BoundPreceding
	BoundCurrentRow
	BoundFollowing
	BoundUnboundedFollowing
)

// WindowFuncNode represents a resolved window function call. Name is the
// function name as it was matched; Args are the bound operands, including
// any synthesized defaults and flags.
type WindowFuncNode struct {
	Kind WindowKind
	Name string
	Args []Node
}

func (n *WindowFuncNode) Accept(v Visitor) string { return v.VisitWindowFunction(n) }

// Arg returns the i-th operand, or nil when the node has fewer operands.
func (n *WindowFuncNode) Arg(i int) Node {
	if i < 0 || i >= len(n.Args) {
		return nil
	}
	return n.Args[i]
}

// OverNode wraps an expression (window function or aggregate) with an OVER clause.
type OverNode struct {
	Expr       Node              // WindowFuncNode or NamedFunctionNode
	Window     *WindowDefinition // inline window definition (nil if using WindowName)
	WindowName string            // named window reference (empty if using Window)
}

func (n *OverNode) Accept(v Visitor) string { return v.VisitOver(n) }

// WindowDefinition describes a window specification: name, partitioning, ordering, and frame.
type WindowDefinition struct {
	Name        string
	PartitionBy []Node
	OrderBy     []Node
	Frame       *WindowFrame
}

// WindowFrame describes the frame clause (ROWS/RANGE BETWEEN ... AND ...).
type WindowFrame struct {
	Type  FrameType
	Start FrameBound
	End   *FrameBound // nil means no BETWEEN (just the Start bound)
}

// FrameBound describes a single frame boundary.
type FrameBound struct {
	Type   BoundType
	Offset Node // only for BoundPreceding / BoundFollowing
}

// --- WindowDefinition builder ---

// NewWindowDef creates a new WindowDefinition with an optional name.
func NewWindowDef(name ...string) *WindowDefinition {
	w := &WindowDefinition{}
	if len(name) > 0 {
		w.Name = name[0]
	}
	return w
}

// Partition sets the PARTITION BY columns.
func (w *WindowDefinition) Partition(cols ...Node) *WindowDefinition {
	w.PartitionBy = cols
	return w
}

// Order sets the ORDER BY expressions.
func (w *WindowDefinition) Order(orderings ...Node) *WindowDefinition {
	w.OrderBy = orderings
	return w
}

// Rows sets a ROWS frame with start and optional end bound.
func (w *WindowDefinition) Rows(start FrameBound, end ...FrameBound) *WindowDefinition {
	w.Frame = newFrame(FrameRows, start, end)
	return w
}

// Range sets a RANGE frame with start and optional end bound.
func (w *WindowDefinition) Range(start FrameBound, end ...FrameBound) *WindowDefinition {
	w.Frame = newFrame(FrameRange, start, end)
	return w
}

func newFrame(t FrameType, start FrameBound, end []FrameBound) *WindowFrame {
	f := &WindowFrame{Type: t, Start: start}
	if len(end) > 0 {
		e := end[0]
		f.End = &e
	}
	return f
}

// --- Frame bound helpers ---

// UnboundedPreceding returns an UNBOUNDED PRECEDING frame bound.
func UnboundedPreceding() FrameBound {
	return FrameBound{Type: BoundUnboundedPreceding}
}

// Preceding returns a N PRECEDING frame bound.
func Preceding(n Node) FrameBound {
	return FrameBound{Type: BoundPreceding, Offset: n}
}

// CurrentRow returns a CURRENT ROW frame bound.
func CurrentRow() FrameBound {
	return FrameBound{Type: BoundCurrentRow}
}

// Following returns a N FOLLOWING frame bound.
func Following(n Node) FrameBound {
	return FrameBound{Type: BoundFollowing, Offset: n}
}

// UnboundedFollowing returns an UNBOUNDED FOLLOWING frame bound.
func UnboundedFollowing() FrameBound {
	return FrameBound{Type: BoundUnboundedFollowing}
}

// --- Window function constructors ---

// NewRank creates a rank node. CUME_DIST, DENSE_RANK, PERCENT_RANK and
// RANK all produce this kind; name records which one was called.
func NewRank(name string) *WindowFuncNode {
	return &WindowFuncNode{Kind: WinRank, Name: name}
}

// NewRowNumber creates a ROW_NUMBER() node.
func NewRowNumber(name string) *WindowFuncNode {
	return &WindowFuncNode{Kind: WinRowNumber, Name: name}
}

// NewNthValue creates a FIRST_VALUE, LAST_VALUE or NTH_VALUE node with
// operands (value, offset, fromFirst, respectNulls).
func NewNthValue(name string, value, offset, fromFirst, respectNulls Node) *WindowFuncNode {
	return &WindowFuncNode{Kind: WinNthValue, Name: name, Args: []Node{value, offset, fromFirst, respectNulls}}
}

// NewLeadLag creates a LAG or LEAD node with operands
// (value, offset, default, respectNulls).
func NewLeadLag(name string, value, offset, def, respectNulls Node) *WindowFuncNode {
	return &WindowFuncNode{Kind: WinLeadLag, Name: name, Args: []Node{value, offset, def, respectNulls}}
}

// NewMedian creates a MEDIAN(expr) node.
func NewMedian(name string, expr Node) *WindowFuncNode {
	return &WindowFuncNode{Kind: WinMedian, Name: name, Args: []Node{expr}}
}

// NewNtile creates an NTILE(n) node.
func NewNtile(name string, buckets Node) *WindowFuncNode {
	return &WindowFuncNode{Kind: WinNtile, Name: name, Args: []Node{buckets}}
}

// --- OVER wrappers ---

// NewOverNode creates an OverNode around expr.
func NewOverNode(expr Node) *OverNode {
	return &OverNode{Expr: expr}
}

// Over wraps the window function with an inline window definition.
func (n *WindowFuncNode) Over(def *WindowDefinition) *OverNode {
	o := NewOverNode(n)
	o.Window = def
	return o
}

// OverName wraps the window function with a named window reference.
func (n *WindowFuncNode) OverName(name string) *OverNode {
	o := NewOverNode(n)
	o.WindowName = name
	return o
}
