// Package defaultwindow provides a Transformer that binds every bare window
// function call in a SELECT list to a shared window.
//
// A window function rendered without an OVER clause is rejected by every
// supported engine. The plugin rewrites such projections to reference a
// named window and appends its definition to the WINDOW clause.
//
// # Basic usage
//
//	dw := defaultwindow.New(
//	    defaultwindow.WithPartition("dept"),
//	    defaultwindow.WithOrder("salary", true),
//	)
//	query := managers.NewSelectManager(table).Select(rankCall)
//	query.Use(dw)
//	// SELECT RANK() OVER "w" FROM "employees"
//	//   WINDOW "w" AS (PARTITION BY "employees"."dept" ORDER BY "employees"."salary" DESC)
//
// # Inline windows
//
// WithName("") renders the definition inline on each call instead:
//
//	// SELECT RANK() OVER (PARTITION BY "employees"."dept") FROM "employees"
//
// # Restrict to specific functions
//
//	dw := defaultwindow.New(defaultwindow.WithFunctions("lag", "lead"))
//	// Only LAG and LEAD calls are bound; others are left as they are.
//
// # REPL usage
//
//	wincall> window dept -salary
//	wincall> window off
package defaultwindow

import (
	"github.com/bawdo/wincall/builders"
	"github.com/bawdo/wincall/nodes"
	"github.com/bawdo/wincall/plugins"
)

// DefaultName is the window name used when none is configured.
const DefaultName = "w"

type orderSpec struct {
	column string
	desc   bool
}

// DefaultWindow is a Transformer that binds bare window calls to a window
// built from the configured partition and order columns.
type DefaultWindow struct {
	plugins.BaseTransformer
	Name      string
	Partition []string
	order     []orderSpec
	functions map[string]bool // nil means every window function
}

// Option configures a DefaultWindow transformer.
type Option func(*DefaultWindow)

// WithName sets the window name. An empty name renders the window inline.
func WithName(name string) Option {
	return func(dw *DefaultWindow) { dw.Name = name }
}

// WithPartition appends PARTITION BY columns, qualified by the FROM table.
func WithPartition(columns ...string) Option {
	return func(dw *DefaultWindow) { dw.Partition = append(dw.Partition, columns...) }
}

// WithOrder appends an ORDER BY column.
func WithOrder(column string, desc bool) Option {
	return func(dw *DefaultWindow) { dw.order = append(dw.order, orderSpec{column: column, desc: desc}) }
}

// WithFunctions restricts the plugin to the named window functions.
// Names match case-insensitively.
func WithFunctions(names ...string) Option {
	return func(dw *DefaultWindow) {
		dw.functions = make(map[string]bool, len(names))
		for _, n := range names {
			dw.functions[builders.NewFunctionName(n).Key()] = true
		}
	}
}

// New creates a DefaultWindow transformer with the given options.
func New(opts ...Option) *DefaultWindow {
	dw := &DefaultWindow{Name: DefaultName}
	for _, o := range opts {
		o(dw)
	}
	return dw
}

// TransformSelect wraps each matching bare window call in an OVER clause.
// The named definition is appended to the WINDOW clause once, and only when
// at least one call was bound and the core does not already define it.
func (dw *DefaultWindow) TransformSelect(core *nodes.SelectCore) (*nodes.SelectCore, error) {
	bound := false
	for _, c := range plugins.CollectBareCalls(core) {
		if !dw.appliesTo(c.Call.Name) {
			continue
		}
		if dw.Name == "" {
			c.Bind(core, c.Call.Over(dw.definition(core.From, "")))
		} else {
			c.Bind(core, c.Call.OverName(dw.Name))
		}
		bound = true
	}
	if bound && dw.Name != "" && !hasWindow(core, dw.Name) {
		core.Windows = append(core.Windows, dw.definition(core.From, dw.Name))
	}
	return core, nil
}

func (dw *DefaultWindow) appliesTo(name string) bool {
	if dw.functions == nil {
		return true
	}
	return dw.functions[builders.NewFunctionName(name).Key()]
}

func (dw *DefaultWindow) definition(from nodes.Node, name string) *nodes.WindowDefinition {
	var def *nodes.WindowDefinition
	if name == "" {
		def = nodes.NewWindowDef()
	} else {
		def = nodes.NewWindowDef(name)
	}
	if len(dw.Partition) > 0 {
		cols := make([]nodes.Node, len(dw.Partition))
		for i, col := range dw.Partition {
			cols[i] = column(from, col)
		}
		def.Partition(cols...)
	}
	if len(dw.order) > 0 {
		orders := make([]nodes.Node, len(dw.order))
		for i, o := range dw.order {
			if o.desc {
				orders[i] = column(from, o.column).Desc()
			} else {
				orders[i] = column(from, o.column).Asc()
			}
		}
		def.Order(orders...)
	}
	return def
}

// column qualifies name with the FROM table when there is one.
func column(from nodes.Node, name string) *nodes.Attribute {
	if t, ok := from.(*nodes.Table); ok {
		return t.Col(name)
	}
	return nodes.Column(name)
}

func hasWindow(core *nodes.SelectCore, name string) bool {
	for _, w := range core.Windows {
		if w.Name == name {
			return true
		}
	}
	return false
}
