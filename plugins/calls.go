package plugins

import "github.com/bawdo/wincall/nodes"

// WindowCall locates a window function call that appears in the projection
// list without an OVER clause.
type WindowCall struct {
	Index int                   // position in SelectCore.Projections
	Call  *nodes.WindowFuncNode // the bare call
	Alias *nodes.AliasNode      // non-nil when the call is aliased
}

// CollectBareCalls returns every projection that is a window function call
// (optionally aliased) not yet bound to a window. Calls already wrapped in
// an OverNode are skipped.
func CollectBareCalls(core *nodes.SelectCore) []WindowCall {
	var calls []WindowCall
	for i, p := range core.Projections {
		if call, ok := extractCall(p); ok {
			call.Index = i
			calls = append(calls, call)
		}
	}
	return calls
}

func extractCall(n nodes.Node) (WindowCall, bool) {
	switch p := n.(type) {
	case *nodes.WindowFuncNode:
		return WindowCall{Call: p}, true
	case *nodes.AliasNode:
		if w, ok := p.Expr.(*nodes.WindowFuncNode); ok {
			return WindowCall{Call: w, Alias: p}, true
		}
	}
	return WindowCall{}, false
}

// Bind replaces the projection at c.Index with over, keeping any alias.
func (c WindowCall) Bind(core *nodes.SelectCore, over *nodes.OverNode) {
	if c.Alias != nil {
		core.Projections[c.Index] = nodes.NewAliasNode(over, c.Alias.Name)
		return
	}
	core.Projections[c.Index] = over
}
