// Package testutil provides shared test helpers for the wincall project.
package testutil

import "github.com/bawdo/wincall/nodes"

// StubVisitor implements nodes.Visitor with minimal return values for testing.
// Methods return meaningful short strings to aid in test assertions.
type StubVisitor struct{}

var _ nodes.Visitor = StubVisitor{}

func (sv StubVisitor) VisitTable(n *nodes.Table) string                     { return n.Name }
func (sv StubVisitor) VisitAttribute(n *nodes.Attribute) string             { return n.Name }
func (sv StubVisitor) VisitLiteral(n *nodes.LiteralNode) string             { return "lit" }
func (sv StubVisitor) VisitStar(n *nodes.StarNode) string                   { return "*" }
func (sv StubVisitor) VisitSqlLiteral(n *nodes.SqlLiteral) string           { return n.Raw }
func (sv StubVisitor) VisitOrdering(n *nodes.OrderingNode) string           { return "ordering" }
func (sv StubVisitor) VisitSelectCore(n *nodes.SelectCore) string           { return "select_core" }
func (sv StubVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string { return n.Name }
func (sv StubVisitor) VisitWindowFunction(n *nodes.WindowFuncNode) string {
	return "window:" + n.Kind.String()
}
func (sv StubVisitor) VisitOver(n *nodes.OverNode) string   { return "over(" + n.Expr.Accept(sv) + ")" }
func (sv StubVisitor) VisitAlias(n *nodes.AliasNode) string { return "alias" }
