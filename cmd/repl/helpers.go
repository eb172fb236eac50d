package main

import (
	"fmt"
	"strings"

	"github.com/bawdo/wincall/nodes"
	"github.com/bawdo/wincall/visitors"
)

// Operand labels for the four-operand window kinds.
var (
	nthValueLabels = []string{"VALUE", "OFFSET", "FROM_FIRST", "RESPECT_NULLS"}
	leadLagLabels  = []string{"VALUE", "OFFSET", "DEFAULT", "RESPECT_NULLS"}
)

// --- AST display helpers ---

// printASTNode prints a resolved call, unwrapping the OVER clause.
func (s *Session) printASTNode(n nodes.Node) {
	over, isOver := n.(*nodes.OverNode)
	if isOver {
		n = over.Expr
	}
	if w, ok := n.(*nodes.WindowFuncNode); ok {
		s.printASTCall(w)
	} else {
		_, _ = fmt.Fprintf(s.out, "  Node:   %s\n", nodeSummary(n))
	}
	if isOver {
		s.printASTOver(over)
	}
	s.printASTFooter()
}

func (s *Session) printASTCall(w *nodes.WindowFuncNode) {
	_, _ = fmt.Fprintf(s.out, "  Call:   %s (%s)\n", strings.ToUpper(w.Name), w.Kind)
	labels := operandLabels(w.Kind)
	dv := s.displayVisitor()
	for i, arg := range w.Args {
		label := fmt.Sprintf("ARG[%d]", i)
		if i < len(labels) {
			label = labels[i]
		}
		_, _ = fmt.Fprintf(s.out, "    %-14s %s\n", label+":", arg.Accept(dv))
	}
}

func (s *Session) printASTOver(over *nodes.OverNode) {
	if over.WindowName != "" {
		_, _ = fmt.Fprintf(s.out, "  OVER:   %s\n", over.WindowName)
		return
	}
	_, _ = fmt.Fprintf(s.out, "  OVER:   %s\n", visitors.RenderWindowDef(s.displayVisitor(), over.Window))
}

func (s *Session) printASTFooter() {
	if s.window != nil {
		_, _ = fmt.Fprintf(s.out, "  Default window: %s\n", s.window.desc)
	}
	if s.parameterize {
		_, _ = fmt.Fprintln(s.out, "  Parameterize: on")
	}
	if s.conn != nil {
		_, _ = fmt.Fprintf(s.out, "  Connected: %s (%s)\n", sanitizeDSN(s.conn.dsn), s.conn.engine)
	}
}

func operandLabels(kind nodes.WindowKind) []string {
	switch kind {
	case nodes.WinNthValue:
		return nthValueLabels
	case nodes.WinLeadLag:
		return leadLagLabels
	}
	return nil
}

// --- Node summary helpers ---

// nodeSummary returns a concise human-readable label for a node.
func nodeSummary(n nodes.Node) string {
	switch v := n.(type) {
	case *nodes.Table:
		return v.Name
	case *nodes.Attribute:
		if q := nodes.RelationName(v.Relation); q != "" {
			return q + "." + v.Name
		}
		return v.Name
	case *nodes.StarNode:
		if v.Table != nil {
			return v.Table.Name + ".*"
		}
		return "*"
	case *nodes.LiteralNode:
		if v.Value == nil {
			return "NULL"
		}
		return fmt.Sprintf("%v", v.Value)
	case *nodes.SqlLiteral:
		return v.Raw
	case *nodes.NamedFunctionNode:
		return v.Name + "(...)"
	case *nodes.WindowFuncNode:
		return strings.ToUpper(v.Name) + "(...)"
	case *nodes.OverNode:
		return nodeSummary(v.Expr) + " OVER ..."
	case *nodes.AliasNode:
		return nodeSummary(v.Expr) + " AS " + v.Name
	default:
		return fmt.Sprintf("%T", n)
	}
}
