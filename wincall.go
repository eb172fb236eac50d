// Package wincall resolves SQL window-function calls into an AST and renders
// them for PostgreSQL, MySQL and SQLite.
//
// This package re-exports the pieces most callers need. The subpackages
// remain available for finer control:
//   - github.com/bawdo/wincall/builders (function registry and builders)
//   - github.com/bawdo/wincall/parser (call syntax)
//   - github.com/bawdo/wincall/nodes (AST nodes)
//   - github.com/bawdo/wincall/managers (SELECT assembly)
//   - github.com/bawdo/wincall/visitors (SQL and DOT generation)
//   - github.com/bawdo/wincall/plugins/defaultwindow (shared WINDOW clause)
package wincall

import (
	"github.com/bawdo/wincall/builders"
	"github.com/bawdo/wincall/managers"
	"github.com/bawdo/wincall/nodes"
	"github.com/bawdo/wincall/parser"
	"github.com/bawdo/wincall/plugins/defaultwindow"
	"github.com/bawdo/wincall/visitors"
)

// --- Registry ---

// Registry maps window-function names onto their builders.
type Registry = builders.Registry

// Builder constructs the node for one window function.
type Builder = builders.Builder

// Diagnostics collects the errors reported while building a call.
type Diagnostics = builders.Diagnostics

// NewDefaultRegistry returns a registry holding every built-in window
// function. Unlike builders.Init it does not touch process-wide state.
func NewDefaultRegistry() (*builders.Registry, error) {
	return builders.NewRegistry(builders.DefaultEntries(), builders.DefaultNullsEntries())
}

// --- Calls ---

// Call is a parsed window-function call.
type Call = parser.Call

// Parse parses a single window-function call such as
// "NTH_VALUE(salary, 2) FROM LAST IGNORE NULLS OVER w".
func Parse(input string) (*parser.Call, error) {
	return parser.Parse(input)
}

// Resolve parses input and builds it against reg. Column references are
// qualified by table when it is non-nil. Errors reported while building are
// also collected in diag when it is non-nil.
func Resolve(reg *builders.Registry, input string, table *nodes.Table, diag *builders.Diagnostics) (nodes.Node, error) {
	call, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	if diag == nil {
		diag = &builders.Diagnostics{}
	}
	return call.Build(reg, diag, table)
}

// --- Nodes ---

// Node is the interface every AST node implements.
type Node = nodes.Node

// Table is a table reference.
type Table = nodes.Table

// WindowDefinition is a PARTITION BY / ORDER BY / frame specification.
type WindowDefinition = nodes.WindowDefinition

// NewTable creates a table reference.
func NewTable(name string) *nodes.Table {
	return nodes.NewTable(name)
}

// NewWindow creates a window definition, named when name is given.
func NewWindow(name ...string) *nodes.WindowDefinition {
	return nodes.NewWindowDef(name...)
}

// Alias wraps expr as expr AS "name".
func Alias(expr nodes.Node, name string) *nodes.AliasNode {
	return nodes.NewAliasNode(expr, name)
}

// --- Queries ---

// SelectManager assembles a SELECT around resolved calls.
type SelectManager = managers.SelectManager

// NewSelect creates a SelectManager reading from from.
func NewSelect(from nodes.Node) *managers.SelectManager {
	return managers.NewSelectManager(from)
}

// DefaultWindow binds bare calls to a shared named window.
type DefaultWindow = defaultwindow.DefaultWindow

// NewDefaultWindow creates the shared-window transformer.
func NewDefaultWindow(opts ...defaultwindow.Option) *defaultwindow.DefaultWindow {
	return defaultwindow.New(opts...)
}

// --- Visitors ---

// NewPostgresVisitor creates a PostgreSQL visitor.
func NewPostgresVisitor(opts ...visitors.Option) *visitors.PostgresVisitor {
	return visitors.NewPostgresVisitor(opts...)
}

// NewMySQLVisitor creates a MySQL visitor.
func NewMySQLVisitor(opts ...visitors.Option) *visitors.MySQLVisitor {
	return visitors.NewMySQLVisitor(opts...)
}

// NewSQLiteVisitor creates a SQLite visitor.
func NewSQLiteVisitor(opts ...visitors.Option) *visitors.SQLiteVisitor {
	return visitors.NewSQLiteVisitor(opts...)
}

// WithoutParams renders literals inline instead of binding them.
func WithoutParams() visitors.Option {
	return visitors.WithoutParams()
}
