package visitors

import (
	"github.com/bawdo/wincall/internal/quoting"
)

// SQLiteVisitor generates SQLite-dialect SQL.
// Identifiers are quoted with double quotes: "table"."column" (ANSI SQL).
type SQLiteVisitor struct {
	*baseVisitor
}

// NewSQLiteVisitor creates a SQLiteVisitor ready for use.
// Pass WithParams() to bind literals as ? placeholders.
func NewSQLiteVisitor(opts ...Option) *SQLiteVisitor {
	v := &SQLiteVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:       v,
		quoteIdent:  quoting.DoubleQuote,
		placeholder: func(_ int) string { return "?" },
	}
	v.applyOptions(opts)
	return v
}
