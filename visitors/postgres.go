package visitors

import (
	"strconv"

	"github.com/bawdo/wincall/internal/quoting"
)

// PostgresVisitor generates PostgreSQL-dialect SQL.
// Identifiers are quoted with double quotes: "table"."column".
type PostgresVisitor struct {
	*baseVisitor
}

// NewPostgresVisitor creates a PostgresVisitor ready for use.
// Pass WithParams() to bind literals as $n placeholders.
func NewPostgresVisitor(opts ...Option) *PostgresVisitor {
	v := &PostgresVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:       v,
		quoteIdent:  quoting.DoubleQuote,
		placeholder: func(i int) string { return "$" + strconv.Itoa(i) },
	}
	v.applyOptions(opts)
	return v
}
