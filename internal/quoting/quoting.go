// Package quoting holds the identifier and string quoting shared by the
// dialect visitors.
package quoting

import "strings"

// DoubleQuote quotes an identifier the ANSI way, doubling embedded quotes.
// PostgreSQL and SQLite use it.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes a MySQL identifier, doubling embedded backticks.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// EscapeString escapes the body of a single-quoted literal such as a
// LAG/LEAD default. Backslashes are doubled too so the result is safe
// for MySQL's default sql_mode.
//
// Inline literals are only produced when parameterization is off.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}
