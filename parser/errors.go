package parser

import (
	"github.com/pingcap/errors"
)

// Error instances.
var (
	// ErrSyntax wraps a grammar failure; the argument is the lexer's message.
	ErrSyntax = errors.Normalize("syntax error in window call: %s",
		errors.RFCCodeText("wincall:parser:Syntax"), errors.MySQLErrorCode(1064))
	// ErrNotWindowFunction is raised when neither table knows the name.
	ErrNotWindowFunction = errors.Normalize("%s is not a window function",
		errors.RFCCodeText("wincall:parser:NotWindowFunction"), errors.MySQLErrorCode(1305))
	// ErrFromClause is raised when FROM FIRST or FROM LAST follows anything
	// other than NTH_VALUE.
	ErrFromClause = errors.Normalize("FROM %s is only valid after NTH_VALUE, not %s",
		errors.RFCCodeText("wincall:parser:FromClause"))
)
