// Package parser reads window function calls written in SQL syntax, such as
//
//	NTH_VALUE(salary, 2) FROM LAST IGNORE NULLS OVER (PARTITION BY dept ORDER BY salary DESC)
//
// and resolves them against a builders.Registry.
package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Call is a parsed window function call.
type Call struct {
	Pos   lexer.Position
	Name  string  `@Ident "("`
	Args  []*Expr `( @@ ( "," @@ )* )? ")"`
	From  string  `( "FROM" @( "FIRST" | "LAST" ) )?`
	Nulls string  `( @( "RESPECT" | "IGNORE" ) "NULLS" )?`
	Over  *Over   `( "OVER" @@ )?`
}

// Over is either a window name or an inline specification.
type Over struct {
	Name string  `  @Ident`
	Spec *Window `| "(" @@ ")"`
}

// Window is an inline window specification.
type Window struct {
	Partition []*Expr      `( "PARTITION" "BY" @@ ( "," @@ )* )?`
	Order     []*OrderItem `( "ORDER" "BY" @@ ( "," @@ )* )?`
	Frame     *Frame       `@@?`
}

// Frame is a ROWS or RANGE clause, either a single start bound or
// BETWEEN start AND end.
type Frame struct {
	Type  string `@( "ROWS" | "RANGE" )`
	Start *Bound `( "BETWEEN" @@ "AND"`
	End   *Bound `  @@`
	Only  *Bound `| @@ )`
}

// Bound is one frame boundary.
type Bound struct {
	Current   bool   `  @"CURRENT" "ROW"`
	Unbounded bool   `| ( @"UNBOUNDED"`
	Offset    *int64 `  | @Int )`
	Dir       string `  @( "PRECEDING" | "FOLLOWING" )`
}

// OrderItem is one ORDER BY term.
type OrderItem struct {
	Expr *Expr  `@@`
	Dir  string `@( "ASC" | "DESC" )?`
}

// Expr is a call argument.
type Expr struct {
	Null   bool       `  @"NULL"`
	Float  *float64   `| @Float`
	Int    *int64     `| @Int`
	String *string    `| @String`
	Func   *FuncCall  `| @@`
	Column *ColumnRef `| @@`
}

// FuncCall is a scalar function call nested inside an argument.
type FuncCall struct {
	Name string  `@Ident "("`
	Args []*Expr `( @@ ( "," @@ )* )? ")"`
}

// ColumnRef is a column, optionally qualified by a table name.
type ColumnRef struct {
	Parts []string `@Ident ( "." @Ident )?`
}

var callLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(?:RESPECT|IGNORE|NULLS|FROM|FIRST|LAST|OVER|PARTITION|ORDER|BY|ASC|DESC|NULL|ROWS|RANGE|BETWEEN|AND|UNBOUNDED|PRECEDING|FOLLOWING|CURRENT|ROW)\b`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Float", Pattern: `-?\d+\.\d+`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "Punct", Pattern: `[(),.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var callParser = participle.MustBuild[Call](
	participle.Lexer(callLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Keyword"),
	participle.UseLookahead(2),
)

// Parse parses a single window function call.
func Parse(input string) (*Call, error) {
	call, err := callParser.ParseString("", input)
	if err != nil {
		return nil, ErrSyntax.GenWithStackByArgs(err.Error())
	}
	return call, nil
}
