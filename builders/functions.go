package builders

import "github.com/bawdo/wincall/nodes"

// Function names with builder-specific behavior.
const (
	NameFirstValue = "FIRST_VALUE"
	NameLastValue  = "LAST_VALUE"
	NameNthValue   = "NTH_VALUE"
)

var (
	// rankBuilder serves CUME_DIST, DENSE_RANK, PERCENT_RANK and RANK.
	rankBuilder = NewArg0Builder(nodes.WinRank, func(name string) nodes.Node {
		return nodes.NewRank(name)
	})
	rowNumberBuilder = NewArg0Builder(nodes.WinRowNumber, func(name string) nodes.Node {
		return nodes.NewRowNumber(name)
	})
	nthValueBuilder = newVariadicBuilder(nodes.WinNthValue, createNthValue,
		func(name string, value, offset, fromFirst, respectNulls nodes.Node) nodes.Node {
			return nodes.NewNthValue(name, value, offset, fromFirst, respectNulls)
		})
	leadLagBuilder = newVariadicBuilder(nodes.WinLeadLag, createLeadLag,
		func(name string, value, offset, def, respectNulls nodes.Node) nodes.Node {
			return nodes.NewLeadLag(name, value, offset, def, respectNulls)
		})
	medianBuilder = NewArg1Builder(nodes.WinMedian, func(name string, arg nodes.Node) nodes.Node {
		return nodes.NewMedian(name, arg)
	})
	ntileBuilder = NewArg1Builder(nodes.WinNtile, func(name string, arg nodes.Node) nodes.Node {
		return nodes.NewNtile(name, arg)
	})
)

// RankBuilder returns the builder shared by the rank family.
func RankBuilder() *Builder { return rankBuilder }

// RowNumberBuilder returns the ROW_NUMBER builder.
func RowNumberBuilder() *Builder { return rowNumberBuilder }

// NthValueBuilder returns the builder shared by FIRST_VALUE, LAST_VALUE
// and NTH_VALUE.
func NthValueBuilder() *Builder { return nthValueBuilder }

// LeadLagBuilder returns the builder shared by LAG and LEAD.
func LeadLagBuilder() *Builder { return leadLagBuilder }

// MedianBuilder returns the MEDIAN builder.
func MedianBuilder() *Builder { return medianBuilder }

// NtileBuilder returns the NTILE builder.
func NtileBuilder() *Builder { return ntileBuilder }

// createNthValue binds (value [, offset]). NTH_VALUE requires the offset,
// FIRST_VALUE and LAST_VALUE forbid it and default it to 1. Arguments past
// the offset are left in args. The direction
// is implied by FIRST_VALUE and LAST_VALUE and taken from opts otherwise.
func createNthValue(b *Builder, name string, args *nodes.ArgList, opts Options) (nodes.Node, error) {
	fn := NewFunctionName(name)
	isNth := fn.Is(NameNthValue)
	count := args.Len()
	switch {
	case count < 1:
		return nil, wrongArguments(name)
	case count == 1 && isNth:
		return nil, wrongArguments(name)
	case count > 1 && !isNth:
		return nil, wrongArguments(name)
	}

	value := args.Pop()
	offset := nodes.Literal(1)
	if count >= 2 {
		offset = args.Pop()
	}

	fromFirst := !opts.FromLast
	switch {
	case fn.Is(NameFirstValue):
		fromFirst = true
	case fn.Is(NameLastValue):
		fromFirst = false
	}
	return b.construct4(name, value, offset, flagLiteral(fromFirst), flagLiteral(!opts.IgnoreNulls))
}

// createLeadLag binds (value [, offset [, default]]) with offset 1 and a
// NULL default when omitted. Arguments past the default are left in args.
func createLeadLag(b *Builder, name string, args *nodes.ArgList, opts Options) (nodes.Node, error) {
	count := args.Len()
	if count < 1 {
		return nil, wrongArguments(name)
	}

	value := args.Pop()
	offset := nodes.Literal(1)
	if count >= 2 {
		offset = args.Pop()
	}
	var def nodes.Node = nodes.Null()
	if count >= 3 {
		def = args.Pop()
	}
	return b.construct4(name, value, offset, def, flagLiteral(!opts.IgnoreNulls))
}

// flagLiteral encodes a boolean operand as the integer literal 1 or 0.
func flagLiteral(v bool) nodes.Node {
	if v {
		return nodes.Literal(1)
	}
	return nodes.Literal(0)
}
