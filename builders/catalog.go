package builders

// DefaultEntries returns the plain table registrations, sorted by name.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "CUME_DIST", Builder: rankBuilder, Signature: "CUME_DIST()",
			Description: "Cumulative distribution of the current row within its partition"},
		{Name: "DENSE_RANK", Builder: rankBuilder, Signature: "DENSE_RANK()",
			Description: "Rank of the current row without gaps"},
		{Name: NameFirstValue, Builder: nthValueBuilder, Signature: "FIRST_VALUE(expr)",
			Description: "Value of expr at the first row of the frame"},
		{Name: NameLastValue, Builder: nthValueBuilder, Signature: "LAST_VALUE(expr)",
			Description: "Value of expr at the last row of the frame"},
		{Name: "LAG", Builder: leadLagBuilder, Signature: "LAG(expr [, offset [, default]])",
			Description: "Value of expr offset rows before the current row"},
		{Name: "LEAD", Builder: leadLagBuilder, Signature: "LEAD(expr [, offset [, default]])",
			Description: "Value of expr offset rows after the current row"},
		{Name: "MEDIAN", Builder: medianBuilder, Signature: "MEDIAN(expr)",
			Description: "Median of expr over the window"},
		{Name: "NTILE", Builder: ntileBuilder, Signature: "NTILE(n)",
			Description: "Bucket number of the current row when the partition is split into n groups"},
		{Name: "PERCENT_RANK", Builder: rankBuilder, Signature: "PERCENT_RANK()",
			Description: "Relative rank of the current row as a fraction"},
		{Name: "RANK", Builder: rankBuilder, Signature: "RANK()",
			Description: "Rank of the current row with gaps"},
		{Name: "ROW_NUMBER", Builder: rowNumberBuilder, Signature: "ROW_NUMBER()",
			Description: "Number of the current row within its partition"},
	}
}

// DefaultNullsEntries returns the registrations for calls carrying
// RESPECT NULLS or IGNORE NULLS. NTH_VALUE is only reachable from here.
func DefaultNullsEntries() []Entry {
	return []Entry{
		{Name: NameFirstValue, Builder: nthValueBuilder,
			Signature:   "FIRST_VALUE(expr) {RESPECT | IGNORE} NULLS",
			Description: "Value of expr at the first row of the frame"},
		{Name: NameLastValue, Builder: nthValueBuilder,
			Signature:   "LAST_VALUE(expr) {RESPECT | IGNORE} NULLS",
			Description: "Value of expr at the last row of the frame"},
		{Name: "LAG", Builder: leadLagBuilder,
			Signature:   "LAG(expr [, offset [, default]]) {RESPECT | IGNORE} NULLS",
			Description: "Value of expr offset rows before the current row"},
		{Name: "LEAD", Builder: leadLagBuilder,
			Signature:   "LEAD(expr [, offset [, default]]) {RESPECT | IGNORE} NULLS",
			Description: "Value of expr offset rows after the current row"},
		{Name: NameNthValue, Builder: nthValueBuilder,
			Signature:   "NTH_VALUE(expr, n) [FROM {FIRST | LAST}] {RESPECT | IGNORE} NULLS",
			Description: "Value of expr at the n-th row of the frame"},
	}
}
