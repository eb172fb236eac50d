package quoting

import "testing"

func TestQuoting(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"double simple", DoubleQuote, "salary", `"salary"`},
		{"double empty", DoubleQuote, "", `""`},
		{"double embedded", DoubleQuote, `sal"ary`, `"sal""ary"`},
		{"double breakout", DoubleQuote, `emp"."ssn`, `"emp"".""ssn"`},
		{"double backslash kept", DoubleQuote, `a\b`, `"a\b"`},
		{"double unicode", DoubleQuote, "r\u00e9sum\u00e9", "\"r\u00e9sum\u00e9\""},
		{"backtick simple", Backtick, "dept", "`dept`"},
		{"backtick embedded", Backtick, "de`pt", "`de``pt`"},
		{"backtick breakout", Backtick, "emp`.`ssn", "`emp``.``ssn`"},
		{"backtick space", Backtick, "hire date", "`hire date`"},
		{"string plain", EscapeString, "n/a", "n/a"},
		{"string quote", EscapeString, "o'brien", "o''brien"},
		{"string only quote", EscapeString, "'", "''"},
		{"string backslash", EscapeString, `c:\tmp`, `c:\\tmp`},
		{"string injection", EscapeString, "'); DROP TABLE emp; --", "''); DROP TABLE emp; --"},
		{"string unicode", EscapeString, "caf\u00e9's", "caf\u00e9''s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
