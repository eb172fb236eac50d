package visitors

import (
	"strings"
	"testing"

	"github.com/bawdo/wincall/builders"
	"github.com/bawdo/wincall/internal/testutil"
	"github.com/bawdo/wincall/nodes"
)

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected output to contain %q, got:\n%s", substr, s)
	}
}

func one() nodes.Node  { return nodes.Literal(1) }
func zero() nodes.Node { return nodes.Literal(0) }

// --- Table / Attribute ---

func TestVisitTable(t *testing.T) {
	t.Parallel()
	emp := nodes.NewTable("employees")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), emp, `"employees"`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), emp, "`employees`")
	testutil.AssertSQL(t, NewSQLiteVisitor(WithoutParams()), emp, `"employees"`)
}

func TestVisitAttribute(t *testing.T) {
	t.Parallel()
	col := nodes.NewTable("employees").Col("salary")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), col, `"employees"."salary"`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), col, "`employees`.`salary`")
}

func TestVisitUnqualifiedAttribute(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(), nodes.Column("salary"), `"salary"`)
	testutil.AssertSQL(t, NewMySQLVisitor(), nodes.Column("salary"), "`salary`")
}

func TestVisitIdentifierEscaping(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(), nodes.Column(`we"ird`), `"we""ird"`)
	testutil.AssertSQL(t, NewMySQLVisitor(), nodes.Column("we`ird"), "`we``ird`")
}

func TestVisitStar(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(), nodes.Star(), `*`)
	testutil.AssertSQL(t, NewPostgresVisitor(), nodes.NewTable("t").Star(), `"t".*`)
}

// --- Literals ---

func TestVisitLiterals(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor(WithoutParams())
	cases := []struct {
		val  any
		want string
	}{
		{"Alice", `'Alice'`},
		{"O'Brien", `'O''Brien'`},
		{42, `42`},
		{int64(-7), `-7`},
		{2.5, `2.5`},
		{true, `TRUE`},
		{false, `FALSE`},
		{nil, `NULL`},
	}
	for _, c := range cases {
		testutil.AssertSQL(t, v, nodes.Literal(c.val), c.want)
	}
}

func TestVisitLiteralUnsupportedTypePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsupported literal type")
		}
	}()
	nodes.Literal(struct{}{}).Accept(NewPostgresVisitor(WithoutParams()))
}

func TestParamLiterals(t *testing.T) {
	t.Parallel()
	pg := NewPostgresVisitor(WithParams())
	got := nodes.Coalesce(nodes.Literal("a"), nodes.Literal("b")).Accept(pg)
	testutil.AssertEqual(t, got, `COALESCE($1, $2)`)
	if len(pg.Params()) != 2 || pg.Params()[1] != "b" {
		t.Errorf("unexpected params %v", pg.Params())
	}
	pg.Reset()
	if pg.Params() != nil {
		t.Error("expected Reset to clear params")
	}

	my := NewMySQLVisitor()
	testutil.AssertSQL(t, my, nodes.Literal("a"), `?`)
	testutil.AssertSQL(t, my, nodes.Null(), `NULL`)
	if len(my.Params()) != 1 {
		t.Errorf("expected NULL not to be bound, got %v", my.Params())
	}
}

// --- Window functions ---

func TestVisitRankFamily(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor()
	testutil.AssertSQL(t, v, nodes.NewRank("rank"), `RANK()`)
	testutil.AssertSQL(t, v, nodes.NewRank("Cume_Dist"), `CUME_DIST()`)
	testutil.AssertSQL(t, v, nodes.NewRowNumber("ROW_NUMBER"), `ROW_NUMBER()`)
}

func TestVisitFirstAndLastValue(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor()
	col := nodes.Column("salary")
	testutil.AssertSQL(t, v, nodes.NewNthValue("FIRST_VALUE", col, one(), one(), one()),
		`FIRST_VALUE("salary")`)
	testutil.AssertSQL(t, v, nodes.NewNthValue("LAST_VALUE", col, one(), zero(), one()),
		`LAST_VALUE("salary")`)
	testutil.AssertSQL(t, v, nodes.NewNthValue("last_value", col, one(), zero(), zero()),
		`LAST_VALUE("salary") IGNORE NULLS`)
}

func TestVisitNthValue(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor()
	col := nodes.Column("salary")
	testutil.AssertSQL(t, v, nodes.NewNthValue("NTH_VALUE", col, nodes.Literal(3), one(), one()),
		`NTH_VALUE("salary", 3)`)
	testutil.AssertSQL(t, v, nodes.NewNthValue("NTH_VALUE", col, nodes.Literal(3), zero(), one()),
		`NTH_VALUE("salary", 3) FROM LAST`)
	testutil.AssertSQL(t, v, nodes.NewNthValue("NTH_VALUE", col, nodes.Literal(3), zero(), zero()),
		`NTH_VALUE("salary", 3) FROM LAST IGNORE NULLS`)
}

func TestVisitLeadLag(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor(WithoutParams())
	col := nodes.Column("price")
	testutil.AssertSQL(t, v, nodes.NewLeadLag("LAG", col, one(), nodes.Null(), one()),
		`LAG("price", 1, NULL)`)
	testutil.AssertSQL(t, v, nodes.NewLeadLag("lead", col, nodes.Literal(2), nodes.Literal(0), zero()),
		`LEAD("price", 2, 0) IGNORE NULLS`)
}

func TestVisitWindowFlagsAreNeverBound(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor(WithParams())
	n := nodes.NewLeadLag("LAG", nodes.Column("price"), nodes.Literal(2), nodes.Literal("n/a"), zero())
	testutil.AssertSQL(t, v, n, `LAG("price", 2, $1) IGNORE NULLS`)
	testutil.AssertParams(t, v, "n/a")
}

func TestVisitMedianAndNtile(t *testing.T) {
	t.Parallel()
	v := NewMySQLVisitor()
	testutil.AssertSQL(t, v, nodes.NewMedian("median", nodes.Column("salary")), "MEDIAN(`salary`)")
	testutil.AssertSQL(t, v, nodes.NewNtile("NTILE", nodes.Literal(4)), "NTILE(4)")
	testutil.AssertParams(t, v)
}

func TestVisitWindowFunctionRejectsBadName(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid function name")
		}
	}()
	nodes.NewRank("RANK();DROP").Accept(NewPostgresVisitor())
}

func TestVisitWindowFunctionFoldsRegistrySpellings(t *testing.T) {
	t.Parallel()
	reg, err := builders.NewRegistry(builders.DefaultEntries(), builders.DefaultNullsEntries())
	testutil.AssertNoError(t, err)

	name := "ran\u212a" // Kelvin sign
	b, ok := reg.Find(name)
	if !ok {
		t.Fatalf("expected %q to resolve", name)
	}
	n, err := b.Create(nil, name, nil, builders.Options{})
	testutil.AssertNoError(t, err)
	testutil.AssertSQL(t, NewPostgresVisitor(), n, "RANK()")
	testutil.AssertEqual(t, sqlFunctionName("Nth_Value"), "NTH_VALUE")
}

// --- OVER clause ---

func TestVisitOverEmptyWindow(t *testing.T) {
	t.Parallel()
	over := nodes.NewRowNumber("ROW_NUMBER").Over(nodes.NewWindowDef())
	testutil.AssertSQL(t, NewPostgresVisitor(), over, `ROW_NUMBER() OVER ()`)
	testutil.AssertSQL(t, NewPostgresVisitor(), nodes.NewOverNode(nodes.NewRank("RANK")), `RANK() OVER ()`)
}

func TestVisitOverWithPartitionAndOrder(t *testing.T) {
	t.Parallel()
	emp := nodes.NewTable("employees")
	def := nodes.NewWindowDef().Partition(emp.Col("dept")).Order(emp.Col("salary").Desc())
	over := nodes.NewRank("RANK").Over(def)
	testutil.AssertSQL(t, NewPostgresVisitor(), over,
		`RANK() OVER (PARTITION BY "employees"."dept" ORDER BY "employees"."salary" DESC)`)
	testutil.AssertSQL(t, NewMySQLVisitor(), over,
		"RANK() OVER (PARTITION BY `employees`.`dept` ORDER BY `employees`.`salary` DESC)")
}

func TestVisitOverWithFrame(t *testing.T) {
	t.Parallel()
	col := nodes.Column("salary")
	def := nodes.NewWindowDef().Order(nodes.Column("hired").Asc()).
		Rows(nodes.Preceding(nodes.Literal(2)), nodes.CurrentRow())
	over := nodes.NewNthValue("FIRST_VALUE", col, one(), one(), one()).Over(def)
	testutil.AssertSQL(t, NewSQLiteVisitor(WithParams()), over,
		`FIRST_VALUE("salary") OVER (ORDER BY "hired" ASC ROWS BETWEEN 2 PRECEDING AND CURRENT ROW)`)

	def = nodes.NewWindowDef().Range(nodes.UnboundedPreceding())
	testutil.AssertSQL(t, NewSQLiteVisitor(), nodes.NewRowNumber("ROW_NUMBER").Over(def),
		`ROW_NUMBER() OVER (RANGE UNBOUNDED PRECEDING)`)
}

func TestVisitOverNamedWindow(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(), nodes.NewRank("RANK").OverName("w"), `RANK() OVER "w"`)
}

// --- SELECT ---

func TestVisitSelectCore(t *testing.T) {
	t.Parallel()
	emp := nodes.NewTable("employees")
	core := &nodes.SelectCore{
		From: emp,
		Projections: []nodes.Node{
			emp.Col("name"),
			nodes.NewAliasNode(nodes.NewRank("RANK").OverName("w"), "r"),
		},
		Windows: []*nodes.WindowDefinition{nodes.NewWindowDef("w").Order(emp.Col("salary").Desc())},
		Orders:  []nodes.Node{emp.Col("name").Asc()},
		Limit:   nodes.Literal(10),
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), core,
		`SELECT "employees"."name", RANK() OVER "w" AS "r" FROM "employees"`+
			` WINDOW "w" AS (ORDER BY "employees"."salary" DESC) ORDER BY "employees"."name" ASC LIMIT 10`)
}

func TestVisitSelectCoreDefaultsToStar(t *testing.T) {
	t.Parallel()
	core := &nodes.SelectCore{From: nodes.NewTable("t")}
	testutil.AssertSQL(t, NewSQLiteVisitor(), core, `SELECT * FROM "t"`)
}

func TestVisitNamedFunctionArgument(t *testing.T) {
	t.Parallel()
	n := nodes.NewLeadLag("LAG", nodes.Lower(nodes.Column("name")), one(), nodes.NewSqlLiteral("''"), one())
	assertContains(t, n.Accept(NewPostgresVisitor()), `LAG(LOWER("name"), 1, '')`)
}

func TestRenderWindowDefWithWrapper(t *testing.T) {
	t.Parallel()
	def := nodes.NewWindowDef().Partition(nodes.Column("dept"))
	testutil.AssertEqual(t, RenderWindowDef(NewMySQLVisitor(), def), "(PARTITION BY `dept`)")
	testutil.AssertEqual(t, RenderWindowDef(NewPostgresVisitor(), nil), "()")
}
