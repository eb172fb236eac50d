package visitors

import (
	"strings"
	"testing"

	"github.com/bawdo/wincall/nodes"
)

func dotOf(n nodes.Node) (string, *DotVisitor) {
	dv := NewDotVisitor()
	n.Accept(dv)
	return dv.ToDot(), dv
}

func TestDotVisitTable(t *testing.T) {
	dot, _ := dotOf(nodes.NewTable("employees"))

	if !strings.Contains(dot, "digraph") {
		t.Error("expected DOT output to contain 'digraph'")
	}
	if !strings.Contains(dot, `label="Table\nemployees"`) {
		t.Errorf("expected Table node label, got:\n%s", dot)
	}
	if !strings.Contains(dot, `fillcolor="#6CA6CD"`) {
		t.Errorf("expected blue fill for Table, got:\n%s", dot)
	}
}

// --- Leaf node tests ---

func TestDotVisitAttribute(t *testing.T) {
	dot, _ := dotOf(nodes.NewTable("employees").Col("name"))
	if !strings.Contains(dot, `label="Attribute\nemployees.name"`) {
		t.Errorf("expected Attribute label, got:\n%s", dot)
	}
	if !strings.Contains(dot, `fillcolor="#B0D4E8"`) {
		t.Errorf("expected light blue fill, got:\n%s", dot)
	}

	dot, _ = dotOf(nodes.Column("name"))
	if !strings.Contains(dot, `label="Attribute\nname"`) {
		t.Errorf("expected unqualified Attribute label, got:\n%s", dot)
	}
}

func TestDotVisitLiteral(t *testing.T) {
	dot, _ := dotOf(nodes.Literal(42))
	if !strings.Contains(dot, `label="Literal\n42"`) {
		t.Errorf("expected Literal label, got:\n%s", dot)
	}
	dot, _ = dotOf(nodes.Null())
	if !strings.Contains(dot, `label="Literal\nNULL"`) {
		t.Errorf("expected NULL Literal label, got:\n%s", dot)
	}
}

func TestDotVisitStar(t *testing.T) {
	dot, _ := dotOf(nodes.Star())
	if !strings.Contains(dot, `label="Star\n*"`) {
		t.Errorf("expected Star label, got:\n%s", dot)
	}
	dot, _ = dotOf(nodes.NewTable("employees").Star())
	if !strings.Contains(dot, `label="Star\nemployees.*"`) {
		t.Errorf("expected qualified Star label, got:\n%s", dot)
	}
}

func TestDotVisitSqlLiteralEscapesQuotes(t *testing.T) {
	dot, _ := dotOf(nodes.NewSqlLiteral(`"raw"`))
	if !strings.Contains(dot, `label="SqlLiteral\n\"raw\""`) {
		t.Errorf("expected escaped SqlLiteral label, got:\n%s", dot)
	}
}

func TestDotVisitOrdering(t *testing.T) {
	dot, _ := dotOf(nodes.Column("salary").Desc())
	if !strings.Contains(dot, `label="Order\nDESC"`) {
		t.Errorf("expected Order DESC label, got:\n%s", dot)
	}
	if !strings.Contains(dot, `[label="EXPR"]`) {
		t.Errorf("expected EXPR edge, got:\n%s", dot)
	}
}

// --- Window function nodes ---

func TestDotVisitRank(t *testing.T) {
	dot, dv := dotOf(nodes.NewRank("DENSE_RANK"))
	if !strings.Contains(dot, `label="DENSE_RANK\n(rank)"`) {
		t.Errorf("expected DENSE_RANK label, got:\n%s", dot)
	}
	if !strings.Contains(dot, colorFunction) {
		t.Errorf("expected function color, got:\n%s", dot)
	}
	if dv.NodeCount() != 1 {
		t.Errorf("expected 1 node, got %d", dv.NodeCount())
	}
}

func TestDotVisitNthValueOperands(t *testing.T) {
	n := nodes.NewNthValue("NTH_VALUE", nodes.Column("salary"), nodes.Literal(2), nodes.Literal(0), nodes.Literal(1))
	dot, dv := dotOf(n)
	for _, label := range []string{`"VALUE"`, `"OFFSET"`, `"FROM_FIRST"`, `"RESPECT_NULLS"`} {
		if !strings.Contains(dot, label) {
			t.Errorf("expected %s edge, got:\n%s", label, dot)
		}
	}
	if !strings.Contains(dot, `label="Flag\n0", fillcolor="`+colorFlag+`"`) {
		t.Errorf("expected FROM_FIRST flag node, got:\n%s", dot)
	}
	if dv.NodeCount() != 5 {
		t.Errorf("expected 5 nodes, got %d", dv.NodeCount())
	}
}

func TestDotVisitLeadLagOperands(t *testing.T) {
	n := nodes.NewLeadLag("LEAD", nodes.Column("price"), nodes.Literal(1), nodes.Null(), nodes.Literal(1))
	dot, _ := dotOf(n)
	if !strings.Contains(dot, `"DEFAULT"`) {
		t.Errorf("expected DEFAULT edge, got:\n%s", dot)
	}
	if strings.Contains(dot, `"FROM_FIRST"`) {
		t.Errorf("unexpected FROM_FIRST edge on LEAD, got:\n%s", dot)
	}
	if !strings.Contains(dot, `label="Flag\n1"`) {
		t.Errorf("expected RESPECT_NULLS flag node, got:\n%s", dot)
	}
}

func TestDotVisitNtileArgs(t *testing.T) {
	dot, _ := dotOf(nodes.NewNtile("NTILE", nodes.Literal(4)))
	if !strings.Contains(dot, `"NTILE\n(ntile)"`) {
		t.Errorf("expected NTILE label, got:\n%s", dot)
	}
	if !strings.Contains(dot, `"ARG[0]"`) {
		t.Errorf("expected ARG[0] edge, got:\n%s", dot)
	}
}

// --- OVER ---

func TestDotVisitOverNode(t *testing.T) {
	emp := nodes.NewTable("employees")
	def := nodes.NewWindowDef().Partition(emp.Col("dept"))
	dot, _ := dotOf(nodes.NewRowNumber("ROW_NUMBER").Over(def))
	if !strings.Contains(dot, `"OVER"`) {
		t.Errorf("expected OVER label, got:\n%s", dot)
	}
	if !strings.Contains(dot, `"EXPR"`) {
		t.Errorf("expected EXPR edge, got:\n%s", dot)
	}
	if !strings.Contains(dot, `"PARTITION[0]"`) {
		t.Errorf("expected PARTITION edge, got:\n%s", dot)
	}
}

func TestDotVisitOverNamedWindow(t *testing.T) {
	dot, _ := dotOf(nodes.NewRank("RANK").OverName("w"))
	if !strings.Contains(dot, `"OVER\nw"`) {
		t.Errorf("expected OVER w label, got:\n%s", dot)
	}
}

func TestDotVisitOverWithFrame(t *testing.T) {
	emp := nodes.NewTable("employees")
	def := nodes.NewWindowDef().
		Order(emp.Col("id").Asc()).
		Range(nodes.UnboundedPreceding(), nodes.CurrentRow())
	dot, _ := dotOf(nodes.NewMedian("MEDIAN", emp.Col("salary")).Over(def))
	if !strings.Contains(dot, `"Frame\nRANGE"`) {
		t.Errorf("expected Frame RANGE label, got:\n%s", dot)
	}
	if !strings.Contains(dot, `"FRAME"`) {
		t.Errorf("expected FRAME edge, got:\n%s", dot)
	}
}

// --- SELECT ---

func TestDotVisitSelectCoreWithWindow(t *testing.T) {
	emp := nodes.NewTable("employees")
	sc := &nodes.SelectCore{
		From:        emp,
		Projections: []nodes.Node{nodes.NewAliasNode(nodes.NewRank("RANK").OverName("w"), "r")},
		Windows:     []*nodes.WindowDefinition{nodes.NewWindowDef("w").Order(emp.Col("salary").Asc())},
		Limit:       nodes.Literal(5),
	}
	dot, _ := dotOf(sc)
	for _, want := range []string{`"SelectCore"`, `"WINDOW\nw"`, `"WINDOW[0]"`, `"SELECT[0]"`, `"Alias\nr"`, `"LIMIT"`, `"FROM"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("expected %s in DOT output, got:\n%s", want, dot)
		}
	}
}
