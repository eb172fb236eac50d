package builders

import (
	"fmt"
	"testing"

	"github.com/bawdo/wincall/nodes"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestFunctionName(t *testing.T) {
	t.Parallel()
	n := NewFunctionName("Row_Number")
	require.Equal(t, "Row_Number", n.String())
	require.Equal(t, NewFunctionName("ROW_NUMBER").Key(), n.Key())
	require.True(t, n.Is("row_number"))
	require.False(t, n.Is("RANK"))
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	reg, err := NewRegistry(DefaultEntries(), DefaultNullsEntries())
	require.NoError(t, err)
	for _, name := range []string{"rank", "Rank", "RANK", "rAnK"} {
		b, ok := reg.Find(name)
		require.True(t, ok, name)
		require.Same(t, rankBuilder, b)
	}
	b, ok := reg.FindNulls("nth_value")
	require.True(t, ok)
	require.Same(t, nthValueBuilder, b)
}

func TestTableMembership(t *testing.T) {
	t.Parallel()
	reg, err := NewRegistry(DefaultEntries(), DefaultNullsEntries())
	require.NoError(t, err)

	_, ok := reg.Find("NTH_VALUE")
	require.False(t, ok, "NTH_VALUE is only reachable with a null-treatment clause")
	_, ok = reg.FindNulls("NTH_VALUE")
	require.True(t, ok)

	for _, name := range []string{"FIRST_VALUE", "LAST_VALUE", "LAG", "LEAD"} {
		plain, ok := reg.Find(name)
		require.True(t, ok, name)
		nulls, ok := reg.FindNulls(name)
		require.True(t, ok, name)
		require.Same(t, plain, nulls)
	}
	for _, name := range []string{"RANK", "ROW_NUMBER", "MEDIAN", "NTILE", "CUME_DIST"} {
		_, ok := reg.FindNulls(name)
		require.False(t, ok, name)
	}

	_, ok = reg.Find("SUM")
	require.False(t, ok)
	_, ok = reg.Lookup("LAG", true)
	require.True(t, ok)
}

func TestEntriesAreSorted(t *testing.T) {
	t.Parallel()
	reg, err := NewRegistry(DefaultEntries(), DefaultNullsEntries())
	require.NoError(t, err)

	var names []string
	for _, e := range reg.Entries() {
		names = append(names, e.Name)
		require.NotEmpty(t, e.Signature)
		require.NotEmpty(t, e.Description)
	}
	require.Equal(t, []string{
		"CUME_DIST", "DENSE_RANK", "FIRST_VALUE", "LAST_VALUE", "LAG", "LEAD",
		"MEDIAN", "NTILE", "PERCENT_RANK", "RANK", "ROW_NUMBER",
	}, names)

	names = names[:0]
	for _, e := range reg.NullsEntries() {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"FIRST_VALUE", "LAG", "LAST_VALUE", "LEAD", "NTH_VALUE"}, names)

	require.Len(t, reg.Names(), 12)
}

func TestDuplicateRegistrationFails(t *testing.T) {
	t.Parallel()
	plain := append(DefaultEntries(), Entry{Name: "rank", Builder: rowNumberBuilder})
	reg, err := NewRegistry(plain, DefaultNullsEntries())
	require.Nil(t, reg)
	require.True(t, ErrDuplicateFunction.Equal(err))
	require.Contains(t, err.Error(), "rank registered twice in the plain table")

	nulls := append(DefaultNullsEntries(), Entry{Name: "LAG", Builder: leadLagBuilder})
	reg, err = NewRegistry(DefaultEntries(), nulls)
	require.Nil(t, reg)
	require.True(t, ErrDuplicateFunction.Equal(err))
}

func TestInvalidEntryFails(t *testing.T) {
	t.Parallel()
	_, err := NewRegistry([]Entry{{Name: "X"}}, nil)
	require.True(t, ErrInvalidEntry.Equal(err))
	_, err = NewRegistry(nil, []Entry{{Name: " ", Builder: rankBuilder}})
	require.True(t, ErrInvalidEntry.Equal(err))
}

func TestCustomRegistration(t *testing.T) {
	t.Parallel()
	reg, err := NewRegistry([]Entry{
		{Name: "RANK", Builder: rankBuilder},
		{Name: "PERCENTILE_BUCKET", Builder: ntileBuilder},
	}, nil)
	require.NoError(t, err)
	b, ok := reg.Find("percentile_bucket")
	require.True(t, ok)
	w := mustCreate(t, b, "percentile_bucket", args(col("x")), Options{})
	require.Equal(t, "percentile_bucket", w.Name)
	require.Empty(t, reg.NullsEntries())
}

func TestNilRegistry(t *testing.T) {
	t.Parallel()
	var reg *Registry
	_, ok := reg.Find("RANK")
	require.False(t, ok)
	_, ok = reg.FindNulls("LAG")
	require.False(t, ok)
	require.Nil(t, reg.Entries())
	require.Empty(t, reg.Names())
}

func TestConcurrentLookupAndCreate(t *testing.T) {
	t.Parallel()
	reg, err := NewRegistry(DefaultEntries(), DefaultNullsEntries())
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		fromLast := i%2 == 0
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				b, ok := reg.FindNulls("nth_value")
				if !ok {
					return fmt.Errorf("nth_value not found")
				}
				n, err := b.Create(nil, "NTH_VALUE", args(col("v"), col("n")), Options{FromLast: fromLast})
				if err != nil {
					return err
				}
				w := n.(*nodes.WindowFuncNode)
				want := int64(1)
				if fromLast {
					want = 0
				}
				if got, _ := nodes.IntValue(w.Arg(nodes.ArgFromFirst)); got != want {
					return fmt.Errorf("worker %d: fromFirst %d, want %d", i, got, want)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
