package table_test

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/rpggio/mlaconnect/internal/table"
	"github.com/stretchr/testify/require"
)

type item struct {
	Pos   int
	Label string
	Score int
}

func itemColumns() []table.Column[item] {
	return []table.Column[item]{
		{ID: "label", Accessor: func(i item) any { return i.Label }},
		{ID: "score", Accessor: func(i item) any { return i.Score }, Compare: table.CompareNumbers},
	}
}

func randomItems(r *rand.Rand) []item {
	labels := []string{"alpha", "beta", "gamma", "delta", "Alpha", "omega"}
	out := make([]item, r.IntN(60))
	for i := range out {
		out[i] = item{Pos: i, Label: labels[r.IntN(len(labels))], Score: r.IntN(8)}
	}
	return out
}

func positions(rows []item) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Pos
	}
	return out
}

func forSeeds(t *testing.T, fn func(t *testing.T, r *rand.Rand)) {
	t.Helper()
	for seed := uint64(1); seed <= 200; seed++ {
		r := rand.New(rand.NewPCG(seed, seed*7919))
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			fn(t, r)
		})
	}
}

func TestProperty_FilterIsOrderedSubset(t *testing.T) {
	forSeeds(t, func(t *testing.T, r *rand.Rand) {
		records := randomItems(r)
		v := table.New(itemColumns(), records)
		v.SetFilter("label", []string{"a", "alpha", "ta", "z"}[r.IntN(4)])

		got := positions(v.FilteredRows())
		require.True(t, slices.IsSorted(got), "filter must keep input order")
		for _, p := range got {
			require.Less(t, p, len(records))
		}
	})
}

func TestProperty_SortIsIdempotent(t *testing.T) {
	forSeeds(t, func(t *testing.T, r *rand.Rand) {
		records := randomItems(r)
		dir := []table.Direction{table.Asc, table.Desc}[r.IntN(2)]

		v := table.New(itemColumns(), records)
		v.SetSort("score", dir)
		once := v.FilteredRows()

		again := table.New(itemColumns(), once)
		again.SetSort("score", dir)
		require.Equal(t, positions(once), positions(again.FilteredRows()))
	})
}

func TestProperty_SortIsStable(t *testing.T) {
	forSeeds(t, func(t *testing.T, r *rand.Rand) {
		v := table.New(itemColumns(), randomItems(r))
		v.SetSort("label", table.Asc)
		rows := v.FilteredRows()
		for i := 1; i < len(rows); i++ {
			if rows[i-1].Label == rows[i].Label {
				require.Less(t, rows[i-1].Pos, rows[i].Pos)
			}
		}
	})
}

func TestProperty_PageIndexStaysInRange(t *testing.T) {
	forSeeds(t, func(t *testing.T, r *rand.Rand) {
		v := table.New(itemColumns(), randomItems(r))
		for step := 0; step < 40; step++ {
			switch r.IntN(8) {
			case 0:
				v.NextPage()
			case 1:
				v.PreviousPage()
			case 2:
				v.SetPageIndex(r.IntN(20) - 5)
			case 3:
				v.SetPageSize(r.IntN(15) - 2)
			case 4:
				v.SetFilter("label", []string{"", "a", "beta", "nothing"}[r.IntN(4)])
			case 5:
				v.ToggleSort([]string{"label", "score", "unknown"}[r.IntN(3)])
			case 6:
				v.SetGlobalFilter([]string{"", "e", "omega"}[r.IntN(3)])
			case 7:
				v.SetRecords(randomItems(r))
			}

			count := v.PageCount()
			want := (v.FilteredCount() + v.PageSize() - 1) / v.PageSize()
			require.Equal(t, max(want, 1), count)
			require.GreaterOrEqual(t, v.PageIndex(), 0)
			require.Less(t, v.PageIndex(), count)
		}
	})
}

func TestProperty_PagesCoverFilteredRowsOnce(t *testing.T) {
	forSeeds(t, func(t *testing.T, r *rand.Rand) {
		v := table.New(itemColumns(), randomItems(r), table.WithPageSize(1+r.IntN(9)))
		v.SetFilter("label", []string{"", "a", "mega"}[r.IntN(3)])
		v.ToggleSort("score")

		seen := []int{}
		for page := 0; page < v.PageCount(); page++ {
			v.SetPageIndex(page)
			seen = append(seen, positions(v.Rows())...)
		}
		require.Equal(t, positions(v.FilteredRows()), seen)
	})
}

func TestProperty_ClearFilterRoundTrip(t *testing.T) {
	forSeeds(t, func(t *testing.T, r *rand.Rand) {
		records := randomItems(r)
		v := table.New(itemColumns(), records)
		v.SetFilter("label", "ta")
		v.SetFilter("label", "")
		require.Equal(t, positions(records), positions(v.FilteredRows()))
	})
}
