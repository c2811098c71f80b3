package catalog

import "testing"

func TestSortItems(t *testing.T) {
	base := func() []Item {
		return []Item{
			{ID: "a", Price: 300},
			{ID: "b", Price: 100},
			{ID: "c", Price: 300},
			{ID: "d", Price: 200},
		}
	}

	ids := func(items []Item) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.ID
		}
		return out
	}

	tests := []struct {
		name string
		by   Sort
		want []string
	}{
		{"price ascending", SortPriceAsc, []string{"b", "d", "a", "c"}},
		{"price descending keeps stable order", SortPriceDesc, []string{"a", "c", "d", "b"}},
		{"new keeps catalog order", SortNew, []string{"a", "b", "c", "d"}},
		{"unknown option keeps order", Sort("shuffle"), []string{"a", "b", "c", "d"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items := base()
			SortItems(items, tc.by)
			got := ids(items)
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("order %v, want %v", got, tc.want)
				}
			}
		})
	}
}
