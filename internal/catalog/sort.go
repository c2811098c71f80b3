package catalog

import "sort"

// Sort is a listing order. "new" is the natural catalog order, which already
// runs most-recent-first.
type Sort string

const (
	SortNew       Sort = "new"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// SortItems reorders items in place. Unknown options leave the order as is;
// price sorts are stable so equal prices keep catalog order.
func SortItems(items []Item, by Sort) {
	switch by {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	}
}
