package cart_test

import (
	"testing"

	"github.com/tfiz/storefront-go/internal/cart"
	"github.com/tfiz/storefront-go/internal/catalog"
)

type fakeSource map[string]catalog.Item

func (f fakeSource) Get(id string) (catalog.Item, bool) {
	item, ok := f[id]
	return item, ok
}

func tee() catalog.Item {
	return catalog.Item{
		ID:           "t1",
		Name:         "Tee",
		Price:        1000,
		Sizes:        []string{"S", "M", "L"},
		Colors:       []string{"Black", "White"},
		Availability: true,
	}
}

func capItem() catalog.Item {
	return catalog.Item{ID: "c1", Name: "Cap", Price: 500, Availability: true}
}

func TestAddMergesByItemID(t *testing.T) {
	src := fakeSource{"t1": tee()}
	c := cart.New(src)

	for i := 0; i < 3; i++ {
		c.Add(tee())
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAddDefaultsToFirstDeclaredOptions(t *testing.T) {
	c := cart.New(fakeSource{"t1": tee()})
	c.Add(tee())

	line := c.Lines()[0]
	if line.SelectedSize != "S" {
		t.Fatalf("expected first size, got %q", line.SelectedSize)
	}
	if line.SelectedColor != "Black" {
		t.Fatalf("expected first color, got %q", line.SelectedColor)
	}
}

func TestAddUnavailableIsSilentNoOp(t *testing.T) {
	item := tee()
	item.Availability = false

	c := cart.New(fakeSource{"t1": item})
	c.Add(item)

	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", c.Len())
	}
}

func TestRemove(t *testing.T) {
	src := fakeSource{"t1": tee(), "c1": capItem()}
	c := cart.New(src)
	c.Add(tee())
	c.Add(capItem())

	c.Remove(0)

	lines := c.Lines()
	if len(lines) != 1 || lines[0].ItemID != "c1" {
		t.Fatalf("expected later line to shift down, got %+v", lines)
	}

	// Out-of-range indexes are ignored.
	c.Remove(-1)
	c.Remove(5)
	if c.Len() != 1 {
		t.Fatalf("expected cart untouched, got %d lines", c.Len())
	}
}

func TestSetQuantityClampsToOne(t *testing.T) {
	tests := []struct {
		name string
		set  int
		want int
	}{
		{"zero clamps", 0, 1},
		{"negative clamps", -5, 1},
		{"one stays", 1, 1},
		{"large allowed", 99, 99},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cart.New(fakeSource{"t1": tee()})
			c.Add(tee())

			c.SetQuantity(0, tc.set)
			if got := c.Lines()[0].Quantity; got != tc.want {
				t.Fatalf("expected quantity %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSubtotalTracksLivePrices(t *testing.T) {
	src := fakeSource{"t1": tee(), "c1": capItem()}
	c := cart.New(src)
	c.Add(tee())
	c.Add(tee())
	c.Add(capItem())

	if got := c.Subtotal(); got != 2500 {
		t.Fatalf("expected subtotal 2500, got %d", got)
	}

	// A price change shows up without re-adding.
	repriced := tee()
	repriced.Price = 2000
	src["t1"] = repriced
	if got := c.Subtotal(); got != 4500 {
		t.Fatalf("expected subtotal 4500 after reprice, got %d", got)
	}

	// Lines whose item vanished from the catalog contribute nothing.
	delete(src, "c1")
	if got := c.Subtotal(); got != 4000 {
		t.Fatalf("expected subtotal 4000 after delist, got %d", got)
	}
}

func TestSubtotalEmptyCart(t *testing.T) {
	c := cart.New(fakeSource{})
	if got := c.Subtotal(); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestClear(t *testing.T) {
	c := cart.New(fakeSource{"t1": tee()})
	c.Add(tee())
	c.Clear()

	if c.Len() != 0 || c.Subtotal() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
}
