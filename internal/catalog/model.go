package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category is one of the fixed merchandising buckets.
type Category string

const (
	CategoryAll      Category = "All" // filter sentinel, never stored on an item
	CategoryTShirts  Category = "T-shirts"
	CategoryGraphic  Category = "Graphic T-shirts"
	CategoryPlain    Category = "Plain T-shirts"
	CategoryCaps     Category = "Caps"
	CategoryHoodies  Category = "Hoodies"
	CategoryPaints   Category = "Paintings"
	CategoryFrames   Category = "Wall Frames"
	CategoryTerraria Category = "Terrarium"
)

// Categories lists the filter buckets in display order, "All" first.
var Categories = []Category{
	CategoryAll, CategoryTShirts, CategoryCaps, CategoryHoodies,
	CategoryPaints, CategoryFrames, CategoryTerraria,
}

// CategoryRef is a tagged variant: an item belongs either to a single
// category or to a set of them. JSON keeps the legacy shape: a bare string
// for the single case, an array for the set case.
type CategoryRef struct {
	One Category
	Set []Category
}

func OneCategory(c Category) CategoryRef {
	return CategoryRef{One: c}
}

func CategorySet(cs ...Category) CategoryRef {
	return CategoryRef{Set: cs}
}

// Matches reports whether the item belongs to cat. The "All" sentinel
// matches everything.
func (r CategoryRef) Matches(cat Category) bool {
	if cat == CategoryAll {
		return true
	}
	if len(r.Set) > 0 {
		for _, c := range r.Set {
			if c == cat {
				return true
			}
		}
		return false
	}
	return r.One == cat
}

func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if len(r.Set) > 0 {
		return json.Marshal(r.Set)
	}
	return json.Marshal(r.One)
}

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		r.One = ""
		return json.Unmarshal(data, &r.Set)
	}
	r.Set = nil
	if err := json.Unmarshal(data, &r.One); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	return nil
}

// EffectType enumerates the unlockable overlay styles.
type EffectType string

const (
	EffectPulse     EffectType = "pulse"
	EffectGlitch    EffectType = "glitch"
	EffectAura      EffectType = "aura"
	EffectParticles EffectType = "particles"
)

// Effect is the unlockable signature attached to select items. The AR
// surface renders it; this service only carries the reference.
type Effect struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Type  EffectType `json:"type"`
	Color string     `json:"color"`
}

// Item is a sellable catalog entry. Price fields are whole currency units.
type Item struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Price         int64       `json:"price"`
	OriginalPrice int64       `json:"originalPrice"`
	DiscountLabel string      `json:"discount,omitempty"`
	Category      CategoryRef `json:"category"`
	Images        []string    `json:"images,omitempty"`
	Sizes         []string    `json:"sizes,omitempty"`
	Colors        []string    `json:"colors,omitempty"`
	FitType       string      `json:"fitType,omitempty"`
	Fabric        string      `json:"fabric,omitempty"`
	Availability  bool        `json:"availability"`
	Description   string      `json:"description,omitempty"`
	WashCare      string      `json:"washCare,omitempty"`
	Rating        float64     `json:"rating,omitempty"`
	Reviews       int         `json:"reviews,omitempty"`
	Effect        *Effect     `json:"arEffect,omitempty"`
}
