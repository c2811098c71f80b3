package catalog

// seedItems is the catalog shipped with a fresh install. It is only used
// when no catalog has been persisted yet.
func seedItems() []Item {
	return []Item{
		{
			ID:            "t1",
			Name:          "Cyber-Void Graphic",
			Price:         1899,
			OriginalPrice: 2499,
			DiscountLabel: "24% OFF",
			Category:      CategorySet(CategoryGraphic, CategoryTShirts),
			Images:        []string{"https://images.unsplash.com/photo-1503342217505-b0a15ec3261c?q=80&w=600&auto=format&fit=crop"},
			Sizes:         []string{"S", "M", "L", "XL"},
			Colors:        []string{"Jet Black"},
			FitType:       "Oversized",
			Fabric:        "240 GSM Cotton",
			Availability:  true,
			Description:   `A digital artifact for your wardrobe. Unlocks "Void Glitch" AR signature.`,
			Rating:        5.0,
			Reviews:       12,
			Effect:        &Effect{ID: "eff-1", Name: "Void Glitch", Type: EffectGlitch, Color: "#a855f7"},
		},
		{
			ID:            "h1",
			Name:          "Stealth Tech Hoodie",
			Price:         3499,
			OriginalPrice: 4500,
			DiscountLabel: "22% OFF",
			Category:      OneCategory(CategoryHoodies),
			Images:        []string{"https://images.unsplash.com/photo-1556821840-3a63f95609a7?q=80&w=600&auto=format&fit=crop"},
			Sizes:         []string{"M", "L", "XL"},
			Colors:        []string{"Carbon Black"},
			FitType:       "Boxy Heavyweight",
			Fabric:        "450 GSM Fleece",
			Availability:  true,
			Description:   "The ultimate urban shield. Heavyweight fleece with hidden AR code.",
			Rating:        4.9,
			Reviews:       45,
			Effect:        &Effect{ID: "eff-4", Name: "Thermal Pulse", Type: EffectPulse, Color: "#ef4444"},
		},
		{
			ID:            "c1",
			Name:          "Nebula Strapback",
			Price:         999,
			OriginalPrice: 1299,
			DiscountLabel: "23% OFF",
			Category:      OneCategory(CategoryCaps),
			Images:        []string{"https://images.unsplash.com/photo-1588850561407-ed78c282e89b?q=80&w=600&auto=format&fit=crop"},
			Colors:        []string{"Acid Wash Blue"},
			Availability:  true,
			Description:   "Distressed vintage silhouette with 3D embroidery.",
			Rating:        4.8,
			Reviews:       28,
		},
		{
			ID:            "p1",
			Name:          "Digital Solitude #04",
			Price:         8500,
			OriginalPrice: 12000,
			DiscountLabel: "Limited Edition",
			Category:      OneCategory(CategoryPaints),
			Images:        []string{"https://images.unsplash.com/photo-1541963463532-d68292c34b19?q=80&w=600&auto=format&fit=crop"},
			Availability:  true,
			Description:   "Hand-painted oil on canvas. Abstract exploration of digital isolation.",
			Rating:        5.0,
			Reviews:       4,
		},
		{
			ID:            "f1",
			Name:          "Minimalist Grid Frame",
			Price:         2499,
			OriginalPrice: 2499,
			Category:      OneCategory(CategoryFrames),
			Images:        []string{"https://images.unsplash.com/photo-1583847268964-b28dc8f51f92?q=80&w=600&auto=format&fit=crop"},
			Availability:  true,
			Description:   "Industrial matte black aluminium frame with museum-grade acrylic.",
			Rating:        4.7,
			Reviews:       19,
		},
		{
			ID:            "ter1",
			Name:          "Bio-Sphere Zenith",
			Price:         4500,
			OriginalPrice: 5500,
			DiscountLabel: "New Arrival",
			Category:      OneCategory(CategoryTerraria),
			Images:        []string{"https://images.unsplash.com/photo-1545241047-6083a3684587?q=80&w=600&auto=format&fit=crop"},
			Availability:  true,
			Description:   "Self-sustaining ecosystem in a hand-blown glass sphere.",
			Rating:        4.9,
			Reviews:       31,
		},
	}
}
