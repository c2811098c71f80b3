package catalog

import (
	"encoding/json"
	"testing"
)

func TestCategoryRefMatches(t *testing.T) {
	tests := []struct {
		name string
		ref  CategoryRef
		cat  Category
		want bool
	}{
		{"all matches single", OneCategory(CategoryCaps), CategoryAll, true},
		{"all matches set", CategorySet(CategoryGraphic, CategoryTShirts), CategoryAll, true},
		{"single exact", OneCategory(CategoryCaps), CategoryCaps, true},
		{"single mismatch", OneCategory(CategoryCaps), CategoryHoodies, false},
		{"set member", CategorySet(CategoryGraphic, CategoryTShirts), CategoryTShirts, true},
		{"set non-member", CategorySet(CategoryGraphic, CategoryTShirts), CategoryCaps, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ref.Matches(tc.cat); got != tc.want {
				t.Fatalf("Matches(%s) = %v, want %v", tc.cat, got, tc.want)
			}
		})
	}
}

func TestCategoryRefJSONShape(t *testing.T) {
	single, err := json.Marshal(OneCategory(CategoryCaps))
	if err != nil {
		t.Fatalf("marshal single: %v", err)
	}
	if string(single) != `"Caps"` {
		t.Fatalf("expected bare string, got %s", single)
	}

	set, err := json.Marshal(CategorySet(CategoryGraphic, CategoryTShirts))
	if err != nil {
		t.Fatalf("marshal set: %v", err)
	}
	if string(set) != `["Graphic T-shirts","T-shirts"]` {
		t.Fatalf("expected array, got %s", set)
	}

	var fromString CategoryRef
	if err := json.Unmarshal([]byte(`"Caps"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromString.One != CategoryCaps || fromString.Set != nil {
		t.Fatalf("unexpected ref %+v", fromString)
	}

	var fromArray CategoryRef
	if err := json.Unmarshal([]byte(`["Graphic T-shirts","T-shirts"]`), &fromArray); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	if len(fromArray.Set) != 2 || fromArray.One != "" {
		t.Fatalf("unexpected ref %+v", fromArray)
	}
}
