package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/tfiz/storefront-go/internal/catalog"
)

func TestDisabledAlwaysAnswersDisconnected(t *testing.T) {
	reply, err := Disabled{}.Chat(context.Background(), nil, "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != FallbackDisconnected {
		t.Fatalf("unexpected reply %q", reply.Text)
	}
	if reply.SuggestedIDs == nil {
		t.Fatalf("expected non-nil suggestion list")
	}
}

func TestNewGeminiRequiresAPIKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), "", "", nil); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}

func TestSystemInstructionListsCatalog(t *testing.T) {
	items := []catalog.Item{
		{ID: "t1", Name: "Tee", Price: 1899},
		{ID: "c1", Name: "Cap", Price: 999},
	}

	got := systemInstruction(items)
	for _, want := range []string{"t1: Tee ($1899)", "c1: Cap ($999)", "TFiZ"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected instruction to contain %q, got %q", want, got)
		}
	}
}
