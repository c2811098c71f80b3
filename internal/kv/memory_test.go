package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		if err := store.Put(ctx, "catalog", []byte(`["a"]`)); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, err := store.Get(ctx, "catalog")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(got) != `["a"]` {
			t.Fatalf("unexpected value %s", got)
		}
	})

	t.Run("put replaces whole value", func(t *testing.T) {
		if err := store.Put(ctx, "catalog", []byte(`["b"]`)); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, _ := store.Get(ctx, "catalog")
		if string(got) != `["b"]` {
			t.Fatalf("expected value to be replaced, got %s", got)
		}
	})

	t.Run("caller mutations do not leak in", func(t *testing.T) {
		value := []byte("abc")
		_ = store.Put(ctx, "k", value)
		value[0] = 'x'

		got, _ := store.Get(ctx, "k")
		if string(got) != "abc" {
			t.Fatalf("stored value was mutated: %s", got)
		}

		got[0] = 'y'
		again, _ := store.Get(ctx, "k")
		if string(again) != "abc" {
			t.Fatalf("returned value aliases the store: %s", again)
		}
	})
}
