package listcache

import (
	"context"
	"testing"
	"time"

	"larana.GO/core/cache"
	"larana.GO/model/entity/catalog"
)

func TestListCache_LocalFillAndInvalidate(t *testing.T) {
	lc := New(nil, cache.NewCache(), time.Minute, nil)
	ctx := context.Background()

	loads := 0
	load := func() ([]catalog.Product, uint64) {
		loads++
		return []catalog.Product{{ID: 1, Title: "Диван"}}, 0
	}

	first := lc.Get(ctx, load)
	second := lc.Get(ctx, load)
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
	if len(second.Products) != 1 || !second.StoredAt.Equal(first.StoredAt) {
		t.Errorf("second = %+v, want cached first", second)
	}

	lc.Invalidate(ctx, 0)
	lc.Get(ctx, load)
	if loads != 2 {
		t.Errorf("loads after invalidate = %d, want 2", loads)
	}
}

func TestListCache_PutOverwrites(t *testing.T) {
	lc := New(nil, cache.NewCache(), 0, nil)
	ctx := context.Background()
	lc.Put(ctx, []catalog.Product{{ID: 1}}, 0)
	lc.Put(ctx, []catalog.Product{{ID: 1}, {ID: 2}}, 0)
	snap := lc.Get(ctx, func() ([]catalog.Product, uint64) {
		t.Fatal("loader called on warm cache")
		return nil, 0
	})
	if len(snap.Products) != 2 {
		t.Errorf("products = %d, want 2", len(snap.Products))
	}
}

func TestListCache_PutRefusesListOlderThanInvalidation(t *testing.T) {
	lc := New(nil, cache.NewCache(), time.Minute, nil)
	ctx := context.Background()

	// A warm-up read the list at version 3, then a commit moved the catalog
	// to 4 and invalidated before the warm-up got to write.
	old := []catalog.Product{{ID: 1, Title: "Диван"}}
	lc.Invalidate(ctx, 4)
	if snap, stored := lc.Put(ctx, old, 3); stored || len(snap.Products) != 1 {
		t.Errorf("Put(v3) stored = %v products = %d, want false, 1", stored, len(snap.Products))
	}

	loads := 0
	snap := lc.Get(ctx, func() ([]catalog.Product, uint64) {
		loads++
		return []catalog.Product{{ID: 1}, {ID: 2}}, 4
	})
	if loads != 1 || len(snap.Products) != 2 {
		t.Errorf("loads = %d products = %d, want 1, 2", loads, len(snap.Products))
	}
	if _, stored := lc.Put(ctx, old, 4); !stored {
		t.Error("Put at the invalidated version should be stored")
	}
}
