// Package repository wraps all database access behind per-entity interfaces.
// List results flow through the read cache; every write invalidates the
// entity's cache name. Backend errors are returned to callers unchanged --
// the single exception is GetByID/GetByKey, where a missing row becomes a
// nil result instead of an error.
package repository

import (
	"context"
	"encoding/json"

	"github.com/example/tavola/internal/cache"
)

// Cache names, one per cached entity list.
const (
	cacheContactInfo     = "contact_info"
	cacheReviews         = "reviews"
	cacheContentSections = "content_sections"
	cachePartners        = "partners_logos"
)

// listThrough serves a list fetch from the cache when possible, populating
// it on miss. Serialization failures fall back to the uncached result.
func listThrough[T any](ctx context.Context, store cache.Store, name string, fetch func() ([]T, error)) ([]T, error) {
	if payload, ok := store.Get(ctx, name); ok {
		var items []T
		if err := json.Unmarshal(payload, &items); err == nil {
			return items, nil
		}
		store.Invalidate(ctx, name)
	}

	items, err := fetch()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		store.Set(ctx, name, payload)
	}
	return items, nil
}
