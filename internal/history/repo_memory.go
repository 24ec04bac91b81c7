package history

import (
	"context"
	"sync"
)

// MemoryRepo stores entries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byOwner map[string][]Entry // newest first
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byOwner: make(map[string][]Entry)}
}

// Save stores the entry at the head of the owner's history.
func (r *MemoryRepo) Save(ctx context.Context, e Entry, keep int) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.byOwner[e.OwnerID]
	best := e.Score.OverallScore
	for _, item := range existing {
		if item.Score.OverallScore > best {
			best = item.Score.OverallScore
		}
	}

	e = withBest(e, best)
	updated := make([]Entry, 0, len(existing)+1)
	updated = append(updated, e)
	for _, item := range existing {
		updated = append(updated, withBest(item, best))
	}
	if keep > 0 && len(updated) > keep {
		updated = updated[:keep]
	}
	r.byOwner[e.OwnerID] = updated
	return e, nil
}

// List returns the owner's entries, newest first.
func (r *MemoryRepo) List(ctx context.Context, ownerID string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.byOwner[ownerID]))
	copy(out, r.byOwner[ownerID])
	return out, nil
}

// Get returns a single entry.
func (r *MemoryRepo) Get(ctx context.Context, ownerID, id string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.byOwner[ownerID] {
		if item.ID == id {
			return item, nil
		}
	}
	return Entry{}, ErrNotFound
}

// ToggleFavorite flips the favorite flag and returns the updated entry.
func (r *MemoryRepo) ToggleFavorite(ctx context.Context, ownerID, id string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.byOwner[ownerID]
	for i := range items {
		if items[i].ID == id {
			items[i].IsFavorite = !items[i].IsFavorite
			return items[i], nil
		}
	}
	return Entry{}, ErrNotFound
}

// Delete removes one entry.
func (r *MemoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.byOwner[ownerID]
	for i := range items {
		if items[i].ID == id {
			r.byOwner[ownerID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Clear removes every entry the owner has.
func (r *MemoryRepo) Clear(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.byOwner[ownerID])
	delete(r.byOwner, ownerID)
	return n, nil
}

var _ Repo = (*MemoryRepo)(nil)
