package history

import "context"

// Repo persists history entries per owner. Save stores e, raises the best score of every
// entry the owner has to the new maximum, and keeps only the newest keep entries.
type Repo interface {
	Save(ctx context.Context, e Entry, keep int) (Entry, error)
	List(ctx context.Context, ownerID string) ([]Entry, error)
	Get(ctx context.Context, ownerID, id string) (Entry, error)
	ToggleFavorite(ctx context.Context, ownerID, id string) (Entry, error)
	Delete(ctx context.Context, ownerID, id string) error
	Clear(ctx context.Context, ownerID string) (int, error)
}
