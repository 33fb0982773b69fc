package ports

import (
	"context"

	"bugtrack/internal/domain/bug"
)

// BugRepository is the persistence boundary for the bug collection.
// Implementations must honor the listing order contract: newest
// CreatedAt first, ties broken by insertion order.
type BugRepository interface {
	// ListBugs returns every bug; an empty collection yields an empty
	// slice, never an error.
	ListBugs(ctx context.Context) ([]bug.Bug, error)
	// GetBug returns bug.ErrNotFound when no record has the id.
	GetBug(ctx context.Context, id string) (bug.Bug, error)
	CreateBug(ctx context.Context, b bug.Bug) (bug.Bug, error)
	// UpdateBug persists the full record under b.ID and returns
	// bug.ErrNotFound when the id does not exist.
	UpdateBug(ctx context.Context, b bug.Bug) (bug.Bug, error)
	// DeleteBug removes the record immediately; no soft delete.
	DeleteBug(ctx context.Context, id string) error
}
