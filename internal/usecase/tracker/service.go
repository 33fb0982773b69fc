package tracker

import (
	"time"

	"github.com/google/uuid"

	"bugtrack/internal/ports"
)

// Service implements the bug lifecycle: list, get, create, update,
// delete. Every mutation re-validates through the domain rules; the
// service never trusts that a caller validated first.
type Service struct {
	repo ports.BugRepository
	uow  ports.UnitOfWork

	// Overridable for tests.
	now   func() time.Time
	newID func() string
}

func NewService(repo ports.BugRepository, uow ports.UnitOfWork) *Service {
	return &Service{
		repo:  repo,
		uow:   uow,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// CreateBugInput carries the client-supplied fields of a create.
// Status is deliberately absent: a new bug is always Open.
type CreateBugInput struct {
	Title       string
	Description string
	Priority    string
}

// UpdateBugInput is a partial patch of the mutable fields. A nil
// pointer leaves the stored value untouched; the merged record is
// re-validated as a whole before persisting.
type UpdateBugInput struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
}
