package tracker

import (
	"context"
	"errors"
	"strings"

	"bugtrack/internal/domain/bug"
	"bugtrack/internal/errs"
)

// CreateBug validates the submission and persists a new record with a
// server-assigned id and timestamp. Status is always Open regardless
// of what the client sent; priority defaults to Low when absent.
func (s *Service) CreateBug(ctx context.Context, input CreateBugInput) (bug.Bug, error) {
	if ctx == nil {
		return bug.Bug{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return bug.Bug{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return bug.Bug{}, errors.New("bug repository is required")
	}
	if s.uow == nil {
		return bug.Bug{}, errors.New("unit of work is required")
	}

	result := bug.Validate(bug.Candidate{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
	})
	if err := result.Err(); err != nil {
		return bug.Bug{}, err
	}

	priority := bug.Priority(input.Priority)
	if input.Priority == "" {
		priority = bug.PriorityLow
	}

	candidate := bug.Bug{
		ID:          s.newID(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Status:      bug.StatusOpen,
		CreatedAt:   s.now(),
	}

	var created bug.Bug
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateBug(txCtx, candidate)
		return err
	}); err != nil {
		return bug.Bug{}, errs.Wrap(err, "create bug")
	}

	return created, nil
}
