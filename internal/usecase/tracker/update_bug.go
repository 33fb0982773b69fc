package tracker

import (
	"context"
	"errors"
	"strings"

	"bugtrack/internal/domain/bug"
	"bugtrack/internal/errs"
)

// UpdateBug merges a partial patch into the stored record, re-validates
// the merged result as a whole, and persists it. Unchanged fields must
// still satisfy the invariants; id and createdAt are never patchable.
func (s *Service) UpdateBug(ctx context.Context, id string, input UpdateBugInput) (bug.Bug, error) {
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
	if strings.TrimSpace(id) == "" {
		return bug.Bug{}, bug.ErrNotFound
	}

	var updated bug.Bug
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetBug(txCtx, id)
		if err != nil {
			return err
		}

		merged := applyPatch(current, input)
		result := bug.Validate(bug.Candidate{
			Title:       merged.Title,
			Description: merged.Description,
			Priority:    string(merged.Priority),
			Status:      string(merged.Status),
		})
		if err := result.Err(); err != nil {
			return err
		}

		merged.Title = strings.TrimSpace(merged.Title)
		merged.Description = strings.TrimSpace(merged.Description)

		updated, err = s.repo.UpdateBug(txCtx, merged)
		return err
	}); err != nil {
		var validationErr *bug.ValidationError
		if errors.Is(err, bug.ErrNotFound) || errors.As(err, &validationErr) {
			return bug.Bug{}, err
		}
		return bug.Bug{}, errs.Wrap(err, "update bug")
	}

	return updated, nil
}

func applyPatch(current bug.Bug, input UpdateBugInput) bug.Bug {
	merged := current
	if input.Title != nil {
		merged.Title = *input.Title
	}
	if input.Description != nil {
		merged.Description = *input.Description
	}
	if input.Priority != nil {
		merged.Priority = bug.Priority(*input.Priority)
	}
	if input.Status != nil {
		merged.Status = bug.Status(*input.Status)
	}
	return merged
}
