package tracker

import (
	"context"
	"errors"
	"strings"

	"bugtrack/internal/domain/bug"
	"bugtrack/internal/errs"
)

// ListBugs returns every bug newest first. An empty collection is an
// empty slice, not an error.
func (s *Service) ListBugs(ctx context.Context) ([]bug.Bug, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("bug repository is required")
	}

	items, err := s.repo.ListBugs(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list bugs")
	}
	return items, nil
}

// GetBug returns a single record or bug.ErrNotFound.
func (s *Service) GetBug(ctx context.Context, id string) (bug.Bug, error) {
	if ctx == nil {
		return bug.Bug{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return bug.Bug{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return bug.Bug{}, errors.New("bug repository is required")
	}
	if strings.TrimSpace(id) == "" {
		return bug.Bug{}, bug.ErrNotFound
	}

	item, err := s.repo.GetBug(ctx, id)
	if err != nil {
		if errors.Is(err, bug.ErrNotFound) {
			return bug.Bug{}, err
		}
		return bug.Bug{}, errs.Wrap(err, "get bug")
	}
	return item, nil
}
