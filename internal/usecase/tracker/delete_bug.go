package tracker

import (
	"context"
	"errors"
	"strings"

	"bugtrack/internal/domain/bug"
	"bugtrack/internal/errs"
)

// DeleteBug removes the record immediately and permanently. Deleting
// an id that does not exist (including one already deleted) reports
// bug.ErrNotFound.
func (s *Service) DeleteBug(ctx context.Context, id string) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return errors.New("bug repository is required")
	}
	if s.uow == nil {
		return errors.New("unit of work is required")
	}
	if strings.TrimSpace(id) == "" {
		return bug.ErrNotFound
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		return s.repo.DeleteBug(txCtx, id)
	}); err != nil {
		if errors.Is(err, bug.ErrNotFound) {
			return err
		}
		return errs.Wrap(err, "delete bug")
	}
	return nil
}
