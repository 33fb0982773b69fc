package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bugtrack/internal/domain/bug"
	"bugtrack/internal/errs"
	"bugtrack/internal/infrastructure/persistence/sqlite/model"
	"bugtrack/internal/ports"
)

type BugRepository struct {
	db *gorm.DB
}

func NewBugRepository(db *gorm.DB) *BugRepository {
	return &BugRepository{db: db}
}

func (r *BugRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *BugRepository) ListBugs(ctx context.Context) ([]bug.Bug, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// rowid breaks created_at ties in insertion order; the driver is
	// sqlite-only so rowid is always present.
	var rows []model.Bug
	if err := db.Model(&model.Bug{}).
		Order("created_at desc, rowid asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query bugs")
	}

	items := make([]bug.Bug, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapBug(row))
	}
	return items, nil
}

func (r *BugRepository) GetBug(ctx context.Context, id string) (bug.Bug, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return bug.Bug{}, err
	}

	var row model.Bug
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bug.Bug{}, bug.ErrNotFound
		}
		return bug.Bug{}, errs.Wrap(err, "query bug")
	}
	return mapBug(row), nil
}

func (r *BugRepository) CreateBug(ctx context.Context, b bug.Bug) (bug.Bug, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return bug.Bug{}, err
	}

	row := mapRow(b)
	if err := db.Create(&row).Error; err != nil {
		return bug.Bug{}, errs.Wrap(err, "insert bug")
	}
	return mapBug(row), nil
}

func (r *BugRepository) UpdateBug(ctx context.Context, b bug.Bug) (bug.Bug, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return bug.Bug{}, err
	}

	result := db.Model(&model.Bug{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"title":       b.Title,
			"description": b.Description,
			"priority":    string(b.Priority),
			"status":      string(b.Status),
		})
	if result.Error != nil {
		return bug.Bug{}, errs.Wrap(result.Error, "update bug")
	}
	if result.RowsAffected == 0 {
		return bug.Bug{}, bug.ErrNotFound
	}

	return r.GetBug(ctx, b.ID)
}

func (r *BugRepository) DeleteBug(ctx context.Context, id string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(&model.Bug{})
	if result.Error != nil {
		return errs.Wrap(result.Error, "delete bug")
	}
	if result.RowsAffected == 0 {
		return bug.ErrNotFound
	}
	return nil
}

func mapBug(row model.Bug) bug.Bug {
	return bug.Bug{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    bug.Priority(row.Priority),
		Status:      bug.Status(row.Status),
		CreatedAt:   row.CreatedAt,
	}
}

func mapRow(b bug.Bug) model.Bug {
	return model.Bug{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Priority:    string(b.Priority),
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}
