package model

import "time"

// Bug is the sqlite row shape. The descending created_at index backs
// the newest-first listing query.
type Bug struct {
	ID          string    `gorm:"column:id;type:text;primaryKey"`
	Title       string    `gorm:"column:title;type:text;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Priority    string    `gorm:"column:priority;type:text;not null;default:Low"`
	Status      string    `gorm:"column:status;type:text;not null;default:Open"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index:idx_bugs_created_at,sort:desc"`
}

func (Bug) TableName() string {
	return "bugs"
}
