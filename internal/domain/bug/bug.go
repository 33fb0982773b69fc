package bug

import "time"

// Status is the lifecycle state of a bug. The set is case-sensitive
// and shared by every tier: the console validates against the same
// values the store persists.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In-Progress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

// Priority is the urgency of a bug.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

const (
	TitleMinLen       = 5
	DescriptionMinLen = 10
)

var validStatuses = map[Status]struct{}{
	StatusOpen:       {},
	StatusInProgress: {},
	StatusResolved:   {},
	StatusClosed:     {},
}

var validPriorities = map[Priority]struct{}{
	PriorityLow:      {},
	PriorityMedium:   {},
	PriorityHigh:     {},
	PriorityCritical: {},
}

func (s Status) Valid() bool {
	_, ok := validStatuses[s]
	return ok
}

func (p Priority) Valid() bool {
	_, ok := validPriorities[p]
	return ok
}

// Statuses returns the accepted statuses in lifecycle order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
}

// Priorities returns the accepted priorities from least to most urgent.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Bug is the persisted entity. ID and CreatedAt are server-assigned
// and immutable; everything else is mutable through an update patch.
type Bug struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
