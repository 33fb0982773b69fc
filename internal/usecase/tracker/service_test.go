package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"bugtrack/internal/domain/bug"
	"bugtrack/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "bugtrack/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "bugtrack/internal/infrastructure/persistence/sqlite/uow"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&model.Bug{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	svc := NewService(sqliterepo.NewBugRepository(db), sqliteuow.NewUnitOfWork(db))

	// Deterministic strictly increasing timestamps.
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	return svc
}

func TestCreateBugDefaultsAndRoundTrip(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateBug(ctx, CreateBugInput{
		Title:       "Login Issue",
		Description: "Users cannot log in with correct credentials",
	})
	if err != nil {
		t.Fatalf("CreateBug() error = %v", err)
	}

	if created.ID == "" {
		t.Fatalf("created.ID is empty")
	}
	if created.Status != bug.StatusOpen {
		t.Fatalf("created.Status = %q, want %q", created.Status, bug.StatusOpen)
	}
	if created.Priority != bug.PriorityLow {
		t.Fatalf("created.Priority = %q, want %q", created.Priority, bug.PriorityLow)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("created.CreatedAt is zero")
	}

	got, err := svc.GetBug(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBug() error = %v", err)
	}
	if got.ID != created.ID || got.Title != created.Title || got.Description != created.Description ||
		got.Priority != created.Priority || got.Status != created.Status || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("GetBug() = %+v, want %+v", got, created)
	}
}

func TestCreateBugValidationWritesNothing(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	testCases := []struct {
		name        string
		input       CreateBugInput
		wantField   string
		wantMessage string
	}{
		{
			name:        "short title",
			input:       CreateBugInput{Title: "Bug", Description: "a long enough description"},
			wantField:   "title",
			wantMessage: bug.MsgTitleTooShort,
		},
		{
			name:        "blank title",
			input:       CreateBugInput{Title: "   ", Description: "a long enough description"},
			wantField:   "title",
			wantMessage: bug.MsgTitleRequired,
		},
		{
			name:        "short description",
			input:       CreateBugInput{Title: "Valid title", Description: "too short"},
			wantField:   "description",
			wantMessage: bug.MsgDescriptionTooShort,
		},
		{
			name:        "unknown priority",
			input:       CreateBugInput{Title: "Valid title", Description: "a long enough description", Priority: "Urgent"},
			wantField:   "priority",
			wantMessage: bug.MsgInvalidPriority,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := svc.CreateBug(ctx, testCase.input)

			var validationErr *bug.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("CreateBug() error = %v, want *bug.ValidationError", err)
			}
			if got := validationErr.FieldErrors[testCase.wantField]; got != testCase.wantMessage {
				t.Fatalf("%s error = %q, want %q", testCase.wantField, got, testCase.wantMessage)
			}
		})
	}

	items, err := svc.ListBugs(ctx)
	if err != nil {
		t.Fatalf("ListBugs() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("len(items) = %d, want 0 after rejected creates", len(items))
	}
}

func TestCreateBugBoundaryLengths(t *testing.T) {
	svc := setupService(t)

	created, err := svc.CreateBug(context.Background(), CreateBugInput{
		Title:       strings.Repeat("t", bug.TitleMinLen),
		Description: strings.Repeat("d", bug.DescriptionMinLen),
		Priority:    "Medium",
	})
	if err != nil {
		t.Fatalf("CreateBug() error = %v", err)
	}
	if created.Priority != bug.PriorityMedium {
		t.Fatalf("created.Priority = %q, want Medium", created.Priority)
	}
}

func TestListBugsNewestFirst(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, title := range []string{"Bug alpha", "Bug bravo", "Bug charlie"} {
		if _, err := svc.CreateBug(ctx, CreateBugInput{
			Title:       title,
			Description: "a long enough description",
		}); err != nil {
			t.Fatalf("CreateBug(%q) error = %v", title, err)
		}
	}

	items, err := svc.ListBugs(ctx)
	if err != nil {
		t.Fatalf("ListBugs() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	wantOrder := []string{"Bug charlie", "Bug bravo", "Bug alpha"}
	for i, want := range wantOrder {
		if items[i].Title != want {
			t.Fatalf("items[%d].Title = %q, want %q", i, items[i].Title, want)
		}
	}
}

func TestListBugsEmptyCollection(t *testing.T) {
	svc := setupService(t)

	items, err := svc.ListBugs(context.Background())
	if err != nil {
		t.Fatalf("ListBugs() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("len(items) = %d, want 0", len(items))
	}
}

func TestUpdateBugStatusTransition(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateBug(ctx, CreateBugInput{
		Title:       "Login Issue",
		Description: "Users cannot log in with correct credentials",
	})
	if err != nil {
		t.Fatalf("CreateBug() error = %v", err)
	}

	status := string(bug.StatusResolved)
	updated, err := svc.UpdateBug(ctx, created.ID, UpdateBugInput{Status: &status})
	if err != nil {
		t.Fatalf("UpdateBug() error = %v", err)
	}

	if updated.Status != bug.StatusResolved {
		t.Fatalf("updated.Status = %q, want Resolved", updated.Status)
	}
	if updated.Title != created.Title || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("update touched immutable fields: %+v", updated)
	}

	got, err := svc.GetBug(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBug() error = %v", err)
	}
	if got.Status != bug.StatusResolved {
		t.Fatalf("persisted status = %q, want Resolved", got.Status)
	}
}

func TestUpdateBugRejectsInvalidEnums(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateBug(ctx, CreateBugInput{
		Title:       "Login Issue",
		Description: "Users cannot log in with correct credentials",
	})
	if err != nil {
		t.Fatalf("CreateBug() error = %v", err)
	}

	priority := "InvalidPriority"
	_, err = svc.UpdateBug(ctx, created.ID, UpdateBugInput{Priority: &priority})

	var validationErr *bug.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("UpdateBug() error = %v, want *bug.ValidationError", err)
	}
	if got := validationErr.FieldErrors["priority"]; got != bug.MsgInvalidPriority {
		t.Fatalf("priority error = %q, want %q", got, bug.MsgInvalidPriority)
	}

	got, err := svc.GetBug(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBug() error = %v", err)
	}
	if got.Priority != bug.PriorityLow {
		t.Fatalf("priority after rejected update = %q, want Low", got.Priority)
	}
}

func TestUpdateBugRevalidatesMergedRecord(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateBug(ctx, CreateBugInput{
		Title:       "Login Issue",
		Description: "Users cannot log in with correct credentials",
	})
	if err != nil {
		t.Fatalf("CreateBug() error = %v", err)
	}

	title := "Bug"
	_, err = svc.UpdateBug(ctx, created.ID, UpdateBugInput{Title: &title})

	var validationErr *bug.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("UpdateBug() error = %v, want *bug.ValidationError", err)
	}

	got, err := svc.GetBug(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBug() error = %v", err)
	}
	if got.Title != "Login Issue" {
		t.Fatalf("title after rejected update = %q, want unchanged", got.Title)
	}
}

func TestUpdateBugNotFound(t *testing.T) {
	svc := setupService(t)

	status := string(bug.StatusClosed)
	_, err := svc.UpdateBug(context.Background(), "missing-id", UpdateBugInput{Status: &status})
	if !errors.Is(err, bug.ErrNotFound) {
		t.Fatalf("UpdateBug() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteBugIdempotence(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateBug(ctx, CreateBugInput{
		Title:       "Login Issue",
		Description: "Users cannot log in with correct credentials",
	})
	if err != nil {
		t.Fatalf("CreateBug() error = %v", err)
	}

	if err := svc.DeleteBug(ctx, created.ID); err != nil {
		t.Fatalf("DeleteBug() error = %v", err)
	}

	if err := svc.DeleteBug(ctx, created.ID); !errors.Is(err, bug.ErrNotFound) {
		t.Fatalf("second DeleteBug() error = %v, want ErrNotFound", err)
	}

	if _, err := svc.GetBug(ctx, created.ID); !errors.Is(err, bug.ErrNotFound) {
		t.Fatalf("GetBug() after delete error = %v, want ErrNotFound", err)
	}
}
