package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "github.com/MarcoAlber/KanMind/internal/domain"
	"github.com/MarcoAlber/KanMind/internal/repo"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestCreateTaskDefaults(t *testing.T) {
	f := newFixture(t, nil)

	alice := f.mustUser(t, "alice@example.com", "Alice")
	b := f.mustBoard(t, alice.ID, "Sprint 1")

	task := f.mustTask(t, alice.ID, b.ID, repo.TaskWrite{Title: "  Fix bug  "})
	if task.Title != "Fix bug" {
		t.Errorf("title = %q", task.Title)
	}
	if task.Status != dom.StatusToDo {
		t.Errorf("status = %q, want default to-do", task.Status)
	}
	if task.Priority != dom.PriorityMedium {
		t.Errorf("priority = %q, want default medium", task.Priority)
	}
	if task.CreatedBy != alice.ID {
		t.Errorf("created_by = %d", task.CreatedBy)
	}
}

func TestCreateTaskEmptyTitleNotPersisted(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	b := f.mustBoard(t, alice.ID, "Sprint 1")

	_, err := f.tasks.Create(ctx, alice.ID, b.ID, repo.TaskWrite{Title: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	if len(f.store.tasks) != 0 {
		t.Fatalf("%d tasks persisted despite validation failure", len(f.store.tasks))
	}
}

func TestCreateTaskBadEnums(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	b := f.mustBoard(t, alice.ID, "Sprint 1")

	if _, err := f.tasks.Create(ctx, alice.ID, b.ID, repo.TaskWrite{Title: "x", Status: "doing"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad status: got %v", err)
	}
	if _, err := f.tasks.Create(ctx, alice.ID, b.ID, repo.TaskWrite{Title: "x", Priority: "urgent"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad priority: got %v", err)
	}
}

func TestCreateTaskUnknownAssignee(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	b := f.mustBoard(t, alice.ID, "Sprint 1")

	ghost := int64(404)
	_, err := f.tasks.Create(ctx, alice.ID, b.ID, repo.TaskWrite{Title: "x", AssigneeID: &ghost})
	if !errors.Is(err, ErrValidation) || !hasSubstring(err, "assignee") {
		t.Fatalf("got %v", err)
	}
	_, err = f.tasks.Create(ctx, alice.ID, b.ID, repo.TaskWrite{Title: "x", ReviewerID: &ghost})
	if !errors.Is(err, ErrValidation) || !hasSubstring(err, "reviewer") {
		t.Fatalf("got %v", err)
	}
}

// fkFailTasks simulates a user row vanishing between the existence check and
// the insert, which surfaces as a foreign key violation from Postgres.
type fkFailTasks struct{ memTasks }

func (r fkFailTasks) Create(_ context.Context, _, _ int64, _ repo.TaskWrite) (dom.Task, error) {
	return dom.Task{}, &pgconn.PgError{Code: "23503", ConstraintName: "tasks_assignee_id_fkey"}
}

func TestCreateTaskAssigneeVanished(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	b := f.mustBoard(t, alice.ID, "Sprint 1")

	svc := NewTaskService(fkFailTasks{memTasks{f.store}}, memUsers{f.store}, f.guard, nil)
	_, err := svc.Create(ctx, alice.ID, b.ID, repo.TaskWrite{Title: "x", AssigneeID: &alice.ID})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestCreateTaskOnForeignBoard(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	bob := f.mustUser(t, "bob@example.com", "Bob")
	b := f.mustBoard(t, alice.ID, "Sprint 1")

	if _, err := f.tasks.Create(ctx, bob.ID, b.ID, repo.TaskWrite{Title: "sneaky"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if len(f.store.tasks) != 0 {
		t.Fatal("task persisted despite denial")
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	bob := f.mustUser(t, "bob@example.com", "Bob")
	b := f.mustBoard(t, alice.ID, "Sprint 1")
	task := f.mustTask(t, alice.ID, b.ID, repo.TaskWrite{
		Title: "Fix bug", Description: "crashes on load", AssigneeID: &alice.ID,
	})

	status := dom.StatusInProgress
	got, err := f.tasks.Update(ctx, alice.ID, task.ID, TaskPatch{Status: &status, ReviewerID: &bob.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != dom.StatusInProgress {
		t.Errorf("status = %q", got.Status)
	}
	if got.Title != "Fix bug" || got.Description != "crashes on load" {
		t.Errorf("untouched fields changed: %q %q", got.Title, got.Description)
	}
	if got.Assignee == nil || got.Assignee.ID != alice.ID {
		t.Errorf("assignee lost: %+v", got.Assignee)
	}
	if got.Reviewer == nil || got.Reviewer.ID != bob.ID {
		t.Errorf("reviewer not set: %+v", got.Reviewer)
	}
}

func TestUpdateTaskClearAssignee(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	b := f.mustBoard(t, alice.ID, "Sprint 1")
	task := f.mustTask(t, alice.ID, b.ID, repo.TaskWrite{Title: "Fix bug", AssigneeID: &alice.ID})

	zero := int64(0)
	got, err := f.tasks.Update(ctx, alice.ID, task.ID, TaskPatch{AssigneeID: &zero})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Assignee != nil {
		t.Fatalf("assignee not cleared: %+v", got.Assignee)
	}
}

func TestUpdateTaskDueDate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	b := f.mustBoard(t, alice.ID, "Sprint 1")
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	task := f.mustTask(t, alice.ID, b.ID, repo.TaskWrite{Title: "Fix bug", DueDate: &due})

	// Patch without DueDateSet keeps the date.
	got, err := f.tasks.Update(ctx, alice.ID, task.ID, TaskPatch{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("due date lost: %v", got.DueDate)
	}

	// DueDateSet with nil clears it.
	got, err = f.tasks.Update(ctx, alice.ID, task.ID, TaskPatch{DueDateSet: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.DueDate != nil {
		t.Fatalf("due date not cleared: %v", got.DueDate)
	}
}

func TestUpdateForeignTask(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	bob := f.mustUser(t, "bob@example.com", "Bob")
	b := f.mustBoard(t, alice.ID, "Sprint 1")
	task := f.mustTask(t, alice.ID, b.ID, repo.TaskWrite{Title: "Fix bug"})

	title := "hijacked"
	if _, err := f.tasks.Update(ctx, bob.ID, task.ID, TaskPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := f.tasks.Delete(ctx, bob.ID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteTaskCascadesComments(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	b := f.mustBoard(t, alice.ID, "Sprint 1")
	task := f.mustTask(t, alice.ID, b.ID, repo.TaskWrite{Title: "Fix bug"})
	if _, err := f.comments.Create(ctx, alice.ID, task.ID, "first"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if err := f.tasks.Delete(ctx, alice.ID, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.store.tasks) != 0 || len(f.store.comments) != 0 {
		t.Fatalf("orphans survive: %d tasks, %d comments", len(f.store.tasks), len(f.store.comments))
	}
}

func TestAssignedAndReviewingLists(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	bob := f.mustUser(t, "bob@example.com", "Bob")
	b := f.mustBoard(t, alice.ID, "Sprint 1")
	f.mustTask(t, alice.ID, b.ID, repo.TaskWrite{Title: "Fix bug", AssigneeID: &alice.ID, ReviewerID: &bob.ID})
	f.mustTask(t, alice.ID, b.ID, repo.TaskWrite{Title: "Write docs", AssigneeID: &bob.ID})

	assigned, err := f.tasks.AssignedTo(ctx, alice.ID)
	if err != nil {
		t.Fatalf("assigned: %v", err)
	}
	if len(assigned) != 1 || assigned[0].Title != "Fix bug" {
		t.Fatalf("alice assigned = %+v", assigned)
	}

	reviewing, err := f.tasks.Reviewing(ctx, bob.ID)
	if err != nil {
		t.Fatalf("reviewing: %v", err)
	}
	if len(reviewing) != 1 || reviewing[0].Title != "Fix bug" {
		t.Fatalf("bob reviewing = %+v", reviewing)
	}

	if list, _ := f.tasks.AssignedTo(ctx, 9999); len(list) != 0 {
		t.Fatalf("fresh user sees %d assigned tasks", len(list))
	}
}

func TestAssignedListInvalidatedOnAssignment(t *testing.T) {
	f := newFixture(t, newRedisCache(t))
	ctx := context.Background()

	alice := f.mustUser(t, "alice@example.com", "Alice")
	bob := f.mustUser(t, "bob@example.com", "Bob")
	b := f.mustBoard(t, alice.ID, "Sprint 1")
	task := f.mustTask(t, alice.ID, b.ID, repo.TaskWrite{Title: "Fix bug"})

	// Prime bob's (empty) assigned cache.
	if list, err := f.tasks.AssignedTo(ctx, bob.ID); err != nil || len(list) != 0 {
		t.Fatalf("prime: %v %v", list, err)
	}

	if _, err := f.tasks.Update(ctx, alice.ID, task.ID, TaskPatch{AssigneeID: &bob.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	list, err := f.tasks.AssignedTo(ctx, bob.ID)
	if err != nil {
		t.Fatalf("assigned: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("bob's cached list not invalidated, got %d tasks", len(list))
	}
}
