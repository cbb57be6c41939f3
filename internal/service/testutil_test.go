package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/MarcoAlber/KanMind/internal/access"
	"github.com/MarcoAlber/KanMind/internal/cache"
	dom "github.com/MarcoAlber/KanMind/internal/domain"
	"github.com/MarcoAlber/KanMind/internal/repo"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// memStore is an in-memory stand-in for Postgres shared by the fake repos.
type memStore struct {
	users    map[int64]dom.User
	boards   map[int64]dom.Board
	tasks    map[int64]memTask
	comments map[int64]dom.Comment
	nextID   int64
}

type memTask struct {
	task       dom.Task
	assigneeID *int64
	reviewerID *int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]dom.User),
		boards:   make(map[int64]dom.Board),
		tasks:    make(map[int64]memTask),
		comments: make(map[int64]dom.Comment),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) materialize(mt memTask) dom.Task {
	t := mt.task
	if mt.assigneeID != nil {
		if u, ok := s.users[*mt.assigneeID]; ok {
			ref := u.Ref()
			t.Assignee = &ref
		}
	}
	if mt.reviewerID != nil {
		if u, ok := s.users[*mt.reviewerID]; ok {
			ref := u.Ref()
			t.Reviewer = &ref
		}
	}
	var count int64
	for _, c := range s.comments {
		if c.TaskID == t.ID {
			count++
		}
	}
	t.CommentsCount = count
	return t
}

type memUsers struct{ s *memStore }

func (r memUsers) GetByEmail(_ context.Context, email string) (dom.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r memUsers) GetByID(_ context.Context, id int64) (dom.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r memUsers) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.users[id]
	return ok, nil
}

func (r memUsers) Create(_ context.Context, email, fullName, passwordHash string) (dom.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	u := dom.User{ID: r.s.id(), Email: email, FullName: fullName, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.s.users[u.ID] = u
	return u, nil
}

type memBoards struct{ s *memStore }

func (r memBoards) Create(_ context.Context, ownerID int64, title string) (dom.Board, error) {
	b := dom.Board{ID: r.s.id(), Title: title, OwnerID: ownerID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.s.boards[b.ID] = b
	return b, nil
}

func (r memBoards) GetByID(_ context.Context, id int64) (dom.Board, error) {
	b, ok := r.s.boards[id]
	if !ok {
		return dom.Board{}, pgx.ErrNoRows
	}
	return b, nil
}

func (r memBoards) withCounts(b dom.Board) dom.Board {
	for _, mt := range r.s.tasks {
		if mt.task.BoardID != b.ID {
			continue
		}
		b.TicketCount++
		if mt.task.Status == dom.StatusToDo {
			b.ToDoCount++
		}
		if mt.task.Priority == dom.PriorityHigh {
			b.HighPrioCount++
		}
	}
	return b
}

func (r memBoards) GetWithCounts(ctx context.Context, id int64) (dom.Board, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return dom.Board{}, err
	}
	return r.withCounts(b), nil
}

func (r memBoards) ListByOwner(_ context.Context, ownerID int64) ([]dom.Board, error) {
	var list []dom.Board
	for _, b := range r.s.boards {
		if b.OwnerID == ownerID {
			list = append(list, r.withCounts(b))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r memBoards) UpdateTitle(_ context.Context, id int64, title string) (dom.Board, error) {
	b, ok := r.s.boards[id]
	if !ok {
		return dom.Board{}, pgx.ErrNoRows
	}
	b.Title = title
	b.UpdatedAt = time.Now()
	r.s.boards[id] = b
	return b, nil
}

func (r memBoards) Delete(_ context.Context, id int64) error {
	for tid, mt := range r.s.tasks {
		if mt.task.BoardID != id {
			continue
		}
		for cid, c := range r.s.comments {
			if c.TaskID == tid {
				delete(r.s.comments, cid)
			}
		}
		delete(r.s.tasks, tid)
	}
	delete(r.s.boards, id)
	return nil
}

type memTasks struct{ s *memStore }

func (r memTasks) Create(_ context.Context, boardID, createdBy int64, w repo.TaskWrite) (dom.Task, error) {
	mt := memTask{
		task: dom.Task{
			ID: r.s.id(), BoardID: boardID, Title: w.Title, Description: w.Description,
			Status: w.Status, Priority: w.Priority, DueDate: w.DueDate,
			CreatedBy: createdBy, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		},
		assigneeID: w.AssigneeID,
		reviewerID: w.ReviewerID,
	}
	r.s.tasks[mt.task.ID] = mt
	return r.s.materialize(mt), nil
}

func (r memTasks) GetByID(_ context.Context, id int64) (dom.Task, error) {
	mt, ok := r.s.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	return r.s.materialize(mt), nil
}

func (r memTasks) Update(_ context.Context, id int64, w repo.TaskWrite) (dom.Task, error) {
	mt, ok := r.s.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	mt.task.Title = w.Title
	mt.task.Description = w.Description
	mt.task.Status = w.Status
	mt.task.Priority = w.Priority
	mt.task.DueDate = w.DueDate
	mt.task.UpdatedAt = time.Now()
	mt.assigneeID = w.AssigneeID
	mt.reviewerID = w.ReviewerID
	r.s.tasks[id] = mt
	return r.s.materialize(mt), nil
}

func (r memTasks) Delete(_ context.Context, id int64) error {
	for cid, c := range r.s.comments {
		if c.TaskID == id {
			delete(r.s.comments, cid)
		}
	}
	delete(r.s.tasks, id)
	return nil
}

func (r memTasks) list(match func(memTask) bool) []dom.Task {
	var list []dom.Task
	for _, mt := range r.s.tasks {
		if match(mt) {
			list = append(list, r.s.materialize(mt))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (r memTasks) ListByBoard(_ context.Context, boardID int64) ([]dom.Task, error) {
	return r.list(func(mt memTask) bool { return mt.task.BoardID == boardID }), nil
}

func (r memTasks) ListByAssignee(_ context.Context, userID int64) ([]dom.Task, error) {
	return r.list(func(mt memTask) bool { return mt.assigneeID != nil && *mt.assigneeID == userID }), nil
}

func (r memTasks) ListByReviewer(_ context.Context, userID int64) ([]dom.Task, error) {
	return r.list(func(mt memTask) bool { return mt.reviewerID != nil && *mt.reviewerID == userID }), nil
}

type memComments struct{ s *memStore }

func (r memComments) Create(_ context.Context, taskID, authorID int64, content string) (dom.Comment, error) {
	var name string
	if u, ok := r.s.users[authorID]; ok {
		name = u.FullName
	}
	c := dom.Comment{ID: r.s.id(), TaskID: taskID, AuthorID: authorID, AuthorName: name, Content: content, CreatedAt: time.Now()}
	r.s.comments[c.ID] = c
	return c, nil
}

func (r memComments) GetByID(_ context.Context, id int64) (dom.Comment, error) {
	c, ok := r.s.comments[id]
	if !ok {
		return dom.Comment{}, pgx.ErrNoRows
	}
	return c, nil
}

func (r memComments) ListByTask(_ context.Context, taskID int64) ([]dom.Comment, error) {
	var list []dom.Comment
	for _, c := range r.s.comments {
		if c.TaskID == taskID {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r memComments) Delete(_ context.Context, id int64) error {
	delete(r.s.comments, id)
	return nil
}

// fixture bundles the fakes and services most tests need.
type fixture struct {
	store    *memStore
	guard    *access.Guard
	users    *UserService
	boards   *BoardService
	tasks    *TaskService
	comments *CommentService
}

func newFixture(t *testing.T, c *cache.ListCache) *fixture {
	t.Helper()
	s := newMemStore()
	ur := memUsers{s}
	br := memBoards{s}
	tr := memTasks{s}
	cr := memComments{s}
	g := access.NewGuard(br, tr, cr)
	return &fixture{
		store:    s,
		guard:    g,
		users:    NewUserService(ur),
		boards:   NewBoardService(br, tr, g, c),
		tasks:    NewTaskService(tr, ur, g, c),
		comments: NewCommentService(cr, tr, g, c),
	}
}

func newRedisCache(t *testing.T) *cache.ListCache {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewListCache(client, time.Minute)
}

func (f *fixture) mustUser(t *testing.T, email, name string) dom.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), email, name, "password1")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

func (f *fixture) mustBoard(t *testing.T, ownerID int64, title string) dom.Board {
	t.Helper()
	b, err := f.boards.Create(context.Background(), ownerID, title)
	if err != nil {
		t.Fatalf("create board %q: %v", title, err)
	}
	return b
}

func (f *fixture) mustTask(t *testing.T, ownerID, boardID int64, w repo.TaskWrite) dom.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), ownerID, boardID, w)
	if err != nil {
		t.Fatalf("create task %q: %v", w.Title, err)
	}
	return task
}

func hasSubstring(err error, sub string) bool {
	return err != nil && strings.Contains(err.Error(), sub)
}
