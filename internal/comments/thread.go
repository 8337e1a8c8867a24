package comments

import (
	"context"
	"fmt"
	"strings"
	"sync"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

// Thread — состояние комментариев на странице проекта.
//
// Сетевые вызовы идут вне блокировки; флаги loading/submitting
// выставляются до вызова и снимаются в defer. Неудачная операция
// уведомляет пользователя и не меняет дерево.
type Thread struct {
	projectID int64
	backend   Backend
	users     Users
	notifier  notify.Notifier
	opts      []BuildOption

	mu         sync.Mutex
	tree       []*models.Comment
	loaded     bool
	loading    bool
	submitting int
	gen        uint64
}

// ThreadState — снимок ветки для отображения.
type ThreadState struct {
	ProjectID  int64             `json:"project_id"`
	Comments   []*models.Comment `json:"comments"`
	Total      int               `json:"total"`
	Loaded     bool              `json:"loaded"`
	Loading    bool              `json:"loading"`
	Submitting bool              `json:"submitting"`
}

// NewThread создаёт пустую ветку; данные появляются после Load.
func NewThread(projectID int64, backend Backend, users Users, n notify.Notifier, opts ...BuildOption) *Thread {
	return &Thread{
		projectID: projectID,
		backend:   backend,
		users:     users,
		notifier:  n,
		opts:      opts,
		tree:      []*models.Comment{},
	}
}

// State возвращает снимок; дерево неизменяемо и безопасно для чтения.
func (t *Thread) State() ThreadState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return ThreadState{
		ProjectID:  t.projectID,
		Comments:   t.tree,
		Total:      Count(t.tree),
		Loaded:     t.loaded,
		Loading:    t.loading,
		Submitting: t.submitting > 0,
	}
}

// Load запрашивает плоский список и перестраивает дерево.
// Ответ, завершившийся после более позднего Load, отбрасывается.
func (t *Thread) Load(ctx context.Context) error {
	const op = "comments/Thread.Load"

	lg := log.From(ctx).With("op", op, "project_id", t.projectID)

	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.loading = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		if gen == t.gen {
			t.loading = false
		}
		t.mu.Unlock()
	}()

	flat, err := t.backend.ListComments(ctx, t.projectID)
	if err != nil {
		lg.Warn("list comments failed", "err", err)
		notify.Failure(ctx, t.notifier, notify.KeyCommentsLoadFailed, err)
		return fmt.Errorf("%s: %w", op, err)
	}

	tree := Build(flat, t.opts...)

	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		lg.Debug("stale comments response dropped")
		return fmt.Errorf("%s: %w", op, apierrors.ErrStale)
	}
	t.tree = tree
	t.loaded = true

	return nil
}

// Add публикует комментарий верхнего уровня.
func (t *Thread) Add(ctx context.Context, content string) (models.Comment, error) {
	return t.create(ctx, "comments/Thread.Add", nil, content, notify.KeyCommentCreated, notify.KeyCommentCreateFailed)
}

// Reply публикует ответ на parentID.
func (t *Thread) Reply(ctx context.Context, parentID int64, content string) (models.Comment, error) {
	return t.create(ctx, "comments/Thread.Reply", &parentID, content, notify.KeyCommentReplied, notify.KeyCommentReplyFailed)
}

func (t *Thread) create(ctx context.Context, op string, parentID *int64, content, okKey, failKey string) (models.Comment, error) {
	lg := log.From(ctx).With("op", op, "project_id", t.projectID)

	content = strings.TrimSpace(content)
	if content == "" {
		lg.Warn("invalid argument: empty content")
		notify.Warning(ctx, t.notifier, notify.KeyCommentEmpty)
		return models.Comment{}, fmt.Errorf("%s: %w", op, apierrors.Invalid("content", "empty"))
	}

	done := t.beginSubmit()
	defer done()

	created, err := t.backend.CreateComment(ctx, t.projectID, models.CommentCreate{Content: content, ParentID: parentID})
	if err != nil {
		lg.Warn("create comment failed", "err", err)
		notify.Failure(ctx, t.notifier, failKey, err)
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	// Место в дереве задаёт запрошенный родитель: parent_id в ответе необязателен.
	created.ParentID = nil
	if parentID != nil {
		p := *parentID
		created.ParentID = &p
	}

	t.mu.Lock()
	// Комментарий мог прийти вместе с параллельной перезагрузкой.
	if Find(t.tree, created.ID) == nil {
		next, ok := Insert(t.tree, created)
		if !ok {
			lg.Warn("reply parent is not in the tree", "parent_id", *created.ParentID)
		}
		t.tree = next
	}
	t.mu.Unlock()

	notify.Success(ctx, t.notifier, okKey)
	return created, nil
}

// Delete удаляет комментарий вместе с ответами.
// Разрешено администратору и автору комментария.
func (t *Thread) Delete(ctx context.Context, id int64) error {
	const op = "comments/Thread.Delete"

	lg := log.From(ctx).With("op", op, "project_id", t.projectID, "id", id)

	t.mu.Lock()
	target := Find(t.tree, id)
	t.mu.Unlock()

	if target == nil {
		lg.Warn("comment not found")
		return fmt.Errorf("%s: %w", op, apierrors.ErrNotFound)
	}

	var user *models.User
	if t.users != nil {
		user = t.users.CurrentUser()
	}
	if user == nil || (!user.IsAdmin() && target.User.ID != user.ID) {
		lg.Warn("permission denied")
		notify.Warning(ctx, t.notifier, notify.KeyCommentNoPermission)
		return fmt.Errorf("%s: %w", op, apierrors.ErrForbidden)
	}

	done := t.beginSubmit()
	defer done()

	if err := t.backend.DeleteComment(ctx, id); err != nil {
		lg.Warn("delete comment failed", "err", err)
		notify.Failure(ctx, t.notifier, notify.KeyCommentDeleteFailed, err)
		return fmt.Errorf("%s: %w", op, err)
	}

	t.mu.Lock()
	t.tree, _ = Remove(t.tree, id)
	t.mu.Unlock()

	notify.Success(ctx, t.notifier, notify.KeyCommentDeleted)
	return nil
}

func (t *Thread) beginSubmit() func() {
	t.mu.Lock()
	t.submitting++
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		t.submitting--
		t.mu.Unlock()
	}
}

// Threads — ветки комментариев по проектам (по одной на страницу проекта).
type Threads struct {
	backend  Backend
	users    Users
	notifier notify.Notifier
	opts     []BuildOption

	mu   sync.Mutex
	byID map[int64]*Thread
}

func NewThreads(backend Backend, users Users, n notify.Notifier, opts ...BuildOption) *Threads {
	return &Threads{
		backend:  backend,
		users:    users,
		notifier: n,
		opts:     opts,
		byID:     make(map[int64]*Thread),
	}
}

// Get возвращает ветку проекта, создавая её при первом обращении.
func (ts *Threads) Get(projectID int64) *Thread {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	th, ok := ts.byID[projectID]
	if !ok {
		th = NewThread(projectID, ts.backend, ts.users, ts.notifier, ts.opts...)
		ts.byID[projectID] = th
	}

	return th
}

// Forget сбрасывает ветку (уход со страницы проекта).
func (ts *Threads) Forget(projectID int64) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	delete(ts.byID, projectID)
}
