package comments

// Тесты ветки комментариев (thread.go).
//
// Подготовка моков:
//   mockgen -source=./internal/comments/backend.go -destination=./mocks/comments.go \
//     -package=mocks -mock_names=Backend=MockCommentsBackend

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
	"github.com/pribylovaa/opensource-sharing/mocks"
)

const projectID = int64(7)

func stored(id int64, parent *int64, userID int64) models.Comment {
	return models.Comment{ID: id, ParentID: parent, ProjectID: projectID, Content: "x", User: models.UserRelated{ID: userID}}
}

func newThread(t *testing.T, user *models.User) (*Thread, *mocks.MockCommentsBackend, *notify.Recorder) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mb := mocks.NewMockCommentsBackend(ctrl)
	mu := mocks.NewMockUsers(ctrl)
	mu.EXPECT().CurrentUser().Return(user).AnyTimes()
	rec := notify.NewRecorder(nil, 0)

	return NewThread(projectID, mb, mu, rec), mb, rec
}

func loaded(t *testing.T, user *models.User, flat []models.Comment) (*Thread, *mocks.MockCommentsBackend, *notify.Recorder) {
	t.Helper()

	th, mb, rec := newThread(t, user)
	mb.EXPECT().ListComments(gomock.Any(), projectID).Return(flat, nil)
	require.NoError(t, th.Load(context.Background()))

	return th, mb, rec
}

func TestThread_LoadBuildsTree(t *testing.T) {
	th, _, _ := loaded(t, nil, []models.Comment{stored(1, nil, 1), stored(2, ptr(1), 2), stored(3, ptr(99), 2)})

	st := th.State()
	require.True(t, st.Loaded)
	require.False(t, st.Loading)
	require.Equal(t, 2, st.Total)
	require.Equal(t, []int64{1}, ids(st.Comments))
}

func TestThread_LoadFailureKeepsTreeAndNotifies(t *testing.T) {
	th, mb, rec := loaded(t, nil, []models.Comment{stored(1, nil, 1)})

	mb.EXPECT().ListComments(gomock.Any(), projectID).Return(nil, apierrors.ErrTransport)
	err := th.Load(context.Background())
	require.ErrorIs(t, err, apierrors.ErrTransport)

	st := th.State()
	require.Equal(t, 1, st.Total)
	require.False(t, st.Loading)

	got := rec.Drain()
	require.Len(t, got, 1)
	require.Equal(t, notify.KeyCommentsLoadFailed, got[0].Key)
}

func TestThread_AddTrimsAndAppends(t *testing.T) {
	th, mb, rec := loaded(t, nil, []models.Comment{stored(1, nil, 1)})

	mb.EXPECT().
		CreateComment(gomock.Any(), projectID, models.CommentCreate{Content: "hello"}).
		Return(stored(5, nil, 3), nil)

	created, err := th.Add(context.Background(), "  hello  ")
	require.NoError(t, err)
	require.Equal(t, int64(5), created.ID)
	require.Equal(t, []int64{1, 5}, ids(th.State().Comments))

	got := rec.Drain()
	require.Len(t, got, 1)
	require.Equal(t, apierrors.KindSuccess, got[0].Kind)
	require.Equal(t, notify.KeyCommentCreated, got[0].Key)
}

func TestThread_AddEmptyIsValidationWithoutRequest(t *testing.T) {
	th, _, rec := newThread(t, nil)

	_, err := th.Add(context.Background(), "   ")
	_, ok := apierrors.AsValidation(err)
	require.True(t, ok)

	got := rec.Drain()
	require.Len(t, got, 1)
	require.Equal(t, notify.KeyCommentEmpty, got[0].Key)
}

func TestThread_ReplyInsertsUnderParent(t *testing.T) {
	th, mb, _ := loaded(t, nil, []models.Comment{stored(1, nil, 1), stored(2, ptr(1), 2)})

	mb.EXPECT().
		CreateComment(gomock.Any(), projectID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, in models.CommentCreate) (models.Comment, error) {
			require.Equal(t, int64(2), *in.ParentID)
			return stored(9, ptr(2), 3), nil
		})

	_, err := th.Reply(context.Background(), 2, "deep")
	require.NoError(t, err)

	st := th.State()
	require.Equal(t, 3, st.Total)
	require.Equal(t, []int64{9}, ids(Find(st.Comments, 2).Replies))
}

// Бэкенд не вернул parent_id: ответ всё равно встаёт под запрошенного родителя.
func TestThread_ReplyWithoutParentInResponse(t *testing.T) {
	th, mb, _ := loaded(t, nil, []models.Comment{stored(1, nil, 1)})

	mb.EXPECT().
		CreateComment(gomock.Any(), projectID, gomock.Any()).
		Return(models.Comment{ID: 2, ProjectID: projectID, Content: "hi"}, nil)

	created, err := th.Reply(context.Background(), 1, "hi")
	require.NoError(t, err)
	require.Equal(t, int64(1), *created.ParentID)

	st := th.State()
	require.Equal(t, []int64{1}, ids(st.Comments))
	require.Equal(t, []int64{2}, ids(Find(st.Comments, 1).Replies))
}

// Для комментария верхнего уровня чужой parent_id из ответа игнорируется.
func TestThread_AddIgnoresParentInResponse(t *testing.T) {
	th, mb, _ := loaded(t, nil, []models.Comment{stored(1, nil, 1)})

	mb.EXPECT().
		CreateComment(gomock.Any(), projectID, gomock.Any()).
		Return(stored(2, ptr(42), 1), nil)

	created, err := th.Add(context.Background(), "top")
	require.NoError(t, err)
	require.Nil(t, created.ParentID)

	st := th.State()
	require.Equal(t, []int64{1, 2}, ids(st.Comments))
	require.False(t, st.Submitting)
}

// Родитель исчез из дерева до ответа: дерево не меняется, ветка не блокируется.
func TestThread_ReplyToMissingParentKeepsTree(t *testing.T) {
	th, mb, _ := loaded(t, nil, []models.Comment{stored(1, nil, 1)})

	mb.EXPECT().
		CreateComment(gomock.Any(), projectID, gomock.Any()).
		Return(stored(3, ptr(99), 1), nil)

	_, err := th.Reply(context.Background(), 99, "lost")
	require.NoError(t, err)

	st := th.State()
	require.Equal(t, 1, st.Total)
	require.False(t, st.Submitting)
}

// Ответ бэкенда с code=400 при HTTP 200: уведомление, дерево не меняется.
func TestThread_DomainErrorDoesNotMutate(t *testing.T) {
	th, mb, rec := loaded(t, nil, []models.Comment{stored(1, nil, 1)})

	mb.EXPECT().
		CreateComment(gomock.Any(), projectID, gomock.Any()).
		Return(models.Comment{}, &apierrors.DomainError{Status: 200, Code: 400, Message: "内容违规"})

	_, err := th.Add(context.Background(), "spam")
	_, ok := apierrors.AsDomain(err)
	require.True(t, ok)

	st := th.State()
	require.Equal(t, 1, st.Total)
	require.False(t, st.Submitting)

	got := rec.Drain()
	require.Len(t, got, 1)
	require.Equal(t, apierrors.KindError, got[0].Kind)
	require.Equal(t, "内容违规", got[0].Text)
}

func TestThread_DeleteByAuthorRemovesSubtree(t *testing.T) {
	author := &models.User{ID: 2, Role: models.RoleUser}
	th, mb, _ := loaded(t, author, []models.Comment{
		stored(1, nil, 1), stored(2, ptr(1), 2), stored(3, ptr(2), 1), stored(4, nil, 1),
	})

	mb.EXPECT().DeleteComment(gomock.Any(), int64(2)).Return(nil)
	require.NoError(t, th.Delete(context.Background(), 2))

	st := th.State()
	require.Equal(t, 2, st.Total)
	require.Nil(t, Find(st.Comments, 3))
}

func TestThread_DeleteByAdmin(t *testing.T) {
	admin := &models.User{ID: 100, Role: models.RoleAdmin}
	th, mb, _ := loaded(t, admin, []models.Comment{stored(1, nil, 1)})

	mb.EXPECT().DeleteComment(gomock.Any(), int64(1)).Return(nil)
	require.NoError(t, th.Delete(context.Background(), 1))
	require.Zero(t, th.State().Total)
}

func TestThread_DeleteForbidden(t *testing.T) {
	stranger := &models.User{ID: 50, Role: models.RoleUser}
	th, _, rec := loaded(t, stranger, []models.Comment{stored(1, nil, 1)})

	err := th.Delete(context.Background(), 1)
	require.ErrorIs(t, err, apierrors.ErrForbidden)
	require.Equal(t, 1, th.State().Total)

	got := rec.Drain()
	require.Len(t, got, 1)
	require.Equal(t, apierrors.KindWarning, got[0].Kind)
	require.Equal(t, notify.KeyCommentNoPermission, got[0].Key)
}

func TestThread_DeleteAnonymousAndMissing(t *testing.T) {
	th, _, _ := loaded(t, nil, []models.Comment{stored(1, nil, 1)})

	require.ErrorIs(t, th.Delete(context.Background(), 1), apierrors.ErrForbidden)
	require.ErrorIs(t, th.Delete(context.Background(), 404), apierrors.ErrNotFound)
}

func TestThread_DeleteBackendFailureKeepsTree(t *testing.T) {
	author := &models.User{ID: 1}
	th, mb, _ := loaded(t, author, []models.Comment{stored(1, nil, 1)})

	mb.EXPECT().DeleteComment(gomock.Any(), int64(1)).Return(errors.New("boom"))
	require.Error(t, th.Delete(context.Background(), 1))
	require.Equal(t, 1, th.State().Total)
}

func TestThreads_GetIsStablePerProject(t *testing.T) {
	ts := NewThreads(nil, nil, nil)

	a := ts.Get(1)
	require.Same(t, a, ts.Get(1))
	require.NotSame(t, a, ts.Get(2))

	ts.Forget(1)
	require.NotSame(t, a, ts.Get(1))
}
