package search

// Тесты двухфазного поиска (session.go, filters.go, related.go, suggest.go).
//
// Подготовка моков:
//   mockgen -source=./internal/search/backend.go -destination=./mocks/search.go \
//     -package=mocks -mock_names=Backend=MockSearchBackend

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
	"github.com/pribylovaa/opensource-sharing/mocks"
)

func boolPtr(v bool) *bool { return &v }

func projects(ids ...int64) []models.ProjectSummary {
	out := make([]models.ProjectSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.ProjectSummary{ID: id, IsApproved: true})
	}
	return out
}

func pageOf(total, page, pages int, ids ...int64) models.Page[models.ProjectSummary] {
	return models.Page[models.ProjectSummary]{Items: projects(ids...), Total: total, Page: page, Pages: pages, PageSize: 2}
}

func newSession(t *testing.T) (*Session, *mocks.MockSearchBackend, *notify.Recorder) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mb := mocks.NewMockSearchBackend(ctrl)
	rec := notify.NewRecorder(nil, 0)

	return NewSession(mb, rec, 2), mb, rec
}

func TestFilters_EqualTreatsTagsAsSet(t *testing.T) {
	a := Filters{Keyword: " go ", Tags: []int64{3, 1, 1}}
	b := Filters{Keyword: "go", Tags: []int64{1, 3}}
	require.True(t, a.Equal(b))

	require.False(t, a.Equal(Filters{Keyword: "go", Tags: []int64{1}}))
	require.False(t, b.Equal(Filters{Keyword: "go", Tags: []int64{1, 3}, Featured: boolPtr(false)}))
	require.True(t, Filters{Featured: boolPtr(true)}.Equal(Filters{Featured: boolPtr(true)}))

	p := a.Params()
	require.Equal(t, "go", p.Keyword)
	require.Equal(t, []int64{1, 3}, p.Tags)
	require.True(t, p.IndexedTags)
}

func TestSession_PageChangeReusesIDs(t *testing.T) {
	ctx := context.Background()
	s, mb, _ := newSession(t)
	f := Filters{Keyword: "go"}

	mb.EXPECT().
		SearchProjectIDs(gomock.Any(), models.ProjectSearchParams{Keyword: "go", IndexedTags: true}).
		Return([]int64{4, 8, 15}, nil).
		Times(1)

	gomock.InOrder(
		mb.EXPECT().
			ListProjects(gomock.Any(), models.ProjectPageParams{
				PageParams: models.PageParams{Page: 1, PageSize: 2},
				OrderBy:    "updated_at", Order: models.OrderDesc,
				IDs: []int64{4, 8, 15},
			}).
			Return(pageOf(3, 1, 2, 15, 8), nil),
		mb.EXPECT().
			ListProjects(gomock.Any(), models.ProjectPageParams{
				PageParams: models.PageParams{Page: 2, PageSize: 2},
				OrderBy:    "stars", Order: models.OrderAsc,
				IDs: []int64{4, 8, 15},
			}).
			Return(pageOf(3, 2, 2, 4), nil),
	)

	res, err := s.Search(ctx, Query{Filters: f, Page: 1})
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	require.True(t, res.HasMore)

	// Теги/фильтры те же: меняются только страница и сортировка.
	res, err = s.Search(ctx, Query{Filters: f, Page: 2, Sort: Sort{OrderBy: "stars", Order: models.OrderAsc}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	require.False(t, res.HasMore)

	st := s.State()
	require.True(t, st.Searched)
	require.Equal(t, 3, st.Matched)
	require.Equal(t, 2, st.Page)
}

func TestSession_FilterChangeRerunsPhaseOne(t *testing.T) {
	ctx := context.Background()
	s, mb, _ := newSession(t)

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return([]int64{1}, nil).Times(2)
	mb.EXPECT().ListProjects(gomock.Any(), gomock.Any()).Return(pageOf(1, 1, 1, 1), nil).Times(3)

	_, err := s.Search(ctx, Query{Filters: Filters{Tags: []int64{1, 2}}})
	require.NoError(t, err)
	_, err = s.Search(ctx, Query{Filters: Filters{Tags: []int64{2, 1}}})
	require.NoError(t, err)
	_, err = s.Search(ctx, Query{Filters: Filters{Tags: []int64{2}}})
	require.NoError(t, err)
}

func TestSession_InvalidateForcesPhaseOne(t *testing.T) {
	ctx := context.Background()
	s, mb, _ := newSession(t)

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return([]int64{1}, nil).Times(2)
	mb.EXPECT().ListProjects(gomock.Any(), gomock.Any()).Return(pageOf(1, 1, 1, 1), nil).Times(2)

	_, err := s.Search(ctx, Query{})
	require.NoError(t, err)

	s.Invalidate()
	require.False(t, s.State().Searched)

	_, err = s.Search(ctx, Query{})
	require.NoError(t, err)
}

func TestSession_SetFiltersReportsChange(t *testing.T) {
	s, _, _ := newSession(t)

	require.False(t, s.SetFilters(Filters{}))
	require.True(t, s.SetFilters(Filters{Keyword: "k"}))
	require.False(t, s.SetFilters(Filters{Keyword: " k "}))
}

func TestSession_EmptyIDsSkipPhaseTwo(t *testing.T) {
	s, mb, _ := newSession(t)

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := s.Search(context.Background(), Query{Filters: Filters{Keyword: "nothing"}})
	require.NoError(t, err)
	require.NotNil(t, res.Items)
	require.Empty(t, res.Items)
	require.False(t, res.HasMore)
	require.True(t, s.State().Searched)
}

func TestSession_PhaseOneFailureShowsNoResults(t *testing.T) {
	ctx := context.Background()
	s, mb, rec := newSession(t)

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return(nil, apierrors.ErrTransport).Times(1)

	res, err := s.Search(ctx, Query{Filters: Filters{Keyword: "x"}})
	require.ErrorIs(t, err, apierrors.ErrTransport)
	require.Empty(t, res.Items)
	require.False(t, res.HasMore)

	st := s.State()
	require.True(t, st.Searched)
	require.Zero(t, st.Matched)

	got := rec.Drain()
	require.Len(t, got, 1)
	require.Equal(t, notify.KeySearchFailed, got[0].Key)

	// Тот же фильтр: набор уже определён (пустой), запросов нет.
	res, err = s.Search(ctx, Query{Filters: Filters{Keyword: "x"}, Page: 2})
	require.NoError(t, err)
	require.Empty(t, res.Items)
}

func TestSession_DomainErrorInPhaseTwo(t *testing.T) {
	s, mb, rec := newSession(t)

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return([]int64{1}, nil)
	mb.EXPECT().ListProjects(gomock.Any(), gomock.Any()).
		Return(models.Page[models.ProjectSummary]{}, &apierrors.DomainError{Status: 200, Code: 400, Message: "bad"})

	_, err := s.Search(context.Background(), Query{})
	_, ok := apierrors.AsDomain(err)
	require.True(t, ok)
	require.Zero(t, s.State().Total)

	got := rec.Drain()
	require.Len(t, got, 1)
	require.Equal(t, "bad", got[0].Text)
}

func TestSession_StalePhaseOneDiscarded(t *testing.T) {
	ctx := context.Background()
	s, mb, rec := newSession(t)

	started := make(chan struct{})
	release := make(chan struct{})

	mb.EXPECT().
		SearchProjectIDs(gomock.Any(), models.ProjectSearchParams{Keyword: "old", IndexedTags: true}).
		DoAndReturn(func(context.Context, models.ProjectSearchParams) ([]int64, error) {
			close(started)
			<-release
			return []int64{1, 2}, nil
		})

	errc := make(chan error, 1)
	go func() {
		_, err := s.Search(ctx, Query{Filters: Filters{Keyword: "old"}})
		errc <- err
	}()
	<-started

	require.True(t, s.SetFilters(Filters{Keyword: "new"}))
	close(release)

	require.ErrorIs(t, <-errc, apierrors.ErrStale)

	st := s.State()
	require.False(t, st.Searched)
	require.Equal(t, "new", st.Filters.Keyword)
	require.Empty(t, rec.Drain())
}

// Фильтры сменились, пока шла фаза 2: страница отбрасывается и не трогает состояние.
func TestSession_StalePhaseTwoDiscarded(t *testing.T) {
	ctx := context.Background()
	s, mb, rec := newSession(t)

	started := make(chan struct{})
	release := make(chan struct{})

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return([]int64{1, 2}, nil)
	mb.EXPECT().
		ListProjects(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.ProjectPageParams) (models.Page[models.ProjectSummary], error) {
			close(started)
			<-release
			return pageOf(9, 3, 5, 1, 2), nil
		})

	errc := make(chan error, 1)
	go func() {
		_, err := s.Search(ctx, Query{Filters: Filters{Keyword: "old"}, Page: 3})
		errc <- err
	}()
	<-started

	s.Invalidate()
	close(release)

	require.ErrorIs(t, <-errc, apierrors.ErrStale)

	st := s.State()
	require.False(t, st.Searched)
	require.Zero(t, st.Total)
	require.Equal(t, 1, st.Page)
	require.Empty(t, rec.Drain())
}

// Два запроса одних фильтров: применяется страница последнего начатого.
func TestSession_LastStartedPageWins(t *testing.T) {
	ctx := context.Background()
	s, mb, _ := newSession(t)
	f := Filters{Keyword: "go"}

	startedA := make(chan struct{})
	releaseA := make(chan struct{})

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return([]int64{1, 2, 3}, nil).Times(1)
	mb.EXPECT().
		ListProjects(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.ProjectPageParams) (models.Page[models.ProjectSummary], error) {
			switch p.Page {
			case 2:
				close(startedA)
				<-releaseA
				return pageOf(3, 2, 2, 3), nil
			case 3:
				return pageOf(7, 3, 4, 2), nil
			default:
				return pageOf(3, 1, 2, 1, 2), nil
			}
		}).
		Times(3)

	_, err := s.Search(ctx, Query{Filters: f, Page: 1})
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() {
		_, err := s.Search(ctx, Query{Filters: f, Page: 2})
		errc <- err
	}()
	<-startedA

	res, err := s.Search(ctx, Query{Filters: f, Page: 3})
	require.NoError(t, err)
	require.Equal(t, 7, res.Total)

	close(releaseA)
	require.ErrorIs(t, <-errc, apierrors.ErrStale)

	st := s.State()
	require.Equal(t, 3, st.Page)
	require.Equal(t, 7, st.Total)
}

// Вызывающий ушёл во время фазы 1: пустой набор не фиксируется, общий
// вызов дорабатывает и его id достаются следующему поиску.
func TestSession_CancelledPhaseOneDoesNotCacheEmpty(t *testing.T) {
	s, mb, rec := newSession(t)

	started := make(chan struct{})
	release := make(chan struct{})

	mb.EXPECT().
		SearchProjectIDs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.ProjectSearchParams) ([]int64, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return []int64{1, 2}, nil
		}).
		Times(1)
	mb.EXPECT().
		ListProjects(gomock.Any(), models.ProjectPageParams{
			PageParams: models.PageParams{Page: 1, PageSize: 2},
			OrderBy:    "updated_at", Order: models.OrderDesc,
			IDs: []int64{1, 2},
		}).
		Return(pageOf(2, 1, 1, 1, 2), nil)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := s.Search(ctx, Query{Filters: Filters{Keyword: "go"}})
		errc <- err
	}()
	<-started

	cancel()
	require.ErrorIs(t, <-errc, context.Canceled)
	require.False(t, s.State().Searched)
	require.Empty(t, rec.Drain())

	close(release)
	require.Eventually(t, func() bool { return s.State().Matched == 2 }, time.Second, 5*time.Millisecond)

	res, err := s.Search(context.Background(), Query{Filters: Filters{Keyword: "go"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	require.Equal(t, 2, res.Total)
}

// Ожидающий общего вызова с живым ctx получает id, даже если
// запустивший вызов ушёл.
func TestSession_SharedPhaseOneSurvivesFirstCallerCancel(t *testing.T) {
	s, mb, _ := newSession(t)

	started := make(chan struct{})
	release := make(chan struct{})

	mb.EXPECT().
		SearchProjectIDs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.ProjectSearchParams) ([]int64, error) {
			close(started)
			<-release
			return []int64{5}, nil
		}).
		Times(1)
	mb.EXPECT().ListProjects(gomock.Any(), gomock.Any()).Return(pageOf(1, 1, 1, 5), nil)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := s.Search(ctx, Query{Filters: Filters{Keyword: "go"}})
		first <- err
	}()
	<-started

	type outcome struct {
		res Result
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		res, err := s.Search(context.Background(), Query{Filters: Filters{Keyword: "go"}})
		second <- outcome{res, err}
	}()

	cancel()
	require.ErrorIs(t, <-first, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	require.Len(t, got.res.Items, 1)
}

func TestRelated_ExcludesSelfAndUsesNullLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	mb := mocks.NewMockSearchBackend(ctrl)

	mb.EXPECT().
		SearchProjectIDs(gomock.Any(), models.ProjectSearchParams{Tags: []int64{3}, Language: models.NullLanguage}).
		Return([]int64{10, 7, 11, 12}, nil)
	mb.EXPECT().
		ListProjects(gomock.Any(), models.ProjectPageParams{
			PageParams: models.PageParams{Page: 1, PageSize: 2},
			OrderBy:    "stars", Order: models.OrderDesc,
			IDs: []int64{10, 11},
		}).
		Return(pageOf(2, 1, 1, 11, 10), nil)

	got, err := Related(context.Background(), mb, nil, RelatedQuery{ProjectID: 7, Tags: []int64{3}, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(11), got[0].ID)
}

func TestRelated_FallsBackToPopular(t *testing.T) {
	ctrl := gomock.NewController(t)
	mb := mocks.NewMockSearchBackend(ctrl)

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return(nil, apierrors.ErrTransport)
	mb.EXPECT().
		ListProjects(gomock.Any(), models.ProjectPageParams{
			PageParams: models.PageParams{Page: 1, PageSize: 2},
			OrderBy:    "stars", Order: models.OrderDesc,
		}).
		Return(pageOf(3, 1, 2, 7, 1), nil)

	got, err := Related(context.Background(), mb, nil, RelatedQuery{ProjectID: 7, Language: "Go", Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
}

func TestRelated_NoMatchesIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	mb := mocks.NewMockSearchBackend(ctrl)

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return([]int64{7}, nil)

	got, err := Related(context.Background(), mb, nil, RelatedQuery{ProjectID: 7, Language: "Go"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRelated_FallbackFailureNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	mb := mocks.NewMockSearchBackend(ctrl)
	rec := notify.NewRecorder(nil, 0)

	mb.EXPECT().SearchProjectIDs(gomock.Any(), gomock.Any()).Return(nil, apierrors.ErrTransport)
	mb.EXPECT().ListProjects(gomock.Any(), gomock.Any()).Return(models.Page[models.ProjectSummary]{}, apierrors.ErrTransport)

	_, err := Related(context.Background(), mb, rec, RelatedQuery{ProjectID: 7})
	require.ErrorIs(t, err, apierrors.ErrTransport)

	got := rec.Drain()
	require.Len(t, got, 1)
	require.Equal(t, notify.KeyRelatedFailed, got[0].Key)
}

func TestSuggester_DebouncesInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mb := mocks.NewMockSearchBackend(ctrl)

	mb.EXPECT().SuggestProjects(gomock.Any(), "gin").Return([]string{"gin", "gin-contrib"}, nil).Times(1)

	s := NewSuggester(mb, 30*time.Millisecond)
	defer s.Close()

	ctx := context.Background()
	s.Input(ctx, "g")
	s.Input(ctx, "gi")
	s.Input(ctx, "gin")
	require.True(t, s.State().Pending)

	require.Eventually(t, func() bool {
		st := s.State()
		return !st.Pending && len(st.Suggestions) == 2
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, "gin", s.State().Keyword)
}

func TestSuggester_EmptyInputClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	mb := mocks.NewMockSearchBackend(ctrl)

	mb.EXPECT().SuggestProjects(gomock.Any(), "go").Return([]string{"go"}, nil)

	s := NewSuggester(mb, 0)
	s.Input(context.Background(), "go")
	require.Equal(t, []string{"go"}, s.State().Suggestions)

	s.Input(context.Background(), "  ")
	st := s.State()
	require.Empty(t, st.Suggestions)
	require.NotNil(t, st.Suggestions)
	require.False(t, st.Pending)
}
