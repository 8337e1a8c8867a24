// Package search реализует двухфазный поиск проектов.
//
// Фаза 1 по фильтрам формы получает от бэкенда полный набор подходящих id
// и кэширует его. Фаза 2 запрашивает страницу карточек, ограниченную этим
// набором, с нужными page/page_size/сортировкой. Смена страницы или
// сортировки переиспользует набор; смена фильтров его сбрасывает.
package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

// DefaultPageSize — размер страницы поиска, если он не задан.
const DefaultPageSize = 10

// Query — запрос страницы поиска.
type Query struct {
	Filters  Filters
	Page     int
	PageSize int
	Sort     Sort
}

// Result — страница результатов.
type Result struct {
	Items    []models.ProjectSummary `json:"items"`
	Total    int                     `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
	Pages    int                     `json:"pages"`
	HasMore  bool                    `json:"has_more"`
}

func emptyResult(page, size int) Result {
	return Result{Items: []models.ProjectSummary{}, Page: page, PageSize: size}
}

// State — снимок сессии для отображения.
// Searched == false: фаза 1 для текущих фильтров ещё не выполнялась.
type State struct {
	Filters  Filters `json:"filters"`
	Searched bool    `json:"searched"`
	Matched  int     `json:"matched"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Sort     Sort    `json:"sort"`
	Total    int     `json:"total"`
	Loading  bool    `json:"loading"`
}

// Session — состояние поиска одной страницы.
// Важно:
//   - resolved == nil означает «ещё не искали»; пустой срез — «ничего не найдено»;
//   - каждое изменение фильтров начинает новое поколение gen; ответ,
//     пришедший для старого поколения, отбрасывается с ErrStale;
//   - среди запросов фазы 2 побеждает последний начатый (seq).
type Session struct {
	backend     Backend
	notifier    notify.Notifier
	defaultSize int

	phase1 singleflight.Group

	mu       sync.Mutex
	filters  Filters
	resolved []int64
	gen      uint64
	seq      uint64
	inflight int
	page     int
	pageSize int
	sort     Sort
	total    int
}

// NewSession создаёт сессию; pageSize <= 0 — DefaultPageSize.
func NewSession(b Backend, n notify.Notifier, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Session{
		backend:     b,
		notifier:    n,
		defaultSize: pageSize,
		page:        1,
		pageSize:    pageSize,
		sort:        DefaultSort,
	}
}

// SetFilters применяет фильтры; при отличии от текущих кэш id сбрасывается.
// Возвращает true, если фильтры изменились.
func (s *Session) SetFilters(f Filters) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setFiltersLocked(f)
}

func (s *Session) setFiltersLocked(f Filters) bool {
	if f.Equal(s.filters) {
		return false
	}
	s.filters = f.Normalize()
	s.invalidateLocked()

	return true
}

// Invalidate сбрасывает кэш id: следующий Search выполнит фазу 1.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidateLocked()
}

func (s *Session) invalidateLocked() {
	s.resolved = nil
	s.gen++
	s.total = 0
	s.page = 1
}

// State возвращает снимок сессии.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Filters:  s.filters,
		Searched: s.resolved != nil,
		Matched:  len(s.resolved),
		Page:     s.page,
		PageSize: s.pageSize,
		Sort:     s.sort,
		Total:    s.total,
		Loading:  s.inflight > 0,
	}
}

// Search выполняет запрос страницы. Фаза 1 запускается, только если для
// текущих фильтров id ещё не получены; пустой набор id завершает поиск
// без фазы 2.
func (s *Session) Search(ctx context.Context, q Query) (Result, error) {
	const op = "search/Session.Search"

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = s.defaultSize
	}
	q.Sort = q.Sort.orDefault()

	s.mu.Lock()
	s.setFiltersLocked(q.Filters)
	s.seq++
	gen, seq := s.gen, s.seq
	filters, resolved := s.filters, s.resolved
	s.inflight++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	lg := log.From(ctx).With("op", op, "gen", gen, "page", q.Page)

	if resolved == nil {
		ids, err := s.resolve(ctx, gen, filters)
		if err != nil {
			if ctx.Err() != nil {
				// Запрос покинул вызывающий; фаза 1 досчитается без него.
				lg.Debug("phase 1 abandoned", "err", err)
				return emptyResult(q.Page, q.PageSize), fmt.Errorf("%s: %w", op, err)
			}
			if !errors.Is(err, apierrors.ErrStale) {
				lg.Warn("phase 1 failed", "err", err)
				notify.Failure(ctx, s.notifier, notify.KeySearchFailed, err)
			}
			return emptyResult(q.Page, q.PageSize), fmt.Errorf("%s: %w", op, err)
		}
		resolved = ids
	}

	if len(resolved) == 0 {
		s.mu.Lock()
		if gen == s.gen && seq == s.seq {
			s.page, s.pageSize, s.sort, s.total = q.Page, q.PageSize, q.Sort, 0
		}
		s.mu.Unlock()

		lg.Debug("no matches")
		return emptyResult(q.Page, q.PageSize), nil
	}

	page, err := s.backend.ListProjects(ctx, models.ProjectPageParams{
		PageParams: models.PageParams{Page: q.Page, PageSize: q.PageSize},
		OrderBy:    q.Sort.OrderBy,
		Order:      q.Sort.Order,
		IDs:        resolved,
	})

	s.mu.Lock()
	if gen != s.gen || seq != s.seq {
		s.mu.Unlock()
		lg.Debug("stale page dropped")
		return emptyResult(q.Page, q.PageSize), fmt.Errorf("%s: %w", op, apierrors.ErrStale)
	}
	if err != nil {
		s.mu.Unlock()
		lg.Warn("phase 2 failed", "err", err)
		if ctx.Err() == nil {
			notify.Failure(ctx, s.notifier, notify.KeySearchFailed, err)
		}
		return emptyResult(q.Page, q.PageSize), fmt.Errorf("%s: %w", op, err)
	}
	s.page, s.pageSize, s.sort, s.total = q.Page, q.PageSize, q.Sort, page.Total
	s.mu.Unlock()

	items := page.Items
	if items == nil {
		items = []models.ProjectSummary{}
	}

	return Result{
		Items:    items,
		Total:    page.Total,
		Page:     q.Page,
		PageSize: q.PageSize,
		Pages:    page.Pages,
		HasMore:  page.HasMore(),
	}, nil
}

// resolve выполняет фазу 1. Параллельные запросы одного поколения
// разделяют один вызов бэкенда. Общий вызов не зависит от отмены ctx
// отдельного ожидающего: его результат фиксируется для поколения, а
// ожидающий с отменённым ctx получает ctx.Err() и ничего не меняет.
func (s *Session) resolve(ctx context.Context, gen uint64, f Filters) ([]int64, error) {
	shared := context.WithoutCancel(ctx)

	ch := s.phase1.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		ids, err := s.backend.SearchProjectIDs(shared, f.Params())

		s.mu.Lock()
		defer s.mu.Unlock()

		if gen != s.gen {
			return nil, apierrors.ErrStale
		}
		if err != nil {
			// Пустой набор: отображается «ничего не найдено», фаза 2 не идёт.
			s.resolved = []int64{}
			s.total = 0
			return nil, err
		}
		if ids == nil {
			ids = []int64{}
		}
		s.resolved = ids

		return ids, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.([]int64), nil
	}
}
