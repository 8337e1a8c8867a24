// Package feed накапливает страницы бесконечного списка.
//
// Accumulator держит уже полученные элементы, номер последней страницы
// и признак конца данных. Следующая страница запрашивается по сигналу
// видимости (см. Watch), одна за раз; повторный сигнал во время загрузки
// игнорируется, а не ставится в очередь.
package feed

import (
	"context"
	"fmt"
	"sync"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

// Fetcher запрашивает страницу page (нумерация с 1).
type Fetcher[T any] func(ctx context.Context, page int) (models.Page[T], error)

// Option настраивает Accumulator.
type Option func(*options)

type options struct {
	name     string
	notifier notify.Notifier
	failKey  string
}

// WithName задаёт имя списка для логов.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithNotifier включает уведомление об ошибке загрузки по ключу key.
func WithNotifier(n notify.Notifier, key string) Option {
	return func(o *options) {
		o.notifier = n
		o.failKey = key
	}
}

// Snapshot — состояние списка для отображения.
// Loaded отличает «ещё грузится» от «данных нет».
type Snapshot[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"current_page"`
	HasMore     bool  `json:"has_more"`
	Loading     bool  `json:"loading"`
	Loaded      bool  `json:"loaded"`
	Err         error `json:"-"`
}

// Accumulator — состояние бесконечного списка.
// Важно:
//   - HasMore становится false навсегда, когда page >= pages или загрузка
//     завершилась ошибкой; повторных попыток нет;
//   - ошибка не урезает уже накопленные элементы;
//   - элемент с уже встречавшимся ключом при дозагрузке пропускается.
type Accumulator[T any] struct {
	fetch Fetcher[T]
	key   func(T) int64
	opts  options

	mu      sync.Mutex
	items   []T
	seen    map[int64]struct{}
	page    int
	hasMore bool
	loading bool
	loaded  bool
	err     error
	gen     uint64
}

// New создаёт пустой список. До первой загрузки HasMore == true.
func New[T any](fetch Fetcher[T], key func(T) int64, opts ...Option) *Accumulator[T] {
	o := options{name: "feed"}
	for _, opt := range opts {
		opt(&o)
	}

	return &Accumulator[T]{
		fetch:   fetch,
		key:     key,
		opts:    o,
		items:   []T{},
		seen:    make(map[int64]struct{}),
		hasMore: true,
	}
}

// LoadInitial загружает первую страницу и заменяет содержимое списка.
// Незавершённая дозагрузка при этом устаревает и будет отброшена.
func (a *Accumulator[T]) LoadInitial(ctx context.Context) error {
	const op = "feed/Accumulator.LoadInitial"

	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.loading = true
	a.mu.Unlock()

	return a.run(ctx, op, gen, 1, true)
}

// LoadMore запрашивает следующую страницу и дописывает её в конец.
// issued == false: запрос не отправлялся (идёт загрузка или данных больше нет).
func (a *Accumulator[T]) LoadMore(ctx context.Context) (issued bool, err error) {
	const op = "feed/Accumulator.LoadMore"

	a.mu.Lock()
	if a.loading || !a.hasMore {
		a.mu.Unlock()
		return false, nil
	}
	a.loading = true
	gen := a.gen
	next := a.page + 1
	a.mu.Unlock()

	return true, a.run(ctx, op, gen, next, false)
}

func (a *Accumulator[T]) run(ctx context.Context, op string, gen uint64, page int, replace bool) error {
	lg := log.From(ctx).With("op", op, "feed", a.opts.name, "page", page)

	res, err := a.fetch(ctx, page)

	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		lg.Debug("stale page dropped")
		return fmt.Errorf("%s: %w", op, apierrors.ErrStale)
	}
	a.loading = false

	if err != nil {
		a.hasMore = false
		a.loaded = true
		a.err = err
		a.mu.Unlock()

		lg.Warn("fetch page failed", "err", err)
		notify.Failure(ctx, a.opts.notifier, a.opts.failKey, err)
		return fmt.Errorf("%s: %w", op, err)
	}

	if replace {
		a.items = []T{}
		a.seen = make(map[int64]struct{}, len(res.Items))
	}
	added := a.appendUnique(res.Items)
	a.page = page
	a.hasMore = res.HasMore()
	a.loaded = true
	a.err = nil
	a.mu.Unlock()

	lg.Debug("page loaded", "added", added, "pages", res.Pages)
	return nil
}

// appendUnique вызывается под a.mu.
func (a *Accumulator[T]) appendUnique(batch []T) int {
	added := 0
	for _, it := range batch {
		k := a.key(it)
		if _, dup := a.seen[k]; dup {
			continue
		}
		a.seen[k] = struct{}{}
		a.items = append(a.items, it)
		added++
	}

	return added
}

// Reset возвращает список в исходное состояние; ответы в полёте отбрасываются.
func (a *Accumulator[T]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.gen++
	a.items = []T{}
	a.seen = make(map[int64]struct{})
	a.page = 0
	a.hasMore = true
	a.loading = false
	a.loaded = false
	a.err = nil
}

// Snapshot возвращает копию состояния.
func (a *Accumulator[T]) Snapshot() Snapshot[T] {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := make([]T, len(a.items))
	copy(items, a.items)

	return Snapshot[T]{
		Items:       items,
		CurrentPage: a.page,
		HasMore:     a.hasMore,
		Loading:     a.loading,
		Loaded:      a.loaded,
		Err:         a.err,
	}
}
