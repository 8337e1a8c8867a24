// Package notify доставляет пользователю кратковременные уведомления.
//
// Источник уведомления — операция клиентского слоя: успех, предупреждение
// валидации или ошибка, отображённая через apierrors.ToNotice.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

// Notifier — порт доставки уведомлений.
type Notifier interface {
	Notify(ctx context.Context, n apierrors.Notice)
}

// Success отправляет уведомление об успехе по ключу каталога.
func Success(ctx context.Context, n Notifier, key string) {
	if n == nil {
		return
	}
	n.Notify(ctx, apierrors.Notice{Kind: apierrors.KindSuccess, Key: key})
}

// Warning отправляет предупреждение по ключу каталога.
func Warning(ctx context.Context, n Notifier, key string) {
	if n == nil {
		return
	}
	n.Notify(ctx, apierrors.Notice{Kind: apierrors.KindWarning, Key: key})
}

// Failure отображает err в уведомление. Для ошибок без собственного текста
// бэкенда используется ключ операции key (например, "comment.create_failed").
// Устаревшие ответы (ErrStale) пользователю не показываются.
func Failure(ctx context.Context, n Notifier, key string, err error) {
	if n == nil || err == nil || errors.Is(err, apierrors.ErrStale) {
		return
	}

	nt := apierrors.ToNotice(err)
	if key != "" && nt.Message == "" && nt.Kind == apierrors.KindError {
		nt.Key = key
	}
	n.Notify(ctx, nt)
}

// Log пишет уведомления в slog: success/info — Info, warning — Warn, error — Error.
type Log struct {
	Localizer *Localizer
}

func (l Log) Notify(ctx context.Context, n apierrors.Notice) {
	lvl := slog.LevelInfo
	switch n.Kind {
	case apierrors.KindWarning:
		lvl = slog.LevelWarn
	case apierrors.KindError:
		lvl = slog.LevelError
	}

	log.From(ctx).Log(ctx, lvl, "notice",
		slog.String("kind", string(n.Kind)),
		slog.String("key", n.Key),
		slog.String("text", l.Localizer.Text(n)),
	)
}

// Entry — доставленное уведомление с готовым текстом.
type Entry struct {
	Kind apierrors.Kind `json:"kind"`
	Key  string         `json:"key"`
	Text string         `json:"text"`
	At   time.Time      `json:"at"`
}

// Recorder накапливает уведомления до выборки (тесты, GET /notices).
type Recorder struct {
	mu        sync.Mutex
	localizer *Localizer
	limit     int
	entries   []Entry
}

// NewRecorder — limit <= 0 означает без ограничения; при переполнении
// вытесняются самые старые записи.
func NewRecorder(l *Localizer, limit int) *Recorder {
	return &Recorder{localizer: l, limit: limit}
}

func (r *Recorder) Notify(_ context.Context, n apierrors.Notice) {
	e := Entry{Kind: n.Kind, Key: n.Key, Text: r.localizer.Text(n), At: time.Now()}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	if r.limit > 0 && len(r.entries) > r.limit {
		r.entries = append([]Entry(nil), r.entries[len(r.entries)-r.limit:]...)
	}
}

// Drain возвращает накопленные уведомления и очищает буфер.
func (r *Recorder) Drain() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.entries
	r.entries = nil
	if out == nil {
		out = []Entry{}
	}

	return out
}

// Tee рассылает уведомление всем получателям.
type Tee []Notifier

func (t Tee) Notify(ctx context.Context, n apierrors.Notice) {
	for _, x := range t {
		if x != nil {
			x.Notify(ctx, n)
		}
	}
}
