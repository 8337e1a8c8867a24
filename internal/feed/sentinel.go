package feed

import "context"

// Sentinel сообщает, что конец списка попал в область видимости.
type Sentinel interface {
	Visible() <-chan struct{}
}

// Loader — то, что умеет дозагружать страницы.
type Loader interface {
	LoadMore(ctx context.Context) (bool, error)
}

// Signal — Sentinel, управляемый вручную (рендерер, HTTP-ручка, тесты).
// Несколько Fire до обработки схлопываются в один сигнал.
type Signal struct {
	ch chan struct{}
}

func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Fire отмечает, что сторож стал видимым.
func (s *Signal) Fire() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

func (s *Signal) Visible() <-chan struct{} { return s.ch }

// Watch вызывает l.LoadMore на каждый сигнал s до отмены ctx.
// Ошибки дозагрузки уже залогированы и показаны пользователем внутри Loader.
func Watch(ctx context.Context, s Sentinel, l Loader) error {
	ch := s.Visible()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			_, _ = l.LoadMore(ctx)
		}
	}
}
