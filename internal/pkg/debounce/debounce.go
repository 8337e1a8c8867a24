// Package debounce откладывает вызов до паузы во входящих событиях.
package debounce

import (
	"sync"
	"time"
)

// Debouncer планирует fn через delay после последнего Do.
// Каждый новый Do отменяет предыдущий запланированный вызов.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	seq   uint64
}

// New создаёт Debouncer; delay <= 0 означает немедленный вызов в Do.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do планирует fn, отменяя ранее запланированный вызов.
func (d *Debouncer) Do(fn func()) {
	if d.delay <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := seq == d.seq
		d.mu.Unlock()
		// Таймер мог сработать одновременно с новым Do: такой вызов устарел.
		if current {
			fn()
		}
	})
}

// Cancel отменяет запланированный вызов, если он ещё не выполнен.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
