package search

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pribylovaa/opensource-sharing/internal/pkg/debounce"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

// DefaultSuggestDelay — пауза ввода перед запросом подсказок.
const DefaultSuggestDelay = time.Second

// SuggestState — последние подсказки для строки поиска.
type SuggestState struct {
	Keyword     string   `json:"keyword"`
	Suggestions []string `json:"suggestions"`
	Pending     bool     `json:"pending"`
}

// Suggester запрашивает подсказки по ключевому слову после паузы ввода.
// Новый ввод отменяет запланированный запрос; ответ на устаревший ввод
// отбрасывается.
type Suggester struct {
	backend Backend
	d       *debounce.Debouncer

	mu          sync.Mutex
	seq         uint64
	keyword     string
	suggestions []string
	pending     bool
}

func NewSuggester(b Backend, delay time.Duration) *Suggester {
	return &Suggester{
		backend:     b,
		d:           debounce.New(delay),
		suggestions: []string{},
	}
}

// Input регистрирует новый ввод. Пустая строка очищает подсказки без запроса.
func (s *Suggester) Input(ctx context.Context, keyword string) {
	keyword = strings.TrimSpace(keyword)

	s.mu.Lock()
	if keyword == s.keyword && (s.pending || keyword == "") {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	s.keyword = keyword
	if keyword == "" {
		s.suggestions = []string{}
		s.pending = false
		s.mu.Unlock()
		s.d.Cancel()
		return
	}
	s.pending = true
	s.mu.Unlock()

	// Запрос переживает вызвавший его HTTP-запрос, но сохраняет логгер.
	bg := context.WithoutCancel(ctx)
	s.d.Do(func() { s.fetch(bg, seq, keyword) })
}

func (s *Suggester) fetch(ctx context.Context, seq uint64, keyword string) {
	const op = "search/Suggester.fetch"

	res, err := s.backend.SuggestProjects(ctx, keyword)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return
	}
	s.pending = false
	if err != nil {
		log.From(ctx).Warn("suggest failed", "op", op, "err", err)
		s.suggestions = []string{}
		return
	}
	if res == nil {
		res = []string{}
	}
	s.suggestions = res
}

// State возвращает последние подсказки.
func (s *Suggester) State() SuggestState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SuggestState{
		Keyword:     s.keyword,
		Suggestions: slices.Clone(s.suggestions),
		Pending:     s.pending,
	}
}

// Close отменяет запланированный запрос.
func (s *Suggester) Close() {
	s.d.Cancel()
}
