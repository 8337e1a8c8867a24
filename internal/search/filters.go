package search

import (
	"slices"
	"strings"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// Filters — фильтры формы поиска; по ним бэкенд отдаёт набор id (фаза 1).
// Featured == nil — без фильтра по признаку «рекомендуемый».
type Filters struct {
	Keyword  string          `json:"keyword"`
	Platform models.Platform `json:"platform,omitempty"`
	Language string          `json:"language,omitempty"`
	License  string          `json:"license,omitempty"`
	Tags     []int64         `json:"tags,omitempty"`
	Featured *bool           `json:"featured,omitempty"`
}

// Normalize обрезает пробелы и приводит теги к отсортированному набору без повторов.
func (f Filters) Normalize() Filters {
	f.Keyword = strings.TrimSpace(f.Keyword)
	f.Language = strings.TrimSpace(f.Language)
	f.License = strings.TrimSpace(f.License)

	if len(f.Tags) > 0 {
		tags := slices.Clone(f.Tags)
		slices.Sort(tags)
		f.Tags = slices.Compact(tags)
	} else {
		f.Tags = nil
	}
	if f.Featured != nil {
		v := *f.Featured
		f.Featured = &v
	}

	return f
}

// Equal сравнивает фильтры по значению; теги сравниваются как множества.
func (f Filters) Equal(o Filters) bool {
	a, b := f.Normalize(), o.Normalize()
	if a.Keyword != b.Keyword || a.Platform != b.Platform ||
		a.Language != b.Language || a.License != b.License {
		return false
	}
	if (a.Featured == nil) != (b.Featured == nil) {
		return false
	}
	if a.Featured != nil && *a.Featured != *b.Featured {
		return false
	}

	return slices.Equal(a.Tags, b.Tags)
}

// Params — параметры запроса фазы 1.
func (f Filters) Params() models.ProjectSearchParams {
	n := f.Normalize()

	return models.ProjectSearchParams{
		Keyword:    n.Keyword,
		Language:   n.Language,
		License:    n.License,
		Platform:   n.Platform,
		IsFeatured: n.Featured,
		Tags:       n.Tags,

		IndexedTags: true,
	}
}

// Sort — порядок выдачи фазы 2.
type Sort struct {
	OrderBy string       `json:"order_by"`
	Order   models.Order `json:"order"`
}

// SortFields — поля, по которым бэкенд умеет сортировать выдачу.
// "id" — порядок «по релевантности» формы поиска.
var SortFields = []string{
	"id", "stars", "issues", "average_rating", "rating_count",
	"view_count", "created_at", "updated_at", "name",
}

// DefaultSort — порядок по умолчанию: недавно обновлённые первыми.
var DefaultSort = Sort{OrderBy: "updated_at", Order: models.OrderDesc}

func (s Sort) orDefault() Sort {
	if !slices.Contains(SortFields, s.OrderBy) {
		s.OrderBy = DefaultSort.OrderBy
	}
	if !s.Order.Valid() {
		s.Order = DefaultSort.Order
	}

	return s
}
