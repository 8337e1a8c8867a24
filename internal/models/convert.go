package models

import (
	"net/url"
	"strconv"
)

// Query кодирует параметры страницы; нулевые значения не отправляются.
func (p PageParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}

	return q
}

// Query кодирует GET /api/projects; ids передаются повторяющимся ключом.
func (p ProjectPageParams) Query() url.Values {
	q := p.PageParams.Query()
	if p.OrderBy != "" {
		q.Set("order_by", p.OrderBy)
	}
	if p.Order != "" {
		q.Set("order", string(p.Order))
	}
	for _, id := range p.IDs {
		q.Add("ids", strconv.FormatInt(id, 10))
	}

	return q
}

// Query кодирует GET /api/projects/search.
// is_featured отправляется только когда фильтр задан.
func (p ProjectSearchParams) Query() url.Values {
	q := url.Values{}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	if p.Language != "" {
		q.Set("programming_language", p.Language)
	}
	if p.License != "" {
		q.Set("license", p.License)
	}
	if p.Platform != "" {
		q.Set("platform", string(p.Platform))
	}
	if p.IsFeatured != nil {
		q.Set("is_featured", strconv.FormatBool(*p.IsFeatured))
	}
	for i, id := range p.Tags {
		if p.IndexedTags {
			q.Set("tags["+strconv.Itoa(i)+"]", strconv.FormatInt(id, 10))
			continue
		}
		q.Add("tags", strconv.FormatInt(id, 10))
	}

	return q
}

// Query кодирует GET /api/users.
func (p UserPageParams) Query() url.Values {
	q := p.PageParams.Query()
	if p.OrderBy != "" {
		q.Set("order_by", p.OrderBy)
	}
	if p.Order != "" {
		q.Set("order", string(p.Order))
	}

	return q
}
