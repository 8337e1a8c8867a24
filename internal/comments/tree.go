// Package comments строит и изменяет дерево ответов из плоского списка
// комментариев проекта.
//
// Операции над деревом не изменяют переданные узлы: Insert и Remove
// копируют только путь от корня до изменённой ветки, остальные поддеревья
// разделяются с прежней версией. Поэтому опубликованное дерево можно
// читать без блокировок.
package comments

import (
	"slices"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// BuildOption настраивает Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	promoteOrphans bool
}

// PromoteOrphans выводит комментарии с несуществующим родителем на верхний
// уровень. По умолчанию такие комментарии отбрасываются.
func PromoteOrphans() BuildOption {
	return func(o *buildOptions) { o.promoteOrphans = true }
}

// Build собирает лес из плоского списка.
//
// Правила:
//   - ParentID == nil — узел верхнего уровня;
//   - ParentID найден среди входных id — узел добавляется в Replies родителя;
//   - иначе (сирота, в том числе ссылка на самого себя) — узел отбрасывается
//     либо поднимается наверх с PromoteOrphans;
//   - порядок внутри Replies и на верхнем уровне повторяет порядок входа;
//   - повторный id учитывается один раз (первое вхождение).
//
// Входной срез не изменяется; у каждого узла результата Replies не nil.
func Build(flat []models.Comment, opts ...BuildOption) []*models.Comment {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	byID := make(map[int64]*models.Comment, len(flat))
	ordered := make([]*models.Comment, 0, len(flat))
	for i := range flat {
		if _, dup := byID[flat[i].ID]; dup {
			continue
		}
		n := flat[i]
		n.Replies = []*models.Comment{}
		byID[n.ID] = &n
		ordered = append(ordered, &n)
	}

	roots := make([]*models.Comment, 0)
	for _, n := range ordered {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}

		parent, ok := byID[*n.ParentID]
		if ok && parent != n {
			parent.Replies = append(parent.Replies, n)
			continue
		}
		if o.promoteOrphans {
			roots = append(roots, n)
		}
	}

	return roots
}

// Insert добавляет комментарий: без родителя — в конец верхнего уровня,
// иначе — в конец Replies родителя на любой глубине.
// false — родитель не найден, дерево возвращается без изменений.
func Insert(tree []*models.Comment, c models.Comment) ([]*models.Comment, bool) {
	node := &c
	node.Replies = []*models.Comment{}

	if c.ParentID == nil {
		return append(slices.Clip(tree), node), true
	}

	return insertUnder(tree, *c.ParentID, node)
}

func insertUnder(list []*models.Comment, parentID int64, node *models.Comment) ([]*models.Comment, bool) {
	for i, n := range list {
		if n.ID == parentID {
			return replaceAt(list, i, n, append(slices.Clip(n.Replies), node)), true
		}
		if replies, ok := insertUnder(n.Replies, parentID, node); ok {
			return replaceAt(list, i, n, replies), true
		}
	}

	return list, false
}

// Remove вырезает узел id вместе со всем поддеревом на любой глубине.
// false — узел не найден.
func Remove(tree []*models.Comment, id int64) ([]*models.Comment, bool) {
	for i, n := range tree {
		if n.ID == id {
			out := make([]*models.Comment, 0, len(tree)-1)
			out = append(out, tree[:i]...)
			return append(out, tree[i+1:]...), true
		}

		if replies, ok := Remove(n.Replies, id); ok {
			return replaceAt(tree, i, n, replies), true
		}
	}

	return tree, false
}

// replaceAt возвращает копию list, где list[i] заменён копией n с новыми replies.
func replaceAt(list []*models.Comment, i int, n *models.Comment, replies []*models.Comment) []*models.Comment {
	cp := *n
	cp.Replies = replies

	out := slices.Clone(list)
	out[i] = &cp

	return out
}

// Count — число узлов леса, включая все вложенные ответы.
func Count(tree []*models.Comment) int {
	total := 0
	for _, n := range tree {
		total += 1 + Count(n.Replies)
	}

	return total
}

// Find ищет узел по id на любой глубине; nil — не найден.
func Find(tree []*models.Comment, id int64) *models.Comment {
	for _, n := range tree {
		if n.ID == id {
			return n
		}
		if found := Find(n.Replies, id); found != nil {
			return found
		}
	}

	return nil
}
