package models

// Comment — комментарий к проекту.
// Важно:
//   - ParentID == nil — корневой комментарий;
//   - Replies бэкенд не присылает: поле заполняет построитель дерева
//     (internal/comments), до этого оно пустое.
type Comment struct {
	ID        int64       `json:"id"`
	Content   string      `json:"content"`
	User      UserRelated `json:"user"`
	ProjectID int64       `json:"project_id"`
	ParentID  *int64      `json:"parent_id,omitempty"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
	Replies   []*Comment  `json:"replies"`
}

// IsRoot — комментарий верхнего уровня.
func (c *Comment) IsRoot() bool { return c.ParentID == nil }

// CommentCreate — создание комментария; ParentID задан — ответ.
type CommentCreate struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// CommentRelated — краткая ссылка на комментарий в уведомлениях.
type CommentRelated struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	UserID    int64  `json:"user_id"`
	ProjectID int64  `json:"project_id"`
}
