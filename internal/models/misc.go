package models

// Tag — тег проекта.
type Tag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// TagInput — создание/изменение тега.
type TagInput struct {
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// Rating — оценка проекта пользователем (1..10).
type Rating struct {
	ID        int64 `json:"id"`
	ProjectID int64 `json:"project_id"`
	UserID    int64 `json:"user_id"`
	Score     int   `json:"score"`
	IsUsed    bool  `json:"is_used"`
}

// RatingInput — создание/изменение оценки.
type RatingInput struct {
	Score  int   `json:"score"`
	IsUsed *bool `json:"is_used,omitempty"`
}

// RatingStats — агрегат оценок проекта после изменения.
type RatingStats struct {
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

// UserRating — оценка в ленте последних оценок проекта.
type UserRating struct {
	ID        int64       `json:"id"`
	Score     int         `json:"score"`
	User      UserRelated `json:"user"`
	UpdatedAt string      `json:"updated_at"`
	IsUsed    bool        `json:"is_used"`
}

// RatingSummary — последние оценки и распределение баллов.
// Ключ Distribution — балл, значение — число оценок.
type RatingSummary struct {
	Ratings      []UserRating   `json:"ratings"`
	Distribution map[string]int `json:"distribution"`
}

// Favorite — отметка «в избранном».
type Favorite struct {
	ID        int64 `json:"id"`
	ProjectID int64 `json:"project_id"`
	UserID    int64 `json:"user_id"`
}

// FavoriteUser — пользователь, добавивший проект в избранное.
type FavoriteUser struct {
	ID        int64       `json:"id"`
	ProjectID int64       `json:"project_id"`
	User      UserRelated `json:"user"`
	CreatedAt string      `json:"created_at"`
}

// FavoriteProject — проект в избранном текущего пользователя.
type FavoriteProject struct {
	ID      int64          `json:"id"`
	Project ProjectSummary `json:"project"`
	UserID  int64          `json:"user_id"`
}

// Notification — уведомление пользователя (читается по запросу, без push).
type Notification struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	Content        string          `json:"content"`
	IsRead         bool            `json:"is_read"`
	CreatedAt      string          `json:"created_at"`
	RelatedProject *ProjectRelated `json:"related_project,omitempty"`
	RelatedComment *CommentRelated `json:"related_comment,omitempty"`
}

// NotificationCreate — адресное уведомление от администратора.
type NotificationCreate struct {
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
}

// Image — загруженное изображение проекта.
type Image struct {
	ID           int64  `json:"id"`
	ProjectID    *int64 `json:"project_id,omitempty"`
	FileName     string `json:"file_name"`
	UserID       int64  `json:"user_id"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
}
