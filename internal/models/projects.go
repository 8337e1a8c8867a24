package models

// Platform — хостинг репозитория проекта.
type Platform string

const (
	PlatformGitHub Platform = "GitHub"
	PlatformGitee  Platform = "Gitee"
)

// ProjectSummary — карточка проекта в списках (ProjectBaseResponse бэкенда).
type ProjectSummary struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	Brief               string   `json:"brief"`
	Description         string   `json:"description"`
	License             string   `json:"license,omitempty"`
	ProgrammingLanguage string   `json:"programming_language,omitempty"`
	Stars               int      `json:"stars"`
	Issues              int      `json:"issues"`
	AverageRating       float64  `json:"average_rating"`
	RatingCount         int      `json:"rating_count"`
	ViewCount           int      `json:"view_count"`
	IsApproved          bool     `json:"is_approved"`
	IsFeatured          bool     `json:"is_featured"`
	SubmitterID         int64    `json:"submitter_id"`
	Avatar              string   `json:"avatar,omitempty"`
	Platform            Platform `json:"platform"`
	RepoID              string   `json:"repo_id"`
	CreatedAt           string   `json:"created_at"`
	LastCommitAt        string   `json:"last_commit_at,omitempty"`
	Tags                []Tag    `json:"tags"`
}

// ProjectID — ключ дедупликации в накопителе страниц.
func ProjectID(p ProjectSummary) int64 { return p.ID }

// ProjectFull — детальная карточка проекта.
type ProjectFull struct {
	ProjectSummary

	RepoURL         string  `json:"repo_url"`
	WebsiteURL      string  `json:"website_url,omitempty"`
	DownloadURL     string  `json:"download_url,omitempty"`
	CodeExample     string  `json:"code_example,omitempty"`
	Forks           int     `json:"forks"`
	Watchers        int     `json:"watchers"`
	Contributors    int     `json:"contributors"`
	UpdatedAt       string  `json:"updated_at"`
	RepoCreatedAt   string  `json:"repo_created_at,omitempty"`
	LastSyncAt      string  `json:"last_sync_at,omitempty"`
	OwnerPlatformID int64   `json:"owner_platform_id,omitempty"`
	Submitter       User    `json:"submitter"`
	Images          []Image `json:"images"`
}

// ProjectRelated — краткая ссылка на проект (уведомления, рекомендации).
type ProjectRelated struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	RepoID     string `json:"repo_id"`
	Avatar     string `json:"avatar,omitempty"`
	IsApproved bool   `json:"is_approved"`
}

// ProjectCreate — заявка на добавление проекта.
type ProjectCreate struct {
	Brief       string   `json:"brief"`
	Description string   `json:"description"`
	CodeExample string   `json:"code_example,omitempty"`
	Platform    Platform `json:"platform"`
	RepoID      string   `json:"repo_id"`
	TagIDs      []int64  `json:"tag_ids"`
	ImageIDs    []int64  `json:"image_ids"`
}

// ProjectUpdate — частичное обновление проекта владельцем или администратором.
// Пустые поля не отправляются.
type ProjectUpdate struct {
	Brief       string   `json:"brief,omitempty"`
	Description string   `json:"description,omitempty"`
	CodeExample string   `json:"code_example,omitempty"`
	Platform    Platform `json:"platform,omitempty"`
	RepoID      string   `json:"repo_id,omitempty"`
	TagIDs      []int64  `json:"tag_ids,omitempty"`
}

// RepoDetail — метаданные репозитория, которые бэкенд тянет с GitHub/Gitee.
type RepoDetail struct {
	RepoURL             string `json:"repo_url"`
	Avatar              string `json:"avatar"`
	Name                string `json:"name"`
	WebsiteURL          string `json:"website_url,omitempty"`
	Stars               int    `json:"stars"`
	Forks               int    `json:"forks"`
	Watchers            int    `json:"watchers"`
	Contributors        int    `json:"contributors"`
	Issues              int    `json:"issues"`
	License             string `json:"license,omitempty"`
	ProgrammingLanguage string `json:"programming_language,omitempty"`
	LastCommitAt        string `json:"last_commit_at,omitempty"`
	RepoCreatedAt       string `json:"repo_created_at,omitempty"`
	OwnerPlatformID     int64  `json:"owner_platform_id"`
	LastSyncAt          string `json:"last_sync_at,omitempty"`
}

// ProjectStatusAction — модерационное действие над проектом.
type ProjectStatusAction string

const (
	ActionApprove   ProjectStatusAction = "approve"
	ActionReject    ProjectStatusAction = "reject"
	ActionFeature   ProjectStatusAction = "feature"
	ActionUnfeature ProjectStatusAction = "unfeature"
)

// ProjectPageParams — параметры GET /api/projects.
// IDs ограничивает выдачу набором идентификаторов (фаза 2 поиска).
type ProjectPageParams struct {
	PageParams
	OrderBy string
	Order   Order
	IDs     []int64
}

// ProjectSearchParams — фильтры GET /api/projects/search.
// Language со значением NullLanguage ищет проекты без указанного языка.
type ProjectSearchParams struct {
	Keyword    string
	Language   string
	License    string
	Platform   Platform
	IsFeatured *bool
	Tags       []int64

	// IndexedTags кодирует теги как tags[0]=..&tags[1]=.. (форма поиска);
	// иначе ключ tags повторяется (рекомендации).
	IndexedTags bool
}

// NullLanguage — литерал бэкенда для «язык не указан».
const NullLanguage = "null"
