package models

// Role — роль пользователя.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User — профиль пользователя (UserResponse бэкенда).
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar,omitempty"`
	Bio        string `json:"bio"`
	Role       Role   `json:"role"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	LastLogin  string `json:"last_login"`
	GithubID   int64  `json:"github_id,omitempty"`
	GiteeID    int64  `json:"gitee_id,omitempty"`
	GithubName string `json:"github_name,omitempty"`
	GiteeName  string `json:"gitee_name,omitempty"`
	InUse      bool   `json:"in_use"`
}

// IsAdmin — администратор платформы.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// UserRelated — автор комментария/оценки.
type UserRelated struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio"`
	InUse    bool   `json:"in_use"`
}

// Credentials — логин/регистрация по паролю.
// Тем же телом завершается регистрация через OAuth.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// LoginResponse — результат успешного входа.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// UserUpdate — частичное обновление своего профиля.
type UserUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// PasswordUpdate — смена пароля владельцем.
type PasswordUpdate struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// AdminPasswordUpdate — сброс пароля администратором.
type AdminPasswordUpdate struct {
	NewPassword string `json:"new_password"`
}

// AdminUserUpdate — изменение пользователя администратором.
type AdminUserUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
	InUse    *bool  `json:"in_use,omitempty"`
}

// UserPageParams — параметры GET /api/users.
type UserPageParams struct {
	PageParams
	OrderBy string
	Order   Order
}
