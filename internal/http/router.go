package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/opensource-sharing/internal/http/handlers"
	"github.com/pribylovaa/opensource-sharing/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/view"; если пустой — роуты регистрируются на корне.
	// HydrationWait — сколько запрос ждёт загрузки сохранённой сессии.
	HydrationWait time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(deps handlers.Deps, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования: id попадает в логгер запроса
		middleware.Logging(opts.Logger),
		middleware.AuthBearer(),
	)
	if opts.HydrationWait > 0 && deps.Store != nil {
		root.Use(middleware.Hydrated(deps.Store, opts.HydrationWait))
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	h := handlers.New(deps)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// feed
	r.Get("/feed", h.GetFeed)
	r.Post("/feed/reload", h.ReloadFeed)
	r.Post("/feed/more", h.MoreFeed)

	// search
	r.Get("/search", h.Search)
	r.Post("/search/reset", h.ResetSearch)
	r.Get("/suggest", h.Suggest)

	// projects
	r.Post("/projects", h.SubmitProject)
	r.Get("/projects/my", h.MyProjects)
	r.Get("/projects/repo-detail", h.RepoDetail)
	r.Get("/projects/{id}", h.GetProject)
	r.Put("/projects/{id}", h.UpdateMyProject)
	r.Get("/projects/{id}/related", h.Related)
	r.Get("/projects/{id}/comments", h.ListComments)
	r.Post("/projects/{id}/comments", h.CreateComment)
	r.Delete("/projects/{id}/comments/{comment_id}", h.DeleteComment)
	r.Get("/projects/{id}/ratings", h.ProjectRatings)
	r.Get("/projects/{id}/rating", h.MyRating)
	r.Put("/projects/{id}/rating", h.Rate)
	r.Get("/projects/{id}/favorites", h.ProjectFavorites)
	r.Post("/projects/{id}/favorite/toggle", h.ToggleFavorite)

	// account
	r.Get("/favorites", h.MyFavorites)
	r.Get("/notifications", h.ListNotifications)
	r.Post("/notifications/{id}/read", h.ReadNotification)
	r.Delete("/notifications/{id}", h.DeleteNotification)
	r.Put("/me", h.UpdateMe)
	r.Put("/me/password", h.UpdateMyPassword)
	r.Post("/images", h.UploadImage)
	r.Delete("/images/unbound", h.CleanImages)
	r.Delete("/images/{id}", h.DeleteImage)

	// admin
	r.Route("/admin", func(r chi.Router) {
		r.Get("/projects/unapproved", h.UnapprovedProjects)
		r.Put("/projects/{id}", h.AdminUpdateProject)
		r.Post("/projects/{id}/{action}", h.ModerateProject)
		r.Post("/tags", h.CreateTag)
		r.Put("/tags/{id}", h.UpdateTag)
		r.Delete("/tags/{id}", h.DeleteTag)
		r.Get("/users", h.ListUsers)
		r.Put("/users/{id}", h.AdminUpdateUser)
		r.Put("/users/{id}/password", h.AdminUpdatePassword)
		r.Post("/notifications", h.NotifyUser)
	})

	// auth
	r.Post("/auth/login", h.Login)
	r.Post("/auth/register", h.Register)
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/oauth/callback", h.OAuthCallback)
	r.Post("/auth/oauth/register", h.OAuthRegister)
	r.Get("/auth/oauth/{provider}", h.OAuthURL)
	r.Get("/me", h.Me)

	// app
	r.Get("/theme", h.Theme)
	r.Post("/theme/toggle", h.ToggleTheme)
	r.Get("/tags", h.Tags)
	r.Get("/notices", h.Notices)
}
