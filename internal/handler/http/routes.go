package http

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withSecurityHeaders, h.withCORS())

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Compress(5, "application/json"))

		r.Get("/health", h.health)
		r.Get("/version", h.getServerVersion)

		r.Route("/auth", func(r chi.Router) {
			r.Use(h.withTimeout)

			// routes without authorization
			r.With(h.withAttemptLimit("signup")).Post("/signup", h.signup)
			r.With(h.withAttemptLimit("login")).Post("/login", h.login)
			r.With(h.withAttemptLimit("forgot-password")).Post("/forgot-password", h.forgotPassword)
			r.With(h.withAttemptLimit("resend-verification")).Post("/resend-verification", h.resendVerification)
			r.Post("/reset-password", h.resetPassword)
			r.Get("/verify-email", h.verifyEmail)
			r.Post("/verify-email", h.verifyEmail)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Get("/me", h.me)
				r.Post("/logout", h.logout)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.Get("/{id}", h.getPost)
			r.Get("/{id}/comments", h.listComments)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Get("/me/mine", h.listMyPosts)
				// uploads are bounded by MaxUploadSize instead of the request timeout
				r.Post("/", h.createPost)
				r.Put("/{id}", h.updatePost)
				r.Delete("/{id}", h.deletePost)
				r.Post("/{id}/comments", h.addComment)
				r.Post("/{id}/like", h.toggleLike)
			})
		})
	})

	publicPath := "/" + strings.Trim(h.cfg.Storage.Files.PublicPath, "/")
	router.Handle(publicPath+"/*", http.StripPrefix(publicPath, http.FileServer(mediaDir{http.Dir(h.cfg.Storage.Files.UploadDir)})))

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// withTimeout cancels the request context after RequestTimeout. Zero
// disables it.
func (h *Handler) withTimeout(next http.Handler) http.Handler {
	if h.cfg.Server.RequestTimeout <= 0 {
		return next
	}
	return middleware.Timeout(h.cfg.Server.RequestTimeout)(next)
}

// mediaDir serves stored files and hides directories, so upload folders
// cannot be listed.
type mediaDir struct {
	http.FileSystem
}

func (d mediaDir) Open(name string) (http.File, error) {
	f, err := d.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
