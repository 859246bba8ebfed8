package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/quran-api-nosql/internal/application/audio"
	"github.com/quran-api-nosql/internal/application/auth"
	"github.com/quran-api-nosql/internal/application/bookmark"
	"github.com/quran-api-nosql/internal/config"
	"github.com/quran-api-nosql/internal/transport/http/handler"
	appmiddleware "github.com/quran-api-nosql/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo     UserRepository
	BookmarkRepo BookmarkRepository
	JWTProvider  TokenProvider
	Recitations  RecitationSource
	Logger       *slog.Logger
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(appmiddleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:    deps.UserRepo,
		JWTProvider: deps.JWTProvider,
	})
	bookmarkSvc := bookmark.NewService(bookmark.ServiceDeps{BookmarkRepo: deps.BookmarkRepo})
	audioSvc := audio.NewService(audio.ServiceDeps{
		Upstream:     deps.Recitations,
		AudioBaseURL: cfg.Quran.AudioBaseURL,
		Concurrency:  cfg.Quran.Concurrency,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	bookmarkH := handler.NewBookmarkHandler(bookmarkSvc)
	audioH := handler.NewAudioHandler(audioSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Health)
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)
		r.Get("/audio/{chapterID}", audioH.Chapter)
		r.Get("/get_audio/{chapterID}", audioH.Chapter)
		r.Post("/audio_files", audioH.VerseFiles)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(authSvc))

			r.Post("/bookmarks", bookmarkH.Add)
			r.Get("/bookmarks", bookmarkH.List)
			r.Delete("/bookmarks/{id}", bookmarkH.Delete)
		})
	})

	return r
}
