package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/youth-cup/handlers"
	"github.com/Dosada05/youth-cup/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Tournament *handlers.TournamentHandler
	Auth       *handlers.AuthHandler
	Team       *handlers.TeamHandler
	Match      *handlers.MatchHandler
	Public     *handlers.PublicHandler
	WebSocket  *handlers.WebSocketHandler
	Metrics    http.Handler
}

func SetupRoutes(
	router chi.Router,
	h Handlers,
	tokenParser middleware.TokenParser,
	allowedOrigins []string,
	logger *slog.Logger,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireAdmin := middleware.RequireTournamentAdmin(tokenParser, logger)

	router.Get("/health", handlers.Health)
	if h.Metrics != nil {
		router.Handle("/metrics", h.Metrics)
	}
	router.Get("/swagger/doc.json", handlers.OpenAPIDocument)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/tournaments", func(r chi.Router) {
		r.Post("/", h.Tournament.CreateHandler)
		r.Get("/", h.Tournament.ListHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Post("/auth", h.Auth.Authenticate)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Get("/", h.Tournament.GetByIDHandler)
				r.Delete("/", h.Tournament.DeleteHandler)

				r.Route("/teams/{teamID}", func(r chi.Router) {
					r.Patch("/", h.Team.RenameTeam)
					r.Put("/logo", h.Team.UploadLogo)
					r.Post("/players", h.Team.AddPlayer)
					r.Patch("/players/{playerID}", h.Team.UpdatePlayer)
					r.Delete("/players/{playerID}", h.Team.RemovePlayer)
				})

				r.Route("/matches/{matchID}", func(r chi.Router) {
					r.Post("/goals", h.Match.RecordGoal)
					r.Delete("/goals/last", h.Match.RemoveLastGoal)
					r.Delete("/goals/{goalID}", h.Match.RemoveGoal)
					r.Patch("/goals/{goalID}", h.Match.UpdateGoal)
					r.Post("/{action}", h.Match.Transition)
				})
			})
		})
	})

	router.Route("/public/tournaments/{tournamentID}", func(r chi.Router) {
		r.Get("/", h.Public.GetTournament)
		r.Get("/standings", h.Public.GetStandings)
	})

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)
}
