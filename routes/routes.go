package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/EldritchWeaver/MatchPoint/handlers"
	"github.com/EldritchWeaver/MatchPoint/middleware"
)

// SetupRoutes wires every handler into the router. Mutating tournament
// routes require a bearer token; reads and the remaining entities follow
// the original public API surface.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	memberHandler *handlers.MemberHandler,
	tournamentHandler *handlers.TournamentHandler,
	inscriptionHandler *handlers.InscriptionHandler,
	paymentHandler *handlers.PaymentHandler,
	matchHandler *handlers.MatchHandler,
	liveHandler *handlers.LiveHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)
		r.Post("/token", userHandler.Login)
		r.Get("/", userHandler.List)
		r.Get("/by-email", userHandler.GetByEmail)
		r.Get("/by-nickname", userHandler.GetByNickname)
		r.Get("/{id}", userHandler.GetByID)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Post("/", teamHandler.Create)
		r.Get("/", teamHandler.List)
		r.Get("/{id}", teamHandler.GetByID)
		r.Get("/{id}/members", teamHandler.ListMembers)
		r.Put("/{id}", teamHandler.Update)
		r.Put("/{id}/crest", teamHandler.UploadCrest)
		r.Delete("/{id}", teamHandler.Delete)
	})

	router.Route("/members", func(r chi.Router) {
		r.Post("/", memberHandler.Create)
		r.Get("/", memberHandler.List)
		r.Get("/{id}", memberHandler.GetByID)
		r.Delete("/{id}", memberHandler.Delete)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/estado/{estado}", tournamentHandler.ListByStatus)
		r.Get("/{id}", tournamentHandler.GetByID)
		r.Get("/{id}/summary", tournamentHandler.GetSummary)
		r.Get("/{id}/inscriptions", inscriptionHandler.ListByTournament)
		r.Get("/{id}/payments", paymentHandler.ListByTournament)
		r.Get("/{id}/matches", matchHandler.ListByTournament)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", tournamentHandler.Create)
			r.Put("/{id}", tournamentHandler.Update)
			r.Patch("/{id}/status", tournamentHandler.UpdateStatus)
			r.Put("/{id}/banner", tournamentHandler.UploadBanner)
			r.Delete("/{id}", tournamentHandler.Delete)
		})
	})

	router.Route("/inscriptions", func(r chi.Router) {
		r.Post("/", inscriptionHandler.Create)
		r.Get("/", inscriptionHandler.List)
		r.Get("/{id}", inscriptionHandler.GetByID)
		r.Delete("/{id}", inscriptionHandler.Delete)
	})

	router.Route("/payments", func(r chi.Router) {
		r.Post("/", paymentHandler.Create)
		r.Get("/", paymentHandler.List)
		r.Get("/{id}", paymentHandler.GetByID)
		r.Patch("/{id}/status", paymentHandler.UpdateStatus)
		r.Delete("/{id}", paymentHandler.Delete)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Post("/", matchHandler.Create)
		r.Get("/", matchHandler.List)
		r.Get("/{id}", matchHandler.GetByID)
		r.Patch("/{id}/result", matchHandler.UpdateResult)
		r.Delete("/{id}", matchHandler.Delete)
	})

	router.Get("/ws/tournaments/{id}", liveHandler.ServeWs)
}
