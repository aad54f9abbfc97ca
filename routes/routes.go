package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lawrencemparker/Stride4Stride/handlers"
	"github.com/lawrencemparker/Stride4Stride/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	runHandler *handlers.RunHandler,
	shoeHandler *handlers.ShoeHandler,
	clubHandler *handlers.ClubHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", userHandler.GetProfile)
			r.Patch("/", userHandler.UpdateProfile)
			r.Put("/avatar", userHandler.UploadAvatar)
			r.Post("/founder", userHandler.UnlockFounder)
			r.Delete("/founder", userHandler.CancelFounderSubscription)
		})

		r.Get("/dashboard", runHandler.GetDashboard)

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", runHandler.ListRuns)
			r.Post("/", runHandler.CreateRun)
			r.Put("/{runID}", runHandler.UpdateRun)
			r.Delete("/{runID}", runHandler.DeleteRun)
		})

		r.Route("/shoes", func(r chi.Router) {
			r.Get("/", shoeHandler.ListShoes)
			r.Post("/", shoeHandler.AddShoe)
			r.Patch("/{shoeID}", shoeHandler.RenameShoe)
			r.Patch("/{shoeID}/retired", shoeHandler.SetRetired)
			r.Delete("/{shoeID}", shoeHandler.DeleteShoe)
		})

		r.Route("/clubs", func(r chi.Router) {
			r.Get("/", clubHandler.ListClubs)
			r.Post("/", clubHandler.LaunchClub)
			r.Post("/join", clubHandler.JoinClub)

			r.Route("/{clubID}", func(r chi.Router) {
				r.Get("/", clubHandler.GetClub)
				r.Delete("/", clubHandler.DeleteClub)
				r.Get("/leaderboard", clubHandler.GetLeaderboard)
				r.Put("/logo", clubHandler.UploadLogo)
				r.Put("/prize", clubHandler.SetPrizeMessage)
				r.Post("/members/remove", clubHandler.RemoveMember)

				r.Route("/announcements", func(r chi.Router) {
					r.Post("/", clubHandler.PostAnnouncement)
					r.Put("/{announcementID}", clubHandler.EditAnnouncement)
					r.Delete("/{announcementID}", clubHandler.DeleteAnnouncement)
				})
			})
		})
	})

	// Websocket clients pass the token during the handshake; the live stream
	// itself only carries projected club snapshots.
	router.Get("/ws/clubs/{clubID}", webSocketHandler.Subscribe)
}
