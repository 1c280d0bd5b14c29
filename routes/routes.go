package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/esports-scoreboard/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	allowedOrigin string,
	gameHandler *handlers.GameHandler,
	matchHandler *handlers.MatchHandler,
	teamHandler *handlers.TeamHandler,
	scoreHandler *handlers.ScoreHandler,
	standingsHandler *handlers.StandingsHandler,
	libraryHandler *handlers.TeamLibraryHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Get("/", gameHandler.ListGames)
			r.Post("/", gameHandler.CreateGame)
			r.Route("/{gameID}", func(r chi.Router) {
				r.Get("/", gameHandler.GetGame)
				r.Delete("/", gameHandler.DeleteGame)
				r.Get("/matches", gameHandler.ListMatches)
				r.Post("/matches", gameHandler.CreateMatch)
				r.Get("/standings", standingsHandler.GameStandings)
			})
		})

		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Delete("/", matchHandler.DeleteMatch)
			r.Get("/teams", teamHandler.ListTeams)
			r.Post("/teams", teamHandler.AddTeam)
			r.Post("/teams/from-library", teamHandler.AddTeamFromLibrary)
			r.Post("/points", scoreHandler.AddPoints)
			r.Post("/eliminations", scoreHandler.AddEliminations)
			r.Post("/eliminate", scoreHandler.SetEliminated)
			r.Post("/copy-teams", matchHandler.CopyTeams)
			r.Get("/standings", standingsHandler.MatchStandings)
		})

		r.Route("/teams/{teamID}", func(r chi.Router) {
			r.Patch("/", teamHandler.UpdateTeam)
			r.Delete("/", teamHandler.DeleteTeam)
		})

		r.Route("/library/teams", func(r chi.Router) {
			r.Get("/", libraryHandler.SearchEntries)
			r.Post("/", libraryHandler.CreateEntry)
			r.Delete("/{entryID}", libraryHandler.DeleteEntry)
		})
	})

	router.Get("/ws", webSocketHandler.ServeWs)
}
