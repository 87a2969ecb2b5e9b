package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/shelterplus/shelterplus-api/internal/api/handlers"
	"github.com/shelterplus/shelterplus-api/internal/api/middleware"
	"github.com/shelterplus/shelterplus-api/internal/config"
	"github.com/shelterplus/shelterplus-api/internal/metrics"
	"github.com/shelterplus/shelterplus-api/internal/service"
	"github.com/shelterplus/shelterplus-api/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, presets *config.OfficialPresets, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	// Initialize handlers
	lobbyHandler := handlers.NewLobbyHandler(services.Lobby, services.Game)
	gameHandler := handlers.NewGameHandler(services.Game)
	inviteHandler := handlers.NewInviteHandler(services.Game)
	configHandler := handlers.NewConfigHandler(presets)
	wsHandler := handlers.NewWebSocketHandler(hub, cfg.JWTSecret)

	// Official preset config (public read, protected reload)
	r.Get("/config/official", configHandler.GetOfficial)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Post("/config/official/reload", configHandler.ReloadOfficial)

			r.Route("/lobbies", func(r chi.Router) {
				r.Post("/", lobbyHandler.Create)
				r.Get("/{id}", lobbyHandler.Get)
				r.Post("/{id}/players/collect", lobbyHandler.CollectPlayers)
				r.Put("/{id}/players", lobbyHandler.UpdatePlayers)
				r.Post("/{id}/start", lobbyHandler.StartGame)
			})

			r.Route("/games", func(r chi.Router) {
				r.Get("/{id}", gameHandler.Get)
				r.Get("/{id}/state", gameHandler.GetState)
				r.Get("/{id}/spectate", gameHandler.Spectate)
				r.Get("/{id}/events", gameHandler.ListEvents)

				r.Route("/{id}/rounds/{round}", func(r chi.Router) {
					r.Post("/start", gameHandler.StartRound)
					r.Post("/end", gameHandler.EndRound)
					r.Post("/preselect", gameHandler.Preselect)
					r.Get("/preselect", gameHandler.GetRevealPlans)
					r.Post("/minutes", gameHandler.EnqueueMinute)
					r.Post("/minutes/{playerId}/approve", gameHandler.ApproveMinute)
					r.Post("/voting/start", gameHandler.StartVoting)
					r.Post("/voting/stop", gameHandler.StopVoting)
					r.Post("/voting/revote", gameHandler.Revote)
					r.Post("/votes", gameHandler.CastVote)
				})

				r.Post("/{id}/minutes/timer", gameHandler.ControlTimer)
				r.Post("/{id}/players/{playerId}/open", gameHandler.OpenCategory)
				r.Post("/{id}/players/{playerId}/kick", gameHandler.KickPlayer)
				r.Patch("/{id}/spectators", gameHandler.SetSpectators)
				r.Post("/{id}/ending", gameHandler.TriggerEnding)
				r.Post("/{id}/invites", gameHandler.CreateInvite)
			})

			r.Post("/invites/{code}/accept", inviteHandler.Accept)
		})
	})

	// WebSocket endpoint (token in query string)
	r.Get("/ws", wsHandler.Handle)

	return r
}
