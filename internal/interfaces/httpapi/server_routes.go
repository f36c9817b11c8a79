package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))

	mux.Handle("GET /v1/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))

	mux.Handle("GET /v1/game-sets", RequireAuth(verifier, http.HandlerFunc(handler.ListGameSets)))
	mux.Handle("POST /v1/game-sets", RequireAuth(verifier, http.HandlerFunc(handler.CreateGameSet)))
	mux.Handle("GET /v1/game-sets/{setID}", RequireAuth(verifier, http.HandlerFunc(handler.GetGameSet)))
	mux.Handle("DELETE /v1/game-sets/{setID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteGameSet)))
	mux.Handle("POST /v1/game-sets/{setID}/players", RequireAuth(verifier, http.HandlerFunc(handler.AddPlayerToGameSet)))
	mux.Handle("POST /v1/game-sets/{setID}/rounds", RequireAuth(verifier, http.HandlerFunc(handler.SaveRound)))
	mux.Handle("GET /v1/game-sets/{setID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
	mux.Handle("GET /v1/game-sets/{setID}/admins", RequireAuth(verifier, http.HandlerFunc(handler.GetAdmins)))
	mux.Handle("POST /v1/game-sets/{setID}/admins", RequireAuth(verifier, http.HandlerFunc(handler.AddAdmin)))
	mux.Handle("DELETE /v1/game-sets/{setID}/admins/{userID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveAdmin)))
}
