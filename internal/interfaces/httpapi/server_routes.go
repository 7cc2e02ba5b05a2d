package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/sign-in", handler.SignIn)

	mux.HandleFunc("GET /v1/competitions/{competitionID}", handler.GetCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/gameweeks", handler.ListGameweeks)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/team-picks", handler.ListTeamPicks)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/rounds/{roundNumber}/entries", handler.ListEntries)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/whomst", handler.ListWhomstScores)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/competitions/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinRound)))

	mux.Handle("POST /v1/picks", RequireAuth(verifier, http.HandlerFunc(handler.CreatePick)))
	mux.Handle("PUT /v1/picks/{pickID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePick)))
	mux.Handle("DELETE /v1/picks/{pickID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePick)))
	mux.Handle("GET /v1/entries/{entryID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.ListEntryPicks)))

	mux.Handle("PUT /v1/exacto", RequireAuth(verifier, http.HandlerFunc(handler.UpsertExactoPrediction)))
	mux.Handle("PUT /v1/whomst", RequireAuth(verifier, http.HandlerFunc(handler.SubmitWhomstScore)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("GET /v1/admin/fixtures", admin(handler.AdminListFixtures))
	mux.Handle("POST /v1/admin/fixtures", admin(handler.AdminCreateFixture))
	mux.Handle("PUT /v1/admin/fixtures/{fixtureID}", admin(handler.AdminUpdateFixture))
	mux.Handle("PUT /v1/admin/fixtures/{fixtureID}/result", admin(handler.AdminRecordResult))
	mux.Handle("PUT /v1/admin/fixtures/{fixtureID}/move", admin(handler.AdminMoveFixture))

	mux.Handle("PUT /v1/admin/gameweeks/{gameweekID}/lock", admin(handler.AdminUpdateGameweekLock))
	mux.Handle("POST /v1/admin/gameweeks/{gameweekID}/settle", admin(handler.AdminSettleGameweek))
	mux.Handle("POST /v1/admin/competitions/{competitionID}/rederive", admin(handler.AdminRederiveGameweekStates))

	mux.Handle("POST /v1/admin/access-codes", admin(handler.AdminIssueAccessCode))
}
