package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/survivorleague/survivor-api/internal/usecase"
)

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	item, err := h.competitionService.GetCompetition(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(item))
}

func (h *Handler) ListGameweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweeks")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	schedules, err := h.competitionService.ListGameweeks(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list gameweeks failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameweekScheduleDTO, 0, len(schedules))
	for _, s := range schedules {
		items = append(items, gameweekScheduleToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	teams, err := h.competitionService.ListTeams(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPicks")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	teamID := strings.TrimSpace(r.URL.Query().Get("team"))
	if teamID == "" {
		writeError(ctx, w, fmt.Errorf("%w: team query parameter is required", usecase.ErrInvalidInput))
		return
	}

	picks, err := h.pickService.ListTeamPicks(ctx, competitionID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team picks failed", "competition_id", competitionID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamPickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, teamPickToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEntries")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	roundNumber, err := strconv.Atoi(strings.TrimSpace(r.PathValue("roundNumber")))
	if err != nil || roundNumber < 1 {
		writeError(ctx, w, fmt.Errorf("%w: round number must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	entries, err := h.competitionService.ListEntries(ctx, competitionID, roundNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "list entries failed", "competition_id", competitionID, "round_number", roundNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roundEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, roundEntryToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListWhomstScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWhomstScores")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	scores, err := h.competitionService.ListWhomstScores(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list whomst scores failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]whomstScoreDTO, 0, len(scores))
	for _, s := range scores {
		items = append(items, whomstScoreToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) JoinRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinRound")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinRoundRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.competitionService.JoinRound(ctx, usecase.JoinRoundInput{
		Principal:   principal,
		InviteCode:  req.InviteCode,
		RoundNumber: req.RoundNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join round failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entryToDTO(item))
}

func (h *Handler) SubmitWhomstScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitWhomstScore")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req whomstScoreRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.competitionService.SubmitWhomstScore(ctx, usecase.WhomstScoreInput{
		Principal: principal,
		EntryID:   req.EntryID,
		GameType:  req.GameType,
		Score:     req.Score,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit whomst score failed", "user_id", principal.UserID, "entry_id", req.EntryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, whomstScoreToDTO(item))
}
