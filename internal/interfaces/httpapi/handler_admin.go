package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/survivorleague/survivor-api/internal/usecase"
)

func (h *Handler) AdminListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListFixtures")
	defer span.End()

	competitionID := strings.TrimSpace(r.URL.Query().Get("competition"))
	gameweekID := strings.TrimSpace(r.URL.Query().Get("gameweek"))
	if competitionID == "" {
		writeError(ctx, w, fmt.Errorf("%w: competition query parameter is required", usecase.ErrInvalidInput))
		return
	}

	fixtures, err := h.fixtureAdmin.ListFixtures(ctx, competitionID, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "admin list fixtures failed", "competition_id", competitionID, "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AdminCreateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateFixture")
	defer span.End()

	var req adminCreateFixtureRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureAdmin.CreateFixture(ctx, usecase.CreateFixtureInput{
		CompetitionID: req.CompetitionID,
		GameweekID:    req.GameweekID,
		HomeTeamID:    req.HomeTeamID,
		AwayTeamID:    req.AwayTeamID,
		KickoffAt:     req.KickoffAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin create fixture failed", "gameweek_id", req.GameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fixtureToDTO(item))
}

func (h *Handler) AdminUpdateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateFixture")
	defer span.End()

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	var req adminUpdateFixtureRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.fixtureAdmin.UpdateFixture(ctx, usecase.UpdateFixtureInput{
		FixtureID:  fixtureID,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		KickoffAt:  req.KickoffAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin update fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

func (h *Handler) AdminRecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminRecordResult")
	defer span.End()

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	var req adminRecordResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureAdmin.RecordResult(ctx, usecase.RecordResultInput{
		FixtureID: fixtureID,
		HomeGoals: req.HomeGoals,
		AwayGoals: req.AwayGoals,
		Status:    req.Status,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin record result failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

func (h *Handler) AdminMoveFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminMoveFixture")
	defer span.End()

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	var req adminMoveFixtureRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureAdmin.MoveFixture(ctx, fixtureID, req.GameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "admin move fixture failed", "fixture_id", fixtureID, "gameweek_id", req.GameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

func (h *Handler) AdminUpdateGameweekLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateGameweekLock")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	var req adminGameweekLockRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.fixtureAdmin.UpdateGameweekLock(ctx, gameweekID, req.LockAt); err != nil {
		h.logger.WarnContext(ctx, "admin update gameweek lock failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) AdminSettleGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminSettleGameweek")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	summary, err := h.settlementService.SettleGameweek(ctx, gameweekID)
	if err != nil {
		h.logger.ErrorContext(ctx, "settle gameweek failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementSummaryToDTO(summary))
}

func (h *Handler) AdminRederiveGameweekStates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminRederiveGameweekStates")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	report, err := h.fixtureAdmin.RederiveGameweekStates(ctx, competitionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "rederive gameweek states failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rederiveReportDTO{
		GameweeksSeen:    report.GameweeksSeen,
		GameweeksUpdated: report.GameweeksUpdated,
	})
}

func (h *Handler) AdminIssueAccessCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminIssueAccessCode")
	defer span.End()

	var req adminAccessCodeRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	issued, err := h.authService.IssueAccessCode(ctx, usecase.IssueAccessCodeInput{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
		Code:  req.Code,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "issue access code failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, issuedAccessCodeDTO{
		Email:     issued.Email,
		Name:      issued.Name,
		Role:      issued.Role,
		Code:      issued.Code,
		IssuedAt:  issued.IssuedAt,
		RotatedAt: issued.RotatedAt,
	})
}
