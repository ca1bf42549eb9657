package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/questline/backend/internal/dto"
	"github.com/questline/backend/internal/service"
	"github.com/rs/zerolog/log"
)

type DiagnosticController struct {
	diagnosticService service.DiagnosticService
}

func NewDiagnosticController(ds service.DiagnosticService) *DiagnosticController {
	return &DiagnosticController{diagnosticService: ds}
}

// StartDiagnostic godoc
// @Summary Start a placement diagnostic for a learner
// @Description Opens a diagnostic session. Non-student roles get an immediately complete session with no results.
// @Tags Diagnostic
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Success 200 {object} dto.DiagnosticSessionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Learner ID format"
// @Failure 404 {object} dto.ErrorResponse "Learner not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners/{learner_id}/diagnostic [post]
func (c *DiagnosticController) StartDiagnostic(ctx *gin.Context) {
	learnerID, err := strconv.ParseUint(ctx.Param("learner_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Learner ID format"})
		return
	}

	session, err := c.diagnosticService.StartDiagnostic(uint(learnerID))
	if err != nil {
		if errors.Is(err, service.ErrEmptyArea) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Warn().Err(err).Uint64("learnerID", learnerID).Msg("StartDiagnostic: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// SubmitAnswer godoc
// @Summary Submit an answer for the session's current question
// @Description Records the selected option. Resubmitting before advancing overwrites the previous choice.
// @Tags Diagnostic
// @Accept json
// @Produce json
// @Param session_id path string true "Diagnostic session ID"
// @Param answer body dto.SubmitAnswerDTO true "Question ID and selected option index"
// @Success 200 {object} dto.DiagnosticSessionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or no active question"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /diagnostic/{session_id}/answers [post]
func (c *DiagnosticController) SubmitAnswer(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	var req dto.SubmitAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.diagnosticService.SubmitAnswer(sessionID, req.QuestionID, *req.OptionIndex)
	if err != nil {
		respondDiagnosticError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// AdvanceDiagnostic godoc
// @Summary Advance past the current question
// @Description Moves to the next question, scores the area when exhausted, and completes the run after the last area.
// @Tags Diagnostic
// @Produce json
// @Param session_id path string true "Diagnostic session ID"
// @Success 200 {object} dto.DiagnosticSessionDTO
// @Failure 400 {object} dto.ErrorResponse "Current question has no recorded answer"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Error persisting results"
// @Router /diagnostic/{session_id}/advance [post]
func (c *DiagnosticController) AdvanceDiagnostic(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	session, err := c.diagnosticService.AdvanceDiagnostic(sessionID)
	if err != nil {
		respondDiagnosticError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// GetDiagnosticHistory godoc
// @Summary List a learner's diagnostic results, newest first
// @Tags Diagnostic
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Success 200 {array} dto.AreaResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Learner ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners/{learner_id}/diagnostic/results [get]
func (c *DiagnosticController) GetDiagnosticHistory(ctx *gin.Context) {
	learnerID, err := strconv.ParseUint(ctx.Param("learner_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Learner ID format"})
		return
	}

	results, err := c.diagnosticService.GetHistory(uint(learnerID))
	if err != nil {
		log.Error().Err(err).Uint64("learnerID", learnerID).Msg("GetDiagnosticHistory: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve diagnostic history", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, results)
}

func respondDiagnosticError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNoActiveQuestion), errors.Is(err, service.ErrUnansweredQuestion):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("Diagnostic operation failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
	}
}
