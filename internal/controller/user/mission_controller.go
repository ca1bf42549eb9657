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

type MissionController struct {
	catalogService  service.MissionCatalogService
	progressService service.ProgressService
}

func NewMissionController(cs service.MissionCatalogService, ps service.ProgressService) *MissionController {
	return &MissionController{catalogService: cs, progressService: ps}
}

// ListMissions godoc
// @Summary List all missions in the catalogue
// @Tags Missions
// @Produce json
// @Success 200 {array} dto.MissionSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /missions [get]
func (c *MissionController) ListMissions(ctx *gin.Context) {
	missions, err := c.catalogService.ListMissions()
	if err != nil {
		log.Error().Err(err).Msg("ListMissions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve missions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, missions)
}

// GetMissionDetails godoc
// @Summary Get a mission with its ordered steps
// @Tags Missions
// @Produce json
// @Param mission_id path int true "Mission ID"
// @Success 200 {object} dto.MissionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Mission ID format"
// @Failure 404 {object} dto.ErrorResponse "Mission not found"
// @Router /missions/{mission_id} [get]
func (c *MissionController) GetMissionDetails(ctx *gin.Context) {
	missionID, err := strconv.ParseUint(ctx.Param("mission_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Mission ID format"})
		return
	}
	mission, err := c.catalogService.GetMissionDetails(uint(missionID))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

// GetRecommendedMissions godoc
// @Summary List missions at the learner's recommended difficulty per area
// @Description Uses the most recent diagnostic result per area to pick the tier.
// @Tags Missions
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Success 200 {array} dto.MissionSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Learner ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners/{learner_id}/recommended-missions [get]
func (c *MissionController) GetRecommendedMissions(ctx *gin.Context) {
	learnerID, err := strconv.ParseUint(ctx.Param("learner_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Learner ID format"})
		return
	}
	missions, err := c.catalogService.RecommendedMissions(uint(learnerID))
	if err != nil {
		log.Error().Err(err).Uint64("learnerID", learnerID).Msg("GetRecommendedMissions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve recommended missions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, missions)
}

// StartMission godoc
// @Summary Start (or restart) a mission for a learner
// @Description Creates the progress record on first start; increments attempts on every restart.
// @Tags Missions
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Param mission_id path int true "Mission ID"
// @Success 200 {object} dto.ProgressRecordDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Mission not found"
// @Router /learners/{learner_id}/missions/{mission_id}/start [post]
func (c *MissionController) StartMission(ctx *gin.Context) {
	learnerID, missionID, ok := parsePairIDs(ctx)
	if !ok {
		return
	}
	record, err := c.progressService.StartMission(learnerID, missionID)
	if err != nil {
		log.Warn().Err(err).Uint("learnerID", learnerID).Uint("missionID", missionID).Msg("StartMission: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// CompleteMission godoc
// @Summary Complete a mission with a score
// @Description Marks the mission completed, credits XP, recomputes the level and evaluates achievements.
// @Tags Missions
// @Accept json
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Param mission_id path int true "Mission ID"
// @Param completion body dto.CompleteMissionDTO true "Final score (0-100)"
// @Success 200 {object} dto.MissionCompletionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format or score out of range"
// @Failure 404 {object} dto.ErrorResponse "Mission not found"
// @Failure 500 {object} dto.ErrorResponse "Error persisting completion"
// @Router /learners/{learner_id}/missions/{mission_id}/complete [post]
func (c *MissionController) CompleteMission(ctx *gin.Context) {
	learnerID, missionID, ok := parsePairIDs(ctx)
	if !ok {
		return
	}

	var req dto.CompleteMissionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CompleteMission: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	completion, err := c.progressService.CompleteMission(learnerID, missionID, *req.Score)
	if err != nil {
		if errors.Is(err, service.ErrInvalidScore) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("learnerID", learnerID).Uint("missionID", missionID).Msg("CompleteMission: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, completion)
}

// GetLearnerProgress godoc
// @Summary List a learner's progress records
// @Tags Missions
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Success 200 {array} dto.ProgressRecordDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Learner ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners/{learner_id}/progress [get]
func (c *MissionController) GetLearnerProgress(ctx *gin.Context) {
	learnerID, err := strconv.ParseUint(ctx.Param("learner_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Learner ID format"})
		return
	}
	records, err := c.progressService.GetLearnerProgress(uint(learnerID))
	if err != nil {
		log.Error().Err(err).Uint64("learnerID", learnerID).Msg("GetLearnerProgress: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve progress", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, records)
}

func parsePairIDs(ctx *gin.Context) (learnerID, missionID uint, ok bool) {
	lID, err := strconv.ParseUint(ctx.Param("learner_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Learner ID format"})
		return 0, 0, false
	}
	mID, err := strconv.ParseUint(ctx.Param("mission_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Mission ID format"})
		return 0, 0, false
	}
	return uint(lID), uint(mID), true
}
