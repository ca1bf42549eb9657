package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/questline/backend/internal/dto"
	"github.com/questline/backend/internal/service"
	"github.com/rs/zerolog/log"
)

type LearnerController struct {
	learnerService service.LearnerService
}

func NewLearnerController(ls service.LearnerService) *LearnerController {
	return &LearnerController{learnerService: ls}
}

// GetProfile godoc
// @Summary Get a learner's profile with XP, level and earned achievements
// @Tags Learners
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Success 200 {object} dto.LearnerProfileDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Learner ID format"
// @Failure 404 {object} dto.ErrorResponse "Learner not found"
// @Router /learners/{learner_id} [get]
func (c *LearnerController) GetProfile(ctx *gin.Context) {
	learnerID, err := strconv.ParseUint(ctx.Param("learner_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Learner ID format"})
		return
	}
	profile, err := c.learnerService.GetProfile(uint(learnerID))
	if err != nil {
		log.Warn().Err(err).Uint64("learnerID", learnerID).Msg("GetProfile: learner not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, profile)
}
