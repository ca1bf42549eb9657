package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questline/backend/internal/dto"
	"github.com/questline/backend/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminCatalogController struct {
	adminService service.AdminCatalogService
}

func NewAdminCatalogController(as service.AdminCatalogService) *AdminCatalogController {
	return &AdminCatalogController{adminService: as}
}

// CreateLearner godoc
// @Summary (Admin) Register a learner
// @Tags Admin - Catalogue
// @Accept json
// @Produce json
// @Param learner body dto.LearnerCreateDTO true "Learner name and role"
// @Success 201 {object} model.Learner
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /admin/learners [post]
func (c *AdminCatalogController) CreateLearner(ctx *gin.Context) {
	var req dto.LearnerCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	learner, err := c.adminService.CreateLearner(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateLearner: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, learner)
}

// CreateQuestion godoc
// @Summary (Admin) Create a diagnostic question
// @Tags Admin - Catalogue
// @Accept json
// @Produce json
// @Param question body dto.QuestionCreateDTO true "Question definition"
// @Success 201 {object} model.DiagnosticQuestion
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /admin/questions [post]
func (c *AdminCatalogController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.adminService.CreateQuestion(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateQuestion: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// CreateMission godoc
// @Summary (Admin) Create a mission with its steps
// @Tags Admin - Catalogue
// @Accept json
// @Produce json
// @Param mission body dto.MissionCreateDTO true "Mission definition with ordered steps"
// @Success 201 {object} dto.MissionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /admin/missions [post]
func (c *AdminCatalogController) CreateMission(ctx *gin.Context) {
	var req dto.MissionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	mission, err := c.adminService.CreateMission(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateMission: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, mission)
}

// CreateAchievement godoc
// @Summary (Admin) Create an achievement
// @Tags Admin - Catalogue
// @Accept json
// @Produce json
// @Param achievement body dto.AchievementCreateDTO true "Achievement definition"
// @Success 201 {object} model.Achievement
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /admin/achievements [post]
func (c *AdminCatalogController) CreateAchievement(ctx *gin.Context) {
	var req dto.AchievementCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	achievement, err := c.adminService.CreateAchievement(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateAchievement: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, achievement)
}
