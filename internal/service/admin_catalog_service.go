package service

import (
	"encoding/json"
	"fmt"

	"github.com/questline/backend/internal/dto"
	"github.com/questline/backend/internal/model"
	"github.com/questline/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminCatalogService is the write side of the catalogue the engine reads:
// learners, diagnostic questions, missions and achievements.
type AdminCatalogService interface {
	CreateLearner(req dto.LearnerCreateDTO) (*model.Learner, error)
	CreateQuestion(req dto.QuestionCreateDTO) (*model.DiagnosticQuestion, error)
	CreateMission(req dto.MissionCreateDTO) (*dto.MissionDTO, error)
	CreateAchievement(req dto.AchievementCreateDTO) (*model.Achievement, error)
}

type adminCatalogServiceImpl struct {
	learnerRepo     repository.LearnerRepository
	questionRepo    repository.QuestionRepository
	missionRepo     repository.MissionRepository
	achievementRepo repository.AchievementRepository
	catalog         MissionCatalogService
}

func NewAdminCatalogService(
	learnerRepo repository.LearnerRepository,
	questionRepo repository.QuestionRepository,
	missionRepo repository.MissionRepository,
	achievementRepo repository.AchievementRepository,
	catalog MissionCatalogService,
) AdminCatalogService {
	return &adminCatalogServiceImpl{
		learnerRepo:     learnerRepo,
		questionRepo:    questionRepo,
		missionRepo:     missionRepo,
		achievementRepo: achievementRepo,
		catalog:         catalog,
	}
}

func (s *adminCatalogServiceImpl) CreateLearner(req dto.LearnerCreateDTO) (*model.Learner, error) {
	learner := model.Learner{
		Name:  req.Name,
		Role:  req.Role,
		Xp:    0,
		Level: 1,
	}
	if err := s.learnerRepo.Create(&learner); err != nil {
		log.Error().Err(err).Msg("Failed to create learner")
		return nil, fmt.Errorf("database error creating learner: %w", err)
	}
	return &learner, nil
}

func (s *adminCatalogServiceImpl) CreateQuestion(req dto.QuestionCreateDTO) (*model.DiagnosticQuestion, error) {
	area := model.Area(req.Area)
	if !area.Valid() {
		return nil, fmt.Errorf("unknown area %q", req.Area)
	}
	if req.CorrectOption < 0 || req.CorrectOption >= len(req.Options) {
		return nil, fmt.Errorf("correct_option %d is out of range for %d options", req.CorrectOption, len(req.Options))
	}

	encoded, err := json.Marshal(req.Options)
	if err != nil {
		return nil, fmt.Errorf("error encoding options: %w", err)
	}

	question := model.DiagnosticQuestion{
		Area:          area,
		Prompt:        req.Prompt,
		Options:       string(encoded),
		CorrectOption: req.CorrectOption,
		Difficulty:    req.Difficulty,
		OrderInArea:   req.OrderInArea,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Str("area", req.Area).Msg("Failed to create diagnostic question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}
	return &question, nil
}

func (s *adminCatalogServiceImpl) CreateMission(req dto.MissionCreateDTO) (*dto.MissionDTO, error) {
	area := model.Area(req.Area)
	if !area.Valid() {
		return nil, fmt.Errorf("unknown area %q", req.Area)
	}

	orderMap := make(map[int]bool)
	var steps []model.MissionStep
	for _, stepDto := range req.Steps {
		if orderMap[stepDto.OrderInMission] {
			return nil, fmt.Errorf("duplicate order_in_mission %d found in steps", stepDto.OrderInMission)
		}
		orderMap[stepDto.OrderInMission] = true

		step := model.MissionStep{
			OrderInMission: stepDto.OrderInMission,
			Type:           stepDto.Type,
			Prompt:         stepDto.Prompt,
		}
		switch stepDto.Type {
		case "multiple_choice":
			if len(stepDto.Options) < 2 {
				return nil, fmt.Errorf("step %d of type 'multiple_choice' requires at least 2 options", stepDto.OrderInMission)
			}
			if stepDto.CorrectOption == nil || *stepDto.CorrectOption < 0 || *stepDto.CorrectOption >= len(stepDto.Options) {
				return nil, fmt.Errorf("step %d has an invalid correct_option", stepDto.OrderInMission)
			}
			encoded, err := json.Marshal(stepDto.Options)
			if err != nil {
				return nil, fmt.Errorf("error encoding options for step %d: %w", stepDto.OrderInMission, err)
			}
			encodedStr := string(encoded)
			step.Options = &encodedStr
			step.CorrectOption = stepDto.CorrectOption
		case "free_text":
			if len(stepDto.Options) > 0 || stepDto.CorrectOption != nil {
				return nil, fmt.Errorf("step %d of type 'free_text' must not carry options", stepDto.OrderInMission)
			}
		}
		steps = append(steps, step)
	}

	mission := model.Mission{
		Title:      req.Title,
		Area:       area,
		Difficulty: req.Difficulty,
		XpReward:   req.XpReward,
		PathID:     req.PathID,
		Sequence:   req.Sequence,
		Steps:      steps,
	}
	if err := s.missionRepo.Create(&mission); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create mission")
		return nil, fmt.Errorf("database error creating mission: %w", err)
	}

	return s.catalog.GetMissionDetails(mission.ID)
}

func (s *adminCatalogServiceImpl) CreateAchievement(req dto.AchievementCreateDTO) (*model.Achievement, error) {
	achievement := model.Achievement{
		Title:        req.Title,
		Description:  req.Description,
		CriteriaType: req.CriteriaType,
		Threshold:    req.Threshold,
	}
	if req.Area != "" {
		area := model.Area(req.Area)
		if !area.Valid() {
			return nil, fmt.Errorf("unknown area %q", req.Area)
		}
		achievement.Area = &area
	}
	if req.CriteriaType == model.CriteriaMissionsCompletedInArea && achievement.Area == nil {
		return nil, fmt.Errorf("criteria %q requires an area", req.CriteriaType)
	}
	if err := s.achievementRepo.Create(&achievement); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create achievement")
		return nil, fmt.Errorf("database error creating achievement: %w", err)
	}
	return &achievement, nil
}
