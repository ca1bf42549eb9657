package service

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/questline/backend/internal/dto"
	"github.com/questline/backend/internal/model"
	"github.com/questline/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// MissionCatalogService is the read side of the mission catalogue, including
// the consumption of diagnostic recommendations: the most recent AreaResult
// per area selects the difficulty tier for that area's mission list.
type MissionCatalogService interface {
	ListMissions() ([]dto.MissionSummaryDTO, error)
	GetMissionDetails(missionID uint) (*dto.MissionDTO, error)
	RecommendedMissions(learnerID uint) ([]dto.MissionSummaryDTO, error)
}

type missionCatalogServiceImpl struct {
	missionRepo    repository.MissionRepository
	areaResultRepo repository.AreaResultRepository
}

func NewMissionCatalogService(missionRepo repository.MissionRepository, areaResultRepo repository.AreaResultRepository) MissionCatalogService {
	return &missionCatalogServiceImpl{missionRepo: missionRepo, areaResultRepo: areaResultRepo}
}

func (s *missionCatalogServiceImpl) ListMissions() ([]dto.MissionSummaryDTO, error) {
	missions, err := s.missionRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("ListMissions: failed to load missions")
		return nil, fmt.Errorf("error fetching missions: %w", err)
	}
	return missionSummaries(missions), nil
}

func (s *missionCatalogServiceImpl) GetMissionDetails(missionID uint) (*dto.MissionDTO, error) {
	mission, err := s.missionRepo.FindByIDWithSteps(missionID)
	if err != nil {
		log.Warn().Err(err).Uint("missionID", missionID).Msg("GetMissionDetails: mission not found")
		return nil, fmt.Errorf("mission not found with ID %d: %w", missionID, err)
	}

	var resp dto.MissionDTO
	if err := copier.Copy(&resp, mission); err != nil {
		log.Error().Err(err).Msg("GetMissionDetails: failed to copy mission to DTO")
		return nil, fmt.Errorf("error preparing mission response: %w", err)
	}

	resp.Steps = make([]dto.MissionStepDTO, len(mission.Steps))
	for i, step := range mission.Steps {
		stepDTO := dto.MissionStepDTO{
			ID:             step.ID,
			OrderInMission: step.OrderInMission,
			Type:           step.Type,
			Prompt:         step.Prompt,
		}
		if step.Options != nil {
			if err := json.Unmarshal([]byte(*step.Options), &stepDTO.Options); err != nil {
				log.Warn().Err(err).Uint("stepID", step.ID).Msg("Failed to decode step options")
			}
		}
		resp.Steps[i] = stepDTO
	}
	return &resp, nil
}

// RecommendedMissions resolves the learner's most recent diagnostic result per
// area (results are append-only, newest first) and returns the missions at
// each area's recommended tier.
func (s *missionCatalogServiceImpl) RecommendedMissions(learnerID uint) ([]dto.MissionSummaryDTO, error) {
	results, err := s.areaResultRepo.FindAllByLearner(learnerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching area results for learner %d: %w", learnerID, err)
	}

	latestTier := make(map[model.Area]int)
	for _, r := range results {
		if _, seen := latestTier[r.Area]; !seen {
			latestTier[r.Area] = r.RecommendedDifficulty
		}
	}

	var recommended []dto.MissionSummaryDTO
	for _, area := range model.AllAreas {
		tier, ok := latestTier[area]
		if !ok {
			continue
		}
		missions, err := s.missionRepo.FindByAreaAndDifficulty(area, tier)
		if err != nil {
			return nil, fmt.Errorf("error fetching missions for area %s tier %d: %w", area, tier, err)
		}
		recommended = append(recommended, missionSummaries(missions)...)
	}
	return recommended, nil
}

func missionSummaries(missions []model.Mission) []dto.MissionSummaryDTO {
	dtos := make([]dto.MissionSummaryDTO, len(missions))
	for i, m := range missions {
		dtos[i] = dto.MissionSummaryDTO{
			ID:         m.ID,
			Title:      m.Title,
			Area:       string(m.Area),
			Difficulty: m.Difficulty,
			XpReward:   m.XpReward,
			Sequence:   m.Sequence,
		}
	}
	return dtos
}
