package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/questline/backend/internal/dto"
	"github.com/questline/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

type LearnerService interface {
	GetProfile(learnerID uint) (*dto.LearnerProfileDTO, error)
}

type learnerServiceImpl struct {
	learnerRepo     repository.LearnerRepository
	achievementRepo repository.AchievementRepository
}

func NewLearnerService(learnerRepo repository.LearnerRepository, achievementRepo repository.AchievementRepository) LearnerService {
	return &learnerServiceImpl{learnerRepo: learnerRepo, achievementRepo: achievementRepo}
}

// GetProfile returns the learner's gamification state together with their
// earned achievements.
func (s *learnerServiceImpl) GetProfile(learnerID uint) (*dto.LearnerProfileDTO, error) {
	learner, err := s.learnerRepo.FindByID(learnerID)
	if err != nil {
		log.Error().Err(err).Uint("learnerID", learnerID).Msg("GetProfile: learner not found")
		return nil, fmt.Errorf("learner not found with ID %d: %w", learnerID, err)
	}

	var profile dto.LearnerProfileDTO
	if err := copier.Copy(&profile, learner); err != nil {
		log.Error().Err(err).Msg("GetProfile: failed to copy learner to profile DTO")
		return nil, fmt.Errorf("error preparing profile response: %w", err)
	}

	grants, err := s.achievementRepo.FindGrantsByLearner(learnerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching grants for learner %d: %w", learnerID, err)
	}
	for _, g := range grants {
		profile.Grants = append(profile.Grants, dto.AchievementGrantDTO{
			AchievementID: g.AchievementID,
			Title:         g.Achievement.Title,
			EarnedAt:      g.EarnedAt,
		})
	}
	return &profile, nil
}
