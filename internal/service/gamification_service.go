package service

import (
	"fmt"

	"github.com/questline/backend/config"
	"github.com/questline/backend/internal/model"
	"github.com/questline/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// GamificationService derives levels from cumulative XP and evaluates
// achievement criteria against a learner's full progress snapshot.
type GamificationService interface {
	LevelForXp(xp int) int
	EvaluateAchievements(learnerID uint, area model.Area, xpTotal int) ([]model.Achievement, error)
}

type gamificationServiceImpl struct {
	achievementRepo repository.AchievementRepository
	progressRepo    repository.ProgressRepository
	areaResultRepo  repository.AreaResultRepository
	xpPerLevel      int
}

func NewGamificationService(
	achievementRepo repository.AchievementRepository,
	progressRepo repository.ProgressRepository,
	areaResultRepo repository.AreaResultRepository,
	cfg *config.Config,
) GamificationService {
	xpPerLevel := cfg.Gamification.XpPerLevel
	if xpPerLevel <= 0 {
		xpPerLevel = 100
	}
	return &gamificationServiceImpl{
		achievementRepo: achievementRepo,
		progressRepo:    progressRepo,
		areaResultRepo:  areaResultRepo,
		xpPerLevel:      xpPerLevel,
	}
}

// LevelForXp is a pure step function of the cumulative XP total. Always call
// it with the post-credit total; levels are never patched incrementally.
func (s *gamificationServiceImpl) LevelForXp(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/s.xpPerLevel + 1
}

// EvaluateAchievements checks every achievement matching the given area (or
// area-agnostic) against the learner's progress records and diagnostic
// results, granting those newly satisfied. Re-running for an already-granted
// achievement is a no-op, so retries are safe. Returns the newly granted
// achievements.
func (s *gamificationServiceImpl) EvaluateAchievements(learnerID uint, area model.Area, xpTotal int) ([]model.Achievement, error) {
	achievements, err := s.achievementRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error loading achievement catalogue: %w", err)
	}
	if len(achievements) == 0 {
		return nil, nil
	}

	grants, err := s.achievementRepo.FindGrantsByLearner(learnerID)
	if err != nil {
		return nil, fmt.Errorf("error loading existing grants for learner %d: %w", learnerID, err)
	}
	granted := make(map[uint]bool, len(grants))
	for _, g := range grants {
		granted[g.AchievementID] = true
	}

	records, err := s.progressRepo.FindAllByLearner(learnerID)
	if err != nil {
		return nil, fmt.Errorf("error loading progress records for learner %d: %w", learnerID, err)
	}
	results, err := s.areaResultRepo.FindAllByLearner(learnerID)
	if err != nil {
		return nil, fmt.Errorf("error loading area results for learner %d: %w", learnerID, err)
	}

	var newlyGranted []model.Achievement
	for _, a := range achievements {
		if a.Area != nil && *a.Area != area {
			continue
		}
		if granted[a.ID] {
			continue
		}
		if !criteriaSatisfied(a, records, results, xpTotal) {
			continue
		}

		if err := s.achievementRepo.Grant(learnerID, a.ID); err != nil {
			// Grant is conflict-safe, so one retry covers transient failures.
			log.Warn().Err(err).Uint("learnerID", learnerID).Uint("achievementID", a.ID).Msg("Grant failed, retrying once")
			if err := s.achievementRepo.Grant(learnerID, a.ID); err != nil {
				return newlyGranted, fmt.Errorf("error granting achievement %d to learner %d: %w", a.ID, learnerID, err)
			}
		}
		log.Info().Uint("learnerID", learnerID).Uint("achievementID", a.ID).Str("title", a.Title).Msg("Achievement granted")
		newlyGranted = append(newlyGranted, a)
	}
	return newlyGranted, nil
}

func criteriaSatisfied(a model.Achievement, records []model.ProgressRecord, results []model.AreaResult, xpTotal int) bool {
	switch a.CriteriaType {
	case model.CriteriaMissionsCompletedInArea:
		if a.Area == nil {
			return false
		}
		count := 0
		for _, r := range records {
			if r.Completed && r.Mission.Area == *a.Area {
				count++
			}
		}
		return count >= a.Threshold

	case model.CriteriaMissionsCompletedTotal:
		count := 0
		for _, r := range records {
			if r.Completed {
				count++
			}
		}
		return count >= a.Threshold

	case model.CriteriaMinScoreAnyMission:
		for _, r := range records {
			if r.Completed && r.Score != nil && *r.Score >= a.Threshold {
				return true
			}
		}
		return false

	case model.CriteriaTotalXp:
		return xpTotal >= a.Threshold

	case model.CriteriaDiagnosticTier:
		for _, res := range results {
			if a.Area != nil && res.Area != *a.Area {
				continue
			}
			if res.RecommendedDifficulty >= a.Threshold {
				return true
			}
		}
		return false

	default:
		log.Warn().Str("criteriaType", a.CriteriaType).Uint("achievementID", a.ID).Msg("Unknown achievement criteria type, skipping")
		return false
	}
}
