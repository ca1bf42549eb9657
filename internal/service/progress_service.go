package service

import (
	"fmt"
	"time"

	"github.com/questline/backend/internal/dto"
	"github.com/questline/backend/internal/model"
	"github.com/questline/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// ProgressService tracks mission attempts per (learner, mission) pair and
// drives the completion side effects: XP credit, level recomputation and
// achievement evaluation.
type ProgressService interface {
	StartMission(learnerID, missionID uint) (*dto.ProgressRecordDTO, error)
	CompleteMission(learnerID, missionID uint, score int) (*dto.MissionCompletionDTO, error)
	GetLearnerProgress(learnerID uint) ([]dto.ProgressRecordDTO, error)
}

type progressServiceImpl struct {
	progressRepo repository.ProgressRepository
	missionRepo  repository.MissionRepository
	learnerRepo  repository.LearnerRepository
	gamification GamificationService
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	missionRepo repository.MissionRepository,
	learnerRepo repository.LearnerRepository,
	gamification GamificationService,
) ProgressService {
	return &progressServiceImpl{
		progressRepo: progressRepo,
		missionRepo:  missionRepo,
		learnerRepo:  learnerRepo,
		gamification: gamification,
	}
}

// StartMission creates the learner's ProgressRecord for the mission on first
// call and increments Attempts on every subsequent call. Restarting a
// completed mission keeps the previous completion visible until the retry
// finishes.
func (s *progressServiceImpl) StartMission(learnerID, missionID uint) (*dto.ProgressRecordDTO, error) {
	mission, err := s.missionRepo.FindByID(missionID)
	if err != nil {
		log.Error().Err(err).Uint("missionID", missionID).Msg("StartMission: mission not found")
		return nil, fmt.Errorf("mission not found with ID %d: %w", missionID, err)
	}

	record, err := s.progressRepo.FindByLearnerAndMission(learnerID, missionID)
	if err != nil {
		return nil, fmt.Errorf("error looking up progress for learner %d mission %d: %w", learnerID, missionID, err)
	}

	if record == nil {
		record = &model.ProgressRecord{
			LearnerID: learnerID,
			MissionID: missionID,
			Completed: false,
			Attempts:  1,
		}
		if err := s.progressRepo.Create(record); err != nil {
			return nil, fmt.Errorf("error creating progress record: %w", err)
		}
		log.Info().Uint("learnerID", learnerID).Uint("missionID", missionID).Msg("Mission started")
	} else {
		record.Attempts++
		if err := s.progressRepo.Update(record); err != nil {
			return nil, fmt.Errorf("error updating progress record: %w", err)
		}
		log.Info().Uint("learnerID", learnerID).Uint("missionID", missionID).Int("attempts", record.Attempts).Msg("Mission restarted")
	}

	view := progressRecordView(record)
	view.MissionTitle = mission.Title
	return view, nil
}

// CompleteMission marks the mission completed with the given score, then
// credits the mission's XP reward, recomputes the learner's level from the new
// total and evaluates achievements. XP is credited on every completion call,
// including repeats; the catalogue does not distinguish first from repeat
// completion.
func (s *progressServiceImpl) CompleteMission(learnerID, missionID uint, score int) (*dto.MissionCompletionDTO, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("score %d: %w", score, ErrInvalidScore)
	}

	mission, err := s.missionRepo.FindByID(missionID)
	if err != nil {
		log.Error().Err(err).Uint("missionID", missionID).Msg("CompleteMission: mission not found")
		return nil, fmt.Errorf("mission not found with ID %d: %w", missionID, err)
	}

	existing, err := s.progressRepo.FindByLearnerAndMission(learnerID, missionID)
	if err != nil {
		return nil, fmt.Errorf("error looking up progress for learner %d mission %d: %w", learnerID, missionID, err)
	}

	now := time.Now()
	scoreValue := score
	record := &model.ProgressRecord{
		LearnerID:   learnerID,
		MissionID:   missionID,
		Completed:   true,
		Score:       &scoreValue,
		Attempts:    1,
		CompletedAt: &now,
	}
	if existing != nil {
		record.ID = existing.ID
		record.Attempts = existing.Attempts
		record.CreatedAt = existing.CreatedAt
	}

	// Keyed on the (learner_id, mission_id) unique index, so a retried call
	// lands on the same row. One retry for this idempotent upsert.
	if err := s.progressRepo.Upsert(record); err != nil {
		log.Warn().Err(err).Uint("learnerID", learnerID).Uint("missionID", missionID).Msg("Progress upsert failed, retrying once")
		if err := s.progressRepo.Upsert(record); err != nil {
			return nil, fmt.Errorf("error upserting progress record: %w", err)
		}
	}

	xpTotal, err := s.learnerRepo.CreditXp(learnerID, mission.XpReward)
	if err != nil {
		return nil, fmt.Errorf("error crediting %d XP to learner %d: %w", mission.XpReward, learnerID, err)
	}

	level := s.gamification.LevelForXp(xpTotal)
	if err := s.learnerRepo.UpdateLevel(learnerID, level); err != nil {
		return nil, fmt.Errorf("error updating level for learner %d: %w", learnerID, err)
	}

	unlocked, err := s.gamification.EvaluateAchievements(learnerID, mission.Area, xpTotal)
	if err != nil {
		// The completion itself is durable at this point; grants will be
		// re-evaluated on the next completion, so log and carry on.
		log.Error().Err(err).Uint("learnerID", learnerID).Msg("Achievement evaluation failed after completion")
	}

	log.Info().
		Uint("learnerID", learnerID).
		Uint("missionID", missionID).
		Int("score", score).
		Int("xpCredited", mission.XpReward).
		Int("xpTotal", xpTotal).
		Int("level", level).
		Msg("Mission completed")

	view := progressRecordView(record)
	view.MissionTitle = mission.Title

	completion := &dto.MissionCompletionDTO{
		Record:     *view,
		XpCredited: mission.XpReward,
		XpTotal:    xpTotal,
		Level:      level,
	}
	for _, a := range unlocked {
		achievementDTO := dto.AchievementDTO{
			ID:           a.ID,
			Title:        a.Title,
			Description:  a.Description,
			CriteriaType: a.CriteriaType,
			Threshold:    a.Threshold,
		}
		if a.Area != nil {
			achievementDTO.Area = string(*a.Area)
		}
		completion.UnlockedAchievement = append(completion.UnlockedAchievement, achievementDTO)
	}
	return completion, nil
}

func (s *progressServiceImpl) GetLearnerProgress(learnerID uint) ([]dto.ProgressRecordDTO, error) {
	records, err := s.progressRepo.FindAllByLearner(learnerID)
	if err != nil {
		log.Error().Err(err).Uint("learnerID", learnerID).Msg("GetLearnerProgress: failed to load records")
		return nil, fmt.Errorf("error fetching progress for learner %d: %w", learnerID, err)
	}
	dtos := make([]dto.ProgressRecordDTO, len(records))
	for i, r := range records {
		view := progressRecordView(&r)
		view.MissionTitle = r.Mission.Title
		dtos[i] = *view
	}
	return dtos, nil
}

func progressRecordView(record *model.ProgressRecord) *dto.ProgressRecordDTO {
	return &dto.ProgressRecordDTO{
		ID:          record.ID,
		LearnerID:   record.LearnerID,
		MissionID:   record.MissionID,
		Completed:   record.Completed,
		Score:       record.Score,
		Attempts:    record.Attempts,
		CompletedAt: record.CompletedAt,
	}
}
