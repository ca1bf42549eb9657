package repository

import (
	"github.com/questline/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	Create(achievement *model.Achievement) error
	FindAll() ([]model.Achievement, error)
	FindGrantsByLearner(learnerID uint) ([]model.AchievementGrant, error)
	Grant(learnerID, achievementID uint) error
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(achievement *model.Achievement) error {
	return r.db.Create(achievement).Error
}

func (r *achievementRepository) FindAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.db.Order("id ASC").Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepository) FindGrantsByLearner(learnerID uint) ([]model.AchievementGrant, error) {
	var grants []model.AchievementGrant
	err := r.db.Preload("Achievement").
		Where("learner_id = ?", learnerID).
		Order("earned_at DESC").
		Find(&grants).Error
	return grants, err
}

// Grant inserts at most one row per (learner, achievement) pair; the conflict
// clause turns a re-grant into a no-op.
func (r *achievementRepository) Grant(learnerID, achievementID uint) error {
	grant := model.AchievementGrant{
		LearnerID:     learnerID,
		AchievementID: achievementID,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "learner_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&grant).Error
}
