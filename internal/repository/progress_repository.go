package repository

import (
	"errors"

	"github.com/questline/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	FindByLearnerAndMission(learnerID, missionID uint) (*model.ProgressRecord, error)
	Create(record *model.ProgressRecord) error
	Update(record *model.ProgressRecord) error
	Upsert(record *model.ProgressRecord) error
	FindAllByLearner(learnerID uint) ([]model.ProgressRecord, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// FindByLearnerAndMission returns (nil, nil) when no record exists yet, so the
// service can distinguish first start from restart without error juggling.
func (r *progressRepository) FindByLearnerAndMission(learnerID, missionID uint) (*model.ProgressRecord, error) {
	var record model.ProgressRecord
	err := r.db.Where("learner_id = ? AND mission_id = ?", learnerID, missionID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *progressRepository) Create(record *model.ProgressRecord) error {
	return r.db.Create(record).Error
}

func (r *progressRepository) Update(record *model.ProgressRecord) error {
	return r.db.Save(record).Error
}

// Upsert writes the record keyed on the (learner_id, mission_id) unique index.
// A retried completion lands on the same row instead of a duplicate.
func (r *progressRepository) Upsert(record *model.ProgressRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "learner_id"}, {Name: "mission_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "score", "attempts", "completed_at", "updated_at"}),
	}).Create(record).Error
}

func (r *progressRepository) FindAllByLearner(learnerID uint) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.db.Preload("Mission").
		Where("learner_id = ?", learnerID).
		Order("updated_at DESC").
		Find(&records).Error
	return records, err
}
