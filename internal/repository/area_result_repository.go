package repository

import (
	"github.com/questline/backend/internal/model"
	"gorm.io/gorm"
)

type AreaResultRepository interface {
	Append(result *model.AreaResult) error
	FindAllByLearner(learnerID uint) ([]model.AreaResult, error)
}

type areaResultRepository struct {
	db *gorm.DB
}

func NewAreaResultRepository(db *gorm.DB) AreaResultRepository {
	return &areaResultRepository{db: db}
}

// Append inserts a new row; results are never updated in place. A re-run of the
// diagnostic supersedes earlier rows by recency, not by overwrite.
func (r *areaResultRepository) Append(result *model.AreaResult) error {
	return r.db.Create(result).Error
}

func (r *areaResultRepository) FindAllByLearner(learnerID uint) ([]model.AreaResult, error) {
	var results []model.AreaResult
	err := r.db.Where("learner_id = ?", learnerID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}
