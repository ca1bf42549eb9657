package repository

import (
	"github.com/questline/backend/internal/model"
	"gorm.io/gorm"
)

type LearnerRepository interface {
	Create(learner *model.Learner) error
	FindByID(id uint) (*model.Learner, error)
	CreditXp(learnerID uint, amount int) (newTotal int, err error)
	UpdateLevel(learnerID uint, level int) error
}

type learnerRepository struct {
	db *gorm.DB
}

func NewLearnerRepository(db *gorm.DB) LearnerRepository {
	return &learnerRepository{db: db}
}

func (r *learnerRepository) Create(learner *model.Learner) error {
	return r.db.Create(learner).Error
}

func (r *learnerRepository) FindByID(id uint) (*model.Learner, error) {
	var learner model.Learner
	if err := r.db.First(&learner, id).Error; err != nil {
		return nil, err
	}
	return &learner, nil
}

// CreditXp applies the increment in the database and returns the post-credit
// total, so the level recomputation always sees the authoritative value.
func (r *learnerRepository) CreditXp(learnerID uint, amount int) (int, error) {
	err := r.db.Model(&model.Learner{}).
		Where("id = ?", learnerID).
		UpdateColumn("xp", gorm.Expr("xp + ?", amount)).Error
	if err != nil {
		return 0, err
	}
	var learner model.Learner
	if err := r.db.First(&learner, learnerID).Error; err != nil {
		return 0, err
	}
	return learner.Xp, nil
}

func (r *learnerRepository) UpdateLevel(learnerID uint, level int) error {
	return r.db.Model(&model.Learner{}).
		Where("id = ?", learnerID).
		UpdateColumn("level", level).Error
}
