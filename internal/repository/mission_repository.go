package repository

import (
	"github.com/questline/backend/internal/model"
	"gorm.io/gorm"
)

type MissionRepository interface {
	Create(mission *model.Mission) error
	FindByID(id uint) (*model.Mission, error)
	FindByIDWithSteps(id uint) (*model.Mission, error)
	FindByAreaAndDifficulty(area model.Area, difficulty int) ([]model.Mission, error)
	FindAll() ([]model.Mission, error)
}

type missionRepository struct {
	db *gorm.DB
}

func NewMissionRepository(db *gorm.DB) MissionRepository {
	return &missionRepository{db: db}
}

func (r *missionRepository) Create(mission *model.Mission) error {
	// GORM creates associated steps when mission.Steps is populated.
	return r.db.Create(mission).Error
}

func (r *missionRepository) FindByID(id uint) (*model.Mission, error) {
	var mission model.Mission
	if err := r.db.First(&mission, id).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

func (r *missionRepository) FindByIDWithSteps(id uint) (*model.Mission, error) {
	var mission model.Mission
	err := r.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("mission_steps.order_in_mission ASC")
	}).First(&mission, id).Error
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

func (r *missionRepository) FindByAreaAndDifficulty(area model.Area, difficulty int) ([]model.Mission, error) {
	var missions []model.Mission
	err := r.db.Where("area = ? AND difficulty = ?", area, difficulty).
		Order("sequence ASC").
		Find(&missions).Error
	return missions, err
}

func (r *missionRepository) FindAll() ([]model.Mission, error) {
	var missions []model.Mission
	err := r.db.Order("area ASC, sequence ASC").Find(&missions).Error
	return missions, err
}
