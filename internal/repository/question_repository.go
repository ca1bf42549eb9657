package repository

import (
	"github.com/questline/backend/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.DiagnosticQuestion) error
	FindByID(id uint) (*model.DiagnosticQuestion, error)
	FindByArea(area model.Area) ([]model.DiagnosticQuestion, error)
	AreasWithQuestions() ([]model.Area, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.DiagnosticQuestion) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.DiagnosticQuestion, error) {
	var question model.DiagnosticQuestion
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByArea(area model.Area) ([]model.DiagnosticQuestion, error) {
	var questions []model.DiagnosticQuestion
	if err := r.db.Where("area = ?", area).Order("order_in_area ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// AreasWithQuestions returns the distinct areas that have at least one question,
// in the canonical area order. Areas without questions are skipped by the
// diagnostic rather than failing it.
func (r *questionRepository) AreasWithQuestions() ([]model.Area, error) {
	var stored []model.Area
	if err := r.db.Model(&model.DiagnosticQuestion{}).Distinct("area").Pluck("area", &stored).Error; err != nil {
		return nil, err
	}
	present := make(map[model.Area]bool, len(stored))
	for _, a := range stored {
		present[a] = true
	}
	var ordered []model.Area
	for _, a := range model.AllAreas {
		if present[a] {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}
