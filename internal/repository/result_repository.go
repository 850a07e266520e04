package repository

import (
	"github.com/sahajm/Civet/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(result *model.Result) error
	FindByID(id uint) (*model.Result, error)
	FindByTestAndStudent(testID, studentID uint) (*model.Result, error)
	FindAllByTest(testID uint) ([]model.Result, error)
	FindAllByStudent(studentID uint) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.Result) error {
	// The unique index on (test_id, student_id) makes a racing duplicate
	// insert fail here rather than slip past the service-level pre-check.
	return r.db.Create(result).Error
}

func (r *resultRepository) FindByID(id uint) (*model.Result, error) {
	var result model.Result
	err := r.db.
		Preload("Answers").
		Preload("Test").
		Preload("Student").
		First(&result, id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindByTestAndStudent(testID, studentID uint) (*model.Result, error) {
	var result model.Result
	err := r.db.
		Preload("Answers").
		Where("test_id = ? AND student_id = ?", testID, studentID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindAllByTest returns every result of one test in ranking order: score
// descending, earlier submission first on equal scores.
func (r *resultRepository) FindAllByTest(testID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.
		Where("test_id = ?", testID).
		Order("score DESC, submitted_at ASC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) FindAllByStudent(studentID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.
		Preload("Test").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&results).Error
	return results, err
}
