package repository

import (
	"time"

	"github.com/sahajm/Civet/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindAllActive() ([]model.Test, error)
	FindAvailable(now time.Time) ([]model.Test, error)
	FindByCreator(creatorID uint) ([]model.Test, error)
	Update(test *model.Test) error
	ReplaceQuestions(testID uint, questions []model.TestQuestion) error
	Delete(id uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// GORM creates the associated TestQuestion rows along with the test.
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("test_questions.position ASC") }).
		First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAllActive() ([]model.Test, error) {
	var tests []model.Test
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("test_questions.position ASC") }).
		Where("is_active = ?", true).
		Order("start_time ASC").
		Find(&tests).Error
	return tests, err
}

// FindAvailable returns active tests that have not ended yet. The end time is
// derived, so the cutoff is expressed over start_time + duration.
func (r *testRepository) FindAvailable(now time.Time) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("test_questions.position ASC") }).
		Where("is_active = ? AND start_time + (duration_minutes * interval '1 minute') > ?", true, now).
		Order("start_time ASC").
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) FindByCreator(creatorID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("test_questions.position ASC") }).
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) Update(test *model.Test) error {
	return r.db.Save(test).Error
}

// ReplaceQuestions swaps the test's ordered question references atomically.
func (r *testRepository) ReplaceQuestions(testID uint, questions []model.TestQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&model.TestQuestion{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

// Delete removes the test, its question references, and cascades to its
// results, mirroring the lifecycle of the definition.
func (r *testRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var resultIDs []uint
		if err := tx.Model(&model.Result{}).Where("test_id = ?", id).Pluck("id", &resultIDs).Error; err != nil {
			return err
		}
		if len(resultIDs) > 0 {
			if err := tx.Where("result_id IN ?", resultIDs).Delete(&model.ResultAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("test_id = ?", id).Delete(&model.Result{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("test_id = ?", id).Delete(&model.TestQuestion{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Test{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
