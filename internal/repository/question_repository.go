package repository

import (
	"github.com/sahajm/Civet/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	CreateBatch(questions []model.Question) error
	FindByUID(uid string) (*model.Question, error)
	FindByUIDs(uids []string) ([]model.Question, error)
	FindActiveUIDs(uids []string) ([]string, error)
	FindAll(offset, limit int) ([]model.Question, int64, error)
	FindByTag(tagID uint, offset, limit int) ([]model.Question, int64, error)
	Update(question *model.Question) error
	DeleteByUID(uid string) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateBatch(questions []model.Question) error {
	return r.db.Create(&questions).Error
}

func (r *questionRepository) FindByUID(uid string) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.order_index ASC") }).
		Preload("Tags").
		Where("uid = ?", uid).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByUIDs(uids []string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.order_index ASC") }).
		Preload("Tags").
		Where("uid IN ?", uids).
		Find(&questions).Error
	return questions, err
}

// FindActiveUIDs returns the subset of uids that resolve to active questions.
func (r *questionRepository) FindActiveUIDs(uids []string) ([]string, error) {
	var found []string
	err := r.db.Model(&model.Question{}).
		Where("uid IN ? AND is_active = ?", uids, true).
		Pluck("uid", &found).Error
	return found, err
}

func (r *questionRepository) FindAll(offset, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64
	if err := r.db.Model(&model.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.order_index ASC") }).
		Preload("Tags").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&questions).Error
	return questions, total, err
}

func (r *questionRepository) FindByTag(tagID uint, offset, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64
	base := r.db.Model(&model.Question{}).
		Joins("JOIN question_tags ON question_tags.question_id = questions.id").
		Where("question_tags.tag_id = ? AND questions.is_active = ?", tagID, true)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.order_index ASC") }).
		Preload("Tags").
		Order("questions.created_at desc").
		Offset(offset).Limit(limit).
		Find(&questions).Error
	return questions, total, err
}

// Update replaces the question's options and tags wholesale, matching the
// replace-on-write semantics of the authoring API.
func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Model(question).Association("Tags").Replace(question.Tags); err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(question).Error
	})
}

func (r *questionRepository) DeleteByUID(uid string) error {
	res := r.db.Where("uid = ?", uid).Delete(&model.Question{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
