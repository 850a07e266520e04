package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/model"
	"github.com/sahajm/Civet/internal/repository"
	"gorm.io/gorm"
)

type QuestionService interface {
	CreateQuestions(req dto.QuestionBatchCreateDTO, creatorID uint) ([]dto.QuestionResponseDTO, error)
	GetQuestionByUID(uid string) (*dto.QuestionResponseDTO, error)
	ListQuestions(page, limit int) ([]dto.QuestionResponseDTO, int64, error)
	ListQuestionsByTag(tagID uint, page, limit int) ([]dto.QuestionResponseDTO, int64, error)
	UpdateQuestion(uid string, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(uid string) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	tagRepo      repository.TagRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, tagRepo repository.TagRepository) QuestionService {
	return &questionService{questionRepo: questionRepo, tagRepo: tagRepo}
}

// localize applies the secondary-language fallback so stored rows always
// carry both variants.
func localize(in dto.LocalizedTextInput) model.LocalizedText {
	hindi := in.Hindi
	if hindi == "" {
		hindi = in.English
	}
	return model.LocalizedText{English: in.English, Hindi: hindi}
}

func (s *questionService) buildQuestion(req dto.QuestionCreateDTO, creatorID uint) (*model.Question, error) {
	if req.CorrectAnswer < 0 || req.CorrectAnswer >= len(req.Options) {
		return nil, apperr.Errorf("%w: correct_answer %d is out of range for %d options",
			apperr.ErrValidation, req.CorrectAnswer, len(req.Options))
	}

	question := model.Question{
		UID:           uuid.NewString(),
		Question:      localize(req.Question),
		CorrectAnswer: req.CorrectAnswer,
		IsActive:      true,
		CreatedByID:   creatorID,
	}
	if req.Description != nil {
		question.Description = localize(*req.Description)
	}
	question.Options = make([]model.Option, len(req.Options))
	for i, opt := range req.Options {
		question.Options[i] = model.Option{OrderIndex: i, Text: localize(opt)}
	}

	if len(req.TagIDs) > 0 {
		tags, err := s.tagRepo.FindByIDs(req.TagIDs)
		if err != nil {
			log.Error().Err(err).Msg("buildQuestion: tag lookup failed")
			return nil, apperr.Errorf("%w: tag lookup failed", apperr.ErrUpstream)
		}
		if len(tags) != len(req.TagIDs) {
			return nil, apperr.Errorf("%w: one or more tags do not exist", apperr.ErrValidation)
		}
		question.Tags = tags
	}
	return &question, nil
}

func (s *questionService) CreateQuestions(req dto.QuestionBatchCreateDTO, creatorID uint) ([]dto.QuestionResponseDTO, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for _, qReq := range req.Questions {
		question, err := s.buildQuestion(qReq, creatorID)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		log.Error().Err(err).Int("count", len(questions)).Msg("CreateQuestions: batch insert failed")
		return nil, apperr.Errorf("%w: failed to create questions", apperr.ErrUpstream)
	}

	resp := make([]dto.QuestionResponseDTO, len(questions))
	for i := range questions {
		resp[i] = toQuestionResponse(&questions[i])
	}
	return resp, nil
}

func (s *questionService) GetQuestionByUID(uid string) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByUID(uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: question not found", apperr.ErrNotFound)
		}
		return nil, apperr.Errorf("%w: failed to load question", apperr.ErrUpstream)
	}
	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *questionService) ListQuestions(page, limit int) ([]dto.QuestionResponseDTO, int64, error) {
	offset, limit := pagination(page, limit)
	questions, total, err := s.questionRepo.FindAll(offset, limit)
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions: query failed")
		return nil, 0, apperr.Errorf("%w: failed to load questions", apperr.ErrUpstream)
	}
	return toQuestionResponses(questions), total, nil
}

func (s *questionService) ListQuestionsByTag(tagID uint, page, limit int) ([]dto.QuestionResponseDTO, int64, error) {
	offset, limit := pagination(page, limit)
	questions, total, err := s.questionRepo.FindByTag(tagID, offset, limit)
	if err != nil {
		log.Error().Err(err).Uint("tagID", tagID).Msg("ListQuestionsByTag: query failed")
		return nil, 0, apperr.Errorf("%w: failed to load questions", apperr.ErrUpstream)
	}
	return toQuestionResponses(questions), total, nil
}

func (s *questionService) UpdateQuestion(uid string, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	existing, err := s.questionRepo.FindByUID(uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: question not found", apperr.ErrNotFound)
		}
		return nil, apperr.Errorf("%w: failed to load question", apperr.ErrUpstream)
	}

	updated, err := s.buildQuestion(req, existing.CreatedByID)
	if err != nil {
		return nil, err
	}
	// UID and identity are immutable; content is replaced wholesale.
	existing.Question = updated.Question
	existing.Description = updated.Description
	existing.Options = updated.Options
	for i := range existing.Options {
		existing.Options[i].QuestionID = existing.ID
	}
	existing.CorrectAnswer = updated.CorrectAnswer
	existing.Tags = updated.Tags

	if err := s.questionRepo.Update(existing); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("UpdateQuestion: save failed")
		return nil, apperr.Errorf("%w: failed to update question", apperr.ErrUpstream)
	}
	resp := toQuestionResponse(existing)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(uid string) error {
	if err := s.questionRepo.DeleteByUID(uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Errorf("%w: question not found", apperr.ErrNotFound)
		}
		log.Error().Err(err).Str("uid", uid).Msg("DeleteQuestion: delete failed")
		return apperr.Errorf("%w: failed to delete question", apperr.ErrUpstream)
	}
	return nil
}

func toQuestionResponses(questions []model.Question) []dto.QuestionResponseDTO {
	resp := make([]dto.QuestionResponseDTO, len(questions))
	for i := range questions {
		resp[i] = toQuestionResponse(&questions[i])
	}
	return resp
}

func pagination(page, limit int) (offset, capped int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return (page - 1) * limit, limit
}
