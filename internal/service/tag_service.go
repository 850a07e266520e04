package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/model"
	"github.com/sahajm/Civet/internal/repository"
	"gorm.io/gorm"
)

type TagService interface {
	CreateTag(req dto.TagCreateDTO, creatorID uint) (*dto.TagDTO, error)
	ListTags() ([]dto.TagDTO, error)
	UpdateTag(id uint, req dto.TagCreateDTO) (*dto.TagDTO, error)
	DeleteTag(id uint) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) CreateTag(req dto.TagCreateDTO, creatorID uint) (*dto.TagDTO, error) {
	tag := model.Tag{Label: req.Label, CreatedByID: creatorID}
	if err := s.tagRepo.Create(&tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Errorf("%w: tag already exists", apperr.ErrValidation)
		}
		log.Error().Err(err).Str("label", req.Label).Msg("CreateTag: insert failed")
		return nil, apperr.Errorf("%w: failed to create tag", apperr.ErrUpstream)
	}
	return &dto.TagDTO{ID: tag.ID, Label: tag.Label}, nil
}

func (s *tagService) ListTags() ([]dto.TagDTO, error) {
	tags, err := s.tagRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("ListTags: query failed")
		return nil, apperr.Errorf("%w: failed to load tags", apperr.ErrUpstream)
	}
	resp := make([]dto.TagDTO, len(tags))
	for i, t := range tags {
		resp[i] = dto.TagDTO{ID: t.ID, Label: t.Label}
	}
	return resp, nil
}

func (s *tagService) UpdateTag(id uint, req dto.TagCreateDTO) (*dto.TagDTO, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: tag not found", apperr.ErrNotFound)
		}
		return nil, apperr.Errorf("%w: failed to load tag", apperr.ErrUpstream)
	}
	tag.Label = req.Label
	if err := s.tagRepo.Update(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Errorf("%w: tag already exists", apperr.ErrValidation)
		}
		log.Error().Err(err).Uint("tagID", id).Msg("UpdateTag: save failed")
		return nil, apperr.Errorf("%w: failed to update tag", apperr.ErrUpstream)
	}
	return &dto.TagDTO{ID: tag.ID, Label: tag.Label}, nil
}

func (s *tagService) DeleteTag(id uint) error {
	if err := s.tagRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Errorf("%w: tag not found", apperr.ErrNotFound)
		}
		log.Error().Err(err).Uint("tagID", id).Msg("DeleteTag: delete failed")
		return apperr.Errorf("%w: failed to delete tag", apperr.ErrUpstream)
	}
	return nil
}
