package service

import (
	"fmt"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/Sadeghizad/Form-creator/internal/repository"
)

type OptionService interface {
	Create(userID uint, req dto.CreateOptionRequest) (*dto.OptionResponse, error)
	ListMine(userID uint) ([]dto.OptionResponse, error)
	Update(userID, optionID uint, req dto.CreateOptionRequest) (*dto.OptionResponse, error)
	Delete(userID, optionID uint) error
}

type optionService struct {
	optionRepo repository.OptionRepository
	resolver   OrderResolverService
}

func NewOptionService(optionRepo repository.OptionRepository, resolver OrderResolverService) OptionService {
	return &optionService{optionRepo: optionRepo, resolver: resolver}
}

func (s *optionService) Create(userID uint, req dto.CreateOptionRequest) (*dto.OptionResponse, error) {
	option := model.Option{UserID: userID, Text: req.Text}
	if err := s.optionRepo.Create(&option); err != nil {
		return nil, fmt.Errorf("error creating option: %w", err)
	}
	return optionResponse(&option), nil
}

func (s *optionService) ListMine(userID uint) ([]dto.OptionResponse, error) {
	options, err := s.optionRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching options: %w", err)
	}
	resp := make([]dto.OptionResponse, 0, len(options))
	for i := range options {
		resp = append(resp, *optionResponse(&options[i]))
	}
	return resp, nil
}

func (s *optionService) Update(userID, optionID uint, req dto.CreateOptionRequest) (*dto.OptionResponse, error) {
	option, err := s.findOwned(userID, optionID)
	if err != nil {
		return nil, err
	}
	option.Text = req.Text
	if err := s.optionRepo.Update(option); err != nil {
		return nil, fmt.Errorf("error updating option %d: %w", optionID, err)
	}
	s.resolver.InvalidateAll()
	return optionResponse(option), nil
}

func (s *optionService) Delete(userID, optionID uint) error {
	if _, err := s.findOwned(userID, optionID); err != nil {
		return err
	}
	if err := s.optionRepo.Delete(optionID); err != nil {
		return fmt.Errorf("error deleting option %d: %w", optionID, err)
	}
	s.resolver.InvalidateAll()
	return nil
}

func (s *optionService) findOwned(userID, optionID uint) (*model.Option, error) {
	option, err := s.optionRepo.FindByID(optionID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Option not found", err)
	}
	if option.UserID != userID {
		return nil, apperr.New(apperr.KindPermissionDenied, "You are not the owner of this option.")
	}
	return option, nil
}

func optionResponse(option *model.Option) *dto.OptionResponse {
	return &dto.OptionResponse{ID: option.ID, UserID: option.UserID, Text: option.Text}
}
