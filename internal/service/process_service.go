package service

import (
	"fmt"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/Sadeghizad/Form-creator/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type ProcessService interface {
	Create(userID uint, req dto.CreateProcessRequest) (*dto.ProcessResponse, error)
	Get(userID, processID uint, password string) (*dto.ProcessResponse, error)
	ListMine(userID uint) ([]dto.ProcessResponse, error)
	Update(userID, processID uint, req dto.CreateProcessRequest) (*dto.ProcessResponse, error)
	Delete(userID, processID uint) error
}

type processService struct {
	processRepo  repository.ProcessRepository
	questionRepo repository.QuestionRepository
	resolver     OrderResolverService
}

func NewProcessService(
	processRepo repository.ProcessRepository,
	questionRepo repository.QuestionRepository,
	resolver OrderResolverService,
) ProcessService {
	return &processService{
		processRepo:  processRepo,
		questionRepo: questionRepo,
		resolver:     resolver,
	}
}

func (s *processService) Create(userID uint, req dto.CreateProcessRequest) (*dto.ProcessResponse, error) {
	if err := s.validate(userID, req); err != nil {
		return nil, err
	}

	process := model.Process{
		UserID:     userID,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Order:      toOrderArray(req.Order),
		IsPrivate:  req.IsPrivate,
		Password:   req.Password,
	}
	if err := s.processRepo.Create(&process); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create process")
		return nil, fmt.Errorf("error creating process: %w", err)
	}
	resp := processResponse(&process)
	return &resp, nil
}

func (s *processService) Get(userID, processID uint, password string) (*dto.ProcessResponse, error) {
	process, err := s.processRepo.FindByID(processID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Process not found", err)
	}
	if err := checkProcessAccess(process, userID, password); err != nil {
		return nil, err
	}
	resp := processResponse(process)
	return &resp, nil
}

func (s *processService) ListMine(userID uint) ([]dto.ProcessResponse, error) {
	processes, err := s.processRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching processes: %w", err)
	}
	resp := make([]dto.ProcessResponse, 0, len(processes))
	for i := range processes {
		resp = append(resp, processResponse(&processes[i]))
	}
	return resp, nil
}

func (s *processService) Update(userID, processID uint, req dto.CreateProcessRequest) (*dto.ProcessResponse, error) {
	process, err := s.processRepo.FindByID(processID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Process not found", err)
	}
	if process.UserID != userID {
		return nil, apperr.New(apperr.KindPermissionDenied, "You are not the owner of this process.")
	}
	if err := s.validate(userID, req); err != nil {
		return nil, err
	}

	process.Name = req.Name
	process.CategoryID = req.CategoryID
	process.Order = toOrderArray(req.Order)
	process.IsPrivate = req.IsPrivate
	process.Password = req.Password

	if err := s.processRepo.Update(process); err != nil {
		return nil, fmt.Errorf("error updating process %d: %w", processID, err)
	}
	// Any form may list this process in its order; membership is not
	// tracked, so every cached resolution goes.
	s.resolver.InvalidateAll()

	resp := processResponse(process)
	return &resp, nil
}

func (s *processService) Delete(userID, processID uint) error {
	process, err := s.processRepo.FindByID(processID)
	if err != nil {
		return apperr.Wrap(apperr.KindNotFound, "Process not found", err)
	}
	if process.UserID != userID {
		return apperr.New(apperr.KindPermissionDenied, "You are not the owner of this process.")
	}
	if err := s.processRepo.Delete(processID); err != nil {
		return fmt.Errorf("error deleting process %d: %w", processID, err)
	}
	s.resolver.InvalidateAll()
	return nil
}

func (s *processService) validate(userID uint, req dto.CreateProcessRequest) error {
	if req.IsPrivate && req.Password == "" {
		return apperr.New(apperr.KindShapeMismatch, "A password is required for private processes.")
	}
	if len(req.Order) == 0 {
		return apperr.New(apperr.KindShapeMismatch, "Process must have at least one question.")
	}
	for _, questionID := range req.Order {
		question, err := s.questionRepo.FindByID(questionID)
		if err != nil {
			return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("Question %d not found", questionID), err)
		}
		if question.UserID != userID {
			return apperr.New(apperr.KindPermissionDenied, "You can only add questions you created.")
		}
	}
	return nil
}

func processResponse(process *model.Process) dto.ProcessResponse {
	var resp dto.ProcessResponse
	copier.Copy(&resp, process)
	resp.Order = fromOrderArray(process.Order)
	return resp
}
