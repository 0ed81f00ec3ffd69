package service

import (
	"fmt"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/Sadeghizad/Form-creator/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type FormService interface {
	Create(userID uint, req dto.CreateFormRequest) (*dto.FormResponse, error)
	// Get serves respondents: private forms require the password unless
	// the caller owns the form.
	Get(userID, formID uint, password string) (*dto.FormResponse, error)
	ListMine(userID uint) ([]dto.FormResponse, error)
	Update(userID, formID uint, req dto.CreateFormRequest) (*dto.FormResponse, error)
	Delete(userID, formID uint) error
}

type formService struct {
	formRepo     repository.FormRepository
	processRepo  repository.ProcessRepository
	categoryRepo repository.CategoryRepository
	resolver     OrderResolverService
}

func NewFormService(
	formRepo repository.FormRepository,
	processRepo repository.ProcessRepository,
	categoryRepo repository.CategoryRepository,
	resolver OrderResolverService,
) FormService {
	return &formService{
		formRepo:     formRepo,
		processRepo:  processRepo,
		categoryRepo: categoryRepo,
		resolver:     resolver,
	}
}

func (s *formService) Create(userID uint, req dto.CreateFormRequest) (*dto.FormResponse, error) {
	if err := s.validate(userID, req); err != nil {
		return nil, err
	}

	form := model.Form{
		UserID:     userID,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Order:      toOrderArray(req.Order),
		Linear:     req.Linear,
		IsPrivate:  req.IsPrivate,
		Password:   req.Password,
		URL:        req.URL,
	}
	if err := s.formRepo.Create(&form); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create form")
		return nil, fmt.Errorf("error creating form: %w", err)
	}
	resp := formResponse(&form)
	return &resp, nil
}

func (s *formService) Get(userID, formID uint, password string) (*dto.FormResponse, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Form not found", err)
	}
	if err := checkFormAccess(form, userID, password); err != nil {
		return nil, err
	}
	resp := formResponse(form)
	return &resp, nil
}

func (s *formService) ListMine(userID uint) ([]dto.FormResponse, error) {
	forms, err := s.formRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching forms: %w", err)
	}
	resp := make([]dto.FormResponse, 0, len(forms))
	for i := range forms {
		resp = append(resp, formResponse(&forms[i]))
	}
	return resp, nil
}

func (s *formService) Update(userID, formID uint, req dto.CreateFormRequest) (*dto.FormResponse, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Form not found", err)
	}
	if form.UserID != userID {
		return nil, apperr.New(apperr.KindPermissionDenied, "You are not the owner of this form.")
	}
	if err := s.validate(userID, req); err != nil {
		return nil, err
	}

	form.Name = req.Name
	form.CategoryID = req.CategoryID
	form.Order = toOrderArray(req.Order)
	form.Linear = req.Linear
	form.IsPrivate = req.IsPrivate
	form.Password = req.Password
	form.URL = req.URL

	if err := s.formRepo.Update(form); err != nil {
		return nil, fmt.Errorf("error updating form %d: %w", formID, err)
	}
	// Edits change in-flight respondents' progress immediately; the
	// cached resolution must not outlive them.
	s.resolver.Invalidate(formID)

	resp := formResponse(form)
	return &resp, nil
}

func (s *formService) Delete(userID, formID uint) error {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		return apperr.Wrap(apperr.KindNotFound, "Form not found", err)
	}
	if form.UserID != userID {
		return apperr.New(apperr.KindPermissionDenied, "You are not the owner of this form.")
	}
	if err := s.formRepo.Delete(formID); err != nil {
		return fmt.Errorf("error deleting form %d: %w", formID, err)
	}
	s.resolver.Invalidate(formID)
	return nil
}

func (s *formService) validate(userID uint, req dto.CreateFormRequest) error {
	if req.IsPrivate && req.Password == "" {
		return apperr.New(apperr.KindShapeMismatch, "A password is required for private forms.")
	}
	if len(req.Order) == 0 {
		return apperr.New(apperr.KindShapeMismatch, "Form must have at least one process.")
	}
	for _, processID := range req.Order {
		process, err := s.processRepo.FindByID(processID)
		if err != nil {
			return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("Process %d not found", processID), err)
		}
		if process.UserID != userID && process.IsPrivate {
			return apperr.New(apperr.KindPermissionDenied, "You can only add processes you own or that are public.")
		}
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(*req.CategoryID)
		if err != nil {
			return apperr.Wrap(apperr.KindNotFound, "Category not found", err)
		}
		if !category.Public() && *category.UserID != userID {
			return apperr.New(apperr.KindPermissionDenied, "You are not allowed to add your form to this category.")
		}
	}
	return nil
}

func toOrderArray(ids []uint) pq.Int64Array {
	order := make(pq.Int64Array, 0, len(ids))
	for _, id := range ids {
		order = append(order, int64(id))
	}
	return order
}

func fromOrderArray(order pq.Int64Array) []uint {
	ids := make([]uint, 0, len(order))
	for _, id := range order {
		ids = append(ids, uint(id))
	}
	return ids
}

func formResponse(form *model.Form) dto.FormResponse {
	var resp dto.FormResponse
	copier.Copy(&resp, form)
	resp.Order = fromOrderArray(form.Order)
	return resp
}
