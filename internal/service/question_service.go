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

type QuestionService interface {
	Create(userID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	Get(questionID uint) (*dto.QuestionResponse, error)
	ListMine(userID uint) ([]dto.QuestionResponse, error)
	Update(userID, questionID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	Delete(userID, questionID uint) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	optionRepo   repository.OptionRepository
	resolver     OrderResolverService
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	resolver OrderResolverService,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		optionRepo:   optionRepo,
		resolver:     resolver,
	}
}

func (s *questionService) Create(userID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if err := s.validate(userID, req); err != nil {
		return nil, err
	}

	question := model.Question{
		UserID:   userID,
		Text:     req.Text,
		Type:     model.QuestionType(req.Type),
		Required: req.Required,
		Order:    toOrderArray(req.Order),
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create question")
		return nil, fmt.Errorf("error creating question: %w", err)
	}
	resp := questionResponse(&question)
	return &resp, nil
}

func (s *questionService) Get(questionID uint) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Question not found", err)
	}
	resp := questionResponse(question)
	return &resp, nil
}

func (s *questionService) ListMine(userID uint) ([]dto.QuestionResponse, error) {
	questions, err := s.questionRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, questionResponse(&questions[i]))
	}
	return resp, nil
}

func (s *questionService) Update(userID, questionID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Question not found", err)
	}
	if question.UserID != userID {
		return nil, apperr.New(apperr.KindPermissionDenied, "You are not the owner of this question.")
	}
	if err := s.validate(userID, req); err != nil {
		return nil, err
	}

	question.Text = req.Text
	question.Type = model.QuestionType(req.Type)
	question.Required = req.Required
	question.Order = toOrderArray(req.Order)

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("error updating question %d: %w", questionID, err)
	}
	s.resolver.InvalidateAll()

	resp := questionResponse(question)
	return &resp, nil
}

func (s *questionService) Delete(userID, questionID uint) error {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return apperr.Wrap(apperr.KindNotFound, "Question not found", err)
	}
	if question.UserID != userID {
		return apperr.New(apperr.KindPermissionDenied, "You are not the owner of this question.")
	}
	if err := s.questionRepo.Delete(questionID); err != nil {
		return fmt.Errorf("error deleting question %d: %w", questionID, err)
	}
	s.resolver.InvalidateAll()
	return nil
}

func (s *questionService) validate(userID uint, req dto.CreateQuestionRequest) error {
	qType := model.QuestionType(req.Type)
	if !qType.Valid() {
		return apperr.New(apperr.KindShapeMismatch, "Unknown question type.")
	}
	if qType.HasOptions() && len(req.Order) == 0 {
		return apperr.New(apperr.KindShapeMismatch, "You must add options for single choice or checkbox questions.")
	}
	if qType == model.QuestionText && len(req.Order) > 0 {
		return apperr.New(apperr.KindShapeMismatch, "Text questions don't have options.")
	}
	for _, optionID := range req.Order {
		option, err := s.optionRepo.FindByID(optionID)
		if err != nil {
			return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("Option %d not found", optionID), err)
		}
		if option.UserID != userID {
			return apperr.New(apperr.KindPermissionDenied, "You can only add options you created.")
		}
	}
	return nil
}

func questionResponse(question *model.Question) dto.QuestionResponse {
	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	resp.Type = int(question.Type)
	resp.Order = fromOrderArray(question.Order)
	return resp
}
