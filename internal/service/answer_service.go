package service

import (
	"fmt"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/Sadeghizad/Form-creator/internal/repository"
	"github.com/rs/zerolog/log"
)

// AnswerService validates candidate answers against the form's declared
// order and the question's type, then records them. Recording is an upsert
// on (user, question, form): resubmission replaces the payload, no history
// is kept.
type AnswerService interface {
	Submit(userID uint, req dto.SubmitAnswerRequest) (*dto.AnswerResponse, error)
	ListByQuestion(userID, questionID uint) ([]dto.AnswerResponse, error)
}

type answerService struct {
	formRepo     repository.FormRepository
	questionRepo repository.QuestionRepository
	optionRepo   repository.OptionRepository
	answerRepo   repository.AnswerRepository
	resolver     OrderResolverService
}

func NewAnswerService(
	formRepo repository.FormRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	answerRepo repository.AnswerRepository,
	resolver OrderResolverService,
) AnswerService {
	return &answerService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		optionRepo:   optionRepo,
		answerRepo:   answerRepo,
		resolver:     resolver,
	}
}

func (s *answerService) Submit(userID uint, req dto.SubmitAnswerRequest) (*dto.AnswerResponse, error) {
	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Question not found", err)
	}
	form, err := s.formRepo.FindByID(req.FormID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Form not found", err)
	}

	resolved, err := s.resolver.ResolveForm(form)
	if err != nil {
		return nil, fmt.Errorf("error resolving form %d: %w", form.ID, err)
	}

	// The flattened sequence is deduplicated by question ID: a question
	// listed twice still occupies one slot for ordering purposes.
	flatIDs := flattenQuestionIDs(resolved)
	index := -1
	for i, id := range flatIDs {
		if id == question.ID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, apperr.New(apperr.KindInvalidState, "Question is not part of this form.")
	}

	if form.Linear {
		answered, err := s.answerRepo.AnsweredQuestionIDs(userID, form.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading answers for user %d form %d: %w", userID, form.ID, err)
		}
		priorAnswered := 0
		for _, id := range flatIDs[:index] {
			if _, ok := answered[id]; ok {
				priorAnswered++
			}
		}
		if priorAnswered != index {
			return nil, apperr.New(apperr.KindOutOfOrder, "Answer previous questions in order first.")
		}
	}

	payload := model.AnswerPayload{Text: req.Text, OptionID: req.OptionID, SelectIDs: req.SelectIDs}
	if err := question.Type.ValidatePayload(payload); err != nil {
		return nil, err
	}

	answer := model.Answer{
		UserID:     userID,
		QuestionID: question.ID,
		FormID:     form.ID,
	}
	switch question.Type {
	case model.QuestionText:
		answer.Text = req.Text
	case model.QuestionSingleChoice:
		options, err := s.resolveSelectedOptions(question, []uint{*req.OptionID})
		if err != nil {
			return nil, err
		}
		answer.OptionID = &options[0].ID
	case model.QuestionCheckbox:
		options, err := s.resolveSelectedOptions(question, req.SelectIDs)
		if err != nil {
			return nil, err
		}
		answer.Select = options
	}

	if err := s.answerRepo.Upsert(&answer); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("questionID", question.ID).Uint("formID", form.ID).Msg("Failed to record answer")
		return nil, fmt.Errorf("error recording answer: %w", err)
	}

	resp := answerResponse(&answer)
	return &resp, nil
}

func (s *answerService) ListByQuestion(userID, questionID uint) ([]dto.AnswerResponse, error) {
	answers, err := s.answerRepo.FindByUserAndQuestion(userID, questionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching answers for question %d: %w", questionID, err)
	}
	resp := make([]dto.AnswerResponse, 0, len(answers))
	for i := range answers {
		resp = append(resp, answerResponse(&answers[i]))
	}
	return resp, nil
}

// resolveSelectedOptions checks that every submitted option ID exists and
// is listed in the question's own option order.
func (s *answerService) resolveSelectedOptions(question *model.Question, ids []uint) ([]model.Option, error) {
	for _, id := range ids {
		if question.OptionPosition(id) == -1 {
			return nil, apperr.New(apperr.KindShapeMismatch, "Option does not belong to this question.")
		}
	}
	options, err := s.optionRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving options: %w", err)
	}
	if len(options) != len(dedupe(ids)) {
		return nil, apperr.New(apperr.KindShapeMismatch, "Option does not belong to this question.")
	}
	return options, nil
}

func flattenQuestionIDs(resolved *ResolvedForm) []uint {
	seen := make(map[uint]struct{})
	var ids []uint
	for _, q := range resolved.FlattenedQuestions() {
		if _, ok := seen[q.Question.ID]; ok {
			continue
		}
		seen[q.Question.ID] = struct{}{}
		ids = append(ids, q.Question.ID)
	}
	return ids
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func answerResponse(answer *model.Answer) dto.AnswerResponse {
	resp := dto.AnswerResponse{
		ID:         answer.ID,
		UserID:     answer.UserID,
		QuestionID: answer.QuestionID,
		FormID:     answer.FormID,
		OptionID:   answer.OptionID,
		Text:       answer.Text,
		CreatedAt:  answer.CreatedAt,
		UpdatedAt:  answer.UpdatedAt,
	}
	for _, opt := range answer.Select {
		resp.SelectIDs = append(resp.SelectIDs, opt.ID)
	}
	return resp
}
