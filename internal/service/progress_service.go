package service

import (
	"fmt"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/repository"
	"github.com/rs/zerolog/log"
)

// ProgressService decides what a user may see or answer next for a form.
// There is no persisted progress pointer: the state machine is recomputed
// on every request from the resolved order and the user's existing
// answers.
type ProgressService interface {
	Start(userID, formID uint, password string) (*dto.ProgressResponse, error)
}

type progressService struct {
	formRepo   repository.FormRepository
	answerRepo repository.AnswerRepository
	viewRepo   repository.ViewRepository
	resolver   OrderResolverService
}

func NewProgressService(
	formRepo repository.FormRepository,
	answerRepo repository.AnswerRepository,
	viewRepo repository.ViewRepository,
	resolver OrderResolverService,
) ProgressService {
	return &progressService{
		formRepo:   formRepo,
		answerRepo: answerRepo,
		viewRepo:   viewRepo,
		resolver:   resolver,
	}
}

func (s *progressService) Start(userID, formID uint, password string) (*dto.ProgressResponse, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Form not found", err)
	}
	if err := checkFormAccess(form, userID, password); err != nil {
		return nil, err
	}

	resolved, err := s.resolver.ResolveForm(form)
	if err != nil {
		return nil, fmt.Errorf("error resolving form %d: %w", formID, err)
	}

	s.recordFormView(userID, formID)

	resp := &dto.ProgressResponse{FormID: formID, Linear: form.Linear}

	if !form.Linear {
		// Free traversal: every resolvable process is visible with its
		// full question tree, regardless of answer history.
		resp.Processes = make([]dto.ProcessDetail, 0, len(resolved.Processes))
		for _, rp := range resolved.Processes {
			resp.Processes = append(resp.Processes, processDetail(rp))
			for _, rq := range rp.Questions {
				s.recordQuestionView(userID, rq.Question.ID)
			}
		}
		return resp, nil
	}

	answered, err := s.answerRepo.AnsweredQuestionIDs(userID, formID)
	if err != nil {
		return nil, fmt.Errorf("error loading answers for user %d form %d: %w", userID, formID, err)
	}

	// Linear traversal: the first process with an unanswered question
	// exposes only its earliest unanswered question. Processes after it
	// stay hidden.
	for _, rp := range resolved.Processes {
		for _, rq := range rp.Questions {
			if _, done := answered[rq.Question.ID]; done {
				continue
			}
			q := questionDetail(rq)
			resp.CurrentQuestion = &q
			s.recordQuestionView(userID, rq.Question.ID)
			return resp, nil
		}
	}

	resp.Completed = true
	return resp, nil
}

// View facts are observability side effects, not ordering state; failures
// are logged and swallowed.
func (s *progressService) recordFormView(userID, formID uint) {
	if err := s.viewRepo.RecordFormView(userID, formID); err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("formID", formID).Msg("Failed to record form view")
	}
}

func (s *progressService) recordQuestionView(userID, questionID uint) {
	if err := s.viewRepo.RecordQuestionView(userID, questionID); err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("questionID", questionID).Msg("Failed to record question view")
	}
}

func processDetail(rp ResolvedProcess) dto.ProcessDetail {
	detail := dto.ProcessDetail{
		ID:        rp.Process.ID,
		Name:      rp.Process.Name,
		Position:  rp.Position,
		Questions: make([]dto.QuestionDetail, 0, len(rp.Questions)),
	}
	for _, rq := range rp.Questions {
		detail.Questions = append(detail.Questions, questionDetail(rq))
	}
	return detail
}

func questionDetail(rq ResolvedQuestion) dto.QuestionDetail {
	detail := dto.QuestionDetail{
		ID:       rq.Question.ID,
		Text:     rq.Question.Text,
		Type:     int(rq.Question.Type),
		Required: rq.Question.Required,
		Position: rq.Position,
	}
	for _, ro := range rq.Options {
		detail.Options = append(detail.Options, dto.OptionDetail{
			ID:       ro.Option.ID,
			Text:     ro.Option.Text,
			Position: ro.Position,
		})
	}
	return detail
}
