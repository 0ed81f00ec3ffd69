package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/Sadeghizad/Form-creator/internal/repository"
	"github.com/Sadeghizad/Form-creator/internal/worker"
	"github.com/Sadeghizad/Form-creator/internal/ws"
	"github.com/rs/zerolog/log"
)

// ReportService folds new answers into per-form tallies and produces the
// platform-wide admin snapshot. Folding is incremental: each form's report
// row carries a cursor (the highest folded answer ID) and only answers
// with a strictly greater ID are read, in bounded batches, so an
// interrupted fold resumes without double counting.
type ReportService interface {
	// UserReport folds anything new and returns the form's report.
	// Only the form owner may read it.
	UserReport(userID, formID uint) (*dto.ReportResponse, error)
	FoldForm(formID uint) (*dto.ReportResponse, error)
	// EnqueueFold schedules a background fold and live broadcast.
	EnqueueFold(formID uint)
	TriggerAdminReport(userID uint) error
	LatestAdminReport(userID uint) (*dto.AdminReportResponse, error)
	GenerateAdminReport() (*dto.AdminReportResponse, error)
}

type reportService struct {
	reportRepo   repository.ReportRepository
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	formRepo     repository.FormRepository
	processRepo  repository.ProcessRepository
	userRepo     repository.UserRepository
	viewRepo     repository.ViewRepository
	pool         *worker.Pool
	hub          *ws.Hub
	batchSize    int
}

func NewReportService(
	reportRepo repository.ReportRepository,
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	formRepo repository.FormRepository,
	processRepo repository.ProcessRepository,
	userRepo repository.UserRepository,
	viewRepo repository.ViewRepository,
	pool *worker.Pool,
	hub *ws.Hub,
	batchSize int,
) ReportService {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &reportService{
		reportRepo:   reportRepo,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		formRepo:     formRepo,
		processRepo:  processRepo,
		userRepo:     userRepo,
		viewRepo:     viewRepo,
		pool:         pool,
		hub:          hub,
		batchSize:    batchSize,
	}
}

func (s *reportService) UserReport(userID, formID uint) (*dto.ReportResponse, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Form not found", err)
	}
	if form.UserID != userID {
		return nil, apperr.New(apperr.KindPermissionDenied, "Only the form owner can view its report.")
	}
	return s.FoldForm(formID)
}

func (s *reportService) FoldForm(formID uint) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindByForm(formID)
	if err != nil {
		report = &model.Report{FormID: formID}
	}

	data := dto.ReportData{FormID: formID, Questions: map[string]*dto.QuestionReport{}}
	if len(report.Data) > 0 {
		if err := json.Unmarshal(report.Data, &data); err != nil {
			log.Warn().Err(err).Uint("formID", formID).Msg("Discarding unreadable report data, refolding from cursor")
			data = dto.ReportData{FormID: formID, Questions: map[string]*dto.QuestionReport{}}
		}
		if data.Questions == nil {
			data.Questions = map[string]*dto.QuestionReport{}
		}
	}

	cursor := report.Cursor
	for {
		answers, err := s.answerRepo.FindByFormSince(formID, cursor, s.batchSize)
		if err != nil {
			return nil, fmt.Errorf("error loading answers for form %d: %w", formID, err)
		}
		for i := range answers {
			s.foldAnswer(&data, &answers[i])
			cursor = answers[i].ID
		}
		if len(answers) < s.batchSize {
			break
		}
	}

	s.refreshViews(&data)

	raw, err := json.Marshal(&data)
	if err != nil {
		return nil, fmt.Errorf("error encoding report for form %d: %w", formID, err)
	}
	report.Cursor = cursor
	report.Data = raw
	if err := s.reportRepo.Save(report); err != nil {
		return nil, fmt.Errorf("error saving report for form %d: %w", formID, err)
	}

	return &dto.ReportResponse{Report: data, UpdatedAt: report.UpdatedAt}, nil
}

// foldAnswer adds one answer to the tally. Option selections count against
// the option's position in the question's declared order; positions of
// options no longer listed there are skipped, which means mutating a
// question's option order silently invalidates older tallies.
func (s *reportService) foldAnswer(data *dto.ReportData, answer *model.Answer) {
	question := answer.Question
	if question.ID == 0 {
		log.Debug().Uint("answerID", answer.ID).Msg("Answer references a missing question, skipping")
		return
	}

	key := strconv.FormatUint(uint64(question.ID), 10)
	qr, ok := data.Questions[key]
	if !ok {
		qr = &dto.QuestionReport{Options: map[int]int{}, Ans: []string{}}
		data.Questions[key] = qr
	}
	if qr.Options == nil {
		qr.Options = map[int]int{}
	}

	for _, optionID := range answer.SelectedOptionIDs() {
		pos := question.OptionPosition(optionID)
		if pos == -1 {
			log.Debug().Uint("questionID", question.ID).Uint("optionID", optionID).Msg("Selected option not in question order, skipping tally")
			continue
		}
		qr.Options[pos]++
	}

	if answer.Text != "" {
		qr.Ans = append(qr.Ans, answer.Text)
	}
}

func (s *reportService) refreshViews(data *dto.ReportData) {
	if views, err := s.viewRepo.CountFormViews(data.FormID); err == nil {
		data.Views = views
	}
	for key, qr := range data.Questions {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		if views, err := s.viewRepo.CountQuestionViews(uint(id)); err == nil {
			qr.Views = views
		}
	}
}

func (s *reportService) EnqueueFold(formID uint) {
	s.pool.Submit(func(ctx context.Context) {
		resp, err := s.FoldForm(formID)
		if err != nil {
			log.Error().Err(err).Uint("formID", formID).Msg("Background report fold failed")
			return
		}
		s.hub.Broadcast(ws.Message{Type: "report_update", Data: resp.Report})
	})
}

func (s *reportService) TriggerAdminReport(userID uint) error {
	if err := s.requireAdmin(userID); err != nil {
		return err
	}
	s.pool.Submit(func(ctx context.Context) {
		if _, err := s.GenerateAdminReport(); err != nil {
			log.Error().Err(err).Msg("Background admin report generation failed")
		}
	})
	return nil
}

func (s *reportService) LatestAdminReport(userID uint) (*dto.AdminReportResponse, error) {
	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}
	report, err := s.reportRepo.LatestAdminReport()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Admin report not found", err)
	}
	var data dto.AdminReportData
	if err := json.Unmarshal(report.Data, &data); err != nil {
		return nil, fmt.Errorf("error decoding admin report: %w", err)
	}
	return &dto.AdminReportResponse{Data: data, CreatedAt: report.CreatedAt}, nil
}

func (s *reportService) GenerateAdminReport() (*dto.AdminReportResponse, error) {
	now := time.Now()
	data := dto.AdminReportData{Timestamp: now}

	var err error
	if data.Totals, err = s.countTotals(); err != nil {
		return nil, err
	}
	if data.Last24h, err = s.countSince(now.AddDate(0, 0, -1)); err != nil {
		return nil, err
	}
	if data.LastWeek, err = s.countSince(now.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if data.LastMonth, err = s.countSince(now.AddDate(0, 0, -28)); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(&data)
	if err != nil {
		return nil, fmt.Errorf("error encoding admin report: %w", err)
	}
	report := model.AdminReport{Data: raw}
	if err := s.reportRepo.CreateAdminReport(&report); err != nil {
		return nil, fmt.Errorf("error saving admin report: %w", err)
	}

	s.hub.Broadcast(ws.Message{Type: "admin_report", Data: data})
	log.Info().Time("timestamp", now).Msg("Admin report generated")
	return &dto.AdminReportResponse{Data: data, CreatedAt: report.CreatedAt}, nil
}

func (s *reportService) countTotals() (dto.AdminReportTotals, error) {
	var t dto.AdminReportTotals
	var err error
	if t.Users, err = s.userRepo.Count(); err != nil {
		return t, fmt.Errorf("error counting users: %w", err)
	}
	if t.Forms, err = s.formRepo.Count(); err != nil {
		return t, fmt.Errorf("error counting forms: %w", err)
	}
	if t.Processes, err = s.processRepo.Count(); err != nil {
		return t, fmt.Errorf("error counting processes: %w", err)
	}
	if t.Questions, err = s.questionRepo.Count(); err != nil {
		return t, fmt.Errorf("error counting questions: %w", err)
	}
	if t.Answers, err = s.answerRepo.Count(); err != nil {
		return t, fmt.Errorf("error counting answers: %w", err)
	}
	return t, nil
}

func (s *reportService) countSince(since time.Time) (dto.AdminReportTotals, error) {
	var t dto.AdminReportTotals
	var err error
	if t.Users, err = s.userRepo.CountCreatedSince(since); err != nil {
		return t, fmt.Errorf("error counting users: %w", err)
	}
	if t.Forms, err = s.formRepo.CountCreatedSince(since); err != nil {
		return t, fmt.Errorf("error counting forms: %w", err)
	}
	if t.Processes, err = s.processRepo.CountCreatedSince(since); err != nil {
		return t, fmt.Errorf("error counting processes: %w", err)
	}
	if t.Questions, err = s.questionRepo.CountCreatedSince(since); err != nil {
		return t, fmt.Errorf("error counting questions: %w", err)
	}
	if t.Answers, err = s.answerRepo.CountCreatedSince(since); err != nil {
		return t, fmt.Errorf("error counting answers: %w", err)
	}
	return t, nil
}

func (s *reportService) requireAdmin(userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperr.Wrap(apperr.KindNotFound, "User not found", err)
	}
	if !user.IsAdmin {
		return apperr.New(apperr.KindPermissionDenied, "Admin access required.")
	}
	return nil
}
