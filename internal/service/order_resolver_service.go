package service

import (
	"time"

	"github.com/Sadeghizad/Form-creator/internal/cache"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/Sadeghizad/Form-creator/internal/repository"
	"github.com/rs/zerolog/log"
)

// ResolvedOption pairs an option with its position in the owning
// question's declared order.
type ResolvedOption struct {
	Option   model.Option
	Position int
}

type ResolvedQuestion struct {
	Question model.Question
	Position int
	Options  []ResolvedOption
}

type ResolvedProcess struct {
	Process   model.Process
	Position  int
	Questions []ResolvedQuestion
}

// ResolvedForm is the materialized traversal of a form's order arrays.
// Entries whose IDs no longer resolve are dropped; surviving entries keep
// their original positions.
type ResolvedForm struct {
	Form      model.Form
	Processes []ResolvedProcess
}

// FlattenedQuestions returns every resolved question in form order,
// process by process. The index in the returned slice is the question's
// rank for linear traversal.
func (rf *ResolvedForm) FlattenedQuestions() []ResolvedQuestion {
	var flat []ResolvedQuestion
	for _, p := range rf.Processes {
		flat = append(flat, p.Questions...)
	}
	return flat
}

// OrderResolverService expands a form's stored ID lists into entity
// sequences. Resolution is recomputed from the store on demand; the TTL
// cache in front of it only serves results newer than the cache window and
// is invalidated by every builder mutation.
type OrderResolverService interface {
	ResolveForm(form *model.Form) (*ResolvedForm, error)
	// Invalidate drops the cached resolution for one form.
	Invalidate(formID uint)
	// InvalidateAll drops every cached resolution. Used when a mutation
	// may affect forms whose membership is unknown.
	InvalidateAll()
}

type orderResolverService struct {
	processRepo  repository.ProcessRepository
	questionRepo repository.QuestionRepository
	optionRepo   repository.OptionRepository
	cache        *cache.Cache[uint, *ResolvedForm]
}

func NewOrderResolverService(
	processRepo repository.ProcessRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	ttl time.Duration,
) OrderResolverService {
	return &orderResolverService{
		processRepo:  processRepo,
		questionRepo: questionRepo,
		optionRepo:   optionRepo,
		cache:        cache.New[uint, *ResolvedForm](ttl),
	}
}

func (s *orderResolverService) Invalidate(formID uint) {
	s.cache.Delete(formID)
}

func (s *orderResolverService) InvalidateAll() {
	s.cache.Flush()
}

func (s *orderResolverService) ResolveForm(form *model.Form) (*ResolvedForm, error) {
	if cached, ok := s.cache.Get(form.ID); ok {
		return cached, nil
	}

	processIDs := idsFromOrder(form.Order)
	processes, err := s.processRepo.FindByIDs(processIDs)
	if err != nil {
		return nil, err
	}
	processByID := make(map[uint]model.Process, len(processes))
	for _, p := range processes {
		processByID[p.ID] = p
	}

	// Collect every question ID referenced by a surviving process so the
	// questions load in one query.
	var questionIDs []uint
	for _, id := range processIDs {
		if p, ok := processByID[id]; ok {
			questionIDs = append(questionIDs, idsFromOrder(p.Order)...)
		}
	}
	questions, err := s.questionRepo.FindByIDs(questionIDs)
	if err != nil {
		return nil, err
	}
	questionByID := make(map[uint]model.Question, len(questions))
	var optionIDs []uint
	for _, q := range questions {
		questionByID[q.ID] = q
		if q.Type.HasOptions() {
			optionIDs = append(optionIDs, idsFromOrder(q.Order)...)
		}
	}
	options, err := s.optionRepo.FindByIDs(optionIDs)
	if err != nil {
		return nil, err
	}
	optionByID := make(map[uint]model.Option, len(options))
	for _, o := range options {
		optionByID[o.ID] = o
	}

	resolved := &ResolvedForm{Form: *form}
	for pos, id := range form.Order {
		process, ok := processByID[uint(id)]
		if !ok {
			// Dangling entries are skipped, never fatal: order arrays
			// are plain ID lists with no referential guarantee.
			log.Debug().Uint("formID", form.ID).Int64("processID", id).Msg("Skipping dangling process reference in form order")
			continue
		}
		rp := ResolvedProcess{Process: process, Position: pos}
		for qpos, qid := range process.Order {
			question, ok := questionByID[uint(qid)]
			if !ok {
				log.Debug().Uint("processID", process.ID).Int64("questionID", qid).Msg("Skipping dangling question reference in process order")
				continue
			}
			rq := ResolvedQuestion{Question: question, Position: qpos}
			if question.Type.HasOptions() {
				for opos, oid := range question.Order {
					option, ok := optionByID[uint(oid)]
					if !ok {
						log.Debug().Uint("questionID", question.ID).Int64("optionID", oid).Msg("Skipping dangling option reference in question order")
						continue
					}
					rq.Options = append(rq.Options, ResolvedOption{Option: option, Position: opos})
				}
			}
			rp.Questions = append(rp.Questions, rq)
		}
		resolved.Processes = append(resolved.Processes, rp)
	}

	s.cache.Set(form.ID, resolved)
	return resolved, nil
}

// idsFromOrder deduplicates an order array for batch loading. The order
// array itself keeps its duplicates; this only shapes the IN query.
func idsFromOrder(order []int64) []uint {
	seen := make(map[uint]struct{}, len(order))
	ids := make([]uint, 0, len(order))
	for _, id := range order {
		uid := uint(id)
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		ids = append(ids, uid)
	}
	return ids
}
