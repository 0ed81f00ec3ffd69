package service

import (
	"sort"
	"time"

	"github.com/Sadeghizad/Form-creator/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes. They honor the same contracts the gorm
// implementations do (record-not-found errors, upsert on the composite
// answer key, insert-if-absent view facts) so the services under test see
// the storage semantics they were written against.

type fakeFormRepo struct {
	forms  map[uint]*model.Form
	nextID uint
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: map[uint]*model.Form{}, nextID: 1}
}

func (r *fakeFormRepo) Create(form *model.Form) error {
	form.ID = r.nextID
	r.nextID++
	form.CreatedAt = time.Now()
	cp := *form
	r.forms[form.ID] = &cp
	return nil
}

func (r *fakeFormRepo) FindByID(id uint) (*model.Form, error) {
	form, ok := r.forms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *form
	return &cp, nil
}

func (r *fakeFormRepo) FindAll() ([]model.Form, error) {
	var out []model.Form
	for _, f := range r.forms {
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFormRepo) FindByUser(userID uint) ([]model.Form, error) {
	var out []model.Form
	for _, f := range r.forms {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFormRepo) Update(form *model.Form) error {
	if _, ok := r.forms[form.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *form
	r.forms[form.ID] = &cp
	return nil
}

func (r *fakeFormRepo) Delete(id uint) error {
	delete(r.forms, id)
	return nil
}

func (r *fakeFormRepo) Count() (int64, error) { return int64(len(r.forms)), nil }

func (r *fakeFormRepo) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	for _, f := range r.forms {
		if !f.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

type fakeProcessRepo struct {
	processes map[uint]*model.Process
	nextID    uint
}

func newFakeProcessRepo() *fakeProcessRepo {
	return &fakeProcessRepo{processes: map[uint]*model.Process{}, nextID: 1}
}

func (r *fakeProcessRepo) Create(process *model.Process) error {
	process.ID = r.nextID
	r.nextID++
	process.CreatedAt = time.Now()
	cp := *process
	r.processes[process.ID] = &cp
	return nil
}

func (r *fakeProcessRepo) FindByID(id uint) (*model.Process, error) {
	p, ok := r.processes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProcessRepo) FindByIDs(ids []uint) ([]model.Process, error) {
	var out []model.Process
	for _, id := range ids {
		if p, ok := r.processes[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProcessRepo) FindByUser(userID uint) ([]model.Process, error) {
	var out []model.Process
	for _, p := range r.processes {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProcessRepo) Update(process *model.Process) error {
	if _, ok := r.processes[process.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *process
	r.processes[process.ID] = &cp
	return nil
}

func (r *fakeProcessRepo) Delete(id uint) error {
	delete(r.processes, id)
	return nil
}

func (r *fakeProcessRepo) Count() (int64, error) { return int64(len(r.processes)), nil }

func (r *fakeProcessRepo) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	for _, p := range r.processes {
		if !p.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

type fakeQuestionRepo struct {
	questions map[uint]*model.Question
	nextID    uint
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[uint]*model.Question{}, nextID: 1}
}

func (r *fakeQuestionRepo) Create(question *model.Question) error {
	question.ID = r.nextID
	r.nextID++
	question.CreatedAt = time.Now()
	cp := *question
	r.questions[question.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuestionRepo) FindByIDs(ids []uint) ([]model.Question, error) {
	var out []model.Question
	for _, id := range ids {
		if q, ok := r.questions[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindByUser(userID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.UserID == userID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(question *model.Question) error {
	if _, ok := r.questions[question.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *question
	r.questions[question.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) Delete(id uint) error {
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) Count() (int64, error) { return int64(len(r.questions)), nil }

func (r *fakeQuestionRepo) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	for _, q := range r.questions {
		if !q.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

type fakeOptionRepo struct {
	options map[uint]*model.Option
	nextID  uint
}

func newFakeOptionRepo() *fakeOptionRepo {
	return &fakeOptionRepo{options: map[uint]*model.Option{}, nextID: 1}
}

func (r *fakeOptionRepo) Create(option *model.Option) error {
	option.ID = r.nextID
	r.nextID++
	cp := *option
	r.options[option.ID] = &cp
	return nil
}

func (r *fakeOptionRepo) FindByID(id uint) (*model.Option, error) {
	o, ok := r.options[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOptionRepo) FindByIDs(ids []uint) ([]model.Option, error) {
	seen := map[uint]struct{}{}
	var out []model.Option
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if o, ok := r.options[id]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOptionRepo) FindByUser(userID uint) ([]model.Option, error) {
	var out []model.Option
	for _, o := range r.options {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOptionRepo) Update(option *model.Option) error {
	if _, ok := r.options[option.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *option
	r.options[option.ID] = &cp
	return nil
}

func (r *fakeOptionRepo) Delete(id uint) error {
	delete(r.options, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uint]*model.Category
	nextID     uint
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uint]*model.Category{}, nextID: 1}
}

func (r *fakeCategoryRepo) Create(category *model.Category) error {
	category.ID = r.nextID
	r.nextID++
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) FindByID(id uint) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) FindPublic() ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if c.UserID == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByUser(userID uint) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(category *model.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(id uint) error {
	delete(r.categories, id)
	return nil
}

type fakeUserRepo struct {
	users map[uint]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*model.User{}}
}

func (r *fakeUserRepo) add(user model.User) {
	cp := user
	r.users[user.ID] = &cp
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Count() (int64, error) { return int64(len(r.users)), nil }

func (r *fakeUserRepo) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

type viewKey struct {
	userID   uint
	entityID uint
}

type fakeViewRepo struct {
	formViews     map[viewKey]struct{}
	questionViews map[viewKey]struct{}
}

func newFakeViewRepo() *fakeViewRepo {
	return &fakeViewRepo{
		formViews:     map[viewKey]struct{}{},
		questionViews: map[viewKey]struct{}{},
	}
}

func (r *fakeViewRepo) RecordFormView(userID, formID uint) error {
	r.formViews[viewKey{userID, formID}] = struct{}{}
	return nil
}

func (r *fakeViewRepo) RecordQuestionView(userID, questionID uint) error {
	r.questionViews[viewKey{userID, questionID}] = struct{}{}
	return nil
}

func (r *fakeViewRepo) CountFormViews(formID uint) (int64, error) {
	var n int64
	for k := range r.formViews {
		if k.entityID == formID {
			n++
		}
	}
	return n, nil
}

func (r *fakeViewRepo) CountQuestionViews(questionID uint) (int64, error) {
	var n int64
	for k := range r.questionViews {
		if k.entityID == questionID {
			n++
		}
	}
	return n, nil
}

// fakeAnswerRepo emulates the database-level upsert: one row per
// (user, question, form), payload replaced on conflict. FindByFormSince
// attaches the owning question from the linked question fake the way the
// gorm implementation preloads it.
type fakeAnswerRepo struct {
	answers   map[uint]*model.Answer
	questions *fakeQuestionRepo
	nextID    uint
}

func newFakeAnswerRepo(questions *fakeQuestionRepo) *fakeAnswerRepo {
	return &fakeAnswerRepo{answers: map[uint]*model.Answer{}, questions: questions, nextID: 1}
}

func (r *fakeAnswerRepo) Upsert(answer *model.Answer) error {
	for _, existing := range r.answers {
		if existing.UserID == answer.UserID && existing.QuestionID == answer.QuestionID && existing.FormID == answer.FormID {
			existing.Text = answer.Text
			existing.OptionID = answer.OptionID
			existing.Select = answer.Select
			existing.UpdatedAt = time.Now()
			answer.ID = existing.ID
			return nil
		}
	}
	answer.ID = r.nextID
	r.nextID++
	answer.CreatedAt = time.Now()
	answer.UpdatedAt = answer.CreatedAt
	cp := *answer
	r.answers[answer.ID] = &cp
	return nil
}

func (r *fakeAnswerRepo) FindByUserQuestionForm(userID, questionID, formID uint) (*model.Answer, error) {
	for _, a := range r.answers {
		if a.UserID == userID && a.QuestionID == questionID && a.FormID == formID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAnswerRepo) FindByUserAndQuestion(userID, questionID uint) ([]model.Answer, error) {
	var out []model.Answer
	for _, a := range r.answers {
		if a.UserID == userID && a.QuestionID == questionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) AnsweredQuestionIDs(userID, formID uint) (map[uint]struct{}, error) {
	out := map[uint]struct{}{}
	for _, a := range r.answers {
		if a.UserID == userID && a.FormID == formID {
			out[a.QuestionID] = struct{}{}
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) FindByFormSince(formID, cursor uint, limit int) ([]model.Answer, error) {
	var out []model.Answer
	for _, a := range r.answers {
		if a.FormID == formID && a.ID > cursor {
			cp := *a
			if q, ok := r.questions.questions[a.QuestionID]; ok {
				cp.Question = *q
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAnswerRepo) Count() (int64, error) { return int64(len(r.answers)), nil }

func (r *fakeAnswerRepo) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	for _, a := range r.answers {
		if !a.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

type fakeReportRepo struct {
	reports      map[uint]*model.Report
	adminReports []*model.AdminReport
	nextID       uint
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[uint]*model.Report{}, nextID: 1}
}

func (r *fakeReportRepo) FindByForm(formID uint) (*model.Report, error) {
	rep, ok := r.reports[formID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rep
	return &cp, nil
}

func (r *fakeReportRepo) Save(report *model.Report) error {
	if existing, ok := r.reports[report.FormID]; ok {
		report.ID = existing.ID
		report.CreatedAt = existing.CreatedAt
	} else {
		report.ID = r.nextID
		r.nextID++
		report.CreatedAt = time.Now()
	}
	report.UpdatedAt = time.Now()
	cp := *report
	r.reports[report.FormID] = &cp
	return nil
}

func (r *fakeReportRepo) CreateAdminReport(report *model.AdminReport) error {
	report.ID = uint(len(r.adminReports) + 1)
	report.CreatedAt = time.Now()
	cp := *report
	r.adminReports = append(r.adminReports, &cp)
	return nil
}

func (r *fakeReportRepo) LatestAdminReport() (*model.AdminReport, error) {
	if len(r.adminReports) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.adminReports[len(r.adminReports)-1]
	return &cp, nil
}
