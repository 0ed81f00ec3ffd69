package service

import (
	"testing"
	"time"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answerEnv struct {
	forms     *fakeFormRepo
	processes *fakeProcessRepo
	questions *fakeQuestionRepo
	options   *fakeOptionRepo
	answers   *fakeAnswerRepo
	svc       AnswerService
}

func newAnswerEnv() *answerEnv {
	env := &answerEnv{
		forms:     newFakeFormRepo(),
		processes: newFakeProcessRepo(),
		questions: newFakeQuestionRepo(),
		options:   newFakeOptionRepo(),
	}
	env.answers = newFakeAnswerRepo(env.questions)
	resolver := NewOrderResolverService(env.processes, env.questions, env.options, time.Hour)
	env.svc = NewAnswerService(env.forms, env.questions, env.options, env.answers, resolver)
	return env
}

// seedForm builds one process with three questions: 1 free text, 2 single
// choice over options 1 and 2, 3 checkbox over options 3 and 4.
func (env *answerEnv) seedForm(linear bool) *model.Form {
	for id := uint(1); id <= 4; id++ {
		env.options.options[id] = &model.Option{ID: id, UserID: 1, Text: "opt"}
	}
	env.questions.questions[1] = &model.Question{ID: 1, UserID: 1, Text: "Name?", Type: model.QuestionText}
	env.questions.questions[2] = &model.Question{ID: 2, UserID: 1, Text: "Color?", Type: model.QuestionSingleChoice, Order: pq.Int64Array{1, 2}}
	env.questions.questions[3] = &model.Question{ID: 3, UserID: 1, Text: "Toppings?", Type: model.QuestionCheckbox, Order: pq.Int64Array{3, 4}}
	env.processes.processes[1] = &model.Process{ID: 1, UserID: 1, Order: pq.Int64Array{1, 2, 3}}

	form := &model.Form{ID: 1, UserID: 1, Name: "Survey", Linear: linear, Order: pq.Int64Array{1}}
	env.forms.forms[1] = form
	return form
}

func optID(id uint) *uint { return &id }

func TestSubmitAnswerLinearOutOfOrder(t *testing.T) {
	env := newAnswerEnv()
	env.seedForm(true)

	_, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 2, FormID: 1, OptionID: optID(1)})
	require.Error(t, err)
	assert.True(t, apperr.IsOutOfOrder(err))
	assert.Equal(t, "Answer previous questions in order first.", apperr.MessageOf(err))

	// After answering question 1 the same submission passes.
	_, err = env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 1, FormID: 1, Text: "Ada"})
	require.NoError(t, err)
	_, err = env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 2, FormID: 1, OptionID: optID(1)})
	assert.NoError(t, err)
}

func TestSubmitAnswerFreeTraversalAnyOrder(t *testing.T) {
	env := newAnswerEnv()
	env.seedForm(false)

	_, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 3, FormID: 1, SelectIDs: []uint{3, 4}})
	require.NoError(t, err)
	_, err = env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 1, FormID: 1, Text: "late"})
	assert.NoError(t, err)
}

func TestSubmitAnswerShapeMismatch(t *testing.T) {
	env := newAnswerEnv()
	env.seedForm(false)

	cases := []struct {
		name string
		req  dto.SubmitAnswerRequest
		msg  string
	}{
		{
			name: "text question with option",
			req:  dto.SubmitAnswerRequest{QuestionID: 1, FormID: 1, OptionID: optID(1)},
			msg:  "Text question does not accept options.",
		},
		{
			name: "text question empty",
			req:  dto.SubmitAnswerRequest{QuestionID: 1, FormID: 1},
			msg:  "Text field must be filled for text question.",
		},
		{
			name: "single choice with text",
			req:  dto.SubmitAnswerRequest{QuestionID: 2, FormID: 1, Text: "blue"},
			msg:  "Single choice question accepts a single option only.",
		},
		{
			name: "single choice without option",
			req:  dto.SubmitAnswerRequest{QuestionID: 2, FormID: 1},
			msg:  "An option must be selected for single choice question.",
		},
		{
			name: "checkbox with text",
			req:  dto.SubmitAnswerRequest{QuestionID: 3, FormID: 1, Text: "all", SelectIDs: []uint{3}},
			msg:  "Checkbox question accepts selected options only.",
		},
		{
			name: "checkbox empty",
			req:  dto.SubmitAnswerRequest{QuestionID: 3, FormID: 1},
			msg:  "At least one option must be selected for checkbox question.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.Submit(2, tc.req)
			require.Error(t, err)
			assert.True(t, apperr.IsShapeMismatch(err))
			assert.Equal(t, tc.msg, apperr.MessageOf(err))
		})
	}
}

func TestSubmitAnswerForeignOptionRejected(t *testing.T) {
	env := newAnswerEnv()
	env.seedForm(false)

	// Option 3 exists but belongs to question 3's order, not question 2's.
	_, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 2, FormID: 1, OptionID: optID(3)})
	require.Error(t, err)
	assert.True(t, apperr.IsShapeMismatch(err))
	assert.Equal(t, "Option does not belong to this question.", apperr.MessageOf(err))

	// Listed in the order array but deleted from the store.
	delete(env.options.options, 1)
	_, err = env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 2, FormID: 1, OptionID: optID(1)})
	require.Error(t, err)
	assert.Equal(t, "Option does not belong to this question.", apperr.MessageOf(err))
}

func TestSubmitAnswerQuestionNotInForm(t *testing.T) {
	env := newAnswerEnv()
	env.seedForm(false)
	env.questions.questions[9] = &model.Question{ID: 9, UserID: 1, Text: "stray", Type: model.QuestionText}

	_, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 9, FormID: 1, Text: "hi"})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))
	assert.Equal(t, "Question is not part of this form.", apperr.MessageOf(err))
}

func TestSubmitAnswerNotFound(t *testing.T) {
	env := newAnswerEnv()
	env.seedForm(false)

	_, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 42, FormID: 1, Text: "hi"})
	assert.True(t, apperr.IsNotFound(err))

	_, err = env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 1, FormID: 42, Text: "hi"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestSubmitAnswerResubmissionReplaces(t *testing.T) {
	env := newAnswerEnv()
	env.seedForm(false)

	first, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 1, FormID: 1, Text: "draft"})
	require.NoError(t, err)

	second, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 1, FormID: 1, Text: "final"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "final", second.Text)

	stored, err := env.answers.FindByUserAndQuestion(2, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "final", stored[0].Text)
}

func TestSubmitAnswerCheckboxSelectionsReplaced(t *testing.T) {
	env := newAnswerEnv()
	env.seedForm(false)

	_, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 3, FormID: 1, SelectIDs: []uint{3, 4}})
	require.NoError(t, err)

	resp, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 3, FormID: 1, SelectIDs: []uint{4}})
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, resp.SelectIDs)

	stored, err := env.answers.FindByUserQuestionForm(2, 3, 1)
	require.NoError(t, err)
	require.Len(t, stored.Select, 1)
	assert.Equal(t, uint(4), stored.Select[0].ID)
}

func TestSubmitAnswerDuplicateQuestionCountsOnce(t *testing.T) {
	env := newAnswerEnv()
	form := env.seedForm(true)
	// Question 1 listed by both processes; the flattened sequence holds
	// it once, so question 2 is still the second slot.
	env.processes.processes[2] = &model.Process{ID: 2, UserID: 1, Order: pq.Int64Array{1}}
	form.Order = pq.Int64Array{2, 1}

	_, err := env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 1, FormID: 1, Text: "once"})
	require.NoError(t, err)
	_, err = env.svc.Submit(2, dto.SubmitAnswerRequest{QuestionID: 2, FormID: 1, OptionID: optID(1)})
	assert.NoError(t, err)
}
