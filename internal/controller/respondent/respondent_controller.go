package respondent

import (
	"net/http"
	"strconv"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/middleware"
	"github.com/Sadeghizad/Form-creator/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RespondentController serves form filling: fetching a form, asking what to
// answer next and submitting answers.
type RespondentController struct {
	formSvc     service.FormService
	progressSvc service.ProgressService
	answerSvc   service.AnswerService
	reportSvc   service.ReportService
}

func NewRespondentController(
	formSvc service.FormService,
	progressSvc service.ProgressService,
	answerSvc service.AnswerService,
	reportSvc service.ReportService,
) *RespondentController {
	return &RespondentController{
		formSvc:     formSvc,
		progressSvc: progressSvc,
		answerSvc:   answerSvc,
		reportSvc:   reportSvc,
	}
}

func (rc *RespondentController) RegisterRoutes(rg *gin.RouterGroup) {
	forms := rg.Group("/forms")
	forms.GET("/:id", rc.GetForm)
	forms.GET("/:id/progress", rc.Progress)

	answers := rg.Group("/answers")
	answers.POST("", rc.SubmitAnswer)
	answers.GET("/questions/:id", rc.MyAnswersByQuestion)
}

// GetForm godoc
// @Summary Get a form
// @Description Private forms require ?password= unless the caller owns them
// @Tags Respondent
// @Produce json
// @Param id path int true "Form ID"
// @Param password query string false "Password for private forms"
// @Success 200 {object} dto.FormResponse
// @Failure 403 {object} dto.ErrorResponse "Password missing or wrong"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{id} [get]
// @Security BearerAuth
func (rc *RespondentController) GetForm(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	resp, err := rc.formSvc.Get(middleware.CurrentUserID(ctx), id, ctx.Query("password"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Progress godoc
// @Summary Get what to answer next
// @Description Linear forms expose only the earliest unanswered question; free-traversal forms expose the whole resolved tree
// @Tags Respondent
// @Produce json
// @Param id path int true "Form ID"
// @Param password query string false "Password for private forms"
// @Success 200 {object} dto.ProgressResponse
// @Failure 403 {object} dto.ErrorResponse "Password missing or wrong"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{id}/progress [get]
// @Security BearerAuth
func (rc *RespondentController) Progress(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	resp, err := rc.progressSvc.Start(middleware.CurrentUserID(ctx), id, ctx.Query("password"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAnswer godoc
// @Summary Submit or replace an answer
// @Description Validates payload shape against the question type and, on linear forms, traversal order. Resubmitting replaces the previous answer.
// @Tags Respondent
// @Accept json
// @Produce json
// @Param answer body dto.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} dto.AnswerResponse
// @Failure 404 {object} dto.ErrorResponse "Question or form not found"
// @Failure 409 {object} dto.ErrorResponse "Previous questions unanswered"
// @Failure 422 {object} dto.ErrorResponse "Payload does not match question type"
// @Router /answers [post]
// @Security BearerAuth
func (rc *RespondentController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := rc.answerSvc.Submit(middleware.CurrentUserID(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	rc.reportSvc.EnqueueFold(req.FormID)
	ctx.JSON(http.StatusOK, resp)
}

// MyAnswersByQuestion godoc
// @Summary List my answers to a question
// @Tags Respondent
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {array} dto.AnswerResponse
// @Router /answers/questions/{id} [get]
// @Security BearerAuth
func (rc *RespondentController) MyAnswersByQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	resp, err := rc.answerSvc.ListByQuestion(middleware.CurrentUserID(ctx), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}

func fail(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindPermissionDenied:
		status = http.StatusForbidden
	case apperr.KindShapeMismatch, apperr.KindInvalidState:
		status = http.StatusUnprocessableEntity
	case apperr.KindOutOfOrder, apperr.KindConflict:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("unhandled service error")
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	ctx.JSON(status, dto.ErrorResponse{Message: apperr.MessageOf(err)})
}
