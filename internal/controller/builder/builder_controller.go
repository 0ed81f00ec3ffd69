package builder

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

// BuilderController serves the authoring surface: forms, processes,
// questions, options and categories owned by the authenticated user.
type BuilderController struct {
	formSvc     service.FormService
	processSvc  service.ProcessService
	questionSvc service.QuestionService
	optionSvc   service.OptionService
	categorySvc service.CategoryService
	suggestSvc  service.SuggestService
}

func NewBuilderController(
	formSvc service.FormService,
	processSvc service.ProcessService,
	questionSvc service.QuestionService,
	optionSvc service.OptionService,
	categorySvc service.CategoryService,
	suggestSvc service.SuggestService,
) *BuilderController {
	return &BuilderController{
		formSvc:     formSvc,
		processSvc:  processSvc,
		questionSvc: questionSvc,
		optionSvc:   optionSvc,
		categorySvc: categorySvc,
		suggestSvc:  suggestSvc,
	}
}

func (bc *BuilderController) RegisterRoutes(rg *gin.RouterGroup) {
	forms := rg.Group("/forms")
	forms.POST("", bc.CreateForm)
	forms.GET("/mine", bc.ListMyForms)
	forms.PUT("/:id", bc.UpdateForm)
	forms.DELETE("/:id", bc.DeleteForm)

	processes := rg.Group("/processes")
	processes.POST("", bc.CreateProcess)
	processes.GET("/mine", bc.ListMyProcesses)
	processes.GET("/:id", bc.GetProcess)
	processes.PUT("/:id", bc.UpdateProcess)
	processes.DELETE("/:id", bc.DeleteProcess)

	questions := rg.Group("/questions")
	questions.POST("", bc.CreateQuestion)
	questions.GET("/mine", bc.ListMyQuestions)
	questions.GET("/:id", bc.GetQuestion)
	questions.PUT("/:id", bc.UpdateQuestion)
	questions.DELETE("/:id", bc.DeleteQuestion)
	questions.POST("/suggest", bc.SuggestQuestions)

	options := rg.Group("/options")
	options.POST("", bc.CreateOption)
	options.GET("/mine", bc.ListMyOptions)
	options.PUT("/:id", bc.UpdateOption)
	options.DELETE("/:id", bc.DeleteOption)

	categories := rg.Group("/categories")
	categories.POST("", bc.CreateCategory)
	categories.GET("", bc.ListCategories)
	categories.PUT("/:id", bc.UpdateCategory)
	categories.DELETE("/:id", bc.DeleteCategory)
}

// --- Forms ---

// CreateForm godoc
// @Summary Create a form
// @Description Create a form whose order lists process IDs in traversal order
// @Tags Builder - Forms
// @Accept json
// @Produce json
// @Param form body dto.CreateFormRequest true "Form data"
// @Success 201 {object} dto.FormResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 422 {object} dto.ErrorResponse "Invalid form shape"
// @Router /builder/forms [post]
// @Security BearerAuth
func (bc *BuilderController) CreateForm(ctx *gin.Context) {
	var req dto.CreateFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateForm: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.formSvc.Create(middleware.CurrentUserID(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListMyForms godoc
// @Summary List my forms
// @Tags Builder - Forms
// @Produce json
// @Success 200 {array} dto.FormResponse
// @Router /builder/forms/mine [get]
// @Security BearerAuth
func (bc *BuilderController) ListMyForms(ctx *gin.Context) {
	resp, err := bc.formSvc.ListMine(middleware.CurrentUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateForm godoc
// @Summary Update a form
// @Tags Builder - Forms
// @Accept json
// @Produce json
// @Param id path int true "Form ID"
// @Param form body dto.CreateFormRequest true "Form data"
// @Success 200 {object} dto.FormResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /builder/forms/{id} [put]
// @Security BearerAuth
func (bc *BuilderController) UpdateForm(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req dto.CreateFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.formSvc.Update(middleware.CurrentUserID(ctx), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteForm godoc
// @Summary Delete a form
// @Tags Builder - Forms
// @Param id path int true "Form ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /builder/forms/{id} [delete]
// @Security BearerAuth
func (bc *BuilderController) DeleteForm(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := bc.formSvc.Delete(middleware.CurrentUserID(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// --- Processes ---

// CreateProcess godoc
// @Summary Create a process
// @Description Create a reusable question group whose order lists question IDs
// @Tags Builder - Processes
// @Accept json
// @Produce json
// @Param process body dto.CreateProcessRequest true "Process data"
// @Success 201 {object} dto.ProcessResponse
// @Failure 422 {object} dto.ErrorResponse "Invalid process shape"
// @Router /builder/processes [post]
// @Security BearerAuth
func (bc *BuilderController) CreateProcess(ctx *gin.Context) {
	var req dto.CreateProcessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.processSvc.Create(middleware.CurrentUserID(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListMyProcesses godoc
// @Summary List my processes
// @Tags Builder - Processes
// @Produce json
// @Success 200 {array} dto.ProcessResponse
// @Router /builder/processes/mine [get]
// @Security BearerAuth
func (bc *BuilderController) ListMyProcesses(ctx *gin.Context) {
	resp, err := bc.processSvc.ListMine(middleware.CurrentUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetProcess godoc
// @Summary Get a process
// @Description Private processes require the password unless the caller owns them
// @Tags Builder - Processes
// @Produce json
// @Param id path int true "Process ID"
// @Param password query string false "Password for private processes"
// @Success 200 {object} dto.ProcessResponse
// @Failure 403 {object} dto.ErrorResponse "Password missing or wrong"
// @Failure 404 {object} dto.ErrorResponse "Process not found"
// @Router /builder/processes/{id} [get]
// @Security BearerAuth
func (bc *BuilderController) GetProcess(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	resp, err := bc.processSvc.Get(middleware.CurrentUserID(ctx), id, ctx.Query("password"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateProcess godoc
// @Summary Update a process
// @Tags Builder - Processes
// @Accept json
// @Produce json
// @Param id path int true "Process ID"
// @Param process body dto.CreateProcessRequest true "Process data"
// @Success 200 {object} dto.ProcessResponse
// @Router /builder/processes/{id} [put]
// @Security BearerAuth
func (bc *BuilderController) UpdateProcess(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req dto.CreateProcessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.processSvc.Update(middleware.CurrentUserID(ctx), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteProcess godoc
// @Summary Delete a process
// @Tags Builder - Processes
// @Param id path int true "Process ID"
// @Success 204 "No Content"
// @Router /builder/processes/{id} [delete]
// @Security BearerAuth
func (bc *BuilderController) DeleteProcess(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := bc.processSvc.Delete(middleware.CurrentUserID(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// --- Questions ---

// CreateQuestion godoc
// @Summary Create a question
// @Description Checkbox and single choice questions list option IDs in order; text questions must not
// @Tags Builder - Questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 422 {object} dto.ErrorResponse "Invalid question shape"
// @Router /builder/questions [post]
// @Security BearerAuth
func (bc *BuilderController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.questionSvc.Create(middleware.CurrentUserID(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListMyQuestions godoc
// @Summary List my questions
// @Tags Builder - Questions
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Router /builder/questions/mine [get]
// @Security BearerAuth
func (bc *BuilderController) ListMyQuestions(ctx *gin.Context) {
	resp, err := bc.questionSvc.ListMine(middleware.CurrentUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags Builder - Questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /builder/questions/{id} [get]
// @Security BearerAuth
func (bc *BuilderController) GetQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	resp, err := bc.questionSvc.Get(id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags Builder - Questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body dto.CreateQuestionRequest true "Question data"
// @Success 200 {object} dto.QuestionResponse
// @Router /builder/questions/{id} [put]
// @Security BearerAuth
func (bc *BuilderController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.questionSvc.Update(middleware.CurrentUserID(ctx), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags Builder - Questions
// @Param id path int true "Question ID"
// @Success 204 "No Content"
// @Router /builder/questions/{id} [delete]
// @Security BearerAuth
func (bc *BuilderController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := bc.questionSvc.Delete(middleware.CurrentUserID(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SuggestQuestions godoc
// @Summary Draft questions with AI
// @Description Ask Gemini for question drafts on a topic; nothing is persisted
// @Tags Builder - Questions
// @Accept json
// @Produce json
// @Param request body dto.SuggestQuestionsRequest true "Topic and count"
// @Success 200 {array} dto.QuestionSuggestion
// @Failure 502 {object} dto.ErrorResponse "AI service unavailable"
// @Router /builder/questions/suggest [post]
// @Security BearerAuth
func (bc *BuilderController) SuggestQuestions(ctx *gin.Context) {
	var req dto.SuggestQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	suggestions, err := bc.suggestSvc.SuggestQuestions(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("SuggestQuestions: service error")
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Question suggestion is unavailable", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, suggestions)
}

// --- Options ---

// CreateOption godoc
// @Summary Create an option
// @Tags Builder - Options
// @Accept json
// @Produce json
// @Param option body dto.CreateOptionRequest true "Option data"
// @Success 201 {object} dto.OptionResponse
// @Router /builder/options [post]
// @Security BearerAuth
func (bc *BuilderController) CreateOption(ctx *gin.Context) {
	var req dto.CreateOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.optionSvc.Create(middleware.CurrentUserID(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListMyOptions godoc
// @Summary List my options
// @Tags Builder - Options
// @Produce json
// @Success 200 {array} dto.OptionResponse
// @Router /builder/options/mine [get]
// @Security BearerAuth
func (bc *BuilderController) ListMyOptions(ctx *gin.Context) {
	resp, err := bc.optionSvc.ListMine(middleware.CurrentUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateOption godoc
// @Summary Update an option
// @Tags Builder - Options
// @Accept json
// @Produce json
// @Param id path int true "Option ID"
// @Param option body dto.CreateOptionRequest true "Option data"
// @Success 200 {object} dto.OptionResponse
// @Router /builder/options/{id} [put]
// @Security BearerAuth
func (bc *BuilderController) UpdateOption(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req dto.CreateOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.optionSvc.Update(middleware.CurrentUserID(ctx), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteOption godoc
// @Summary Delete an option
// @Tags Builder - Options
// @Param id path int true "Option ID"
// @Success 204 "No Content"
// @Router /builder/options/{id} [delete]
// @Security BearerAuth
func (bc *BuilderController) DeleteOption(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := bc.optionSvc.Delete(middleware.CurrentUserID(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// --- Categories ---

// CreateCategory godoc
// @Summary Create a category
// @Description Admin-created categories are public; everyone else gets a private one
// @Tags Builder - Categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.CategoryResponse
// @Router /builder/categories [post]
// @Security BearerAuth
func (bc *BuilderController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.categorySvc.Create(middleware.CurrentUserID(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListCategories godoc
// @Summary List public categories plus my own
// @Tags Builder - Categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /builder/categories [get]
// @Security BearerAuth
func (bc *BuilderController) ListCategories(ctx *gin.Context) {
	resp, err := bc.categorySvc.List(middleware.CurrentUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags Builder - Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body dto.CreateCategoryRequest true "Category data"
// @Success 200 {object} dto.CategoryResponse
// @Router /builder/categories/{id} [put]
// @Security BearerAuth
func (bc *BuilderController) UpdateCategory(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := bc.categorySvc.Update(middleware.CurrentUserID(ctx), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags Builder - Categories
// @Param id path int true "Category ID"
// @Success 204 "No Content"
// @Router /builder/categories/{id} [delete]
// @Security BearerAuth
func (bc *BuilderController) DeleteCategory(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := bc.categorySvc.Delete(middleware.CurrentUserID(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}

// fail maps a service error onto the HTTP boundary by its kind.
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
