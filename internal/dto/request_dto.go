package dto

// CreateFormRequest creates or updates a form. Order lists process IDs in
// traversal order.
type CreateFormRequest struct {
	Name       string `json:"name" binding:"required"`
	CategoryID *uint  `json:"category_id"`
	Order      []uint `json:"order" binding:"required,min=1"`
	Linear     bool   `json:"linear"`
	IsPrivate  bool   `json:"is_private"`
	Password   string `json:"password"`
	URL        string `json:"url"`
}

// CreateProcessRequest creates or updates a process. Order lists question
// IDs.
type CreateProcessRequest struct {
	Name       string `json:"name"`
	CategoryID *uint  `json:"category_id"`
	Order      []uint `json:"order" binding:"required,min=1"`
	IsPrivate  bool   `json:"is_private"`
	Password   string `json:"password"`
}

// CreateQuestionRequest creates or updates a question. Order lists option
// IDs and is required for checkbox and single choice types, forbidden for
// text.
type CreateQuestionRequest struct {
	Text     string `json:"text" binding:"required"`
	Type     int    `json:"type" binding:"required,oneof=1 2 3"`
	Required bool   `json:"required"`
	Order    []uint `json:"order"`
}

type CreateOptionRequest struct {
	Text string `json:"text" binding:"required"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SubmitAnswerRequest carries a candidate answer payload. Exactly one of
// Text, OptionID, SelectIDs may be populated, matching the question type.
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	FormID     uint   `json:"form_id" binding:"required"`
	Text       string `json:"text"`
	OptionID   *uint  `json:"option_id"`
	SelectIDs  []uint `json:"select_ids"`
}

// SuggestQuestionsRequest asks the AI service for question drafts.
type SuggestQuestionsRequest struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count"`
}
