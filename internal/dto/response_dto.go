package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// FormResponse never carries the password field; private forms are gated
// at retrieval instead.
type FormResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Name       string    `json:"name"`
	CategoryID *uint     `json:"category_id,omitempty"`
	Order      []uint    `json:"order"`
	Linear     bool      `json:"linear"`
	IsPrivate  bool      `json:"is_private"`
	URL        string    `json:"url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ProcessResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Name       string    `json:"name,omitempty"`
	CategoryID *uint     `json:"category_id,omitempty"`
	Order      []uint    `json:"order"`
	IsPrivate  bool      `json:"is_private"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type QuestionResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Text      string    `json:"text"`
	Type      int       `json:"type"`
	Required  bool      `json:"required"`
	Order     []uint    `json:"order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type OptionResponse struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Text   string `json:"text"`
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	UserID      *uint  `json:"user_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type AnswerResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	QuestionID uint      `json:"question_id"`
	FormID     uint      `json:"form_id"`
	OptionID   *uint     `json:"option_id,omitempty"`
	SelectIDs  []uint    `json:"select_ids,omitempty"`
	Text       string    `json:"text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// --- Progress (what a respondent may see or answer next) ---

type OptionDetail struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type QuestionDetail struct {
	ID       uint           `json:"id"`
	Text     string         `json:"text"`
	Type     int            `json:"type"`
	Required bool           `json:"required"`
	Position int            `json:"position"`
	Options  []OptionDetail `json:"options,omitempty"`
}

type ProcessDetail struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name,omitempty"`
	Position  int              `json:"position"`
	Questions []QuestionDetail `json:"questions"`
}

// ProgressResponse is the unit a respondent is allowed to work on. For
// free-traversal forms Processes carries the whole resolved tree; for
// linear forms CurrentQuestion is the single unlocked question, nil once
// the form is complete.
type ProgressResponse struct {
	FormID          uint            `json:"form_id"`
	Linear          bool            `json:"linear"`
	Completed       bool            `json:"completed"`
	CurrentQuestion *QuestionDetail `json:"current_question,omitempty"`
	Processes       []ProcessDetail `json:"processes,omitempty"`
}

// --- Reports ---

// QuestionReport tallies one question. Options maps an option's position in
// the question's declared order (not its ID) to a selection count.
type QuestionReport struct {
	Views   int64       `json:"views"`
	Options map[int]int `json:"options"`
	Ans     []string    `json:"ans"`
}

type ReportData struct {
	FormID    uint                       `json:"form_id"`
	Views     int64                      `json:"views"`
	Questions map[string]*QuestionReport `json:"questions"`
}

type ReportResponse struct {
	Report    ReportData `json:"report"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type AdminReportTotals struct {
	Users     int64 `json:"users"`
	Forms     int64 `json:"forms"`
	Processes int64 `json:"processes"`
	Questions int64 `json:"questions"`
	Answers   int64 `json:"answers"`
}

type AdminReportData struct {
	Timestamp time.Time         `json:"timestamp"`
	Totals    AdminReportTotals `json:"totals"`
	Last24h   AdminReportTotals `json:"last_24_hours"`
	LastWeek  AdminReportTotals `json:"last_week"`
	LastMonth AdminReportTotals `json:"last_month"`
}

type AdminReportResponse struct {
	Data      AdminReportData `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// QuestionSuggestion is one AI-drafted question for a builder to review.
type QuestionSuggestion struct {
	Text    string   `json:"text"`
	Type    int      `json:"type"`
	Options []string `json:"options,omitempty"`
}
