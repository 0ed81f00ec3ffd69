package model

import (
	"time"
)

// Answer is a fact record: one row per (user, question, form), enforced by
// the composite unique index so concurrent submissions collapse into an
// upsert at the storage layer. Exactly one payload field is populated,
// matching the owning question's type. No soft delete; resubmission
// replaces the payload in place.
type Answer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_answers_user_question_form"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_user_question_form"`
	FormID     uint      `json:"form_id" gorm:"not null;uniqueIndex:idx_answers_user_question_form;index"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	OptionID   *uint     `json:"option_id,omitempty"`
	Option     *Option   `json:"option,omitempty" gorm:"foreignKey:OptionID;constraint:OnDelete:SET NULL"`
	Select     []Option  `json:"select,omitempty" gorm:"many2many:answer_selections"`
	Text       string    `json:"text,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SelectedOptionIDs returns the option IDs this answer points at, for both
// the single choice and checkbox shapes.
func (a *Answer) SelectedOptionIDs() []uint {
	if a.OptionID != nil {
		return []uint{*a.OptionID}
	}
	ids := make([]uint, 0, len(a.Select))
	for _, opt := range a.Select {
		ids = append(ids, opt.ID)
	}
	return ids
}
