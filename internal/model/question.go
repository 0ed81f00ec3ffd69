package model

import (
	"time"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// QuestionType is a tagged variant over the three supported question kinds.
// Each variant carries its own payload validation so type dispatch never
// leaks integer comparisons into the services.
type QuestionType int

const (
	QuestionText         QuestionType = 1
	QuestionCheckbox     QuestionType = 2
	QuestionSingleChoice QuestionType = 3
)

func (t QuestionType) String() string {
	switch t {
	case QuestionText:
		return "text"
	case QuestionCheckbox:
		return "checkbox"
	case QuestionSingleChoice:
		return "single_choice"
	default:
		return "unknown"
	}
}

func (t QuestionType) Valid() bool {
	return t == QuestionText || t == QuestionCheckbox || t == QuestionSingleChoice
}

// HasOptions reports whether questions of this type carry an option order.
func (t QuestionType) HasOptions() bool {
	return t == QuestionCheckbox || t == QuestionSingleChoice
}

// AnswerPayload is the candidate payload of a submitted answer before it is
// checked against the owning question's type.
type AnswerPayload struct {
	Text      string
	OptionID  *uint
	SelectIDs []uint
}

// ValidatePayload enforces the exact one-of shape for the variant. Exactly
// the field belonging to the type must be populated.
func (t QuestionType) ValidatePayload(p AnswerPayload) error {
	switch t {
	case QuestionText:
		if p.OptionID != nil || len(p.SelectIDs) > 0 {
			return apperr.New(apperr.KindShapeMismatch, "Text question does not accept options.")
		}
		if p.Text == "" {
			return apperr.New(apperr.KindShapeMismatch, "Text field must be filled for text question.")
		}
	case QuestionCheckbox:
		if p.Text != "" || p.OptionID != nil {
			return apperr.New(apperr.KindShapeMismatch, "Checkbox question accepts selected options only.")
		}
		if len(p.SelectIDs) == 0 {
			return apperr.New(apperr.KindShapeMismatch, "At least one option must be selected for checkbox question.")
		}
	case QuestionSingleChoice:
		if p.Text != "" || len(p.SelectIDs) > 0 {
			return apperr.New(apperr.KindShapeMismatch, "Single choice question accepts a single option only.")
		}
		if p.OptionID == nil {
			return apperr.New(apperr.KindShapeMismatch, "An option must be selected for single choice question.")
		}
	default:
		return apperr.New(apperr.KindInvalidState, "Question has an unknown type.")
	}
	return nil
}

// Question belongs to whichever processes list it in their order. For
// checkbox and single choice questions Order holds Option IDs; the position
// of an option in this list is the position reports tally against.
type Question struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Text      string         `json:"text" gorm:"type:text;not null"`
	Type      QuestionType   `json:"type" gorm:"not null"`
	Required  bool           `json:"required" gorm:"default:false"`
	Order     pq.Int64Array  `json:"order" gorm:"type:bigint[]"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OptionPosition returns the position of optionID inside the question's
// declared option order, or -1 when the option is not part of it.
func (q *Question) OptionPosition(optionID uint) int {
	for i, id := range q.Order {
		if uint(id) == optionID {
			return i
		}
	}
	return -1
}
