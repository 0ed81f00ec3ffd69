package model

import (
	"time"
)

// FormView records that a user has seen a form. Insert-if-absent on the
// composite unique index keeps concurrent duplicate calls idempotent.
type FormView struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_form_views_user_form"`
	FormID    uint      `json:"form_id" gorm:"not null;uniqueIndex:idx_form_views_user_form;index"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestionView records that a user has seen a question.
type QuestionView struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_question_views_user_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_question_views_user_question;index"`
	CreatedAt  time.Time `json:"created_at"`
}
