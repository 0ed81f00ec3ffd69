package repository

import (
	"github.com/Sadeghizad/Form-creator/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViewRepository interface {
	// RecordFormView and RecordQuestionView are insert-if-absent: the
	// first view creates a fact row, later views are no-ops, including
	// under concurrent duplicate calls.
	RecordFormView(userID, formID uint) error
	RecordQuestionView(userID, questionID uint) error
	CountFormViews(formID uint) (int64, error)
	CountQuestionViews(questionID uint) (int64, error)
}

type viewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) ViewRepository {
	return &viewRepository{db: db}
}

func (r *viewRepository) RecordFormView(userID, formID uint) error {
	view := model.FormView{UserID: userID, FormID: formID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&view).Error
}

func (r *viewRepository) RecordQuestionView(userID, questionID uint) error {
	view := model.QuestionView{UserID: userID, QuestionID: questionID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&view).Error
}

func (r *viewRepository) CountFormViews(formID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.FormView{}).Where("form_id = ?", formID).Count(&n).Error
	return n, err
}

func (r *viewRepository) CountQuestionViews(questionID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.QuestionView{}).Where("question_id = ?", questionID).Count(&n).Error
	return n, err
}
