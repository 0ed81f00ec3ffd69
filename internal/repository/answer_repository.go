package repository

import (
	"time"

	"github.com/Sadeghizad/Form-creator/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	// Upsert inserts the answer or, when a row for the same
	// (user, question, form) already exists, replaces its payload in
	// place. The conflict is resolved atomically at the database so two
	// concurrent submissions end up with exactly one row, last write
	// winning. Checkbox selections are replaced, not merged.
	Upsert(answer *model.Answer) error
	FindByUserQuestionForm(userID, questionID, formID uint) (*model.Answer, error)
	FindByUserAndQuestion(userID, questionID uint) ([]model.Answer, error)
	// AnsweredQuestionIDs returns the set of question IDs the user has
	// answered within the form.
	AnsweredQuestionIDs(userID, formID uint) (map[uint]struct{}, error)
	// FindByFormSince returns up to limit answers of the form with ID
	// strictly greater than cursor, in ascending ID order, with the
	// owning question and the checkbox selections loaded.
	FindByFormSince(formID, cursor uint, limit int) ([]model.Answer, error)
	Count() (int64, error)
	CountCreatedSince(t time.Time) (int64, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Upsert(answer *model.Answer) error {
	selections := answer.Select
	answer.Select = nil

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}, {Name: "form_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"text", "option_id", "updated_at",
			}),
		}).Create(answer).Error; err != nil {
			return err
		}

		// The RETURNING clause populated answer.ID with the surviving
		// row, so the association replace targets the right answer on
		// both the insert and the conflict path.
		if err := tx.Model(answer).Association("Select").Replace(&selections); err != nil {
			return err
		}
		answer.Select = selections
		return nil
	})
}

func (r *answerRepository) FindByUserQuestionForm(userID, questionID, formID uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.
		Preload("Select").
		Where("user_id = ? AND question_id = ? AND form_id = ?", userID, questionID, formID).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByUserAndQuestion(userID, questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Preload("Select").
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) AnsweredQuestionIDs(userID, formID uint) (map[uint]struct{}, error) {
	var ids []uint
	err := r.db.Model(&model.Answer{}).
		Where("user_id = ? AND form_id = ?", userID, formID).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *answerRepository) FindByFormSince(formID, cursor uint, limit int) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Preload("Question").
		Preload("Select").
		Where("form_id = ? AND id > ?", formID, cursor).
		Order("id ASC").
		Limit(limit).
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Answer{}).Count(&n).Error
	return n, err
}

func (r *answerRepository) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&model.Answer{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}
