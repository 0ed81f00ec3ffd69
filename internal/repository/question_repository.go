package repository

import (
	"time"

	"github.com/Sadeghizad/Form-creator/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	FindByUser(userID uint) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
	Count() (int64, error)
	CountCreatedSince(t time.Time) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []model.Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByUser(userID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}

func (r *questionRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Question{}).Count(&n).Error
	return n, err
}

func (r *questionRepository) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&model.Question{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}
