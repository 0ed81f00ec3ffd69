package repository

import (
	"time"

	"github.com/Sadeghizad/Form-creator/internal/model"
	"gorm.io/gorm"
)

type FormRepository interface {
	Create(form *model.Form) error
	FindByID(id uint) (*model.Form, error)
	FindAll() ([]model.Form, error)
	FindByUser(userID uint) ([]model.Form, error)
	Update(form *model.Form) error
	Delete(id uint) error
	Count() (int64, error)
	CountCreatedSince(t time.Time) (int64, error)
}

type formRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) Create(form *model.Form) error {
	return r.db.Create(form).Error
}

func (r *formRepository) FindByID(id uint) (*model.Form, error) {
	var form model.Form
	if err := r.db.First(&form, id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) FindAll() ([]model.Form, error) {
	var forms []model.Form
	if err := r.db.Order("created_at desc").Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepository) FindByUser(userID uint) ([]model.Form, error) {
	var forms []model.Form
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepository) Update(form *model.Form) error {
	return r.db.Save(form).Error
}

func (r *formRepository) Delete(id uint) error {
	return r.db.Delete(&model.Form{}, id).Error
}

func (r *formRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Form{}).Count(&n).Error
	return n, err
}

func (r *formRepository) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&model.Form{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}
