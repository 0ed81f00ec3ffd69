package repository

import (
	"github.com/Sadeghizad/Form-creator/internal/model"
	"gorm.io/gorm"
)

type OptionRepository interface {
	Create(option *model.Option) error
	FindByID(id uint) (*model.Option, error)
	FindByIDs(ids []uint) ([]model.Option, error)
	FindByUser(userID uint) ([]model.Option, error)
	Update(option *model.Option) error
	Delete(id uint) error
}

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

func (r *optionRepository) Create(option *model.Option) error {
	return r.db.Create(option).Error
}

func (r *optionRepository) FindByID(id uint) (*model.Option, error) {
	var option model.Option
	if err := r.db.First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *optionRepository) FindByIDs(ids []uint) ([]model.Option, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var options []model.Option
	if err := r.db.Where("id IN ?", ids).Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *optionRepository) FindByUser(userID uint) ([]model.Option, error) {
	var options []model.Option
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *optionRepository) Update(option *model.Option) error {
	return r.db.Save(option).Error
}

func (r *optionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Option{}, id).Error
}
