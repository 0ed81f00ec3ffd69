package repository

import (
	"time"

	"github.com/Sadeghizad/Form-creator/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(id uint) (*model.User, error)
	Count() (int64, error)
	CountCreatedSince(t time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.User{}).Count(&n).Error
	return n, err
}

func (r *userRepository) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&model.User{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}
