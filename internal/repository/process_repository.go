package repository

import (
	"time"

	"github.com/Sadeghizad/Form-creator/internal/model"
	"gorm.io/gorm"
)

type ProcessRepository interface {
	Create(process *model.Process) error
	FindByID(id uint) (*model.Process, error)
	// FindByIDs returns the processes that still exist among ids; callers
	// resolve order positions themselves and skip the missing ones.
	FindByIDs(ids []uint) ([]model.Process, error)
	FindByUser(userID uint) ([]model.Process, error)
	Update(process *model.Process) error
	Delete(id uint) error
	Count() (int64, error)
	CountCreatedSince(t time.Time) (int64, error)
}

type processRepository struct {
	db *gorm.DB
}

func NewProcessRepository(db *gorm.DB) ProcessRepository {
	return &processRepository{db: db}
}

func (r *processRepository) Create(process *model.Process) error {
	return r.db.Create(process).Error
}

func (r *processRepository) FindByID(id uint) (*model.Process, error) {
	var process model.Process
	if err := r.db.First(&process, id).Error; err != nil {
		return nil, err
	}
	return &process, nil
}

func (r *processRepository) FindByIDs(ids []uint) ([]model.Process, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var processes []model.Process
	if err := r.db.Where("id IN ?", ids).Find(&processes).Error; err != nil {
		return nil, err
	}
	return processes, nil
}

func (r *processRepository) FindByUser(userID uint) ([]model.Process, error) {
	var processes []model.Process
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&processes).Error; err != nil {
		return nil, err
	}
	return processes, nil
}

func (r *processRepository) Update(process *model.Process) error {
	return r.db.Save(process).Error
}

func (r *processRepository) Delete(id uint) error {
	return r.db.Delete(&model.Process{}, id).Error
}

func (r *processRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Process{}).Count(&n).Error
	return n, err
}

func (r *processRepository) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&model.Process{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}
