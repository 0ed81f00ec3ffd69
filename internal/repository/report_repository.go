package repository

import (
	"github.com/Sadeghizad/Form-creator/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository interface {
	FindByForm(formID uint) (*model.Report, error)
	// Save upserts the per-form report row on its unique form_id.
	Save(report *model.Report) error
	CreateAdminReport(report *model.AdminReport) error
	LatestAdminReport() (*model.AdminReport, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) FindByForm(formID uint) (*model.Report, error) {
	var report model.Report
	if err := r.db.Where("form_id = ?", formID).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Save(report *model.Report) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "form_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cursor", "data", "updated_at"}),
	}).Create(report).Error
}

func (r *reportRepository) CreateAdminReport(report *model.AdminReport) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) LatestAdminReport() (*model.AdminReport, error) {
	var report model.AdminReport
	if err := r.db.Order("created_at DESC").First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}
