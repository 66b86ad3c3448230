package repository

import (
	"context"

	"hospital-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error)
	Save(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	DeleteByID(ctx context.Context, db *gorm.DB, id int64) error
	ExistsByID(ctx context.Context, db *gorm.DB, id int64) (bool, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
