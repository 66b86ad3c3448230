package repository

import (
	"context"

	"hospital-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error)
	Save(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	DeleteByID(ctx context.Context, db *gorm.DB, id int64) error
	ExistsByID(ctx context.Context, db *gorm.DB, id int64) (bool, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
