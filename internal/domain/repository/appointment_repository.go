package repository

import (
	"context"

	"hospital-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Appointment, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Appointment, error)
	Save(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	DeleteByID(ctx context.Context, db *gorm.DB, id int64) error
	ExistsByID(ctx context.Context, db *gorm.DB, id int64) (bool, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	DeleteAll(ctx context.Context, db *gorm.DB) error
}
