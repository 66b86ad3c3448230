package repository

import (
	"context"

	"hospital-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

// RoomRepository is keyed by room name instead of a surrogate id
type RoomRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Room, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Room, error)
	Save(ctx context.Context, db *gorm.DB, room *entity.Room) error
	DeleteByName(ctx context.Context, db *gorm.DB, name string) error
	ExistsByName(ctx context.Context, db *gorm.DB, name string) (bool, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
