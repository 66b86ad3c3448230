package repository

import (
	"context"
	"errors"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roomRepository struct{}

func NewRoomRepository() domainRepo.RoomRepository {
	return &roomRepository{}
}

func (r *roomRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Room, error) {
	var rooms []entity.Room
	err := db.WithContext(ctx).Order("room_name ASC").Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Room, error) {
	var room entity.Room
	err := db.WithContext(ctx).Where("room_name = ?", name).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// Save inserts the room. Saving a name that already exists leaves the row as is.
func (r *roomRepository) Save(ctx context.Context, db *gorm.DB, room *entity.Room) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(room).Error
}

func (r *roomRepository) DeleteByName(ctx context.Context, db *gorm.DB, name string) error {
	return db.WithContext(ctx).Where("room_name = ?", name).Delete(&entity.Room{}).Error
}

func (r *roomRepository) ExistsByName(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Room{}).Where("room_name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *roomRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Room{}).Count(&count).Error
	return count, err
}
