package usecase

import (
	"context"
	"errors"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound = errors.New("room not found")
)

type RoomUsecase interface {
	GetAllRooms(ctx context.Context) ([]dto.RoomResponse, error)
	GetRoom(ctx context.Context, roomName string) (*dto.RoomResponse, error)
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, roomName string) error
}

type roomUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	roomRepo repository.RoomRepository
}

func NewRoomUsecase(db *gorm.DB, log *logrus.Logger, roomRepo repository.RoomRepository) RoomUsecase {
	return &roomUsecase{
		db:       db,
		log:      log,
		roomRepo: roomRepo,
	}
}

func (u *roomUsecase) GetAllRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := u.roomRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all rooms: %+v", err)
		return nil, err
	}

	return converter.RoomsToResponses(rooms), nil
}

func (u *roomUsecase) GetRoom(ctx context.Context, roomName string) (*dto.RoomResponse, error) {
	room, err := u.roomRepo.FindByName(ctx, u.db, roomName)
	if err != nil {
		u.log.Warnf("Failed to find room %q: %+v", roomName, err)
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	return converter.RoomToResponse(room), nil
}

// CreateRoom stores the room under its name. An existing room with the same
// name is left untouched and the request still succeeds.
func (u *roomUsecase) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	room := &entity.Room{RoomName: req.RoomName}

	if err := u.roomRepo.Save(ctx, u.db, room); err != nil {
		u.log.Warnf("Failed to create room %q: %+v", req.RoomName, err)
		return nil, err
	}

	u.log.Infof("Room saved: name=%q", room.RoomName)
	return converter.RoomToResponse(room), nil
}

func (u *roomUsecase) DeleteRoom(ctx context.Context, roomName string) error {
	exists, err := u.roomRepo.ExistsByName(ctx, u.db, roomName)
	if err != nil {
		u.log.Warnf("Failed to check room %q: %+v", roomName, err)
		return err
	}
	if !exists {
		return ErrRoomNotFound
	}

	if err := u.roomRepo.DeleteByName(ctx, u.db, roomName); err != nil {
		u.log.Warnf("Failed to delete room %q: %+v", roomName, err)
		return err
	}

	u.log.Infof("Room deleted: name=%q", roomName)
	return nil
}
