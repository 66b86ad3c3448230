package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

func RoomToResponse(room *entity.Room) *dto.RoomResponse {
	if room == nil {
		return nil
	}
	return &dto.RoomResponse{RoomName: room.RoomName}
}

func RoomsToResponses(rooms []entity.Room) []dto.RoomResponse {
	responses := make([]dto.RoomResponse, len(rooms))
	for i, room := range rooms {
		responses[i] = dto.RoomResponse{RoomName: room.RoomName}
	}
	return responses
}
