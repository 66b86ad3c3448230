package dto

type CreateRoomRequest struct {
	RoomName string `json:"roomName"`
}

type RoomResponse struct {
	RoomName string `json:"roomName"`
}
