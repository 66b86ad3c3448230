package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"
	"hospital-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
	validator   *validator.CustomValidator
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase, validator *validator.CustomValidator) *RoomHandler {
	return &RoomHandler{
		roomUsecase: roomUsecase,
		validator:   validator,
	}
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	room, err := h.roomUsecase.CreateRoom(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create room")
		return
	}

	response.JSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomUsecase.GetRoom(r.Context(), mux.Vars(r)["roomName"])
	if err != nil {
		if errors.Is(err, usecase.ErrRoomNotFound) {
			response.NotFound(w, "Room not found")
			return
		}
		response.InternalServerError(w, "Failed to get room")
		return
	}

	response.JSON(w, http.StatusOK, room)
}

func (h *RoomHandler) GetAllRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomUsecase.GetAllRooms(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get rooms")
		return
	}

	if len(rooms) == 0 {
		response.NoContent(w)
		return
	}

	response.JSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.roomUsecase.DeleteRoom(r.Context(), mux.Vars(r)["roomName"]); err != nil {
		if errors.Is(err, usecase.ErrRoomNotFound) {
			response.NotFound(w, "Room not found")
			return
		}
		response.InternalServerError(w, "Failed to delete room")
		return
	}

	response.OK(w)
}
