package dto

// AppointmentTimeLayout is the wire format of appointment timestamps
const AppointmentTimeLayout = "15:04 02/01/2006"

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID  *int64  `json:"patientId" validate:"omitempty,gt=0"`
	DoctorID   *int64  `json:"doctorId" validate:"omitempty,gt=0"`
	RoomName   *string `json:"roomName" validate:"omitempty,min=1"`
	StartsAt   string  `json:"startsAt" validate:"required"`   // Format: HH:MM DD/MM/YYYY or RFC3339
	FinishesAt string  `json:"finishesAt" validate:"required"` // Format: HH:MM DD/MM/YYYY or RFC3339
}

// Response DTOs

type AppointmentResponse struct {
	ID         int64            `json:"id"`
	Patient    *PatientResponse `json:"patient,omitempty"`
	Doctor     *DoctorResponse  `json:"doctor,omitempty"`
	Room       *RoomResponse    `json:"room,omitempty"`
	StartsAt   string           `json:"startsAt"`
	FinishesAt string           `json:"finishesAt"`
}
