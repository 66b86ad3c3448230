package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Times are rendered in UTC, the zone wall-clock input is parsed in.
// When a relation was not preloaded but its key is set, only the key is rendered.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:         appointment.ID,
		Patient:    PatientToResponse(appointment.Patient),
		Doctor:     DoctorToResponse(appointment.Doctor),
		Room:       RoomToResponse(appointment.Room),
		StartsAt:   appointment.StartsAt.UTC().Format(dto.AppointmentTimeLayout),
		FinishesAt: appointment.FinishesAt.UTC().Format(dto.AppointmentTimeLayout),
	}

	if response.Patient == nil && appointment.PatientID != nil {
		response.Patient = &dto.PatientResponse{ID: *appointment.PatientID}
	}
	if response.Doctor == nil && appointment.DoctorID != nil {
		response.Doctor = &dto.DoctorResponse{ID: *appointment.DoctorID}
	}
	if response.Room == nil && appointment.RoomName != nil {
		response.Room = &dto.RoomResponse{RoomName: *appointment.RoomName}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
