package entity

import "time"

// Appointment books a time span for a patient, a doctor and a room.
// The span is half-open: [StartsAt, FinishesAt).
type Appointment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	PatientID  *int64    `gorm:"index"`
	DoctorID   *int64    `gorm:"index"`
	RoomName   *string   `gorm:"column:room_name;type:varchar(100);index"`
	StartsAt   time.Time `gorm:"not null;index"`
	FinishesAt time.Time `gorm:"not null"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID"`
	Room    *Room    `gorm:"foreignKey:RoomName;references:RoomName"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// HasValidInterval checks that the appointment starts strictly before it finishes
func (a *Appointment) HasValidInterval() bool {
	return a.StartsAt.Before(a.FinishesAt)
}

// Overlaps reports whether the two time spans intersect.
// Touching spans (one finishes exactly when the other starts) do not overlap.
func (a *Appointment) Overlaps(other *Appointment) bool {
	return a.StartsAt.Before(other.FinishesAt) && other.StartsAt.Before(a.FinishesAt)
}

// FirstOverlap returns the first appointment in the list that overlaps a, or nil
func (a *Appointment) FirstOverlap(appointments []Appointment) *Appointment {
	for i := range appointments {
		if appointments[i].Overlaps(a) {
			return &appointments[i]
		}
	}
	return nil
}
