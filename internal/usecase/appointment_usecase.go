package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"
	"hospital-scheduling/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound          = errors.New("appointment not found")
	ErrNoAppointments               = errors.New("no appointments to delete")
	ErrInvalidTimeFormat            = errors.New("invalid time format, use HH:MM DD/MM/YYYY")
	ErrInvalidAppointmentInterval   = errors.New("appointment must start before it finishes")
	ErrAppointmentReferenceNotFound = errors.New("referenced patient, doctor or room does not exist")
	ErrAppointmentOverlap           = errors.New("appointment overlaps an existing appointment")
	ErrAppointmentStoreBusy         = errors.New("appointment store is busy, try again")
)

type AppointmentUsecase interface {
	GetAllAppointments(ctx context.Context) ([]dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, appointmentID int64) (*dto.AppointmentResponse, error)
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) ([]dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, appointmentID int64) error
	DeleteAllAppointments(ctx context.Context) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	roomRepo        repository.RoomRepository
	lock            service.AppointmentLock
	writeTimeout    time.Duration
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	roomRepo repository.RoomRepository,
	lock service.AppointmentLock,
	writeTimeout time.Duration,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		roomRepo:        roomRepo,
		lock:            lock,
		writeTimeout:    writeTimeout,
	}
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID int64) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// CreateAppointment stores the appointment when it overlaps no stored one and
// returns every appointment ordered by start time.
// The overlap scan and the insert run under the write lock and in one transaction.
// The transaction is cancelled after writeTimeout so it never outlives the lock.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) ([]dto.AppointmentResponse, error) {
	startsAt, err := ParseAppointmentTime(req.StartsAt)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	finishesAt, err := ParseAppointmentTime(req.FinishesAt)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	appointment := &entity.Appointment{
		PatientID:  req.PatientID,
		DoctorID:   req.DoctorID,
		RoomName:   req.RoomName,
		StartsAt:   startsAt,
		FinishesAt: finishesAt,
	}
	if !appointment.HasValidInterval() {
		return nil, ErrInvalidAppointmentInterval
	}

	release, err := u.lock.Acquire(ctx)
	if err != nil {
		if errors.Is(err, service.ErrLockTimeout) {
			u.log.Warnf("Appointment write lock busy: %+v", err)
			return nil, ErrAppointmentStoreBusy
		}
		return nil, err
	}
	defer release()

	writeCtx := ctx
	if u.writeTimeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(ctx, u.writeTimeout)
		defer cancel()
	}

	tx := u.db.WithContext(writeCtx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin appointment transaction: %+v", tx.Error)
		return nil, tx.Error
	}
	defer tx.Rollback()

	if err := u.checkReferences(writeCtx, tx, appointment); err != nil {
		return nil, err
	}

	existing, err := u.appointmentRepo.FindAll(writeCtx, tx)
	if err != nil {
		u.log.Warnf("Failed to load appointments for overlap check: %+v", err)
		return nil, err
	}
	if conflict := appointment.FirstOverlap(existing); conflict != nil {
		u.log.Infof("Appointment rejected, overlaps appointment %d", conflict.ID)
		return nil, ErrAppointmentOverlap
	}

	if err := u.appointmentRepo.Save(writeCtx, tx, appointment); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrAppointmentReferenceNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%d", appointment.ID)

	appointments, err := u.appointmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) checkReferences(ctx context.Context, tx *gorm.DB, appointment *entity.Appointment) error {
	if appointment.PatientID != nil {
		exists, err := u.patientRepo.ExistsByID(ctx, tx, *appointment.PatientID)
		if err != nil {
			u.log.Warnf("Failed to check patient %d: %+v", *appointment.PatientID, err)
			return err
		}
		if !exists {
			return ErrAppointmentReferenceNotFound
		}
	}

	if appointment.DoctorID != nil {
		exists, err := u.doctorRepo.ExistsByID(ctx, tx, *appointment.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to check doctor %d: %+v", *appointment.DoctorID, err)
			return err
		}
		if !exists {
			return ErrAppointmentReferenceNotFound
		}
	}

	if appointment.RoomName != nil {
		exists, err := u.roomRepo.ExistsByName(ctx, tx, *appointment.RoomName)
		if err != nil {
			u.log.Warnf("Failed to check room %q: %+v", *appointment.RoomName, err)
			return err
		}
		if !exists {
			return ErrAppointmentReferenceNotFound
		}
	}

	return nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	exists, err := u.appointmentRepo.ExistsByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to check appointment %d: %+v", appointmentID, err)
		return err
	}
	if !exists {
		return ErrAppointmentNotFound
	}

	if err := u.appointmentRepo.DeleteByID(ctx, u.db, appointmentID); err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", appointmentID, err)
		return err
	}

	u.log.Infof("Appointment deleted: id=%d", appointmentID)
	return nil
}

func (u *appointmentUsecase) DeleteAllAppointments(ctx context.Context) error {
	count, err := u.appointmentRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return err
	}
	if count == 0 {
		return ErrNoAppointments
	}

	if err := u.appointmentRepo.DeleteAll(ctx, u.db); err != nil {
		u.log.Warnf("Failed to delete all appointments: %+v", err)
		return err
	}

	u.log.Infof("All appointments deleted: count=%d", count)
	return nil
}

// ParseAppointmentTime accepts "15:04 02/01/2006" and RFC3339.
// Wall-clock values without a zone are read as UTC.
func ParseAppointmentTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dto.AppointmentTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// isForeignKeyError checks for a postgres foreign key violation (23503)
func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
