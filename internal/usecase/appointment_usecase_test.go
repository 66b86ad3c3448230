package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/internal/usecase"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type appointmentFixture struct {
	db              *gorm.DB
	dbMock          sqlmock.Sqlmock
	appointmentRepo *MockAppointmentRepository
	doctorRepo      *MockDoctorRepository
	patientRepo     *MockPatientRepository
	roomRepo        *MockRoomRepository
	lock            *stubLock
	usecase         usecase.AppointmentUsecase
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	db, dbMock := newMockDB(t)
	f := &appointmentFixture{
		db:              db,
		dbMock:          dbMock,
		appointmentRepo: new(MockAppointmentRepository),
		doctorRepo:      new(MockDoctorRepository),
		patientRepo:     new(MockPatientRepository),
		roomRepo:        new(MockRoomRepository),
		lock:            &stubLock{},
	}
	f.usecase = usecase.NewAppointmentUsecase(db, newTestLogger(), f.appointmentRepo, f.doctorRepo, f.patientRepo, f.roomRepo, f.lock, time.Second)
	return f
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestParseAppointmentTime(t *testing.T) {
	got, err := usecase.ParseAppointmentTime("10:30 10/03/2024")
	require.NoError(t, err)
	assert.Equal(t, at(10, 30), got)

	got, err = usecase.ParseAppointmentTime("2024-03-10T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, at(10, 30).Equal(got))

	_, err = usecase.ParseAppointmentTime("tomorrow")
	assert.Error(t, err)
}

func TestCreateAppointment(t *testing.T) {
	stored := entity.Appointment{ID: 1, StartsAt: at(10, 0), FinishesAt: at(11, 0)}

	t.Run("adjacent appointment is accepted", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectCommit()

		f.appointmentRepo.On("FindAll", mock.Anything, mock.Anything).Return([]entity.Appointment{stored}, nil).Once()
		f.appointmentRepo.On("Save", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.Appointment")).
			Run(func(args mock.Arguments) { args.Get(2).(*entity.Appointment).ID = 2 }).
			Return(nil)
		f.appointmentRepo.On("FindAll", mock.Anything, f.db).Return([]entity.Appointment{
			stored,
			{ID: 2, StartsAt: at(11, 0), FinishesAt: at(12, 0)},
		}, nil).Once()

		appointments, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			StartsAt:   "11:00 10/03/2024",
			FinishesAt: "12:00 10/03/2024",
		})
		require.NoError(t, err)
		require.Len(t, appointments, 2)
		assert.Equal(t, "10:00 10/03/2024", appointments[0].StartsAt)
		assert.Equal(t, "11:00 10/03/2024", appointments[1].StartsAt)
		assert.Equal(t, 1, f.lock.acquired)
		assert.Equal(t, 1, f.lock.released)
		f.appointmentRepo.AssertExpectations(t)
		require.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("overlapping appointment is rejected", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		f.appointmentRepo.On("FindAll", mock.Anything, mock.Anything).Return([]entity.Appointment{stored}, nil).Once()

		_, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			StartsAt:   "10:30 10/03/2024",
			FinishesAt: "10:45 10/03/2024",
		})
		assert.ErrorIs(t, err, usecase.ErrAppointmentOverlap)
		f.appointmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 1, f.lock.released)
		require.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("empty interval is rejected before touching the store", func(t *testing.T) {
		f := newAppointmentFixture(t)

		_, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			StartsAt:   "09:00 10/03/2024",
			FinishesAt: "09:00 10/03/2024",
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidAppointmentInterval)
		assert.Zero(t, f.lock.acquired)
		f.appointmentRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})

	t.Run("unparseable time", func(t *testing.T) {
		f := newAppointmentFixture(t)

		_, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			StartsAt:   "10/03/2024 09:00",
			FinishesAt: "10:00 10/03/2024",
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidTimeFormat)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		doctorID := int64(42)
		f.doctorRepo.On("ExistsByID", mock.Anything, mock.Anything, doctorID).Return(false, nil)

		_, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			DoctorID:   &doctorID,
			StartsAt:   "13:00 10/03/2024",
			FinishesAt: "14:00 10/03/2024",
		})
		assert.ErrorIs(t, err, usecase.ErrAppointmentReferenceNotFound)
		f.appointmentRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
		require.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("references are checked", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectCommit()

		patientID, doctorID, room := int64(1), int64(2), "A-101"
		f.patientRepo.On("ExistsByID", mock.Anything, mock.Anything, patientID).Return(true, nil)
		f.doctorRepo.On("ExistsByID", mock.Anything, mock.Anything, doctorID).Return(true, nil)
		f.roomRepo.On("ExistsByName", mock.Anything, mock.Anything, room).Return(true, nil)
		f.appointmentRepo.On("FindAll", mock.Anything, mock.Anything).Return([]entity.Appointment{}, nil).Once()
		f.appointmentRepo.On("Save", mock.Anything, mock.Anything, mock.MatchedBy(func(a *entity.Appointment) bool {
			return *a.PatientID == patientID && *a.DoctorID == doctorID && *a.RoomName == room
		})).Return(nil)
		f.appointmentRepo.On("FindAll", mock.Anything, f.db).Return([]entity.Appointment{
			{ID: 1, PatientID: &patientID, DoctorID: &doctorID, RoomName: &room, StartsAt: at(13, 0), FinishesAt: at(14, 0)},
		}, nil).Once()

		appointments, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			PatientID:  &patientID,
			DoctorID:   &doctorID,
			RoomName:   &room,
			StartsAt:   "13:00 10/03/2024",
			FinishesAt: "14:00 10/03/2024",
		})
		require.NoError(t, err)
		require.Len(t, appointments, 1)
		assert.Equal(t, room, appointments[0].Room.RoomName)
		f.patientRepo.AssertExpectations(t)
		f.doctorRepo.AssertExpectations(t)
		f.roomRepo.AssertExpectations(t)
	})

	t.Run("foreign key violation on insert", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		f.appointmentRepo.On("FindAll", mock.Anything, mock.Anything).Return([]entity.Appointment{}, nil).Once()
		f.appointmentRepo.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23503"})

		_, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			StartsAt:   "13:00 10/03/2024",
			FinishesAt: "14:00 10/03/2024",
		})
		assert.ErrorIs(t, err, usecase.ErrAppointmentReferenceNotFound)
	})

	t.Run("failed begin is returned", func(t *testing.T) {
		f := newAppointmentFixture(t)
		beginErr := errors.New("too many connections")
		f.dbMock.ExpectBegin().WillReturnError(beginErr)

		_, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			StartsAt:   "13:00 10/03/2024",
			FinishesAt: "14:00 10/03/2024",
		})
		assert.ErrorIs(t, err, beginErr)
		f.appointmentRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
		assert.Equal(t, 1, f.lock.released)
		require.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("write runs under the lock deadline", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		boundedByLock := mock.MatchedBy(func(ctx context.Context) bool {
			deadline, ok := ctx.Deadline()
			return ok && time.Until(deadline) <= time.Second
		})
		f.appointmentRepo.On("FindAll", boundedByLock, mock.Anything).Return([]entity.Appointment{stored}, nil).Once()

		_, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			StartsAt:   "10:30 10/03/2024",
			FinishesAt: "10:45 10/03/2024",
		})
		assert.ErrorIs(t, err, usecase.ErrAppointmentOverlap)
		f.appointmentRepo.AssertExpectations(t)
	})

	t.Run("lock timeout", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.lock.err = service.ErrLockTimeout

		_, err := f.usecase.CreateAppointment(testContext(t), &dto.CreateAppointmentRequest{
			StartsAt:   "13:00 10/03/2024",
			FinishesAt: "14:00 10/03/2024",
		})
		assert.ErrorIs(t, err, usecase.ErrAppointmentStoreBusy)
		require.NoError(t, f.dbMock.ExpectationsWereMet())
	})
}

func TestAppointmentQueriesAndDeletes(t *testing.T) {
	t.Run("get missing appointment", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.appointmentRepo.On("FindByID", mock.Anything, f.db, int64(7)).Return(nil, nil)

		_, err := f.usecase.GetAppointment(testContext(t), 7)
		assert.ErrorIs(t, err, usecase.ErrAppointmentNotFound)
	})

	t.Run("get appointment", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.appointmentRepo.On("FindByID", mock.Anything, f.db, int64(7)).
			Return(&entity.Appointment{ID: 7, StartsAt: at(8, 0), FinishesAt: at(8, 30)}, nil)

		appointment, err := f.usecase.GetAppointment(testContext(t), 7)
		require.NoError(t, err)
		assert.Equal(t, "08:30 10/03/2024", appointment.FinishesAt)
	})

	t.Run("delete missing appointment", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.appointmentRepo.On("ExistsByID", mock.Anything, f.db, int64(7)).Return(false, nil)

		assert.ErrorIs(t, f.usecase.DeleteAppointment(testContext(t), 7), usecase.ErrAppointmentNotFound)
	})

	t.Run("delete appointment", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.appointmentRepo.On("ExistsByID", mock.Anything, f.db, int64(7)).Return(true, nil)
		f.appointmentRepo.On("DeleteByID", mock.Anything, f.db, int64(7)).Return(nil)

		require.NoError(t, f.usecase.DeleteAppointment(testContext(t), 7))
		f.appointmentRepo.AssertExpectations(t)
	})

	t.Run("delete all on empty store", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.appointmentRepo.On("Count", mock.Anything, f.db).Return(int64(0), nil)

		assert.ErrorIs(t, f.usecase.DeleteAllAppointments(testContext(t)), usecase.ErrNoAppointments)
		f.appointmentRepo.AssertNotCalled(t, "DeleteAll", mock.Anything, mock.Anything)
	})

	t.Run("delete all", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.appointmentRepo.On("Count", mock.Anything, f.db).Return(int64(3), nil)
		f.appointmentRepo.On("DeleteAll", mock.Anything, f.db).Return(nil)

		require.NoError(t, f.usecase.DeleteAllAppointments(testContext(t)))
		f.appointmentRepo.AssertExpectations(t)
	})
}
