package usecase_test

import (
	"context"
	"io"
	"testing"

	"hospital-scheduling/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, dbMock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	args := m.Called(ctx, db)
	doctors, _ := args.Get(0).([]entity.Doctor)
	return doctors, args.Error(1)
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error) {
	args := m.Called(ctx, db, id)
	doctor, _ := args.Get(0).(*entity.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorRepository) Save(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return m.Called(ctx, db, doctor).Error(0)
}

func (m *MockDoctorRepository) DeleteByID(ctx context.Context, db *gorm.DB, id int64) error {
	return m.Called(ctx, db, id).Error(0)
}

func (m *MockDoctorRepository) ExistsByID(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	args := m.Called(ctx, db, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDoctorRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(int64), args.Error(1)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	args := m.Called(ctx, db)
	patients, _ := args.Get(0).([]entity.Patient)
	return patients, args.Error(1)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error) {
	args := m.Called(ctx, db, id)
	patient, _ := args.Get(0).(*entity.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientRepository) Save(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return m.Called(ctx, db, patient).Error(0)
}

func (m *MockPatientRepository) DeleteByID(ctx context.Context, db *gorm.DB, id int64) error {
	return m.Called(ctx, db, id).Error(0)
}

func (m *MockPatientRepository) ExistsByID(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	args := m.Called(ctx, db, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPatientRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(int64), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Room, error) {
	args := m.Called(ctx, db)
	rooms, _ := args.Get(0).([]entity.Room)
	return rooms, args.Error(1)
}

func (m *MockRoomRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Room, error) {
	args := m.Called(ctx, db, name)
	room, _ := args.Get(0).(*entity.Room)
	return room, args.Error(1)
}

func (m *MockRoomRepository) Save(ctx context.Context, db *gorm.DB, room *entity.Room) error {
	return m.Called(ctx, db, room).Error(0)
}

func (m *MockRoomRepository) DeleteByName(ctx context.Context, db *gorm.DB, name string) error {
	return m.Called(ctx, db, name).Error(0)
}

func (m *MockRoomRepository) ExistsByName(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	args := m.Called(ctx, db, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(int64), args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Appointment, error) {
	args := m.Called(ctx, db)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Appointment, error) {
	args := m.Called(ctx, db, id)
	appointment, _ := args.Get(0).(*entity.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentRepository) Save(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return m.Called(ctx, db, appointment).Error(0)
}

func (m *MockAppointmentRepository) DeleteByID(ctx context.Context, db *gorm.DB, id int64) error {
	return m.Called(ctx, db, id).Error(0)
}

func (m *MockAppointmentRepository) ExistsByID(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	args := m.Called(ctx, db, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) DeleteAll(ctx context.Context, db *gorm.DB) error {
	return m.Called(ctx, db).Error(0)
}

// stubLock hands out the lock unless err is set
type stubLock struct {
	err      error
	acquired int
	released int
}

func (l *stubLock) Acquire(ctx context.Context) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired++
	return func() { l.released++ }, nil
}

// testContext mirrors testing.T.Context (Go 1.24+): a context cancelled when the test ends.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
