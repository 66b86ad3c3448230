package repository

import (
	"testing"
	"time"

	"hospital-scheduling/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentRepository(t *testing.T) {
	db, dbMock := newMockDB(t)
	repo := NewAppointmentRepository()

	start := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	finish := start.Add(time.Hour)
	columns := []string{"id", "patient_id", "doctor_id", "room_name", "starts_at", "finishes_at"}

	t.Run("find all without references", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT \* FROM "appointments" ORDER BY starts_at ASC, id ASC`).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(1, nil, nil, nil, start, finish))

		appointments, err := repo.FindAll(testContext(t), db)
		require.NoError(t, err)
		require.Len(t, appointments, 1)
		assert.True(t, appointments[0].StartsAt.Equal(start))
		assert.Nil(t, appointments[0].Doctor)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("save", func(t *testing.T) {
		dbMock.ExpectQuery(`INSERT INTO "appointments"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		appointment := &entity.Appointment{StartsAt: start, FinishesAt: finish}
		require.NoError(t, repo.Save(testContext(t), db, appointment))
		assert.Equal(t, int64(5), appointment.ID)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("exists by id", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT count\(\*\) FROM "appointments" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByID(testContext(t), db, 99)
		require.NoError(t, err)
		assert.False(t, exists)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("count", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT count\(\*\) FROM "appointments"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.Count(testContext(t), db)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("delete by id", func(t *testing.T) {
		dbMock.ExpectExec(`DELETE FROM "appointments" WHERE id = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteByID(testContext(t), db, 5))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("delete all", func(t *testing.T) {
		dbMock.ExpectExec(`DELETE FROM "appointments"`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.DeleteAll(testContext(t), db))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}
