package sqlxrepos

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/portal/core/student"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock.New()")
	db := sqlx.NewDb(mockDB, "postgres")
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestStudentRepository_CheckEmailUniqueness(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)
	query := regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM student WHERE email = $1)")

	mock.ExpectQuery(query).WithArgs("hero@test.cd").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	assert.NoError(t, repo.CheckEmailUniqueness(context.Background(), "hero@test.cd"))

	mock.ExpectQuery(query).WithArgs("hero@test.cd").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	assert.Equal(t, student.ErrEmailExists, repo.CheckEmailUniqueness(context.Background(), "hero@test.cd"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_CreateStudent(t *testing.T) {
	std := student.Student{
		Email:        "hero@test.cd",
		PasswordHash: []byte("$2a$10$lolcat"),
		CreatedAt:    time.Now().UTC(),
	}
	insertStudent := regexp.QuoteMeta(
		"INSERT INTO student (email, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id")

	t.Run("student and demo rows land in one tx", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewStudentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(insertStudent).
			WithArgs(std.Email, std.PasswordHash, std.CreatedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectExec("INSERT INTO timetable_entry").WithArgs(7, 1).
			WillReturnResult(sqlmock.NewResult(0, 8))
		mock.ExpectExec("INSERT INTO grade_record").WithArgs(7, 1).
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec("INSERT INTO calendar_event").WithArgs(7, 1).
			WillReturnResult(sqlmock.NewResult(0, 8))
		mock.ExpectCommit()

		got, err := repo.CreateStudent(context.Background(), std, 1)
		require.NoError(t, err)
		assert.Equal(t, 7, got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewStudentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(insertStudent).
			WithArgs(std.Email, std.PasswordHash, std.CreatedAt).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "student_email_key"})
		mock.ExpectRollback()

		_, err := repo.CreateStudent(context.Background(), std, 1)
		assert.Equal(t, student.ErrEmailExists, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed demo copy rolls the student back too", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewStudentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(insertStudent).
			WithArgs(std.Email, std.PasswordHash, std.CreatedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectExec("INSERT INTO timetable_entry").WithArgs(7, 1).
			WillReturnError(&pq.Error{Code: "57014"})
		mock.ExpectRollback()

		_, err := repo.CreateStudent(context.Background(), std, 1)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStudentRepository_GetStudentByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)
	query := regexp.QuoteMeta(
		"SELECT id, email, password_hash, created_at, last_login FROM student WHERE email = $1")
	columns := []string{"id", "email", "password_hash", "created_at", "last_login"}

	createdAt := time.Now().UTC()
	mock.ExpectQuery(query).WithArgs("hero@test.cd").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(7, "hero@test.cd", []byte("$2a$10$lolcat"), createdAt, time.Time{}))

	std, err := repo.GetStudentByEmail(context.Background(), "hero@test.cd")
	require.NoError(t, err)
	assert.Equal(t, 7, std.ID)
	assert.Equal(t, "hero@test.cd", std.Email)
	assert.True(t, std.LastLogin.IsZero())

	// no rows maps to ErrNotFound
	mock.ExpectQuery(query).WithArgs("ghost@test.cd").
		WillReturnRows(sqlmock.NewRows(columns))
	_, err = repo.GetStudentByEmail(context.Background(), "ghost@test.cd")
	assert.Equal(t, student.ErrNotFound, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_SetLastLogin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	std := student.Student{ID: 7, LastLogin: time.Now().UTC()}
	mock.ExpectExec(regexp.QuoteMeta("UPDATE student SET last_login = $1 WHERE id = $2")).
		WithArgs(std.LastLogin, std.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.SetLastLogin(context.Background(), std)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	std := student.Student{ID: 7, PasswordHash: []byte("$2a$10$n3wpwd")}
	mock.ExpectExec(regexp.QuoteMeta("UPDATE student SET password_hash = $1 WHERE id = $2")).
		WithArgs(std.PasswordHash, std.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.UpdatePassword(context.Background(), std)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
