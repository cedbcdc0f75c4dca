package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core/student"
)

// pq error code for unique_violation
const pqUniqueViolation = "23505"

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CheckEmailUniqueness(ctx context.Context, email string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM student WHERE email = $1)", email)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return student.ErrEmailExists
	}
	return nil
}

// CreateStudent inserts the student row and copies the template student's
// demo rows to the new id. The whole sequence runs in one transaction:
// nothing is visible unless every insert succeeds.
func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student, templateID int) (student.Student, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "beginning registration tx")
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowxContext(ctx,
		"INSERT INTO student (email, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id",
		std.Email, std.PasswordHash, std.CreatedAt,
	).Scan(&std.ID)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return student.Student{}, student.ErrEmailExists
		}
		return student.Student{}, errors.Wrap(err, "inserting student")
	}

	copies := []struct {
		name  string
		query string
	}{
		{"timetable", `INSERT INTO timetable_entry (student_id, day, module, time_slot, room, status)
			SELECT $1, day, module, time_slot, room, status FROM timetable_entry WHERE student_id = $2 ORDER BY id`},
		{"grades", `INSERT INTO grade_record (student_id, module, grade)
			SELECT $1, module, grade FROM grade_record WHERE student_id = $2 ORDER BY id`},
		{"calendar", `INSERT INTO calendar_event (student_id, title, description, event_date, status, priority)
			SELECT $1, title, description, event_date, status, priority FROM calendar_event WHERE student_id = $2 ORDER BY id`},
	}
	for _, cp := range copies {
		if _, err = tx.ExecContext(ctx, cp.query, std.ID, templateID); err != nil {
			return student.Student{}, errors.Wrapf(err, "seeding %s from template student %d", cp.name, templateID)
		}
	}

	if err = tx.Commit(); err != nil {
		return student.Student{}, errors.Wrap(err, "committing registration tx")
	}
	return std, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	var std student.Student
	err := repo.db.GetContext(ctx, &std,
		"SELECT id, email, password_hash, created_at, last_login FROM student WHERE id = $1", id)
	if err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by ID")
	}
	return std, nil
}

func (repo studentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	var std student.Student
	err := repo.db.GetContext(ctx, &std,
		"SELECT id, email, password_hash, created_at, last_login FROM student WHERE email = $1", email)
	if err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by email")
	}
	return std, nil
}

func (repo studentRepository) UpdatePassword(ctx context.Context, std student.Student) (student.Student, error) {
	if _, err := repo.db.ExecContext(ctx,
		"UPDATE student SET password_hash = $1 WHERE id = $2", std.PasswordHash, std.ID); err != nil {
		return student.Student{}, errors.Wrap(err, "updating password")
	}
	return std, nil
}

func (repo studentRepository) SetLastLogin(ctx context.Context, std student.Student) (student.Student, error) {
	if _, err := repo.db.ExecContext(ctx,
		"UPDATE student SET last_login = $1 WHERE id = $2", std.LastLogin, std.ID); err != nil {
		return student.Student{}, errors.Wrap(err, "updating last login")
	}
	return std, nil
}
