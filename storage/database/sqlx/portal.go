package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core/portal"
)

type portalRepository struct {
	db *sqlx.DB
}

var _ portal.Repository = (*portalRepository)(nil) // interface compliance check

func NewPortalRepository(db *sqlx.DB) *portalRepository {
	return &portalRepository{db: db}
}

func (repo portalRepository) QueryTimetable(ctx context.Context, studentID int) ([]portal.TimetableEntry, error) {
	entries := make([]portal.TimetableEntry, 0)
	err := repo.db.SelectContext(ctx, &entries,
		`SELECT id, student_id, day, module, time_slot, room, status
		 FROM timetable_entry WHERE student_id = $1 ORDER BY id`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying timetable")
	}
	return entries, nil
}

func (repo portalRepository) QueryGrades(ctx context.Context, studentID int) ([]portal.GradeRecord, error) {
	grades := make([]portal.GradeRecord, 0)
	err := repo.db.SelectContext(ctx, &grades,
		`SELECT id, student_id, module, grade
		 FROM grade_record WHERE student_id = $1 ORDER BY id`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	return grades, nil
}

func (repo portalRepository) QueryCalendar(ctx context.Context, studentID int) ([]portal.CalendarEvent, error) {
	events := make([]portal.CalendarEvent, 0)
	err := repo.db.SelectContext(ctx, &events,
		`SELECT id, student_id, title, description, event_date, status, priority
		 FROM calendar_event WHERE student_id = $1 ORDER BY id`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying calendar")
	}
	return events, nil
}

func (repo portalRepository) QueryStaff(ctx context.Context) ([]portal.StaffMember, error) {
	staff := make([]portal.StaffMember, 0)
	err := repo.db.SelectContext(ctx, &staff,
		`SELECT id, module, name, role, email, initials, avatar_color
		 FROM staff_member ORDER BY module, id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying staff directory")
	}
	return staff, nil
}
