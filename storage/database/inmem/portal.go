package inmemdb

import (
	"context"

	"github.com/campusdesk/portal/core/portal"
)

type PortalRepository struct {
	db *DB
}

var _ portal.Repository = (*PortalRepository)(nil) // interface compliance check

func NewPortalRepository(db *DB) *PortalRepository {
	return &PortalRepository{db: db}
}

func (repo *PortalRepository) QueryTimetable(ctx context.Context, studentID int) ([]portal.TimetableEntry, error) {
	repo.db.portal.RLock()
	defer repo.db.portal.RUnlock()

	entries := make([]portal.TimetableEntry, 0)
	for _, e := range repo.db.portal.timetable {
		if e.StudentID == studentID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (repo *PortalRepository) QueryGrades(ctx context.Context, studentID int) ([]portal.GradeRecord, error) {
	repo.db.portal.RLock()
	defer repo.db.portal.RUnlock()

	grades := make([]portal.GradeRecord, 0)
	for _, g := range repo.db.portal.grades {
		if g.StudentID == studentID {
			grades = append(grades, g)
		}
	}
	return grades, nil
}

func (repo *PortalRepository) QueryCalendar(ctx context.Context, studentID int) ([]portal.CalendarEvent, error) {
	repo.db.portal.RLock()
	defer repo.db.portal.RUnlock()

	events := make([]portal.CalendarEvent, 0)
	for _, ev := range repo.db.portal.calendar {
		if ev.StudentID == studentID {
			events = append(events, ev)
		}
	}
	return events, nil
}

func (repo *PortalRepository) QueryStaff(ctx context.Context) ([]portal.StaffMember, error) {
	repo.db.portal.RLock()
	defer repo.db.portal.RUnlock()

	staff := make([]portal.StaffMember, 0, len(repo.db.portal.staff))
	staff = append(staff, repo.db.portal.staff...)
	return staff, nil
}

// Fixture helpers; the in-memory store has no migrations to seed it.

func (repo *PortalRepository) AddTimetableEntry(e portal.TimetableEntry) portal.TimetableEntry {
	repo.db.portal.Lock()
	defer repo.db.portal.Unlock()

	repo.db.portal.pkCount++
	e.ID = repo.db.portal.pkCount
	repo.db.portal.timetable = append(repo.db.portal.timetable, e)
	return e
}

func (repo *PortalRepository) AddGradeRecord(g portal.GradeRecord) portal.GradeRecord {
	repo.db.portal.Lock()
	defer repo.db.portal.Unlock()

	repo.db.portal.pkCount++
	g.ID = repo.db.portal.pkCount
	repo.db.portal.grades = append(repo.db.portal.grades, g)
	return g
}

func (repo *PortalRepository) AddCalendarEvent(ev portal.CalendarEvent) portal.CalendarEvent {
	repo.db.portal.Lock()
	defer repo.db.portal.Unlock()

	repo.db.portal.pkCount++
	ev.ID = repo.db.portal.pkCount
	repo.db.portal.calendar = append(repo.db.portal.calendar, ev)
	return ev
}

func (repo *PortalRepository) AddStaffMember(sm portal.StaffMember) portal.StaffMember {
	repo.db.portal.Lock()
	defer repo.db.portal.Unlock()

	repo.db.portal.pkCount++
	sm.ID = repo.db.portal.pkCount
	repo.db.portal.staff = append(repo.db.portal.staff, sm)
	return sm
}
