package inmemdb

import (
	"sync"

	"github.com/campusdesk/portal/core/portal"
	"github.com/campusdesk/portal/core/student"
)

type (
	DB struct {
		student *studentTable
		portal  *portalTables
	}

	studentTable struct {
		sync.RWMutex
		table   map[int]*student.Student
		pkCount int
	}

	portalTables struct {
		sync.RWMutex
		timetable []portal.TimetableEntry
		grades    []portal.GradeRecord
		calendar  []portal.CalendarEvent
		staff     []portal.StaffMember
		pkCount   int
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{table: make(map[int]*student.Student)},
		portal:  &portalTables{},
	}
	return db, nil
}
