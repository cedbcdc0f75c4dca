package portal

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// TimetableEntry is one weekly class slot owned by a student.
type TimetableEntry struct {
	ID        int         `json:"-" db:"id"`
	StudentID int         `json:"student_id" db:"student_id"`
	Day       string      `json:"day" db:"day"`
	Module    string      `json:"module" db:"module"`
	Time      string      `json:"time" db:"time_slot"`
	Room      string      `json:"room" db:"room"`
	Status    null.String `json:"status" db:"status"`
}

type GradeRecord struct {
	ID        int    `json:"-" db:"id"`
	StudentID int    `json:"student_id" db:"student_id"`
	Module    string `json:"module" db:"module"`
	Grade     int    `json:"grade" db:"grade"`
}

type CalendarEvent struct {
	ID          int         `json:"-" db:"id"`
	StudentID   int         `json:"student_id" db:"student_id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Date        time.Time   `json:"date" db:"event_date"`
	Status      null.String `json:"status" db:"status"`
	Priority    null.String `json:"priority" db:"priority"`
}

// StaffMember belongs to the global directory; it is not student-scoped.
type StaffMember struct {
	ID          int         `json:"-" db:"id"`
	Module      string      `json:"module" db:"module"`
	Name        string      `json:"name" db:"name"`
	Role        string      `json:"role" db:"role"`
	Email       string      `json:"email" db:"email"`
	Initials    null.String `json:"initials" db:"initials"`
	AvatarColor null.String `json:"avatar_color" db:"avatar_color"`
}
