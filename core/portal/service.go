package portal

import "context"

type (
	Repository interface {
		QueryTimetable(ctx context.Context, studentID int) ([]TimetableEntry, error)
		QueryGrades(ctx context.Context, studentID int) ([]GradeRecord, error)
		QueryCalendar(ctx context.Context, studentID int) ([]CalendarEvent, error)
		QueryStaff(ctx context.Context) ([]StaffMember, error)
	}

	// Service exposes the read-only, per-student resource accessors.
	// All student-owned reads are scoped to the id they are called with;
	// there is no cross-student read path.
	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Timetable(ctx context.Context, studentID int) ([]TimetableEntry, error) {
	return svc.repo.QueryTimetable(ctx, studentID)
}

func (svc *Service) Grades(ctx context.Context, studentID int) ([]GradeRecord, error) {
	return svc.repo.QueryGrades(ctx, studentID)
}

func (svc *Service) Calendar(ctx context.Context, studentID int) ([]CalendarEvent, error) {
	return svc.repo.QueryCalendar(ctx, studentID)
}

// Staff returns the whole directory; grouping by module is a client concern.
func (svc *Service) Staff(ctx context.Context) ([]StaffMember, error) {
	return svc.repo.QueryStaff(ctx)
}
