package inmemdb

import (
	"context"
	"sort"

	"github.com/campusdesk/portal/core/student"
)

type StudentRepository struct {
	db *DB
}

var _ student.Repository = (*StudentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (repo *StudentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.student.table))
	for _, std := range repo.db.student.table {
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

func (repo *StudentRepository) CheckEmailUniqueness(ctx context.Context, email string) error {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	for _, std := range repo.query() {
		if std.Email == email {
			return student.ErrEmailExists
		}
	}
	return nil
}

func (repo *StudentRepository) CreateStudent(ctx context.Context, std student.Student, templateID int) (student.Student, error) {
	repo.db.student.Lock()
	for _, existing := range repo.db.student.table {
		if existing.Email == std.Email {
			repo.db.student.Unlock()
			return student.Student{}, student.ErrEmailExists
		}
	}
	repo.db.student.pkCount++
	std.ID = repo.db.student.pkCount
	repo.db.student.table[std.ID] = &std
	repo.db.student.Unlock()

	// copy the template rows; all three tables share one lock so the copy
	// is as atomic as the SQL transaction it stands in for.
	tbl := repo.db.portal
	tbl.Lock()
	defer tbl.Unlock()
	for _, e := range tbl.timetable {
		if e.StudentID == templateID {
			e.StudentID = std.ID
			tbl.pkCount++
			e.ID = tbl.pkCount
			tbl.timetable = append(tbl.timetable, e)
		}
	}
	for _, g := range tbl.grades {
		if g.StudentID == templateID {
			g.StudentID = std.ID
			tbl.pkCount++
			g.ID = tbl.pkCount
			tbl.grades = append(tbl.grades, g)
		}
	}
	for _, ev := range tbl.calendar {
		if ev.StudentID == templateID {
			ev.StudentID = std.ID
			tbl.pkCount++
			ev.ID = tbl.pkCount
			tbl.calendar = append(tbl.calendar, ev)
		}
	}
	return std, nil
}

func (repo *StudentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	if std, ok := repo.db.student.table[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *StudentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	for _, std := range repo.query() {
		if std.Email == email {
			return std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *StudentRepository) UpdatePassword(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.student.Lock()
	defer repo.db.student.Unlock()

	existing, ok := repo.db.student.table[std.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	existing.PasswordHash = std.PasswordHash
	return *existing, nil
}

func (repo *StudentRepository) SetLastLogin(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.student.Lock()
	defer repo.db.student.Unlock()

	existing, ok := repo.db.student.table[std.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	existing.LastLogin = std.LastLogin
	return *existing, nil
}
