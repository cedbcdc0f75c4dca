package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	. "github.com/campusdesk/portal/apps/api/echo"
	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/portal"
	"github.com/campusdesk/portal/core/student"
	logsvc "github.com/campusdesk/portal/services/logger"
	inmemdb "github.com/campusdesk/portal/storage/database/inmem"
)

var (
	conf       *core.Config
	translator ut.Translator

	stdRepo    *inmemdb.StudentRepository
	portalRepo *inmemdb.PortalRepository
	stdSvc     *student.Service

	app Server

	templateStudent   student.Student
	templateTimetable []portal.TimetableEntry
	templateGrades    []portal.GradeRecord
	templateCalendar  []portal.CalendarEvent
	staffDirectory    []portal.StaffMember

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errInvalidToken = httpErr{Error: "invalid or expired jwt"}
)

func TestMain(m *testing.M) {
	conf = &core.Config{
		TestMode:        true,
		Env:             "TEST",
		AppName:         "CampusDesk",
		SecretKey:       []byte("s3cr3t-t3st-k3y"),
		TemplateStudent: 1,
		Server: core.ServerConfig{
			JWTExpirationDelta: 1 * time.Hour,
			AllowedOrigins:     []string{"http://localhost:5173"},
		},
	}
	resetDB()
	os.Exit(m.Run())
}

// resetDB drops all state and rebuilds the server on a fresh in-memory DB,
// template student and demo rows included.
func resetDB() {
	db, err := inmemdb.Open()
	if err != nil {
		log.Fatalf("inmemdb.Open(): %v", err)
	}
	stdRepo = inmemdb.NewStudentRepository(db)
	portalRepo = inmemdb.NewPortalRepository(db)
	stdSvc = student.NewService(stdRepo, nil /* mailSvc */, conf)
	portalSvc := portal.NewService(portalRepo)

	seedTemplateData()

	validate := validator.New()
	enLocale := en.New()
	translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	core.InitValidators(validate, translator)

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)

	app = NewServer(&Deps{
		Conf:       conf,
		Logger:     logger,
		StudentSvc: stdSvc,
		PortalSvc:  portalSvc,
		Validate:   validate,
		Translator: translator,
	})
}

// seedTemplateData stands in for the migrations: template student id=1 with
// the demo rows every registration copies, plus the public staff directory.
func seedTemplateData() {
	var err error
	templateStudent, err = stdRepo.CreateStudent(
		context.Background(),
		student.Student{Email: "template@campusdesk.internal"},
		0, /* nothing to copy from */
	)
	if err != nil {
		log.Fatalf("seeding template student: %v", err)
	}
	tid := templateStudent.ID

	templateTimetable = []portal.TimetableEntry{
		portalRepo.AddTimetableEntry(portal.TimetableEntry{StudentID: tid, Day: "Monday", Module: "CS101", Time: "09:00 - 11:00", Room: "A1.04"}),
		portalRepo.AddTimetableEntry(portal.TimetableEntry{StudentID: tid, Day: "Tuesday", Module: "MA201", Time: "11:00 - 13:00", Room: "B2.11", Status: null.StringFrom("Cancelled")}),
		portalRepo.AddTimetableEntry(portal.TimetableEntry{StudentID: tid, Day: "Friday", Module: "CS102", Time: "14:00 - 16:00", Room: "Lab 3"}),
	}
	templateGrades = []portal.GradeRecord{
		portalRepo.AddGradeRecord(portal.GradeRecord{StudentID: tid, Module: "CS101", Grade: 72}),
		portalRepo.AddGradeRecord(portal.GradeRecord{StudentID: tid, Module: "MA201", Grade: 58}),
	}
	templateCalendar = []portal.CalendarEvent{
		portalRepo.AddCalendarEvent(portal.CalendarEvent{
			StudentID: tid, Title: "CS101 coursework due", Description: "Submit via the portal",
			Date: time.Date(2026, time.October, 30, 0, 0, 0, 0, time.UTC), Status: null.StringFrom("Upcoming"), Priority: null.StringFrom("High"),
		}),
		portalRepo.AddCalendarEvent(portal.CalendarEvent{
			StudentID: tid, Title: "Reading week", Description: "No lectures",
			Date: time.Date(2026, time.November, 9, 0, 0, 0, 0, time.UTC), Status: null.StringFrom("Upcoming"),
		}),
	}
	staffDirectory = []portal.StaffMember{
		portalRepo.AddStaffMember(portal.StaffMember{
			Module: "CS101", Name: "Dr. Sarah Chen", Role: "Module Leader", Email: "s.chen@campusdesk.test",
			Initials: null.StringFrom("SC"), AvatarColor: null.StringFrom("#6366f1"),
		}),
		portalRepo.AddStaffMember(portal.StaffMember{
			Module: "MA201", Name: "Prof. James Okafor", Role: "Lecturer", Email: "j.okafor@campusdesk.test",
			Initials: null.StringFrom("JO"), AvatarColor: null.StringFrom("#f59e0b"),
		}),
	}
}

// createStudent registers an account through the service so the password is
// properly hashed and the demo data is copied.
func createStudent(t *testing.T, email, pwd string) student.Student {
	t.Helper()
	std, err := stdSvc.Register(context.Background(), student.NewStudent{Email: email, Password: pwd})
	if err != nil {
		t.Fatalf("createStudent(): %v", err)
	}
	return std
}

// The *ScopedTo helpers return copies of the template rows re-owned by
// studentID, the shape a freshly registered account reads back.
func timetableScopedTo(studentID int) []portal.TimetableEntry {
	entries := make([]portal.TimetableEntry, 0, len(templateTimetable))
	for _, e := range templateTimetable {
		e.StudentID = studentID
		entries = append(entries, e)
	}
	return entries
}

func gradesScopedTo(studentID int) []portal.GradeRecord {
	grades := make([]portal.GradeRecord, 0, len(templateGrades))
	for _, g := range templateGrades {
		g.StudentID = studentID
		grades = append(grades, g)
	}
	return grades
}

func calendarScopedTo(studentID int) []portal.CalendarEvent {
	events := make([]portal.CalendarEvent, 0, len(templateCalendar))
	for _, ev := range templateCalendar {
		ev.StudentID = studentID
		events = append(events, ev)
	}
	return events
}

type httpErr struct {
	Error string `json:"error"`
}

type fieldErrs struct {
	Error map[string]string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, std student.Student) string {
	t.Helper()
	claims := GetStudentClaims(std)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
