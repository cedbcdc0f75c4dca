package student

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/campusdesk/portal/core"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrEmailExists = errors.New("user exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string) error
		// CreateStudent inserts the student and copies the template student's
		// timetable, grade and calendar rows to the new id, all in one transaction.
		CreateStudent(ctx context.Context, std Student, templateID int) (Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		GetStudentByEmail(ctx context.Context, email string) (Student, error)
		SetLastLogin(ctx context.Context, std Student) (Student, error)
		UpdatePassword(ctx context.Context, std Student) (Student, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, conf: conf}
}

func (svc *Service) CheckEmailUniqueness(ctx context.Context, email string) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email); err != nil {
		if err == ErrEmailExists {
			return core.NewConflictError(err.Error())
		}
		return err
	}
	return nil
}

// Register creates the account and its demo data atomically: the student row
// and the template copies all land or none do.
func (svc *Service) Register(ctx context.Context, ns NewStudent) (Student, error) {
	std := Student{
		Email:     ns.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := std.SetPassword(ns.Password); err != nil {
		return Student{}, err
	}

	std, err := svc.repo.CreateStudent(ctx, std, svc.conf.TemplateStudent)
	if err != nil {
		if err == ErrEmailExists {
			return Student{}, core.NewConflictError(err.Error())
		}
		return Student{}, err
	}

	svc.sendWelcomeEmail(std)
	return std, nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Student, error) {
	return svc.repo.GetStudentByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) SetLastLogin(ctx context.Context, std Student) (Student, error) {
	std.LastLogin = time.Now().UTC()
	return svc.repo.SetLastLogin(ctx, std)
}

func (svc *Service) ResetPassword(ctx context.Context, email, pwd string) (Student, error) {
	std, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return Student{}, err
	}
	if err = std.SetPassword(pwd); err != nil {
		return Student{}, err
	}
	return svc.repo.UpdatePassword(ctx, std)
}

func (svc *Service) sendWelcomeEmail(std Student) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: std.Email}},
		Subject: "Welcome to " + svc.conf.AppName,
		BodyStr: fmt.Sprintf(
			"Hi,\n\nYour %s account is ready. Log in with this email address to see "+
				"your timetable, grades and calendar.\n\nThe %s team",
			svc.conf.AppName, svc.conf.AppName),
	})
}
