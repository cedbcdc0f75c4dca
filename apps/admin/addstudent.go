package main

import (
	"context"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/student"
)

// addStudent registers a student account, demo data included.
func (cli *commandLine) addStudent(email, pwd string) error {
	ctx := context.Background()
	ns := student.NewStudent{
		Email:    core.CleanString(email, true /* lower */),
		Password: pwd,
	}
	if err := cli.stdSvc.CheckEmailUniqueness(ctx, ns.Email); err != nil {
		return err
	}
	_, err := cli.stdSvc.Register(ctx, ns)
	return err
}

func (cli *commandLine) resetPassword(email, pwd string) error {
	_, err := cli.stdSvc.ResetPassword(context.Background(), core.CleanString(email, true /* lower */), pwd)
	return err
}
