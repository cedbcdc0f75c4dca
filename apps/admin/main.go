package main

import (
	"log"
	"os"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/student"
	emailsvc "github.com/campusdesk/portal/services/email"
	"github.com/campusdesk/portal/storage/database"
	sqlxrepos "github.com/campusdesk/portal/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	if err := database.CreateIfNotExist(conf); err != nil {
		log.Fatalf("setting up database: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer func() { _ = db.Close() }()

	cli := &commandLine{
		db:     db,
		stdSvc: student.NewService(sqlxrepos.NewStudentRepository(db), emailsvc.NewConsoleService(conf), conf),
	}
	if err := cli.run(os.Args); err != nil && err != errHelp {
		log.Fatal(err)
	}
}
