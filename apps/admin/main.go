package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	"github.com/trezcool/mahudhurio/storage/database/mongodb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := mongodb.Open(core.Conf)
	errAndDie(err)
	defer func() { _ = db.Client().Disconnect(context.Background()) }()
	errAndDie(mongodb.EnsureIndexes(context.Background(), db))

	usrRepo := mongodb.NewUserRepository(db)

	// start CLI
	cli := commandLine{
		usrSvc: user.NewService(usrRepo, emailsvc.NewConsoleService()),
		schoolSvc: school.NewService(
			mongodb.NewClassRepository(db),
			mongodb.NewAttendanceRepository(db),
			usrRepo,
		),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
