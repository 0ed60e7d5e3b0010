package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/trezcool/mahudhurio/apps/api/echo"
	wsapi "github.com/trezcool/mahudhurio/apps/api/ws"
	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	logsvc "github.com/trezcool/mahudhurio/services/logger"
	"github.com/trezcool/mahudhurio/storage/database/mongodb"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" : ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	// set up DB & repos
	db, err := mongodb.Open(core.Conf)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()
	if err = mongodb.EnsureIndexes(context.Background(), db); err != nil {
		logger.Fatal(err.Error(), err)
	}
	usrRepo := mongodb.NewUserRepository(db)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(usrRepo, mailSvc)
	schoolSvc := school.NewService(
		mongodb.NewClassRepository(db),
		mongodb.NewAttendanceRepository(db),
		usrRepo,
	)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// API server + notification channel
	app := echoapi.NewServer(core.Conf.Server.Addr, shutdown, &echoapi.Deps{
		Logger:    logger,
		UserSvc:   usrSvc,
		SchoolSvc: schoolSvc,
	})
	notifier := wsapi.NewServer(core.Conf.Notifier.Addr, wsapi.NewHub(logger), logger)

	serverErrors := make(chan error, 2)
	go func() {
		logger.Info("API server listening on " + core.Conf.Server.Addr)
		serverErrors <- app.Start()
	}()
	go func() {
		logger.Info("notification channel listening on " + core.Conf.Notifier.Addr)
		serverErrors <- notifier.Start()
	}()

	select {
	case err = <-serverErrors:
		logger.Fatal(err.Error(), err)
	case sig := <-shutdown:
		logger.Info("shutdown started", sig)

		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		if err = app.Stop(ctx); err != nil {
			logger.Error("stopping API server", err)
		}
		if err = notifier.Stop(ctx); err != nil {
			logger.Error("stopping notification channel", err)
		}
	}
}
