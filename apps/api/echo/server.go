package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
)

type (
	// Deps regroups the services the API depends on.
	Deps struct {
		Logger         core.Logger
		UserSvc        *user.Service
		SchoolSvc      *school.Service
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		addr string
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(addr string, shutdown chan<- os.Signal, deps *Deps) Server {
	s := &server{
		addr: addr,
		app:  echo.New(),
	}
	s.setup(shutdown, deps)
	return s
}

func (s *server) setup(shutdown chan<- os.Signal, deps *Deps) {
	debug := core.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	signalShutdown := func() {
		if shutdown != nil {
			shutdown <- syscall.SIGTERM
		}
	}
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, signalShutdown)
	s.app.Debug = debug
	s.app.HideBanner = true

	s.app.GET("/health", health)

	registerUserAPI(s.app, deps.UserSvc)
	registerClassAPI(s.app, deps.SchoolSvc, deps.UserSvc)
}

func (s *server) Start() error {
	return s.app.Start(s.addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Server is running healthy!!")
}
