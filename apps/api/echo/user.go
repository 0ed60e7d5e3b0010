package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/user"
)

type userApi struct {
	service *user.Service
}

func registerUserAPI(e *echo.Echo, svc *user.Service) {
	api := userApi{service: svc}

	g := e.Group("/user")
	g.GET("/health", api.health)
	g.POST("/signup", api.signUp)
	g.POST("/signin", api.signIn)
}

func (api *userApi) health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "User route is healthy")
}

func (api *userApi) signUp(ctx echo.Context) error {
	data := new(user.NewUser)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.service.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, response{Success: true, Data: usr})
}

func (api *userApi) signIn(ctx echo.Context) error {
	data := new(user.Credentials)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), data.Email, data.Password, api.service)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response{Success: true, Data: TokenResponse{Token: token}})
}

type TokenResponse struct {
	Token string `json:"token"`
}
