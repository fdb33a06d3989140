package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Newはルーティング済みのechoインスタンスを組み立てる。
func New(cfg config.Config, authH *handler.AuthHandler, sweetH *handler.SweetHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	//リクエストログ・panic回復・CORS
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authH.RegisterRoutes(e)
	sweetH.RegisterRoutes(e, cfg)

	return e
}

// Startはサーバーを起動する。
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
