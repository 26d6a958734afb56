package handlers

import (
	"introboard/internal/board"
	"introboard/internal/session"

	"github.com/labstack/echo/v4"
)

// Register mounts the board pages and the JSON API.
func Register(e *echo.Echo, b *board.Board, sessions *session.Store, localize Localizer) {
	e.GET("/healthz", Healthz())

	withSession := session.Middleware(sessions)
	e.GET("/", Page(b, localize), withSession)
	e.GET("/cards", Cards(b, localize), withSession)
	e.POST("/cards/retry", RetryCards(b, localize), withSession)
	e.POST("/introductions", SubmitIntroduction(b, localize), withSession)
	e.POST("/fields/:name/blur", BlurField(b, localize), withSession)
	e.POST("/fields/:name/input", InputField(b, localize), withSession)

	api := e.Group("/api/v1")
	api.GET("/introductions", ListIntroductions(b))
	api.POST("/introductions", CreateIntroduction(b))
}
