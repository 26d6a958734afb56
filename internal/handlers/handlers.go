package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"introboard/internal/board"
	"introboard/internal/i18n"
	"introboard/internal/intro"
	"introboard/internal/logger"
	"introboard/internal/session"
	"introboard/internal/sheetclient"
	"introboard/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// requestTimeout bounds every call a handler makes to the remote endpoint.
const requestTimeout = 15 * time.Second

// Localizer picks the locale a request is rendered in.
type Localizer func(c echo.Context) i18n.Locale

// NewLocalizer negotiates from Accept-Language, falling back to def.
func NewLocalizer(def language.Tag, loc *time.Location) Localizer {
	return func(c echo.Context) i18n.Locale {
		return i18n.Negotiate(c.Request().Header.Get("Accept-Language"), def, loc)
	}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func renderPage(c echo.Context, status int, b *board.Board, l i18n.Locale) error {
	data, err := view.NewPageData(l, b.Validator(), session.Controller(c).Snapshot(), time.Now())
	if err != nil {
		logger.Error("failed to build page", err)
		return c.String(http.StatusInternalServerError, "failed to render page")
	}
	return c.Render(status, view.TemplatePage, data)
}

func renderPanel(c echo.Context, l i18n.Locale) error {
	snap := session.Controller(c).Snapshot()
	panel, err := view.NewPanelData(l, snap)
	if err != nil {
		logger.Error("failed to build panel", err)
		return c.String(http.StatusInternalServerError, "failed to render introductions")
	}
	// An unresolved load keeps polling itself.
	panel.AutoLoad = snap.State == view.StateLoading
	return c.Render(http.StatusOK, view.TemplatePanel, panel)
}

// Page godoc
// @Summary      Introduction board page
// @Description  Renders the form and the list panel. With load=sync the list is fetched before rendering.
// @Tags         board
// @Produce      html
// @Param        load  query  string  false  "Set to sync to load the list inline"
// @Success      200
// @Router       / [get]
func Page(b *board.Board, localize Localizer) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.QueryParam("load") == "sync" {
			ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
			defer cancel()
			b.Load(ctx, session.Controller(c))
		}
		return renderPage(c, http.StatusOK, b, localize(c))
	}
}

// Cards godoc
// @Summary      Load the introduction list
// @Description  Fetches every introduction from the endpoint and renders the list panel.
// @Tags         board
// @Produce      html
// @Success      200
// @Router       /cards [get]
func Cards(b *board.Board, localize Localizer) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
		defer cancel()

		b.Load(ctx, session.Controller(c))
		return renderPanel(c, localize(c))
	}
}

// RetryCards godoc
// @Summary      Retry a failed load
// @Description  Re-fetches the list after an error. Plain form posts are redirected to the page.
// @Tags         board
// @Produce      html
// @Success      200
// @Success      303
// @Router       /cards/retry [post]
func RetryCards(b *board.Board, localize Localizer) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
		defer cancel()

		if err := b.Retry(ctx, session.Controller(c)); err != nil {
			logger.Debug("retry ignored", zap.Error(err))
		}
		if !isHTMX(c) {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return renderPanel(c, localize(c))
	}
}

// SubmitIntroduction godoc
// @Summary      Submit the introduction form
// @Description  Validates the form and sends it to the endpoint. Redirects to the page once the submission resolves.
// @Tags         board
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Success      303
// @Failure      409
// @Failure      422
// @Router       /introductions [post]
func SubmitIntroduction(b *board.Board, localize Localizer) echo.HandlerFunc {
	return func(c echo.Context) error {
		values, err := c.FormParams()
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid form body")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
		defer cancel()

		switch b.Submit(ctx, session.Controller(c), values) {
		case board.Invalid:
			return renderPage(c, http.StatusUnprocessableEntity, b, localize(c))
		case board.Busy:
			return renderPage(c, http.StatusConflict, b, localize(c))
		default:
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}
}

func fieldHandler(b *board.Board, localize Localizer, apply func(*board.Board, *view.Controller, string, string)) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param("name")
		if _, ok := intro.LookupField(name); !ok {
			return c.String(http.StatusNotFound, "unknown field")
		}

		ctrl := session.Controller(c)
		apply(b, ctrl, name, c.FormValue(name))
		return c.Render(http.StatusOK, view.TemplateFieldError, view.NewFieldView(localize(c), b.Validator(), ctrl.Snapshot(), name))
	}
}

// BlurField godoc
// @Summary      Validate a field on blur
// @Tags         board
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        name  path  string  true  "Field key"
// @Success      200
// @Failure      404
// @Router       /fields/{name}/blur [post]
func BlurField(b *board.Board, localize Localizer) echo.HandlerFunc {
	return fieldHandler(b, localize, (*board.Board).Blur)
}

// InputField godoc
// @Summary      Clear a field error once filled
// @Tags         board
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        name  path  string  true  "Field key"
// @Success      200
// @Failure      404
// @Router       /fields/{name}/input [post]
func InputField(b *board.Board, localize Localizer) echo.HandlerFunc {
	return fieldHandler(b, localize, (*board.Board).Input)
}

func remoteError(c echo.Context, err error) error {
	resp := ErrorResponse{Error: err.Error()}
	if e, ok := sheetclient.As(err); ok {
		resp.Kind = e.Kind.String()
		if e.Kind == sheetclient.KindServerReported && e.Message != "" {
			resp.Error = e.Message
		}
	}
	return c.JSON(http.StatusBadGateway, resp)
}

// ListIntroductions godoc
// @Summary      List introductions
// @Description  Returns every introduction, newest first.
// @Tags         introductions
// @Produce      json
// @Success      200  {object}  ListIntroductionsResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /api/v1/introductions [get]
func ListIntroductions(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
		defer cancel()

		records, err := b.List(ctx)
		if err != nil {
			logger.Error("failed to list introductions", err)
			return remoteError(c, err)
		}
		return c.JSON(http.StatusOK, ListIntroductionsResponse{Data: records, Total: len(records)})
	}
}

// CreateIntroduction godoc
// @Summary      Create an introduction
// @Description  Validates the required fields and forwards the record to the endpoint.
// @Tags         introductions
// @Accept       json
// @Produce      json
// @Param        introduction  body  CreateIntroductionRequest  true  "Introduction to be created"
// @Success      201  {object}  IntroductionResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /api/v1/introductions [post]
func CreateIntroduction(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req CreateIntroductionRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
		defer cancel()

		rec, fieldErrs, err := b.Create(ctx, intro.Values(req.values()))
		if errors.Is(err, board.ErrInvalid) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Fields: fieldErrs})
		}
		if err != nil {
			logger.Error("failed to create introduction", err)
			return remoteError(c, err)
		}
		return c.JSON(http.StatusCreated, IntroductionResponse{Data: rec})
	}
}

// Healthz godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func Healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
}
