// Package sheet serves a local stand-in for the spreadsheet web endpoint. It
// speaks the same contract the board's client expects: POST appends a record,
// GET with the read action returns {"data": [...]}.
package sheet

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"introboard/internal/intro"
	"introboard/internal/logger"
	"introboard/internal/sheetclient"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Store persists introduction rows in insertion order.
type Store interface {
	Append(ctx context.Context, rec intro.Record) error
	All(ctx context.Context) ([]intro.Record, error)
}

type MemoryStore struct {
	mu   sync.RWMutex
	rows []intro.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(ctx context.Context, rec intro.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, rec)
	return nil
}

func (m *MemoryStore) All(ctx context.Context) ([]intro.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.rows), nil
}

// Read godoc
// @Summary      Read all introduction rows
// @Description  Spreadsheet endpoint read. Returns every row when action matches the read discriminator.
// @Tags         sheet
// @Produce      json
// @Param        action  query  string  true  "Read discriminator"  default(get)
// @Success      200  {object}  sheetclient.Envelope
// @Router       /exec [get]
func Read(store Store, readAction string) echo.HandlerFunc {
	return func(c echo.Context) error {
		action := c.QueryParam("action")
		if action != readAction {
			return c.JSON(http.StatusOK, sheetclient.Envelope{Result: "error", Error: "unknown action: " + action})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		rows, err := store.All(ctx)
		if err != nil {
			logger.Error("failed to read rows", err)
			return c.JSON(http.StatusOK, sheetclient.Envelope{Result: "error", Error: "failed to read rows"})
		}
		if rows == nil {
			rows = []intro.Record{}
		}
		return c.JSON(http.StatusOK, echo.Map{"result": "success", "data": rows})
	}
}

// Write godoc
// @Summary      Append an introduction row
// @Description  Spreadsheet endpoint write. Stamps the row when the record carries no timestamp.
// @Tags         sheet
// @Accept       json
// @Produce      json
// @Param        record  body  intro.Record  true  "Introduction"
// @Success      200  {object}  sheetclient.Envelope
// @Router       /exec [post]
func Write(store Store, now func() time.Time) echo.HandlerFunc {
	return func(c echo.Context) error {
		var rec intro.Record
		if err := c.Bind(&rec); err != nil {
			return c.JSON(http.StatusOK, sheetclient.Envelope{Result: "error", Error: "invalid request body"})
		}
		if strings.TrimSpace(rec.Timestamp) == "" {
			rec.Timestamp = now().UTC().Format(intro.TimestampLayout)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		if err := store.Append(ctx, rec); err != nil {
			logger.Error("failed to append row", err)
			return c.JSON(http.StatusOK, sheetclient.Envelope{Result: "error", Error: "failed to save row"})
		}

		logger.Info("row appended", zap.String("name", rec.Name))
		return c.JSON(http.StatusOK, echo.Map{"result": "success", "data": echo.Map{"timestamp": rec.Timestamp}})
	}
}

// Register mounts the endpoint on path.
func Register(e *echo.Echo, path string, store Store, readAction string) {
	e.GET(path, Read(store, readAction))
	e.POST(path, Write(store, time.Now))
}
