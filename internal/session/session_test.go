package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"introboard/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	s := NewStore(ttl, func() *view.Controller { return view.NewController() })
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStore_GetCreatesAndReuses(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	id, ctrl := s.Get("")
	require.NotEmpty(t, id)

	again, same := s.Get(id)
	assert.Equal(t, id, again)
	assert.Same(t, ctrl, same)

	other, different := s.Get("unknown")
	assert.NotEqual(t, "unknown", other)
	assert.NotSame(t, ctrl, different)
	assert.Equal(t, 2, s.Len())
}

func TestStore_ExpiredIDGetsFreshController(t *testing.T) {
	s, now := newTestStore(time.Minute)
	id, ctrl := s.Get("")

	*now = now.Add(2 * time.Minute)
	newID, fresh := s.Get(id)

	assert.NotEqual(t, id, newID)
	assert.NotSame(t, ctrl, fresh)
}

func TestStore_Sweep(t *testing.T) {
	s, now := newTestStore(time.Minute)
	s.Get("")
	*now = now.Add(45 * time.Second)
	active, _ := s.Get("")
	*now = now.Add(30 * time.Second)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	gotID, _ := s.Get(active)
	assert.Equal(t, active, gotID)
}

func TestStore_RunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewStore(time.Millisecond, func() *view.Controller { return view.NewController() })
	s.Get("")

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(gctx, time.Millisecond) })

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, g.Wait())
}

func TestMiddleware_SetsCookieAndController(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	e := echo.New()

	var seen *view.Controller
	handler := Middleware(s)(func(c echo.Context) error {
		seen = Controller(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.NotNil(t, seen)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	first := seen
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Same(t, first, seen)
}
