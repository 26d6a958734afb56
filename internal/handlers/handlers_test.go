package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"introboard/internal/board"
	"introboard/internal/i18n"
	"introboard/internal/intro"
	"introboard/internal/session"
	"introboard/internal/sheet"
	"introboard/internal/sheetclient"
	"introboard/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type app struct {
	t      *testing.T
	e      *echo.Echo
	store  *sheet.MemoryStore
	cookie *http.Cookie
}

func newApp(t *testing.T, endpoint string) *app {
	t.Helper()
	e := echo.New()
	e.Renderer = view.Renderer{}

	client := sheetclient.NewClient(endpoint, sheetclient.WithTimeout(2*time.Second))
	b := board.New(client, intro.NewValidator(nil))
	sessions := session.NewStore(time.Minute, func() *view.Controller { return view.NewController() })
	Register(e, b, sessions, NewLocalizer(language.English, time.UTC))
	return &app{t: t, e: e}
}

func newAppWithStub(t *testing.T, store sheet.Store) *app {
	t.Helper()
	stub := echo.New()
	sheet.Register(stub, "/exec", store, sheetclient.DefaultReadAction)
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)
	return newApp(t, server.URL+"/exec")
}

func (a *app) do(method, target string, form url.Values, header map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			a.cookie = c
		}
	}
	return rec
}

func filledForm() url.Values {
	values := url.Values{}
	for _, f := range intro.Fields {
		values.Set(f.Key, f.Key+" value")
	}
	values.Set(intro.KeyName, "Kim <b>")
	return values
}

func TestPage_RendersFormAndAutoLoadingPanel(t *testing.T) {
	a := newAppWithStub(t, sheet.NewMemoryStore())

	rec := a.do(http.MethodGet, "/", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="introForm"`)
	assert.Contains(t, body, `hx-get="/cards"`)
	assert.Contains(t, body, `id="loadingCards"`)
	require.NotNil(t, a.cookie)
}

func TestPage_SyncLoad(t *testing.T) {
	store := sheet.NewMemoryStore()
	require.NoError(t, store.Append(context.Background(), intro.Record{Name: "Lee", Timestamp: "2025-01-02T00:00:00.000Z"}))
	a := newAppWithStub(t, store)

	rec := a.do(http.MethodGet, "/?load=sync", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="cardsContainer"`)
	assert.Contains(t, rec.Body.String(), "Lee")
	assert.NotContains(t, rec.Body.String(), `hx-get="/cards"`)
}

func TestCards_EmptyAndPopulated(t *testing.T) {
	store := sheet.NewMemoryStore()
	a := newAppWithStub(t, store)

	rec := a.do(http.MethodGet, "/cards", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="emptyState"`)

	require.NoError(t, store.Append(context.Background(), intro.Record{Name: "Old", Timestamp: "2025-01-01T00:00:00.000Z"}))
	require.NoError(t, store.Append(context.Background(), intro.Record{Name: "New", Timestamp: "2025-02-01T00:00:00.000Z"}))

	rec = a.do(http.MethodGet, "/cards", nil, nil)
	body := rec.Body.String()
	require.Contains(t, body, `id="cardsContainer"`)
	assert.Less(t, strings.Index(body, "New"), strings.Index(body, "Old"))
}

func TestSubmit_InvalidRendersFieldErrors(t *testing.T) {
	store := sheet.NewMemoryStore()
	a := newAppWithStub(t, store)

	form := filledForm()
	form.Set(intro.KeyMBTI, "   ")
	rec := a.do(http.MethodPost, "/introductions", form, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.MsgRequired)
	assert.Contains(t, rec.Body.String(), "Kim &lt;b&gt;", "draft is kept and escaped")

	rows, _ := store.All(context.Background())
	assert.Empty(t, rows)
}

func TestSubmit_SuccessRedirectsAndReloads(t *testing.T) {
	store := sheet.NewMemoryStore()
	a := newAppWithStub(t, store)

	rec := a.do(http.MethodPost, "/introductions", filledForm(), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rows, _ := store.All(context.Background())
	require.Len(t, rows, 1)
	assert.Equal(t, "Kim <b>", rows[0].Name)

	rec = a.do(http.MethodGet, "/", nil, nil)
	body := rec.Body.String()
	assert.Contains(t, body, i18n.MsgSubmitSuccess)
	assert.Contains(t, body, `hx-get="/cards"`)
	assert.NotContains(t, body, "Kim &lt;b&gt;", "form is reset")

	rec = a.do(http.MethodGet, "/cards", nil, nil)
	assert.Contains(t, rec.Body.String(), "Kim &lt;b&gt;")
}

type brokenStore struct{}

func (brokenStore) Append(context.Context, intro.Record) error  { return errors.New("disk full") }
func (brokenStore) All(context.Context) ([]intro.Record, error) { return nil, errors.New("disk full") }

func TestSubmit_RemoteFailureKeepsDraft(t *testing.T) {
	a := newAppWithStub(t, brokenStore{})

	rec := a.do(http.MethodPost, "/introductions", filledForm(), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = a.do(http.MethodGet, "/", nil, nil)
	body := rec.Body.String()
	assert.Contains(t, body, "failed to save row")
	assert.Contains(t, body, "Kim &lt;b&gt;")
}

func TestCards_ErrorThenRetry(t *testing.T) {
	a := newApp(t, "http://127.0.0.1:1/exec")

	rec := a.do(http.MethodGet, "/cards", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="errorState"`)
	assert.Contains(t, rec.Body.String(), i18n.MsgNetwork)

	rec = a.do(http.MethodPost, "/cards/retry", nil, map[string]string{"HX-Request": "true"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="errorState"`)

	rec = a.do(http.MethodPost, "/cards/retry", nil, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRetry_WithoutSessionFetches(t *testing.T) {
	a := newApp(t, "http://127.0.0.1:1/exec")

	rec := a.do(http.MethodGet, "/cards", nil, nil)
	require.Contains(t, rec.Body.String(), `id="errorState"`)

	a.cookie = nil
	rec = a.do(http.MethodPost, "/cards/retry", nil, map[string]string{"HX-Request": "true"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="errorState"`, "the endpoint is contacted again")
	assert.NotContains(t, body, `id="loadingCards"`)
}

func TestRetry_AfterResolvedLoadRendersList(t *testing.T) {
	store := sheet.NewMemoryStore()
	require.NoError(t, store.Append(context.Background(), intro.Record{Name: "Lee"}))
	a := newAppWithStub(t, store)

	a.do(http.MethodGet, "/cards", nil, nil)
	rec := a.do(http.MethodPost, "/cards/retry", nil, map[string]string{"HX-Request": "true"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="cardsContainer"`)
}

func TestFields_BlurAndInput(t *testing.T) {
	a := newAppWithStub(t, sheet.NewMemoryStore())

	rec := a.do(http.MethodPost, "/fields/name/blur", url.Values{"name": {"  "}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="error-name"`)
	assert.Contains(t, rec.Body.String(), i18n.MsgRequired)

	rec = a.do(http.MethodPost, "/fields/name/input", url.Values{"name": {"K"}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), i18n.MsgRequired)

	rec = a.do(http.MethodPost, "/fields/tmi/blur", url.Values{"tmi": {""}}, nil)
	assert.NotContains(t, rec.Body.String(), i18n.MsgRequired, "tmi is optional")

	rec = a.do(http.MethodPost, "/fields/salary/blur", url.Values{}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_CreateAndList(t *testing.T) {
	a := newAppWithStub(t, sheet.NewMemoryStore())

	body := `{"name":"Kim","department":"Platform","responsibilities":"infra","previousCompany":"Acme","mbti":"INTJ","hobbies":"go","greetings":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/introductions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Kim"`)

	rec = a.do(http.MethodGet, "/api/v1/introductions", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

func TestAPI_CreateInvalid(t *testing.T) {
	a := newAppWithStub(t, sheet.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/introductions", strings.NewReader(`{"name":"Kim"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"department":{"field":"department","code":"required"}`)
	assert.NotContains(t, rec.Body.String(), `"tmi"`)
}

func TestAPI_RemoteFailureIsBadGateway(t *testing.T) {
	a := newApp(t, "http://127.0.0.1:1/exec")

	rec := a.do(http.MethodGet, "/api/v1/introductions", nil, nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"network"`)
}

func TestHealthz(t *testing.T) {
	a := newApp(t, "http://127.0.0.1:1/exec")
	rec := a.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
