// Package view renders the introduction board and keeps the per-visitor state
// the page is drawn from.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"introboard/internal/i18n"
	"introboard/internal/intro"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var Static embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// Template names.
const (
	TemplatePage       = "page"
	TemplatePanel      = "panel"
	TemplateFieldError = "field-error"
)

// CardData is what a single card is drawn from.
type CardData struct {
	L      i18n.Locale
	Record intro.Record
	Date   string
	Fields []CardField
}

type CardField struct {
	Label string
	Icon  string
	Value string
	Badge bool
}

// RenderCard draws one record. Every value passes through html/template
// contextual escaping, so markup in user text is shown literally.
func RenderCard(l i18n.Locale, rec intro.Record) (template.HTML, error) {
	data := CardData{L: l, Record: rec}
	if t, ok := intro.ParseTimestampIn(rec.Timestamp, l.Location); ok {
		data.Date = l.FormatDate(t)
	}
	for _, f := range intro.Fields {
		if f.Key == intro.KeyName || f.Key == intro.KeyDepartment {
			continue
		}
		data.Fields = append(data.Fields, CardField{
			Label: l.T(f.Label),
			Icon:  f.Icon,
			Value: rec.Get(f.Key),
			Badge: f.Key == intro.KeyMBTI,
		})
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "card", data); err != nil {
		return "", fmt.Errorf("render card: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderCards sorts records newest first and draws each one.
func RenderCards(l i18n.Locale, records []intro.Record) ([]template.HTML, error) {
	sorted := intro.SortNewestFirst(records)
	cards := make([]template.HTML, 0, len(sorted))
	for _, rec := range sorted {
		card, err := RenderCard(l, rec)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// FieldView is one form input with its current value and inline error.
type FieldView struct {
	Key       string
	Label     string
	Icon      string
	Multiline bool
	Required  bool
	Value     string
	Error     string
}

type ToastView struct {
	ID          string
	Kind        ToastKind
	Text        string
	RemainingMS int64
}

type PanelData struct {
	L            i18n.Locale
	State        string
	Cards        []template.HTML
	ErrorMessage string
	// AutoLoad makes the panel fetch itself once it reaches the browser.
	AutoLoad bool
}

type PageData struct {
	L      i18n.Locale
	Fields []FieldView
	Toast  *ToastView
	Panel  PanelData
}

// NewFieldView builds the input for key from a snapshot.
func NewFieldView(l i18n.Locale, v *intro.Validator, snap Snapshot, key string) FieldView {
	f, _ := intro.LookupField(key)
	fv := FieldView{
		Key:       f.Key,
		Label:     l.T(f.Label),
		Icon:      f.Icon,
		Multiline: f.Multiline,
		Required:  v.Required(f.Key),
		Value:     snap.Draft[f.Key],
	}
	if _, ok := snap.FieldErrors[f.Key]; ok {
		fv.Error = l.T(i18n.MsgRequired)
	}
	return fv
}

// NewPanelData builds the list panel from a snapshot.
func NewPanelData(l i18n.Locale, snap Snapshot) (PanelData, error) {
	panel := PanelData{L: l, State: snap.State.String()}
	switch snap.State {
	case StateError:
		panel.ErrorMessage = ErrorText(l, snap.LoadErr, i18n.MsgLoadFailed)
	case StatePopulated:
		cards, err := RenderCards(l, snap.Records)
		if err != nil {
			return PanelData{}, err
		}
		panel.Cards = cards
	}
	return panel, nil
}

// NewPageData builds the whole page from a snapshot.
func NewPageData(l i18n.Locale, v *intro.Validator, snap Snapshot, now time.Time) (PageData, error) {
	panel, err := NewPanelData(l, snap)
	if err != nil {
		return PageData{}, err
	}
	panel.AutoLoad = snap.State == StateLoading

	page := PageData{L: l, Panel: panel}
	for _, f := range intro.Fields {
		page.Fields = append(page.Fields, NewFieldView(l, v, snap, f.Key))
	}
	if snap.Toast != nil {
		page.Toast = &ToastView{
			ID:          snap.Toast.ID,
			Kind:        snap.Toast.Kind,
			Text:        ToastText(l, *snap.Toast),
			RemainingMS: snap.Toast.ExpiresAt.Sub(now).Milliseconds(),
		}
	}
	return page, nil
}

// Renderer plugs the board templates into echo.
type Renderer struct{}

func (Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return templates.ExecuteTemplate(w, name, data)
}
