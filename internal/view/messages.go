package view

import (
	"errors"

	"introboard/internal/i18n"
	"introboard/internal/sheetclient"
)

// ErrorText turns an operation failure into the sentence shown to the user.
// fallback is the message key used when the error carries nothing more specific.
func ErrorText(l i18n.Locale, err error, fallback string) string {
	if errors.Is(err, ErrSubmitInProgress) {
		return l.T(i18n.MsgSubmitInProgress)
	}

	e, ok := sheetclient.As(err)
	if !ok {
		return l.T(fallback)
	}
	switch e.Kind {
	case sheetclient.KindCrossOrigin:
		return l.T(i18n.MsgCrossOrigin)
	case sheetclient.KindNetwork:
		return l.T(i18n.MsgNetwork)
	case sheetclient.KindHTTPStatus:
		return l.T(i18n.MsgHTTPStatus, e.StatusCode, e.Status)
	case sheetclient.KindServerReported:
		if e.Message != "" {
			return e.Message
		}
	}
	return l.T(fallback)
}

// ToastText renders a toast's message in the given locale.
func ToastText(l i18n.Locale, t Toast) string {
	if t.Err != nil {
		return ErrorText(l, t.Err, t.Message)
	}
	return l.T(t.Message)
}
