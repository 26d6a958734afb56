// Package board runs the introduction flows (load, retry, submit, field
// validation) against the remote endpoint and records their outcome in a
// visitor's view.Controller.
package board

import (
	"context"
	"errors"
	"net/url"
	"time"

	"introboard/internal/i18n"
	"introboard/internal/intro"
	"introboard/internal/logger"
	"introboard/internal/sheetclient"
	"introboard/internal/view"

	"go.uber.org/zap"
)

// Remote is the spreadsheet endpoint.
type Remote interface {
	Submit(ctx context.Context, rec intro.Record) (*sheetclient.SubmitResult, error)
	List(ctx context.Context) ([]intro.Record, error)
}

type Board struct {
	remote    Remote
	validator *intro.Validator
	now       func() time.Time
}

type Option func(*Board)

func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

func New(remote Remote, validator *intro.Validator, opts ...Option) *Board {
	b := &Board{remote: remote, validator: validator, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) Validator() *intro.Validator {
	return b.validator
}

// Load moves the controller to Loading, fetches the list and resolves the
// state. Failures end up in the controller, never returned.
func (b *Board) Load(ctx context.Context, ctrl *view.Controller) {
	if err := ctrl.BeginLoad(); err != nil {
		logger.Warn("cannot begin load", zap.Error(err))
		return
	}
	b.fetch(ctx, ctrl)
}

// Retry re-invokes the fetch after a failed load. A controller still in
// Loading (a fresh session, or a load that has not resolved) is fetched as
// well. Retrying a resolved list fails with view.ErrInvalidTransition.
func (b *Board) Retry(ctx context.Context, ctrl *view.Controller) error {
	if err := ctrl.Retry(); err != nil {
		if ctrl.State() != view.StateLoading {
			return err
		}
	}
	b.fetch(ctx, ctrl)
	return nil
}

func (b *Board) fetch(ctx context.Context, ctrl *view.Controller) {
	records, err := b.remote.List(ctx)
	if err != nil {
		logger.Error("failed to load introductions", err)
	}
	if ferr := ctrl.FinishLoad(records, err); ferr != nil {
		// Another request resolved the load first.
		logger.Debug("load already resolved", zap.Error(ferr))
	}
}

// Outcome is the result of a form submission.
type Outcome int

const (
	// Submitted: the record was accepted and a reload is pending.
	Submitted Outcome = iota
	// Invalid: required fields were blank; nothing was sent.
	Invalid
	// Busy: another submission from the same visitor is in flight.
	Busy
	// Failed: the endpoint rejected the record or could not be reached.
	Failed
)

// Submit gates on validation, then sends the collected record. On success the
// form is reset, a success toast shown and the list moved back to Loading; on
// failure the draft is kept and an error toast shown.
func (b *Board) Submit(ctx context.Context, ctrl *view.Controller, values url.Values) Outcome {
	ctrl.SetDraft(intro.Draft(values))

	if errs := b.validator.Form(values); len(errs) > 0 {
		ctrl.ReplaceFieldErrors(errs)
		return Invalid
	}
	ctrl.ReplaceFieldErrors(nil)

	if err := ctrl.BeginSubmit(); err != nil {
		ctrl.ShowToast(view.ToastInfo, i18n.MsgSubmitInProgress, nil)
		return Busy
	}
	defer ctrl.EndSubmit()

	rec := intro.Collect(values, b.now())
	if _, err := b.remote.Submit(ctx, rec); err != nil {
		logger.Error("failed to submit introduction", err, zap.String("name", rec.Name))
		ctrl.ShowToast(view.ToastError, i18n.MsgSubmitFailed, err)
		return Failed
	}

	logger.Info("introduction submitted", zap.String("name", rec.Name), zap.String("timestamp", rec.Timestamp))
	ctrl.ResetForm()
	ctrl.ShowToast(view.ToastSuccess, i18n.MsgSubmitSuccess, nil)
	if err := ctrl.BeginLoad(); err != nil {
		logger.Warn("cannot schedule reload", zap.Error(err))
	}
	return Submitted
}

// Blur validates one field as the user leaves it.
func (b *Board) Blur(ctrl *view.Controller, field, value string) {
	ctrl.SetFieldError(field, b.validator.Field(field, value))
}

// Input clears a field's error once the user has typed something.
func (b *Board) Input(ctrl *view.Controller, field, value string) {
	ctrl.ClearFieldErrorIfFilled(field, value, b.validator)
}

// List returns every record newest first, without touching any controller.
func (b *Board) List(ctx context.Context) ([]intro.Record, error) {
	records, err := b.remote.List(ctx)
	if err != nil {
		return nil, err
	}
	return intro.SortNewestFirst(records), nil
}

// ErrInvalid is returned by Create when required fields are blank.
var ErrInvalid = errors.New("introduction is missing required fields")

// Create validates and submits a record without a controller, for API callers.
func (b *Board) Create(ctx context.Context, values url.Values) (intro.Record, intro.FieldErrors, error) {
	if errs := b.validator.Form(values); len(errs) > 0 {
		return intro.Record{}, errs, ErrInvalid
	}
	rec := intro.Collect(values, b.now())
	if _, err := b.remote.Submit(ctx, rec); err != nil {
		return intro.Record{}, nil, err
	}
	return rec, nil, nil
}
