package view

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"introboard/internal/intro"

	"github.com/google/uuid"
)

// ListState is the state of the introductions panel. Exactly one is active.
type ListState int

const (
	StateLoading ListState = iota
	StateError
	StateEmpty
	StatePopulated
)

func (s ListState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	default:
		return fmt.Sprintf("ListState(%d)", int(s))
	}
}

var (
	ErrInvalidTransition = errors.New("invalid list state transition")
	ErrSubmitInProgress  = errors.New("submission already in progress")
)

var validTransitions = map[ListState][]ListState{
	StateLoading:   {StatePopulated, StateEmpty, StateError},
	StateError:     {StateLoading},
	StateEmpty:     {StateLoading},
	StatePopulated: {StateLoading},
}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// Toast is a transient notification. Message is a message key; when Err is set
// the rendered text is derived from the error instead, with Message as fallback.
type Toast struct {
	ID        string
	Kind      ToastKind
	Message   string
	Err       error
	ExpiresAt time.Time
}

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 5 * time.Second

// Controller is the per-visitor view-model: list state, toast slot, inline
// field errors, form draft and the submit guard. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	state   ListState
	records []intro.Record
	loadErr error

	toast         *Toast
	toastDuration time.Duration

	fieldErrors intro.FieldErrors
	draft       map[string]string
	submitting  bool

	now func() time.Time
}

type ControllerOption func(*Controller)

func WithToastDuration(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.toastDuration = d
		}
	}
}

func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController starts in StateLoading, as a freshly opened page does.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		state:         StateLoading,
		toastDuration: DefaultToastDuration,
		fieldErrors:   intro.FieldErrors{},
		draft:         map[string]string{},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) transition(to ListState) error {
	if !slices.Contains(validTransitions[c.state], to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.state, to)
	}
	c.state = to
	return nil
}

// BeginLoad enters StateLoading. Calling it while already loading is a no-op.
func (c *Controller) BeginLoad() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateLoading {
		return nil
	}
	if err := c.transition(StateLoading); err != nil {
		return err
	}
	c.loadErr = nil
	return nil
}

// Retry leaves StateError for StateLoading. It fails from any other state.
func (c *Controller) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateError {
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, c.state)
	}
	c.loadErr = nil
	return c.transition(StateLoading)
}

// FinishLoad resolves a load: Error when err is non-nil, otherwise Empty or
// Populated depending on the list. Records are stored newest first.
func (c *Controller) FinishLoad(records []intro.Record, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case err != nil:
		if terr := c.transition(StateError); terr != nil {
			return terr
		}
		c.loadErr = err
		c.records = nil
	case len(records) == 0:
		if terr := c.transition(StateEmpty); terr != nil {
			return terr
		}
		c.records = nil
	default:
		if terr := c.transition(StatePopulated); terr != nil {
			return terr
		}
		c.records = intro.SortNewestFirst(records)
	}
	return nil
}

func (c *Controller) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ShowToast replaces any visible toast.
func (c *Controller) ShowToast(kind ToastKind, message string, err error) Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Err:       err,
		ExpiresAt: c.now().Add(c.toastDuration),
	}
	c.toast = &t
	return t
}

// ActiveToast returns the visible toast, dropping it once expired.
func (c *Controller) ActiveToast() (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeToast()
}

func (c *Controller) activeToast() (Toast, bool) {
	if c.toast == nil {
		return Toast{}, false
	}
	if !c.now().Before(c.toast.ExpiresAt) {
		c.toast = nil
		return Toast{}, false
	}
	return *c.toast, true
}

// DismissToast clears the toast slot.
func (c *Controller) DismissToast() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toast = nil
}

// SetFieldError attaches or, with a nil error, removes a field's inline error.
func (c *Controller) SetFieldError(field string, fe *intro.FieldError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fe == nil {
		delete(c.fieldErrors, field)
		return
	}
	c.fieldErrors[field] = *fe
}

// ClearFieldErrorIfFilled removes a field's error once its value is non-blank.
// It reports whether an error was removed.
func (c *Controller) ClearFieldErrorIfFilled(field, value string, v *intro.Validator) bool {
	if v.Field(field, value) != nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.fieldErrors[field]; !ok {
		return false
	}
	delete(c.fieldErrors, field)
	return true
}

// ReplaceFieldErrors installs the result of a full-form validation.
func (c *Controller) ReplaceFieldErrors(errs intro.FieldErrors) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fieldErrors = intro.FieldErrors{}
	maps.Copy(c.fieldErrors, errs)
}

func (c *Controller) FieldError(field string) (intro.FieldError, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fe, ok := c.fieldErrors[field]
	return fe, ok
}

func (c *Controller) SetDraft(draft map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = maps.Clone(draft)
	if c.draft == nil {
		c.draft = map[string]string{}
	}
}

// ResetForm clears the draft and every inline error.
func (c *Controller) ResetForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = map[string]string{}
	c.fieldErrors = intro.FieldErrors{}
}

// BeginSubmit takes the submit guard.
func (c *Controller) BeginSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitInProgress
	}
	c.submitting = true
	return nil
}

func (c *Controller) EndSubmit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
}

// Snapshot is an immutable copy of the controller for rendering.
type Snapshot struct {
	State       ListState
	Records     []intro.Record
	LoadErr     error
	Toast       *Toast
	FieldErrors intro.FieldErrors
	Draft       map[string]string
	Submitting  bool
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:       c.state,
		Records:     slices.Clone(c.records),
		LoadErr:     c.loadErr,
		FieldErrors: maps.Clone(c.fieldErrors),
		Draft:       maps.Clone(c.draft),
		Submitting:  c.submitting,
	}
	if t, ok := c.activeToast(); ok {
		snap.Toast = &t
	}
	return snap
}
