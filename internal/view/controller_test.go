package view

import (
	"errors"
	"sync"
	"testing"
	"time"

	"introboard/internal/intro"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)}
}

func TestController_StartsLoading(t *testing.T) {
	assert.Equal(t, StateLoading, NewController().State())
}

func TestController_LoadOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		records []intro.Record
		err     error
		want    ListState
	}{
		{"populated", []intro.Record{{Name: "Kim"}}, nil, StatePopulated},
		{"empty", nil, nil, StateEmpty},
		{"empty slice", []intro.Record{}, nil, StateEmpty},
		{"error", nil, errors.New("offline"), StateError},
		{"error wins over records", []intro.Record{{Name: "Kim"}}, errors.New("offline"), StateError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			require.NoError(t, c.FinishLoad(tt.records, tt.err))
			snap := c.Snapshot()
			assert.Equal(t, tt.want, snap.State)
			if tt.want == StateError {
				assert.Equal(t, tt.err, snap.LoadErr)
				assert.Empty(t, snap.Records)
			}
		})
	}
}

func TestController_RejectsInvalidTransitions(t *testing.T) {
	c := NewController()
	require.NoError(t, c.FinishLoad([]intro.Record{{Name: "Kim"}}, nil))

	err := c.FinishLoad(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatePopulated, c.State(), "state must be unchanged")

	assert.ErrorIs(t, c.Retry(), ErrInvalidTransition)
}

func TestController_RetryFromError(t *testing.T) {
	c := NewController()
	require.NoError(t, c.FinishLoad(nil, errors.New("offline")))

	require.NoError(t, c.Retry())

	snap := c.Snapshot()
	assert.Equal(t, StateLoading, snap.State)
	assert.Nil(t, snap.LoadErr)
}

func TestController_ReloadAfterPopulated(t *testing.T) {
	c := NewController()
	require.NoError(t, c.FinishLoad([]intro.Record{{Name: "Kim"}}, nil))
	require.NoError(t, c.BeginLoad())
	assert.Equal(t, StateLoading, c.State())

	require.NoError(t, c.BeginLoad(), "begin while loading is a no-op")
	assert.Equal(t, StateLoading, c.State())
}

func TestController_RecordsStoredNewestFirst(t *testing.T) {
	c := NewController()
	require.NoError(t, c.FinishLoad([]intro.Record{
		{Name: "old", Timestamp: "2024-01-01T00:00:00.000Z"},
		{Name: "new", Timestamp: "2025-01-01T00:00:00.000Z"},
	}, nil))

	snap := c.Snapshot()
	require.Len(t, snap.Records, 2)
	assert.Equal(t, "new", snap.Records[0].Name)
}

func TestController_ToastExpires(t *testing.T) {
	clock := newClock()
	c := NewController(WithClock(clock.Now), WithToastDuration(5*time.Second))

	shown := c.ShowToast(ToastSuccess, "done", nil)
	assert.NotEmpty(t, shown.ID)

	clock.Advance(4 * time.Second)
	got, ok := c.ActiveToast()
	require.True(t, ok)
	assert.Equal(t, shown.ID, got.ID)

	clock.Advance(time.Second)
	_, ok = c.ActiveToast()
	assert.False(t, ok)
	assert.Nil(t, c.Snapshot().Toast)
}

func TestController_NewToastEvictsOld(t *testing.T) {
	c := NewController(WithClock(newClock().Now))

	first := c.ShowToast(ToastError, "first", nil)
	second := c.ShowToast(ToastSuccess, "second", nil)

	got, ok := c.ActiveToast()
	require.True(t, ok)
	assert.NotEqual(t, first.ID, got.ID)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "second", got.Message)

	c.DismissToast()
	_, ok = c.ActiveToast()
	assert.False(t, ok)
}

func TestController_FieldErrors(t *testing.T) {
	v := intro.NewValidator(nil)
	c := NewController()

	c.SetFieldError("name", v.Field("name", "  "))
	_, ok := c.FieldError("name")
	require.True(t, ok)

	assert.False(t, c.ClearFieldErrorIfFilled("name", " ", v), "blank input keeps the error")
	_, ok = c.FieldError("name")
	assert.True(t, ok)

	assert.True(t, c.ClearFieldErrorIfFilled("name", "Kim", v))
	_, ok = c.FieldError("name")
	assert.False(t, ok)

	c.SetFieldError("name", &intro.FieldError{Field: "name", Code: intro.CodeRequired})
	c.SetFieldError("name", nil)
	_, ok = c.FieldError("name")
	assert.False(t, ok)
}

func TestController_ReplaceFieldErrorsAndReset(t *testing.T) {
	c := NewController()
	c.SetFieldError("tmi", &intro.FieldError{Field: "tmi", Code: intro.CodeRequired})
	c.ReplaceFieldErrors(intro.FieldErrors{"name": {Field: "name", Code: intro.CodeRequired}})
	c.SetDraft(map[string]string{"name": ""})

	snap := c.Snapshot()
	assert.Len(t, snap.FieldErrors, 1)
	assert.Contains(t, snap.FieldErrors, "name")

	c.ResetForm()
	snap = c.Snapshot()
	assert.Empty(t, snap.FieldErrors)
	assert.Empty(t, snap.Draft)
}

func TestController_SubmitGuard(t *testing.T) {
	c := NewController()
	require.NoError(t, c.BeginSubmit())
	assert.ErrorIs(t, c.BeginSubmit(), ErrSubmitInProgress)
	assert.True(t, c.Snapshot().Submitting)

	c.EndSubmit()
	assert.NoError(t, c.BeginSubmit())
}

func TestController_SnapshotIsACopy(t *testing.T) {
	c := NewController()
	c.SetDraft(map[string]string{"name": "Kim"})

	snap := c.Snapshot()
	snap.Draft["name"] = "changed"

	assert.Equal(t, "Kim", c.Snapshot().Draft["name"])
}

func TestListState_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "populated", StatePopulated.String())
	assert.Equal(t, "ListState(9)", ListState(9).String())
}
