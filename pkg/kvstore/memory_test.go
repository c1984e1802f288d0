package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	require.NoError(t, store.Set(ctx, "k", "v2"))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)
	assert.Equal(t, []string{"k"}, store.Keys())

	require.NoError(t, store.Remove(ctx, "k"))
	require.NoError(t, store.Remove(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

type recordingObserver struct {
	ops  []string
	errs []error
}

func (o *recordingObserver) ObserveStoreOperation(op string, _ time.Duration, err error) {
	o.ops = append(o.ops, op)
	o.errs = append(o.errs, err)
}

type failingStore struct{ *MemoryStore }

func (f *failingStore) Set(context.Context, string, string) error { return errors.New("quota exceeded") }

func TestInstrumentedReportsOperations(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	store := NewInstrumented(&failingStore{MemoryStore: NewMemoryStore()}, obs)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, store.Set(ctx, "k", "v"))
	assert.NoError(t, store.Remove(ctx, "k"))

	assert.Equal(t, []string{"get", "set", "remove"}, obs.ops)
	assert.NoError(t, obs.errs[0])
	assert.EqualError(t, obs.errs[1], "quota exceeded")
}

func TestNewInstrumentedWithoutObserver(t *testing.T) {
	inner := NewMemoryStore()
	assert.Same(t, inner, NewInstrumented(inner, nil))
}
