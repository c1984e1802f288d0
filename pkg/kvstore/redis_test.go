package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the three commands the store issues.
type fakeRedis struct {
	redis.Cmdable
	data    map[string]string
	failSet bool
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.failSet {
		return redis.NewStatusResult("", errors.New("OOM command not allowed"))
	}
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedis{data: map[string]string{}}
	store := NewRedisStore(fake, "pass:")

	_, err := store.Get(ctx, "school_pass_staff_db")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "school_pass_staff_db", "[]"))
	assert.Equal(t, "[]", fake.data["pass:school_pass_staff_db"])

	value, err := store.Get(ctx, "school_pass_staff_db")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	require.NoError(t, store.Remove(ctx, "school_pass_staff_db"))
	assert.Empty(t, fake.data)
}

func TestRedisStoreSetError(t *testing.T) {
	store := NewRedisStore(&fakeRedis{data: map[string]string{}, failSet: true}, "")
	err := store.Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
