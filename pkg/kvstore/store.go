// Package kvstore provides the string key-value stores the record collections
// live in. Every backend offers the same synchronous contract: values are
// opaque strings, there are no transactions and no expiry.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the persistent key-value contract.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Observer receives timing for each store operation.
type Observer interface {
	ObserveStoreOperation(op string, duration time.Duration, err error)
}

// Instrumented decorates a Store with operation timing.
type Instrumented struct {
	next     Store
	observer Observer
}

// NewInstrumented wraps next. A nil observer returns next unchanged.
func NewInstrumented(next Store, observer Observer) Store {
	if observer == nil {
		return next
	}
	return &Instrumented{next: next, observer: observer}
}

func (s *Instrumented) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	value, err := s.next.Get(ctx, key)
	// a miss is a normal answer, not a failure
	if errors.Is(err, ErrNotFound) {
		s.observer.ObserveStoreOperation("get", time.Since(start), nil)
	} else {
		s.observer.ObserveStoreOperation("get", time.Since(start), err)
	}
	return value, err
}

func (s *Instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observer.ObserveStoreOperation("set", time.Since(start), err)
	return err
}

func (s *Instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Remove(ctx, key)
	s.observer.ObserveStoreOperation("remove", time.Since(start), err)
	return err
}
