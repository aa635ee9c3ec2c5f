// Package kv holds the string-keyed persistent store the engines read and
// write JSON documents through.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Store is a synchronous string-keyed store. Get returns domain.ErrNotFound
// for absent keys; Remove of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DecodeError reports a stored value that is not valid JSON for its key.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Key scopes name to a session. An empty scope yields the bare name.
func Key(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + ":" + name
}

// LoadJSON reads key and unmarshals it into v. It returns domain.ErrNotFound
// when the key is absent and a *DecodeError when the value is malformed.
func LoadJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &DecodeError{Key: key, Err: err}
	}
	return nil
}

// SaveJSON marshals v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}

// IsDecodeError reports whether err carries a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
