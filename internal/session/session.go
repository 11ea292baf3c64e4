package session

import (
	"context"
	"encoding/json"
	"fmt"
)

const keyFlash = "flash"

// Session is the state of one visitor for the duration of a request.
type Session struct {
	ID    string
	store Store
}

func New(id string, store Store) *Session {
	return &Session{ID: id, store: store}
}

// GetJSON decodes the value under key into out. It reports false when the key is unset.
func (s *Session) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := s.store.Get(ctx, s.ID, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode session %s: %w", key, err)
	}
	return true, nil
}

func (s *Session) SetJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", key, err)
	}
	return s.store.Set(ctx, s.ID, key, string(b))
}

func (s *Session) Delete(ctx context.Context, keys ...string) error {
	return s.store.Delete(ctx, s.ID, keys...)
}

// Flash stores a one-shot notice shown on the next rendered page.
func (s *Session) Flash(ctx context.Context, msg string) error {
	return s.SetJSON(ctx, keyFlash, msg)
}

// PopFlash returns the pending notice, if any, and clears it.
func (s *Session) PopFlash(ctx context.Context) (string, error) {
	var msg string
	ok, err := s.GetJSON(ctx, keyFlash, &msg)
	if err != nil || !ok {
		return "", err
	}
	return msg, s.Delete(ctx, keyFlash)
}

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached by Manager.Middleware, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
