package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"parcelhub/internal/core/domain/model/event"
)

var (
	ErrHandlerAlreadyRegistered = errors.New("event handler already registered")
	ErrHandlerNotRegistered     = errors.New("event handler not registered")
	ErrHandlerIsRequired        = errors.New("event handler is required")
)

// Handler reacts to one committed event.
type Handler func(ctx context.Context, e event.Event) error

// Registry maps each event kind to exactly one handler.
type Registry struct {
	mu       sync.RWMutex
	handlers map[event.Kind]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[event.Kind]Handler)}
}

func (r *Registry) Register(kind event.Kind, handler Handler) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if handler == nil {
		return ErrHandlerIsRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[kind]; exists {
		return fmt.Errorf("%w: %s", ErrHandlerAlreadyRegistered, kind)
	}
	r.handlers[kind] = handler
	return nil
}

func (r *Registry) Lookup(kind event.Kind) (Handler, error) {
	r.mu.RLock()
	handler, ok := r.handlers[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotRegistered, kind)
	}
	return handler, nil
}
