package component

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

// Key identifies a component store regardless of its value type.
type Key interface {
	ID() ComponentID
}

var (
	nextComponentID atomic.Uint32
	names           sync.Map // ComponentID -> string
)

// ComponentKind is the typed key for one component store.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	names.Store(id, reflect.TypeFor[T]().Name())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Name is the component's Go type name, or "invalid" for the zero kind.
func (k ComponentKind[T]) Name() string {
	return Name(k.id)
}

// Name looks up the type name registered for id.
func Name(id ComponentID) string {
	if v, ok := names.Load(id); ok {
		return v.(string)
	}
	return "invalid"
}

// ComponentHandle is what packages export for each component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
