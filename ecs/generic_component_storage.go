package ecs

import (
	"fmt"
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance is created from a registry, and several storages may share one.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
	order     []reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent declares a storage for component type T.
// This must be called for each component type before it can be attached to an entity.
// Registering the same type twice is a configuration error.
func RegisterComponent[T any](r *ComponentRegistry) error {
	t := reflect.TypeFor[T]()
	if err := checkComponentType(t); err != nil {
		return err
	}
	if _, ok := r.factories[t]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateComponent, t)
	}

	r.factories[t] = func() iComponentStorage {
		return newGenericComponentStorage[T](defaultStorageCapacity)
	}
	r.order = append(r.order, t)
	return nil
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// Types returns the registered component types in registration order.
func (r *ComponentRegistry) Types() []reflect.Type {
	out := make([]reflect.Type, len(r.order))
	copy(out, r.order)
	return out
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

// Components can be structs or primitives (int, string, etc.)
// but not pointers, maps, channels, or functions.
func checkComponentType(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return fmt.Errorf("%w: %s (components cannot be pointers, maps, channels, interfaces or functions)", ErrInvalidComponent, t)
	}
	return nil
}

const defaultStorageCapacity = 64

// genericComponentStorage is a sparse set for components of type T.
// dense and ids are parallel arrays; sparse maps an entity id to its dense index.
// Delete swaps the last element into the hole, so removal is O(1) and pointers returned by
// Get are only valid until the next Set or Delete on this storage.
type genericComponentStorage[T any] struct {
	sparse *intmap.Map[EntityId, int]
	dense  []T
	ids    []EntityId
}

func newGenericComponentStorage[T any](capacity int) *genericComponentStorage[T] {
	return &genericComponentStorage[T]{
		sparse: intmap.New[EntityId, int](capacity),
		dense:  make([]T, 0, capacity),
		ids:    make([]EntityId, 0, capacity),
	}
}

// Set stores item for id, overwriting any existing component of this kind.
func (cs *genericComponentStorage[T]) Set(id EntityId, item any) bool {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false
	}

	if idx, ok := cs.sparse.Get(id); ok {
		cs.dense[idx] = concreteItem
		return true
	}

	cs.sparse.Put(id, len(cs.dense))
	cs.dense = append(cs.dense, concreteItem)
	cs.ids = append(cs.ids, id)
	return true
}

// Get returns a pointer to the component of id, or nil.
func (cs *genericComponentStorage[T]) Get(id EntityId) any {
	idx, ok := cs.sparse.Get(id)
	if !ok {
		return nil
	}
	return &cs.dense[idx]
}

func (cs *genericComponentStorage[T]) Has(id EntityId) bool {
	_, ok := cs.sparse.Get(id)
	return ok
}

// Delete removes the component of id. Returns false if there was none.
func (cs *genericComponentStorage[T]) Delete(id EntityId) bool {
	idx, ok := cs.sparse.Get(id)
	if !ok {
		return false
	}

	last := len(cs.dense) - 1
	if idx != last {
		cs.dense[idx] = cs.dense[last]
		cs.ids[idx] = cs.ids[last]
		cs.sparse.Put(cs.ids[idx], idx)
	}

	var zero T
	cs.dense[last] = zero
	cs.dense = cs.dense[:last]
	cs.ids = cs.ids[:last]
	cs.sparse.Del(id)
	return true
}

func (cs *genericComponentStorage[T]) Len() int {
	return len(cs.dense)
}

// Ids returns the entities holding this kind, in dense order.
// The slice is owned by the storage.
func (cs *genericComponentStorage[T]) Ids() []EntityId {
	return cs.ids
}

func (cs *genericComponentStorage[T]) Clear() {
	clear(cs.dense)
	cs.dense = cs.dense[:0]
	cs.ids = cs.ids[:0]
	cs.sparse.Clear()
}
