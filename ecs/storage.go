package ecs

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// Storage is the main ECS storage interface. It owns one sparse component storage per registered
// kind and the table of live entities.
type Storage struct {
	registry *ComponentRegistry
	storages map[reflect.Type]iComponentStorage
	logger   *zap.Logger

	alive    *intmap.Map[EntityId, int]
	entities []EntityId
	nextId   EntityId

	warned map[reflect.Type]bool
}

// StorageOption configures a Storage.
type StorageOption func(*Storage)

// WithLogger sets the logger used for tolerant warnings such as queries over unregistered kinds.
func WithLogger(logger *zap.Logger) StorageOption {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry, opts ...StorageOption) *Storage {
	s := &Storage{
		registry: registry,
		storages: make(map[reflect.Type]iComponentStorage),
		logger:   zap.NewNop(),
		alive:    intmap.New[EntityId, int](256),
		warned:   make(map[reflect.Type]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the registry the storage was created from.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// storageFor returns the component storage of t, creating it on first use.
// Returns nil if t is not registered.
func (s *Storage) storageFor(t reflect.Type) iComponentStorage {
	if cs, ok := s.storages[t]; ok {
		return cs
	}
	factory := s.registry.getFactory(t)
	if factory == nil {
		return nil
	}
	cs := factory()
	s.storages[t] = cs
	return cs
}

// lookup returns an existing component storage without creating one.
func (s *Storage) lookup(t reflect.Type) iComponentStorage {
	return s.storages[t]
}

func (s *Storage) warnUnregistered(t reflect.Type) {
	if s.warned[t] {
		return
	}
	s.warned[t] = true
	s.logger.Warn("query over unregistered component type", zap.Stringer("type", t))
}

// Spawn creates a new entity with the provided components.
// Construction is atomic: every component is validated before anything is stored, so on error
// no entity exists. When the same kind appears twice the later value wins.
func (s *Storage) Spawn(components ...any) (EntityId, error) {
	if len(components) == 0 {
		return 0, fmt.Errorf("%w: cannot spawn entity without components", ErrInvalidComponent)
	}

	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		t, err := s.componentType(comp)
		if err != nil {
			return 0, err
		}
		types[i] = t
	}

	s.nextId++
	id := s.nextId
	s.alive.Put(id, len(s.entities))
	s.entities = append(s.entities, id)

	for i, comp := range components {
		s.storageFor(types[i]).Set(id, comp)
	}
	return id, nil
}

// componentType resolves and validates the storage type of a component value.
func (s *Storage) componentType(component any) (reflect.Type, error) {
	if component == nil {
		return nil, fmt.Errorf("%w: nil component", ErrInvalidComponent)
	}

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	if err := checkComponentType(compType); err != nil {
		return nil, err
	}
	if !s.registry.Registered(compType) {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredComponent, compType)
	}
	return compType, nil
}

// Attach associates a component with an existing entity.
// Attaching a kind the entity already has overwrites the previous value.
func (s *Storage) Attach(id EntityId, component any) error {
	if !s.Alive(id) {
		return fmt.Errorf("%w: %d", ErrNoSuchEntity, id)
	}
	compType, err := s.componentType(component)
	if err != nil {
		return err
	}
	s.storageFor(compType).Set(id, component)
	return nil
}

// RemoveComponent detaches the component of compType from the entity.
// Returns false if the entity did not have it. An entity left without components stays alive.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	cs := s.lookup(compType)
	if cs == nil {
		return false
	}
	return cs.Delete(id)
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	idx, ok := s.alive.Get(id)
	if !ok {
		return
	}

	for _, cs := range s.storages {
		cs.Delete(id)
	}

	last := len(s.entities) - 1
	if idx != last {
		s.entities[idx] = s.entities[last]
		s.alive.Put(s.entities[idx], idx)
	}
	s.entities = s.entities[:last]
	s.alive.Del(id)
}

// Clear deletes every entity. Registered kinds and the id counter are kept.
func (s *Storage) Clear() {
	for _, cs := range s.storages {
		cs.Clear()
	}
	s.entities = s.entities[:0]
	s.alive.Clear()
}

// Alive reports whether the entity exists.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.alive.Get(id)
	return ok
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return len(s.entities)
}

// Entities returns the live entity ids in creation order.
func (s *Storage) Entities() []EntityId {
	out := slices.Clone(s.entities)
	slices.Sort(out)
	return out
}

// GetComponent returns a pointer to the component for the given entity ID and component type, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	cs := s.lookup(compType)
	if cs == nil {
		return nil
	}
	return cs.Get(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	cs := s.lookup(compType)
	if cs == nil {
		return false
	}
	return cs.Has(id)
}

// ComponentTypes returns the kinds attached to an entity, in registration order.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	var types []reflect.Type
	for _, t := range s.registry.order {
		if cs := s.lookup(t); cs != nil && cs.Has(id) {
			types = append(types, t)
		}
	}
	return types
}

// Count returns how many entities hold a component of compType.
func (s *Storage) Count(compType reflect.Type) int {
	cs := s.lookup(compType)
	if cs == nil {
		return 0
	}
	return cs.Len()
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the component of type T for the entity, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
