package ecs

import (
	"iter"
	"reflect"
	"slices"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a join over entities with a specific combination of components.
// The type T should be a struct with embedded or named pointer fields for each component type.
// A field of type EntityId (embedded or named) receives the entity's id.
// Named pointer fields can be marked optional using the `ecs:"optional"` struct tag.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffsets   []uintptr
}

// NewView creates a new view for the given struct type.
// Embedded pointer fields are always required.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			v.idOffsets = append(v.idOffsets, field.Offset)
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or ecs.EntityId")
		}

		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.optional = append(v.optional, isOptional)
	}

	return v
}

// storages resolves the component storages for this view. ok is false when no entity can match,
// either because a required kind is unregistered or because nobody holds it yet.
// driver is the smallest required storage, or nil when every component is optional.
func (v *View[T]) storages() (storages []iComponentStorage, driver iComponentStorage, ok bool) {
	storages = make([]iComponentStorage, len(v.types))
	for i, t := range v.types {
		if !v.storage.registry.Registered(t) {
			if !v.optional[i] {
				v.storage.warnUnregistered(t)
				return nil, nil, false
			}
			continue
		}

		cs := v.storage.lookup(t)
		storages[i] = cs
		if v.optional[i] {
			continue
		}
		if cs == nil || cs.Len() == 0 {
			return nil, nil, false
		}
		if driver == nil || cs.Len() < driver.Len() {
			driver = cs
		}
	}
	return storages, driver, true
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, id EntityId, storages []iComponentStorage) bool {
	for i, cs := range storages {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		var component any
		if cs != nil {
			component = cs.Get(id)
		}

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		// Point the field at the stored component without going through reflection.
		componentPtr := (*iface)(unsafe.Pointer(&component)).data
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}

	for _, off := range v.idOffsets {
		*(*EntityId)(unsafe.Pointer(uintptr(resultPtr) + off)) = id
	}
	return true
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Alive(id) {
		return false
	}
	storages, _, ok := v.storages()
	if !ok {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), id, storages)
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter returns a lazy iterator over all entities that have all the required components,
// in creation order. Entities deleted while iterating are skipped; entities spawned while
// iterating are not visited.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		storages, driver, ok := v.storages()
		if !ok {
			return
		}

		var ids []EntityId
		if driver != nil {
			ids = slices.Clone(driver.Ids())
		} else {
			ids = slices.Clone(v.storage.entities)
		}
		slices.Sort(ids)

		var result T
		resultPtr := unsafe.Pointer(&result)

		for _, id := range ids {
			if !v.populate(resultPtr, id, storages) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with components copied from the view struct.
// Nil optional fields are skipped.
func (v *View[T]) Spawn(data T) (EntityId, error) {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])
		componentPtr := *(*unsafe.Pointer)(fieldPtr)

		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}

		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}
