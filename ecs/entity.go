package ecs

// EntityId is a plain integer handle. Ids are allocated in increasing order by a Storage
// and never reused, so ordering by id is ordering by creation. Zero is never a valid entity.
type EntityId uint32

// Valid reports whether the id could refer to an entity.
func (e EntityId) Valid() bool {
	return e != 0
}
