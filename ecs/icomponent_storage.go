package ecs

// iComponentStorage is a type-erased storage for one component kind, keyed by entity id.
type iComponentStorage interface {
	Set(id EntityId, item any) bool
	Get(id EntityId) any
	Has(id EntityId) bool
	Delete(id EntityId) bool
	Len() int
	Ids() []EntityId
	Clear()
}
