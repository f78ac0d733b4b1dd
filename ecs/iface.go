package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value holding a pointer.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
