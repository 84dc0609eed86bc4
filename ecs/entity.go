package ecs

import "fmt"

// Entity is a generational handle: the slot index sits in the low 32 bits and
// the slot's generation in the high 32. A destroyed slot is reused with a
// bumped generation, so stale handles stop resolving.
type Entity uint64

type entityID uint32
type generation uint32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID { return entityID(e & 0xffffffff) }

func (e Entity) generation() generation { return generation(e >> 32) }

// Index is the storage slot; zero is never handed out.
func (e Entity) Index() uint32 { return uint32(e.id()) }

func (e Entity) Generation() uint32 { return uint32(e.generation()) }

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.Index(), e.Generation())
}

func (e Entity) Valid() bool {
	return e.id() != 0
}
