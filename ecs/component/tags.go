package component

import "github.com/milk9111/randpoly/geometry"

type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()

// Spawned records how a polygon entity was generated.
type Spawned struct {
	Index  int
	Params geometry.Params
}

var SpawnedComponent = NewComponent[Spawned]()
