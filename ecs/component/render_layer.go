package component

// Draw layers, back to front.
const (
	LayerGround = iota
	LayerPolygon
)

// RenderLayer orders drawing; lower indices draw first and ties keep entity order.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
