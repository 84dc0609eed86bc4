package component

import "image/color"

// Tint overrides the default stroke/fill colour.
type Tint struct {
	Color color.Color
}

var TintComponent = NewComponent[Tint]()
