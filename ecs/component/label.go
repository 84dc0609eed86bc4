package component

import "image/color"

// Label is text drawn at the entity centre. An empty Text shows "<n>-gon" for
// polygon entities. A nil Color draws white.
type Label struct {
	Text  string
	Color color.Color
}

var LabelComponent = NewComponent[Label]()
