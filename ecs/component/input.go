package component

// Input holds the intents read from devices this tick.
type Input struct {
	CursorX     float64
	CursorY     float64
	SpawnCursor bool
	SpawnRandom bool
	Reset       bool
	ToggleDebug bool
	Copy        bool
}

var InputComponent = NewComponent[Input]()
