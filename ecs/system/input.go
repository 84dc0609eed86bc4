package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
)

// InputSystem writes this tick's keyboard and mouse intents into the world's
// Input component, creating it on first use.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	in := ensureInput(w)
	if in == nil {
		return
	}

	cx, cy := ebiten.CursorPosition()
	*in = component.Input{
		CursorX:     float64(cx),
		CursorY:     float64(cy),
		SpawnCursor: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		SpawnRandom: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Reset:       inpututil.IsKeyJustPressed(ebiten.KeyR),
		ToggleDebug: inpututil.IsKeyJustPressed(ebiten.KeyF1),
		Copy:        inpututil.IsKeyJustPressed(ebiten.KeyC),
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		in.SpawnRandom = in.SpawnRandom || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Reset = in.Reset || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}
}

func ensureInput(w *ecs.World) *component.Input {
	if in, ok := currentInput(w); ok {
		return in
	}
	e := w.CreateEntity()
	in := &component.Input{}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), in); err != nil {
		return nil
	}
	return in
}

// currentInput returns the intents written by InputSystem this tick.
func currentInput(w *ecs.World) (*component.Input, bool) {
	e, ok := w.First(component.InputComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.InputComponent.Kind())
}
