package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

// InputSystem samples the mouse and gamepad into the camera rig's Input.
type InputSystem struct {
	lastX, lastY int
	havePrev     bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2
	const stickSpeed = 12.0 // pixels per frame at full deflection

	x, y := ebiten.CursorPosition()
	dx, dy := 0.0, 0.0
	if i.havePrev {
		dx = float64(x - i.lastX)
		dy = float64(y - i.lastY)
	}
	i.lastX, i.lastY, i.havePrev = x, y, true

	var in component.Input
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		in.DragX, in.DragY = dx, dy
	}
	_, in.Wheel = ebiten.Wheel()
	if ebiten.CursorMode() == ebiten.CursorModeCaptured {
		in.LookX, in.LookY = dx, dy
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			in.LookX += rx * stickSpeed
			in.LookY += ry * stickSpeed
			in.DragX += rx * stickSpeed
			in.DragY += ry * stickSpeed
		}
	}

	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, input *component.Input) {
		*input = in
	})
}
