package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/kvesten/tankrange/combat"
)

// Input polls the keyboard and gamepad once per frame and resolves them into
// a combat.Intent snapshot. The combat core never sees raw device state.
type Input struct {
	intent combat.Intent
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	const stickDeadzone = 0.2

	forward := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	backward := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jump := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	fire := ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(leftY) > stickDeadzone {
			forward = forward || leftY < 0
			backward = backward || leftY > 0
		}
		if math.Abs(leftX) > stickDeadzone {
			left = left || leftX < 0
			right = right || leftX > 0
		}
		jump = jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		fire = fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	i.intent = combat.Intent{
		MoveForward:  forward,
		MoveBackward: backward,
		RotateLeft:   left,
		RotateRight:  right,
		Jump:         jump,
		Fire:         fire,
	}
}

// Intent returns the snapshot resolved by the last Update.
func (i *Input) Intent() combat.Intent {
	return i.intent
}
