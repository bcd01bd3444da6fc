package combat

// Intent is a resolved per-tick snapshot of discrete player actions. It is
// produced fresh every tick by the input layer and never retained across
// ticks. The zero value means "no action", so a missing or partly filled
// intent is harmless.
type Intent struct {
	MoveForward  bool
	MoveBackward bool
	RotateLeft   bool
	RotateRight  bool
	Jump         bool
	Fire         bool
}
