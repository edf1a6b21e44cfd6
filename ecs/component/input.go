package component

// Input stores per-frame pointer state for the camera rig.
type Input struct {
	DragX float64 // pixels, desktop orbit
	DragY float64
	Wheel float64
	LookX float64 // pixels, immersive head look
	LookY float64
}

var InputComponent = NewComponent[Input]()
