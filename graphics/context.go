package graphics

// Context defines the interface for an OpenGL window context and its input surface.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// PendingKeys returns the key presses seen since the last call, oldest first.
	PendingKeys() []string
}
