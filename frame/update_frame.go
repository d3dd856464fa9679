package frame

// UpdateFrame carries per-frame data handed to every System.
type UpdateFrame struct {
	// DeltaTime is the time since the previous frame, in seconds.
	DeltaTime float64
	// Tick is the scheduler's frame counter, starting at zero.
	Tick uint64
	// Commands collects work that must run after every system has executed.
	Commands *Commands
}

func newUpdateFrame(dt float64, tick uint64, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  commands,
	}
}
