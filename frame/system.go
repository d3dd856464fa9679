package frame

// System is a behavior run once per frame by a Scheduler.
// Implementations keep whatever state they need between frames on the receiver.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

// Execute calls f(frame).
func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
