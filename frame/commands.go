package frame

// Commands buffers work deferred to the end of a frame.
// Renderers use it so that widget state settles before anything is drawn.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the frame is flushed. Nil functions are ignored.
func (c *Commands) Defer(fn func()) {
	if fn == nil {
		return
	}
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued functions.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs queued functions in order and resets the buffer.
// Functions deferred during a flush run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
