package frame

import "time"

// Timer measures the delta between consecutive frames.
type Timer struct {
	last time.Time
	now  func() time.Time
}

func NewTimer() *Timer {
	return &Timer{last: time.Now(), now: time.Now}
}

// Delta returns the seconds elapsed since the previous call (or since NewTimer).
func (t *Timer) Delta() float64 {
	now := t.now()
	delta := now.Sub(t.last).Seconds()
	t.last = now
	return delta
}
