// Package capture turns frames of a display capture track into the two panel
// textures shown on the scene planes.
//
// Acquiring a track is the only slow operation and is bounded by
// MaxAcquireTimeout. Once running, a Capturer grabs one frame per tick, crops
// the left and right panel strips and writes them into their texture slots.
// A failed grab stops the capturer for good; there are no retries.
package capture

import (
	"context"
	"image"
	"sync/atomic"

	"github.com/rotisserie/eris"
)

var (
	// ErrStopped is returned by tracks and capturers after Stop.
	ErrStopped = eris.New("capture stopped")
	// ErrAcquireTimeout is returned when no track was acquired within the wait bound.
	ErrAcquireTimeout = eris.New("capture acquisition timed out")
	ErrNoFrame        = eris.New("track produced no frame")
)

// Track is a live capture source.
type Track interface {
	// GrabFrame returns the current frame.
	GrabFrame(ctx context.Context) (image.Image, error)
	// Stop releases the track. It is safe to call more than once.
	Stop()
}

// Acquirer requests a capture track, for example by asking the user to share
// a display. Acquire blocks until a track is granted, refused or ctx is done.
type Acquirer interface {
	Acquire(ctx context.Context) (Track, error)
}

// AcquirerFunc adapts a function to Acquirer.
type AcquirerFunc func(ctx context.Context) (Track, error)

func (f AcquirerFunc) Acquire(ctx context.Context) (Track, error) { return f(ctx) }

// ImageTrack is a Track over any image source.
type ImageTrack struct {
	source  func() image.Image
	stopped atomic.Bool
}

func NewImageTrack(source func() image.Image) *ImageTrack {
	return &ImageTrack{source: source}
}

func (t *ImageTrack) GrabFrame(ctx context.Context) (image.Image, error) {
	if t.stopped.Load() {
		return nil, ErrStopped
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "grab frame")
	}
	img := t.source()
	if img == nil {
		return nil, ErrNoFrame
	}
	return img, nil
}

func (t *ImageTrack) Stop() { t.stopped.Store(true) }

func (t *ImageTrack) Stopped() bool { return t.stopped.Load() }

// Acquire hands out the track itself, so an ImageTrack can be its own Acquirer.
func (t *ImageTrack) Acquire(ctx context.Context) (Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "acquire image track")
	}
	return t, nil
}
