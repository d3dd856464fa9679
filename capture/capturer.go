package capture

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/vconsole/frame"
)

// MaxAcquireTimeout bounds how long Start waits for a track.
const MaxAcquireTimeout = 60 * time.Second

// Options configures a capture session.
type Options struct {
	// PanelWidth is the width, in frame pixels, of each cropped strip.
	PanelWidth int
	// AcquireTimeout bounds the wait for a track. Zero or anything above
	// MaxAcquireTimeout means MaxAcquireTimeout.
	AcquireTimeout time.Duration
	Logger         zerolog.Logger
}

// Capturer feeds the left and right slots from a track, one frame per tick.
// It implements frame.System. Capture and Stop may be called from different
// goroutines.
type Capturer struct {
	session    uuid.UUID
	left       *Slot
	right      *Slot
	panelWidth int
	log        zerolog.Logger
	frames     atomic.Uint64

	mu      sync.Mutex
	track   Track
	stopped bool
	err     error
}

// Start acquires a track and returns a running Capturer. Acquisition failures
// are logged and returned; callers keep running without capture.
func Start(ctx context.Context, acquirer Acquirer, left, right *Slot, opts Options) (*Capturer, error) {
	session := uuid.New()
	log := opts.Logger.With().Str("session", session.String()).Logger()

	if acquirer == nil {
		return nil, eris.New("capture: no acquirer")
	}
	if opts.PanelWidth <= 0 {
		return nil, eris.Errorf("capture: panel width must be positive, got %d", opts.PanelWidth)
	}

	timeout := opts.AcquireTimeout
	if timeout <= 0 || timeout > MaxAcquireTimeout {
		timeout = MaxAcquireTimeout
	}
	acquireCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	track, err := acquirer.Acquire(acquireCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(acquireCtx.Err(), context.DeadlineExceeded) {
			err = eris.Wrapf(ErrAcquireTimeout, "after %s", timeout)
		} else {
			err = eris.Wrap(err, "acquire capture track")
		}
		log.Error().Err(err).Msg("capture unavailable")
		return nil, err
	}
	if track == nil {
		err := eris.New("acquirer returned no track")
		log.Error().Err(err).Msg("capture unavailable")
		return nil, err
	}

	log.Info().Dur("waited", time.Since(started)).Int("panel_width", opts.PanelWidth).Msg("capture started")
	return &Capturer{
		session:    session,
		track:      track,
		left:       left,
		right:      right,
		panelWidth: opts.PanelWidth,
		log:        log,
	}, nil
}

func (c *Capturer) Session() uuid.UUID { return c.session }

// Frames returns the number of frames written to the slots.
func (c *Capturer) Frames() uint64 { return c.frames.Load() }

func (c *Capturer) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// Err returns the error that stopped the capturer, if any.
func (c *Capturer) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Execute implements frame.System.
func (c *Capturer) Execute(*frame.UpdateFrame) {
	_ = c.Capture(context.Background())
}

// Capture grabs one frame and updates both slots. A grab failure stops the
// capturer; it is logged once and returned.
func (c *Capturer) Capture(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return ErrStopped
	}

	img, err := c.track.GrabFrame(ctx)
	if err == nil && img == nil {
		err = ErrNoFrame
	}
	if err != nil {
		c.err = eris.Wrap(err, "grab frame")
		c.log.Warn().Err(c.err).Uint64("frames", c.frames.Load()).Msg("capture failed, stopping")
		c.stop()
		return c.err
	}

	leftRect, rightRect := CropRegions(img.Bounds(), c.panelWidth)
	c.feed(c.left, img, leftRect)
	c.feed(c.right, img, rightRect)
	c.frames.Add(1)
	return nil
}

func (c *Capturer) feed(slot *Slot, img image.Image, region image.Rectangle) {
	if slot == nil || region.Empty() {
		return
	}
	crop := transform.Crop(img, region)
	w, h := slot.Size()
	if crop.Bounds().Dx() != w || crop.Bounds().Dy() != h {
		crop = transform.Resize(crop, w, h, transform.Linear)
	}
	if err := slot.Update(crop); err != nil {
		c.log.Debug().Err(err).Str("slot", slot.Name()).Msg("slot update skipped")
	}
}

// Stop releases the track. Later ticks do nothing. Stop is idempotent.
func (c *Capturer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stop()
}

func (c *Capturer) stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	if c.track != nil {
		c.track.Stop()
		c.track = nil
	}
	c.log.Info().Uint64("frames", c.frames.Load()).Msg("capture stopped")
}

// CropRegions returns the left and right strips of a frame: panelWidth wide
// (clamped to the frame width), anchored at the left and right edges and
// sharing the frame's height.
func CropRegions(bounds image.Rectangle, panelWidth int) (left, right image.Rectangle) {
	w := min(panelWidth, bounds.Dx())
	if w <= 0 {
		return image.Rectangle{}, image.Rectangle{}
	}
	left = image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+w, bounds.Max.Y)
	right = image.Rect(bounds.Max.X-w, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	return left, right
}
