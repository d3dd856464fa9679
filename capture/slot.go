package capture

import (
	"image"
	"sync"

	"github.com/rotisserie/eris"
)

// Texture is a fixed-size RGBA texture updated in place.
// *ebiten.Image satisfies it.
type Texture interface {
	WritePixels(pix []byte)
}

// TextureFactory allocates textures.
type TextureFactory interface {
	NewTexture(width, height int) Texture
}

// TextureFactoryFunc adapts a function to TextureFactory.
type TextureFactoryFunc func(width, height int) Texture

func (f TextureFactoryFunc) NewTexture(width, height int) Texture { return f(width, height) }

// Slot holds at most one live texture. The first update allocates it and
// later updates write into it; the texture is never recreated.
//
// A slot is written by the capture loop and read by the render loop.
type Slot struct {
	name    string
	width   int
	height  int
	factory TextureFactory

	mu          sync.RWMutex
	texture     Texture
	allocations int
	updates     uint64
}

func NewSlot(name string, width, height int, factory TextureFactory) *Slot {
	return &Slot{name: name, width: width, height: height, factory: factory}
}

func (s *Slot) Name() string { return s.name }

// Size returns the texture dimensions in pixels.
func (s *Slot) Size() (width, height int) { return s.width, s.height }

// Update writes img into the slot's texture, allocating it on first use.
// img must match the slot size.
func (s *Slot) Update(img *image.RGBA) error {
	if img == nil {
		return eris.Errorf("slot %s: nil image", s.name)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != s.width || h != s.height {
		return eris.Errorf("slot %s: image is %dx%d, want %dx%d", s.name, w, h, s.width, s.height)
	}
	if img.Stride != 4*s.width {
		img = compact(img)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.texture == nil {
		if s.factory == nil {
			return eris.Errorf("slot %s: no texture factory", s.name)
		}
		s.texture = s.factory.NewTexture(s.width, s.height)
		s.allocations++
	}
	s.texture.WritePixels(img.Pix[:4*s.width*s.height])
	s.updates++
	return nil
}

// Texture returns the slot texture, or false before the first frame.
func (s *Slot) Texture() (Texture, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.texture, s.texture != nil
}

// Allocations returns how many textures the slot has created.
func (s *Slot) Allocations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allocations
}

func (s *Slot) Updates() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updates
}

// compact copies img into a new RGBA whose rows are contiguous.
func compact(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], img.Pix[src:src+4*b.Dx()])
	}
	return out
}
