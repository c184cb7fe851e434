package lfblur

import "github.com/mberva/go-lfblur/lfblur/fixed"

// Pixel is one Q12.12 RGB output pixel.
type Pixel struct {
	R, G, B uint32
}

// FrameBuffer holds one assembled 64x64 output frame.
type FrameBuffer struct {
	pixels []Pixel
}

// NewFrameBuffer creates a zeroed 64x64 frame.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{pixels: make([]Pixel, FramePixels)}
}

func (fb *FrameBuffer) GetPixel(x, y int) Pixel {
	return fb.pixels[y*FrameWidth+x]
}

func (fb *FrameBuffer) SetPixel(x, y int, p Pixel) {
	fb.pixels[y*FrameWidth+x] = p
}

// ToSlice returns the backing pixel slice in raster order.
func (fb *FrameBuffer) ToSlice() []Pixel {
	return fb.pixels
}

// RGBA8 converts the pixel at (x, y) to 8-bit channels for display.
func (fb *FrameBuffer) RGBA8(x, y int) (r, g, b uint8) {
	p := fb.GetPixel(x, y)
	return fixed.ToU8(p.R), fixed.ToU8(p.G), fixed.ToU8(p.B)
}

// Collector reassembles the filter's output stream into completed frames
// using the re-timed framing signals: a frame opens on an SOC pulse,
// accumulates valid outputs in raster order and closes on the EOC pulse.
type Collector struct {
	current *FrameBuffer
	idx     int
	frames  []*FrameBuffer
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Feed absorbs one output tick. Invalid ticks outside a drain are ignored.
func (c *Collector) Feed(out Output) {
	if out.SOC {
		c.current = NewFrameBuffer()
		c.idx = 0
	}
	if c.current == nil || !out.Valid {
		return
	}
	if c.idx < FramePixels {
		c.current.pixels[c.idx] = Pixel{R: out.R, G: out.G, B: out.B}
		c.idx++
	}
	if out.EOC {
		c.frames = append(c.frames, c.current)
		c.current = nil
	}
}

// Frames returns the completed frames collected so far.
func (c *Collector) Frames() []*FrameBuffer {
	return c.frames
}
