package lfblur

// bufferRows is how many frame rows of history the window buffer retains.
// The 7x7 kernel needs its full lag span (6 rows + 6 pixels) plus another
// 3 rows + 3 pixels of lookback so that a centered window can still reach
// its oldest tap when the output lags the input by the full window span.
const bufferSlots = 6*(FrameWidth+1) + 3*(FrameWidth+1) + 1

// WindowBuffer holds the most recent pixel samples of all three channels in
// fixed-capacity ring buffers and tracks raster position within the current
// capture. Pushes are O(1); lookups address samples by their absolute
// valid-sample index so the convolution window can slide freely over the
// retained history.
//
// Buffer contents are deliberately never cleared: a start-of-capture only
// resets the position and fill counters, so stale pixels from the previous
// stream naturally age out as new samples arrive.
type WindowBuffer struct {
	rings [3][bufferSlots]uint8

	pushed    int // absolute count of valid samples ever absorbed
	frameBase int // absolute index of the current capture's first sample

	row, col int // raster position of the next input sample, mod 64
	fill     int // valid samples since start-of-capture, saturating
	full     int // fill level at which the window is complete: lag+1
}

// NewWindowBuffer creates a zeroed buffer sized for the given kernel's lag.
func NewWindowBuffer(k Kernel) *WindowBuffer {
	return &WindowBuffer{full: k.Lag() + 1}
}

// StartCapture resets raster tracking and the fill counter for a new frame.
// Stored samples are kept.
func (b *WindowBuffer) StartCapture() {
	b.row, b.col = 0, 0
	b.fill = 0
	b.frameBase = b.pushed
}

// Push absorbs one valid sample into all three channel rings and advances
// the raster counters.
func (b *WindowBuffer) Push(r, g, b8 uint8) {
	slot := b.pushed % bufferSlots
	b.rings[ChannelRed][slot] = r
	b.rings[ChannelGreen][slot] = g
	b.rings[ChannelBlue][slot] = b8
	b.pushed++

	if b.fill < b.full {
		b.fill++
	}

	b.col++
	if b.col == FrameWidth {
		b.col = 0
		b.row = (b.row + 1) % FrameHeight
	}
}

// At returns the stored sample for the given absolute valid-sample index.
// The caller derives indices from the kernel geometry, which keeps them
// within the retained span for any well-formed stream; indices outside it
// read whatever the ring currently holds, which is deterministic but stale.
func (b *WindowBuffer) At(ch Channel, index int) uint8 {
	slot := index % bufferSlots
	if slot < 0 {
		slot += bufferSlots
	}
	return b.rings[ch][slot]
}

// Window addresses the sample at offset row*64+col ahead of the given
// window head, where head is an absolute valid-sample index.
func (b *WindowBuffer) Window(ch Channel, head, row, col int) uint8 {
	return b.At(ch, head+row*FrameWidth+col)
}

// Full reports whether enough samples have been absorbed since the last
// start-of-capture for the window to produce outputs.
func (b *WindowBuffer) Full() bool { return b.fill >= b.full }

// Fill returns the saturating count of valid samples since start-of-capture.
func (b *WindowBuffer) Fill() int { return b.fill }

// FrameBase returns the absolute index of the current capture's first sample.
func (b *WindowBuffer) FrameBase() int { return b.frameBase }

// Position returns the raster position the next valid input will occupy.
func (b *WindowBuffer) Position() (row, col int) { return b.row, b.col }
