package lfblur

// rawAlignShift aligns an 8-bit sample into Q12.12: twelve fractional bits
// plus four extra integer bits place the value in the 12-bit integer field.
const rawAlignShift = 16

type filterState int

const (
	stateIdle filterState = iota
	stateFilling
	stateSteady
	stateDraining
)

// Filter is the convolution pipeline core: it absorbs one sample per tick,
// convolves the sliding window once enough samples have accumulated, and
// re-times the framing signals across the kernel's latency.
//
// The filter models a single clock domain: Tick must be called exactly once
// per cycle from a single goroutine. Every computed output passes through
// one register stage, so it appears on the tick after it was produced.
type Filter struct {
	kernel Kernel
	buf    *WindowBuffer

	state     filterState
	outIdx    int // index of the next output pixel within the frame
	drainLeft int // ticks left to flush the pipeline after end-of-capture

	pendSOLF bool // light-field start latched, waiting for the SOC pulse
	pendEOLF bool // light-field end latched, waiting for the EOC pulse
	socSent  bool
	eocSent  bool

	reg Output // output register
}

// NewFilter builds a filter for the given kernel with all state zeroed.
func NewFilter(k Kernel) *Filter {
	return &Filter{kernel: k, buf: NewWindowBuffer(k)}
}

// Kernel returns the filter's configured kernel.
func (f *Filter) Kernel() Kernel { return f.kernel }

// Idle reports whether no capture is in flight.
func (f *Filter) Idle() bool { return f.state == stateIdle }

// Tick advances the pipeline by one clock cycle and returns the output for
// this cycle. The returned sample is the one computed on the previous tick;
// the current input's effect becomes visible one tick later.
func (f *Filter) Tick(in Sample) Output {
	out := f.reg
	f.reg = f.advance(in)
	return out
}

func (f *Filter) advance(in Sample) Output {
	var out Output

	if in.Valid && in.SOC {
		// A start-of-capture always wins: counters reset and any
		// in-flight drain is abandoned. Back-to-back captures closer
		// than the kernel lag therefore lose the tail of the previous
		// frame; callers must space captures by at least Lag() cycles.
		f.startCapture()
	}

	if in.Valid {
		if in.SOLF {
			f.pendSOLF = true
		}
		if in.EOLF {
			f.pendEOLF = true
		}
		f.buf.Push(in.R, in.G, in.B)
	}

	switch f.state {
	case stateFilling, stateSteady:
		if in.Valid && f.buf.Full() {
			f.state = stateSteady
			out = f.emit()
		}
		if in.Valid && in.EOC {
			if f.kernel.Lag() == 0 {
				f.finishCapture(&out)
			} else {
				f.state = stateDraining
				f.drainLeft = f.kernel.Lag()
			}
		}
	case stateDraining:
		// No more valid inputs belong to this capture; the remaining
		// outputs are clocked out on raw ticks.
		out = f.emit()
		f.drainLeft--
		if f.drainLeft == 0 {
			f.finishCapture(&out)
		}
	}

	return out
}

func (f *Filter) startCapture() {
	f.buf.StartCapture()
	f.state = stateFilling
	f.outIdx = 0
	f.drainLeft = 0
	f.pendSOLF = false
	f.pendEOLF = false
	f.socSent = false
	f.eocSent = false
}

func (f *Filter) finishCapture(out *Output) {
	if !f.eocSent {
		out.EOC = true
		out.EOLF = f.pendEOLF
		f.pendEOLF = false
		f.eocSent = true
	}
	f.state = stateIdle
	f.drainLeft = 0
}

// emit produces the next output pixel of the current frame.
func (f *Filter) emit() Output {
	row := (f.outIdx / FrameWidth) % FrameHeight
	col := f.outIdx % FrameWidth

	out := Output{Valid: true}
	if f.interior(row, col) {
		out.R = f.convolve(ChannelRed)
		out.G = f.convolve(ChannelGreen)
		out.B = f.convolve(ChannelBlue)
	} else {
		// Border pixels bypass convolution and forward the raw stored
		// sample at the output position, aligned into Q12.12.
		base := f.buf.FrameBase() + f.outIdx
		out.R = uint32(f.buf.At(ChannelRed, base)) << rawAlignShift
		out.G = uint32(f.buf.At(ChannelGreen, base)) << rawAlignShift
		out.B = uint32(f.buf.At(ChannelBlue, base)) << rawAlignShift
	}

	if !f.socSent {
		out.SOC = true
		out.SOLF = f.pendSOLF
		f.pendSOLF = false
		f.socSent = true
	}

	f.outIdx++
	return out
}

// interior reports whether the full kernel window around this position lies
// inside the frame.
func (f *Filter) interior(row, col int) bool {
	m := f.kernel.Margin()
	return row >= m && row <= FrameHeight-1-m &&
		col >= m && col <= FrameWidth-1-m
}

// convolve computes the weighted window sum for one channel and scales it
// into Q12.12. The window is centered on the output position: its head sits
// margin rows and margin columns behind it. The sum fits in 15 bits (an
// 8-bit sample shifted by at most 2, over at most 49 taps), so the scaled
// result fits the 24-bit output word.
func (f *Filter) convolve(ch Channel) uint32 {
	k := f.kernel
	head := f.buf.FrameBase() + f.outIdx - k.Margin()*(FrameWidth+1)

	var sum uint32
	for r := 0; r < k.Size(); r++ {
		for c := 0; c < k.Size(); c++ {
			sum += uint32(f.buf.Window(ch, head, r, c)) << k.shift(r, c)
		}
	}
	return sum << k.ScaleShift()
}
