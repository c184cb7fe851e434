package lfblur

const (
	// FrameWidth and FrameHeight are fixed by the pixel pipeline: every
	// capture is a 64x64 raster-scanned frame.
	FrameWidth  = 64
	FrameHeight = 64
	FramePixels = FrameWidth * FrameHeight
)

// Channel selects one of the three color planes of the pipeline.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
)

// Sample is one input tick of the pixel stream: an 8-bit RGB pixel, a
// validity flag and the four framing signals. Framing signals are only
// meaningful on valid samples.
type Sample struct {
	R, G, B uint8

	Valid bool
	SOC   bool // start of capture: first valid pixel of a frame
	EOC   bool // end of capture: last valid pixel of a frame
	SOLF  bool // start of light field
	EOLF  bool // end of light field
}

// PackRGB returns the sample's pixel as the 24-bit RGB888 word used by the
// simulation vector files ([23:16]=R, [15:8]=G, [7:0]=B).
func (s Sample) PackRGB() uint32 {
	return uint32(s.R)<<16 | uint32(s.G)<<8 | uint32(s.B)
}

// SampleFromRGB builds a valid sample from a packed 24-bit RGB888 word.
func SampleFromRGB(word uint32) Sample {
	return Sample{
		R:     uint8(word >> 16),
		G:     uint8(word >> 8),
		B:     uint8(word),
		Valid: true,
	}
}

// Output is one output tick of the pipeline: three Q12.12 fixed-point
// channels (24 bits each) plus the re-timed framing signals.
type Output struct {
	R, G, B uint32

	Valid bool
	SOC   bool
	EOC   bool
	SOLF  bool
	EOLF  bool
}
