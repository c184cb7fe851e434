package harness

import (
	"math/rand"

	"github.com/mberva/go-lfblur/lfblur"
)

// RawFrame is one 64x64 capture of 8-bit RGB pixels in raster order.
type RawFrame struct {
	R, G, B [lfblur.FramePixels]uint8
}

// UniformFrame returns a capture with every pixel set to the same value.
func UniformFrame(r, g, b uint8) *RawFrame {
	var f RawFrame
	for i := 0; i < lfblur.FramePixels; i++ {
		f.R[i], f.G[i], f.B[i] = r, g, b
	}
	return &f
}

// GapConfig controls the invalid cycles injected around captures, imitating
// the timing gaps of a real sensor stream. All ranges are inclusive.
type GapConfig struct {
	PreMin, PreMax         int // before each capture
	PostMin, PostMax       int // after each capture
	BetweenMin, BetweenMax int // between consecutive captures
	Seed                   int64
}

// DefaultGaps returns gap ranges that keep consecutive captures at least
// one full 7x7 pipeline lag apart, so an in-flight drain always completes
// before the next start-of-capture arrives.
func DefaultGaps() GapConfig {
	lag := (7-1)*lfblur.FrameWidth + (7 - 1)
	return GapConfig{
		PreMin: 0, PreMax: 4,
		PostMin: 0, PostMax: 4,
		BetweenMin: lag + 1, BetweenMax: lag + 16,
		Seed: 12345,
	}
}

// Synthesize builds one continuous light-field stream from the given
// captures: SOC/EOC on the first/last valid pixel of each capture,
// SOLF/EOLF on the first/last valid pixel of the entire stream, and
// pseudo-random invalid gap cycles per the config. Framing flags are only
// ever asserted on valid cycles, matching the sensor contract.
func Synthesize(frames []*RawFrame, gaps GapConfig) []lfblur.Sample {
	rng := rand.New(rand.NewSource(gaps.Seed))
	gap := func(min, max int) int {
		if max <= min {
			return min
		}
		return min + rng.Intn(max-min+1)
	}

	var stream []lfblur.Sample
	idle := func(n int) {
		for i := 0; i < n; i++ {
			stream = append(stream, lfblur.Sample{})
		}
	}

	for fi, frame := range frames {
		if fi != 0 {
			idle(gap(gaps.BetweenMin, gaps.BetweenMax))
		}
		idle(gap(gaps.PreMin, gaps.PreMax))

		for i := 0; i < lfblur.FramePixels; i++ {
			s := lfblur.Sample{
				R: frame.R[i], G: frame.G[i], B: frame.B[i],
				Valid: true,
				SOC:   i == 0,
				EOC:   i == lfblur.FramePixels-1,
			}
			s.SOLF = fi == 0 && i == 0
			s.EOLF = fi == len(frames)-1 && i == lfblur.FramePixels-1
			stream = append(stream, s)
		}

		idle(gap(gaps.PostMin, gaps.PostMax))
	}
	return stream
}
