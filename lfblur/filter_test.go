package lfblur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFrame creates one gapless 64x64 capture with SOC/EOC framing.
func buildFrame(pixel func(row, col int) (r, g, b uint8)) []Sample {
	samples := make([]Sample, FramePixels)
	for i := range samples {
		r, g, b := pixel(i/FrameWidth, i%FrameWidth)
		samples[i] = Sample{
			R: r, G: g, B: b,
			Valid: true,
			SOC:   i == 0,
			EOC:   i == FramePixels-1,
		}
	}
	return samples
}

func uniformFrame(v uint8) []Sample {
	return buildFrame(func(row, col int) (uint8, uint8, uint8) { return v, v, v })
}

// runStream ticks a fresh filter through the samples plus enough idle
// cycles to flush the drain and the output register.
func runStream(t *testing.T, size KernelSize, samples []Sample) []Output {
	t.Helper()
	k, err := NewKernel(size)
	require.NoError(t, err)

	f := NewFilter(k)
	outputs := make([]Output, 0, len(samples)+k.Lag()+2)
	for _, s := range samples {
		outputs = append(outputs, f.Tick(s))
	}
	for i := 0; i <= k.Lag()+1; i++ {
		outputs = append(outputs, f.Tick(Sample{}))
	}
	return outputs
}

func TestIdentityKernelTransparency(t *testing.T) {
	in := buildFrame(func(row, col int) (uint8, uint8, uint8) {
		v := uint8((row*FrameWidth + col*7) % 256)
		return v, v + 1, v + 2
	})
	out := runStream(t, Kernel1, in)

	// Everything passes through with exactly one tick of register delay.
	for i, s := range in {
		o := out[i+1]
		require.True(t, o.Valid, "output %d should be valid", i)
		assert.Equal(t, uint32(s.R)<<16, o.R, "red at %d", i)
		assert.Equal(t, uint32(s.G)<<16, o.G, "green at %d", i)
		assert.Equal(t, uint32(s.B)<<16, o.B, "blue at %d", i)
		assert.Equal(t, s.SOC, o.SOC, "soc at %d", i)
		assert.Equal(t, s.EOC, o.EOC, "eoc at %d", i)
	}
	assert.False(t, out[0].Valid, "no output on the input tick itself")
}

func TestLatencyDeterminism(t *testing.T) {
	tests := []struct {
		name string
		size KernelSize
		lag  int
	}{
		{"3x3", Kernel3, 2*FrameWidth + 2},
		{"5x5", Kernel5, 4*FrameWidth + 4},
		{"7x7", Kernel7, 6*FrameWidth + 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runStream(t, tt.size, uniformFrame(77))

			socTick, eocTick, valid := -1, -1, 0
			for i, o := range out {
				if o.SOC {
					socTick = i
				}
				if o.EOC {
					eocTick = i
				}
				if o.Valid {
					valid++
				}
			}

			// One register stage on top of the window-fill lag.
			assert.Equal(t, tt.lag+1, socTick, "start-of-capture tick")
			assert.Equal(t, FramePixels-1+tt.lag+1, eocTick, "end-of-capture tick")
			assert.Equal(t, FramePixels, valid, "valid outputs per frame")
		})
	}
}

func TestSinglePulsePerFrame(t *testing.T) {
	k, err := NewKernel(Kernel3)
	require.NoError(t, err)

	// Two frames separated by more than the pipeline lag.
	var stream []Sample
	stream = append(stream, uniformFrame(10)...)
	stream = append(stream, make([]Sample, k.Lag()+8)...)
	stream = append(stream, uniformFrame(20)...)

	out := runStream(t, Kernel3, stream)

	socs, eocs := 0, 0
	for _, o := range out {
		if o.SOC {
			socs++
			assert.True(t, o.Valid, "soc pulse rides a valid output")
		}
		if o.EOC {
			eocs++
			assert.True(t, o.Valid, "eoc pulse rides a valid output")
		}
	}
	assert.Equal(t, 2, socs, "one soc pulse per frame")
	assert.Equal(t, 2, eocs, "one eoc pulse per frame")
}

func TestLightFieldCoincidence(t *testing.T) {
	k, err := NewKernel(Kernel5)
	require.NoError(t, err)

	// Two captures forming one light field: SOLF with the first SOC,
	// EOLF with the last EOC.
	frame1 := uniformFrame(30)
	frame1[0].SOLF = true
	frame2 := uniformFrame(40)
	frame2[len(frame2)-1].EOLF = true

	var stream []Sample
	stream = append(stream, frame1...)
	stream = append(stream, make([]Sample, k.Lag()+4)...)
	stream = append(stream, frame2...)

	out := runStream(t, Kernel5, stream)

	for i, o := range out {
		if o.SOLF {
			assert.True(t, o.SOC, "solf must coincide with a soc pulse at tick %d", i)
		}
		if o.EOLF {
			assert.True(t, o.EOC, "eolf must coincide with an eoc pulse at tick %d", i)
		}
	}

	solfs, eolfs := 0, 0
	firstSOC, lastEOC := -1, -1
	solfTick, eolfTick := -1, -1
	for i, o := range out {
		if o.SOC && firstSOC == -1 {
			firstSOC = i
		}
		if o.EOC {
			lastEOC = i
		}
		if o.SOLF {
			solfs++
			solfTick = i
		}
		if o.EOLF {
			eolfs++
			eolfTick = i
		}
	}
	assert.Equal(t, 1, solfs)
	assert.Equal(t, 1, eolfs)
	assert.Equal(t, firstSOC, solfTick, "solf rides the first frame's soc")
	assert.Equal(t, lastEOC, eolfTick, "eolf rides the last frame's eoc")
}

func TestLightFieldLatchHeldUntilConsumed(t *testing.T) {
	// A light-field start arriving mid-frame (decoupled from its capture
	// edge) stays latched until the next soc pulse consumes it.
	frame := uniformFrame(50)
	frame[100].SOLF = true
	out := runStream(t, Kernel3, frame)

	for _, o := range out {
		if o.SOLF {
			assert.True(t, o.SOC, "latched solf may only appear on a soc pulse")
		}
	}
}

func TestUniformRoundTrip(t *testing.T) {
	// Convolving a constant frame must reproduce the constant exactly:
	// the kernel weights sum to the divisor, so blur is the identity on
	// uniform input. This covers interior and border paths together.
	for _, size := range []KernelSize{Kernel1, Kernel3, Kernel5, Kernel7} {
		const v = 173
		out := runStream(t, size, uniformFrame(v))

		want := uint32(v) << 16
		for i, o := range out {
			if !o.Valid {
				continue
			}
			require.Equal(t, want, o.R, "kernel %d red at tick %d", size, i)
			require.Equal(t, want, o.G, "kernel %d green at tick %d", size, i)
			require.Equal(t, want, o.B, "kernel %d blue at tick %d", size, i)
		}
	}
}

func TestBorderClassification3x3(t *testing.T) {
	// Distinct per-pixel values so border forwarding and interior
	// convolution are both checked against an independent reference.
	pixel := func(row, col int) uint8 { return uint8((row*3 + col*5) % 251) }
	in := buildFrame(func(row, col int) (uint8, uint8, uint8) {
		v := pixel(row, col)
		return v, v, v
	})
	out := runStream(t, Kernel3, in)

	weights := [3][3]uint32{
		{1, 2, 2},
		{2, 2, 2},
		{2, 2, 1},
	}

	var got []Output
	for _, o := range out {
		if o.Valid {
			got = append(got, o)
		}
	}
	require.Len(t, got, FramePixels)

	for row := 0; row < FrameHeight; row++ {
		for col := 0; col < FrameWidth; col++ {
			o := got[row*FrameWidth+col]

			border := row == 0 || row == FrameHeight-1 || col == 0 || col == FrameWidth-1
			if border {
				want := uint32(pixel(row, col)) << 16
				require.Equal(t, want, o.R, "border pixel (%d,%d)", row, col)
				continue
			}

			var sum uint32
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					sum += weights[dr+1][dc+1] * uint32(pixel(row+dr, col+dc))
				}
			}
			want := sum << 12 // sum / 16, aligned into Q12.12
			require.Equal(t, want, o.R, "interior pixel (%d,%d)", row, col)
		}
	}
}

func TestHotPixelBlur3x3(t *testing.T) {
	in := buildFrame(func(row, col int) (uint8, uint8, uint8) {
		if row == 32 && col == 32 {
			return 255, 255, 255
		}
		return 0, 0, 0
	})
	out := runStream(t, Kernel3, in)

	var got []Output
	for _, o := range out {
		if o.Valid {
			got = append(got, o)
		}
	}
	require.Len(t, got, FramePixels)

	shifts := [3][3]uint{
		{0, 1, 1},
		{1, 1, 1},
		{1, 1, 0},
	}

	for row := 0; row < FrameHeight; row++ {
		for col := 0; col < FrameWidth; col++ {
			o := got[row*FrameWidth+col]

			if row < 31 || row > 33 || col < 31 || col > 33 {
				require.Zero(t, o.R, "pixel (%d,%d) outside the blur neighborhood", row, col)
				continue
			}
			// The hot input hits tap (33-row, 33-col) of this
			// output's window.
			want := (uint32(255) << shifts[33-row][33-col]) << 12
			require.Equal(t, want, o.R, "blurred pixel (%d,%d)", row, col)
		}
	}

	center := got[32*FrameWidth+32]
	assert.Equal(t, uint32(2*255)<<12, center.R, "peak at the center tap")
}

func TestDeterministicReplay(t *testing.T) {
	in := buildFrame(func(row, col int) (uint8, uint8, uint8) {
		return uint8(row * col), uint8(row + col), uint8(row ^ col)
	})
	first := runStream(t, Kernel5, in)
	second := runStream(t, Kernel5, in)
	assert.Equal(t, first, second, "replaying the same stream must be byte-identical")
}

func TestEarlySOCAbandonsDrain(t *testing.T) {
	k, err := NewKernel(Kernel3)
	require.NoError(t, err)

	// The second capture starts while the first is still draining; the
	// first frame's tail and eoc pulse are abandoned, the second frame
	// completes normally.
	var stream []Sample
	stream = append(stream, uniformFrame(10)...)
	stream = append(stream, make([]Sample, 10)...) // far less than Lag()
	stream = append(stream, uniformFrame(20)...)

	out := runStream(t, Kernel3, stream)

	socs, eocs := 0, 0
	lastEOCTick := -1
	for i, o := range out {
		if o.SOC {
			socs++
		}
		if o.EOC {
			eocs++
			lastEOCTick = i
		}
	}
	assert.Equal(t, 2, socs, "both frames announce")
	assert.Equal(t, 1, eocs, "the abandoned frame never completes")

	secondEOCInput := FramePixels + 10 + FramePixels - 1
	assert.Equal(t, secondEOCInput+k.Lag()+1, lastEOCTick, "second frame drains normally")
}
