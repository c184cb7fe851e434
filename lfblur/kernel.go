package lfblur

import "fmt"

// KernelSize selects one of the four fixed blur kernels.
type KernelSize int

const (
	Kernel1 KernelSize = 1 // identity, no blur
	Kernel3 KernelSize = 3
	Kernel5 KernelSize = 5
	Kernel7 KernelSize = 7
)

// Per-tap weights are stored as left-shift exponents instead of multipliers,
// so a convolution sum is a chain of shifts and adds. Each table's weights
// sum to an exact power of two (the kernel divisor), which makes the
// convolve-then-shift in the filter an exact normalized weighted average.
var (
	shifts1 = [][]uint{{0}}

	shifts3 = [][]uint{
		{0, 1, 1},
		{1, 1, 1},
		{1, 1, 0},
	}

	shifts5 = [][]uint{
		{0, 1, 1, 1, 0},
		{1, 2, 2, 2, 1},
		{1, 2, 2, 2, 1},
		{1, 2, 2, 2, 1},
		{0, 1, 1, 1, 0},
	}

	shifts7 = [][]uint{
		{1, 0, 0, 0, 0, 0, 1},
		{0, 2, 2, 2, 2, 2, 0},
		{0, 2, 2, 2, 2, 2, 0},
		{0, 2, 2, 2, 2, 2, 0},
		{0, 2, 2, 2, 2, 2, 0},
		{0, 2, 2, 2, 2, 2, 0},
		{1, 0, 0, 0, 0, 0, 1},
	}
)

// Kernel bundles a kernel size with its shift table, divisor and the
// geometry constants derived from it. Values are immutable after creation.
type Kernel struct {
	size         KernelSize
	shifts       [][]uint
	divisorShift uint
}

// NewKernel returns the kernel for the given size selector. Any value other
// than 1, 3, 5 or 7 is a configuration error and must be rejected before the
// filter is built.
func NewKernel(size KernelSize) (Kernel, error) {
	switch size {
	case Kernel1:
		return Kernel{size: size, shifts: shifts1, divisorShift: 0}, nil
	case Kernel3:
		return Kernel{size: size, shifts: shifts3, divisorShift: 4}, nil
	case Kernel5:
		return Kernel{size: size, shifts: shifts5, divisorShift: 6}, nil
	case Kernel7:
		return Kernel{size: size, shifts: shifts7, divisorShift: 7}, nil
	}
	return Kernel{}, fmt.Errorf("invalid kernel size %d: must be 1, 3, 5 or 7", size)
}

// KernelFromSwitches maps the two physical kernel-select switches to a
// kernel size: 00=identity, 01=3x3, 10=5x5, 11=7x7.
func KernelFromSwitches(sw1, sw0 bool) KernelSize {
	switch {
	case sw1 && sw0:
		return Kernel7
	case sw1:
		return Kernel5
	case sw0:
		return Kernel3
	}
	return Kernel1
}

// Size returns the kernel edge length in pixels.
func (k Kernel) Size() int { return int(k.size) }

// Margin is the border width in pixels: output positions closer than this
// to any frame edge bypass convolution.
func (k Kernel) Margin() int { return int(k.size) / 2 }

// Lag is the number of additional valid samples the window buffer must
// absorb past a given input before that input's output can be produced:
// the full span of a k-row window, (k-1)*64 + (k-1).
func (k Kernel) Lag() int {
	return (int(k.size)-1)*FrameWidth + (int(k.size) - 1)
}

// DivisorShift is log2 of the kernel's weight sum.
func (k Kernel) DivisorShift() uint { return k.divisorShift }

// ScaleShift aligns a convolution sum into Q12.12: a raw 8-bit value maps
// to v<<16, so the pre-divided sum is shifted by 16 minus the divisor.
func (k Kernel) ScaleShift() uint { return rawAlignShift - k.divisorShift }

// WeightSum returns the sum of 2^shift over all taps.
func (k Kernel) WeightSum() uint32 {
	var sum uint32
	for _, row := range k.shifts {
		for _, s := range row {
			sum += 1 << s
		}
	}
	return sum
}

func (k Kernel) shift(row, col int) uint { return k.shifts[row][col] }
