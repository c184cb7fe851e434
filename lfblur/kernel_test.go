package lfblur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelWeightSumMatchesDivisor(t *testing.T) {
	// The convolve-then-shift in the filter is only an exact normalized
	// average if every kernel's weights sum to its declared divisor.
	for _, size := range []KernelSize{Kernel1, Kernel3, Kernel5, Kernel7} {
		k, err := NewKernel(size)
		require.NoError(t, err)
		assert.Equal(t, uint32(1)<<k.DivisorShift(), k.WeightSum(),
			"kernel %d weight sum", size)
	}
}

func TestKernelGeometry(t *testing.T) {
	tests := []struct {
		size   KernelSize
		margin int
		lag    int
		scale  uint
	}{
		{Kernel1, 0, 0, 16},
		{Kernel3, 1, 130, 12},
		{Kernel5, 2, 260, 10},
		{Kernel7, 3, 390, 9},
	}

	for _, tt := range tests {
		k, err := NewKernel(tt.size)
		require.NoError(t, err)
		assert.Equal(t, tt.margin, k.Margin(), "margin for %d", tt.size)
		assert.Equal(t, tt.lag, k.Lag(), "lag for %d", tt.size)
		assert.Equal(t, tt.scale, k.ScaleShift(), "scale shift for %d", tt.size)
	}
}

func TestKernelRejectsInvalidSize(t *testing.T) {
	for _, size := range []KernelSize{0, 2, 4, 6, 8, 9, -1} {
		_, err := NewKernel(size)
		assert.Error(t, err, "size %d must be rejected", size)
	}
}

func TestKernelFromSwitches(t *testing.T) {
	assert.Equal(t, Kernel1, KernelFromSwitches(false, false))
	assert.Equal(t, Kernel3, KernelFromSwitches(false, true))
	assert.Equal(t, Kernel5, KernelFromSwitches(true, false))
	assert.Equal(t, Kernel7, KernelFromSwitches(true, true))
}

func TestKernelTablesAreSquare(t *testing.T) {
	for _, size := range []KernelSize{Kernel1, Kernel3, Kernel5, Kernel7} {
		k, err := NewKernel(size)
		require.NoError(t, err)
		require.Len(t, k.shifts, k.Size())
		for _, row := range k.shifts {
			require.Len(t, row, k.Size())
		}
	}
}
