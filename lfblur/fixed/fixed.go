// Package fixed provides helpers for the pipeline's Q12.12 unsigned
// fixed-point pixel format: 12 integer bits and 12 fractional bits packed
// into the low 24 bits of a uint32.
package fixed

const (
	// FracBits and IntBits define the Q12.12 layout.
	FracBits = 12
	IntBits  = 12

	// One is the fixed-point representation of 1.0.
	One = 1 << FracBits

	// Mask covers the 24 significant bits of a Q12.12 word.
	Mask = 1<<(IntBits+FracBits) - 1
)

// FromU8 aligns an 8-bit sample into Q12.12. The value lands four bits into
// the integer field, matching the hardware's <<16 alignment.
func FromU8(v uint8) uint32 {
	return uint32(v) << 16
}

// ToU8 truncates a Q12.12 word back to an 8-bit sample.
func ToU8(q uint32) uint8 {
	return uint8(q >> 16)
}

// Int returns the 12-bit integer part.
func Int(q uint32) uint32 {
	return (q & Mask) >> FracBits
}

// Frac returns the 12-bit fractional part.
func Frac(q uint32) uint32 {
	return q & (One - 1)
}
