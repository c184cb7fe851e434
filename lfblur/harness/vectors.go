package harness

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mberva/go-lfblur/lfblur"
	"github.com/mberva/go-lfblur/lfblur/mif"
)

// Canonical input vector filenames, as produced by the simulation input
// generator. All six streams are cycle-aligned: index i in every file is
// the same clock cycle.
const (
	PixelFile = "SIM_PIXEL_BIT_DATA.mif"
	ValidFile = "SIM_PIXEL_VALID_IN.mif"
	SOCFile   = "SIM_SOC_IN.mif"
	EOCFile   = "SIM_EOC_IN.mif"
	SOLFFile  = "SIM_SOLF_IN.mif"
	EOLFFile  = "SIM_EOLF_IN.mif"
)

// VectorSet bundles the six cycle-aligned input streams.
type VectorSet struct {
	Pixel *mif.File
	Valid *mif.File
	SOC   *mif.File
	EOC   *mif.File
	SOLF  *mif.File
	EOLF  *mif.File
}

// LoadVectorSet reads the six canonical files from a directory and checks
// that they describe the same number of cycles.
func LoadVectorSet(dir string) (*VectorSet, error) {
	load := func(name string, width int) (*mif.File, error) {
		f, err := mif.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if f.Width != width {
			return nil, errors.Errorf("%s: width %d, want %d", name, f.Width, width)
		}
		return f, nil
	}

	var vs VectorSet
	var err error
	if vs.Pixel, err = load(PixelFile, 24); err != nil {
		return nil, err
	}
	if vs.Valid, err = load(ValidFile, 1); err != nil {
		return nil, err
	}
	if vs.SOC, err = load(SOCFile, 1); err != nil {
		return nil, err
	}
	if vs.EOC, err = load(EOCFile, 1); err != nil {
		return nil, err
	}
	if vs.SOLF, err = load(SOLFFile, 1); err != nil {
		return nil, err
	}
	if vs.EOLF, err = load(EOLFFile, 1); err != nil {
		return nil, err
	}

	depth := vs.Pixel.Depth
	for name, f := range map[string]*mif.File{
		ValidFile: vs.Valid, SOCFile: vs.SOC, EOCFile: vs.EOC,
		SOLFFile: vs.SOLF, EOLFFile: vs.EOLF,
	} {
		if f.Depth != depth {
			return nil, errors.Errorf("%s: depth %d, but %s has %d", name, f.Depth, PixelFile, depth)
		}
	}
	return &vs, nil
}

// Depth returns the number of cycles in the set.
func (vs *VectorSet) Depth() int { return vs.Pixel.Depth }

// Samples decodes the streams into per-tick samples.
func (vs *VectorSet) Samples() []lfblur.Sample {
	samples := make([]lfblur.Sample, vs.Depth())
	for i := range samples {
		s := lfblur.SampleFromRGB(vs.Pixel.Words[i])
		s.Valid = vs.Valid.Words[i] == 1
		s.SOC = vs.SOC.Words[i] == 1
		s.EOC = vs.EOC.Words[i] == 1
		s.SOLF = vs.SOLF.Words[i] == 1
		s.EOLF = vs.EOLF.Words[i] == 1
		samples[i] = s
	}
	return samples
}

// VectorSetFromSamples encodes per-tick samples into the six streams.
func VectorSetFromSamples(samples []lfblur.Sample) *VectorSet {
	vs := &VectorSet{
		Pixel: mif.New(24),
		Valid: mif.New(1),
		SOC:   mif.New(1),
		EOC:   mif.New(1),
		SOLF:  mif.New(1),
		EOLF:  mif.New(1),
	}
	for _, s := range samples {
		vs.Pixel.Append(s.PackRGB())
		vs.Valid.Append(bit(s.Valid))
		vs.SOC.Append(bit(s.SOC))
		vs.EOC.Append(bit(s.EOC))
		vs.SOLF.Append(bit(s.SOLF))
		vs.EOLF.Append(bit(s.EOLF))
	}
	return vs
}

// WriteDir writes all six streams into the given directory under their
// canonical filenames.
func (vs *VectorSet) WriteDir(dir string) error {
	for name, f := range map[string]*mif.File{
		PixelFile: vs.Pixel, ValidFile: vs.Valid, SOCFile: vs.SOC,
		EOCFile: vs.EOC, SOLFFile: vs.SOLF, EOLFFile: vs.EOLF,
	} {
		if err := f.WriteFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

func bit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
