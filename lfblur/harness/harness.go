// Package harness drives the convolution pipeline cycle-by-cycle from
// simulation vector files and captures the resulting output streams and
// waveform traces. It is the software stand-in for the RTL testbench; the
// core itself never touches the filesystem.
package harness

import (
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mberva/go-lfblur/lfblur"
	"github.com/mberva/go-lfblur/lfblur/mif"
)

// Output vector filenames written by the runner, cycle-aligned with each
// other (and offset from the inputs by the pipeline latency).
const (
	OutRedFile   = "SIM_PIXEL_RED_OUT.mif"
	OutGreenFile = "SIM_PIXEL_GREEN_OUT.mif"
	OutBlueFile  = "SIM_PIXEL_BLUE_OUT.mif"
	OutValidFile = "SIM_PIXEL_VALID_OUT.mif"
	OutSOCFile   = "SIM_SOC_OUT.mif"
	OutEOCFile   = "SIM_EOC_OUT.mif"
	OutSOLFFile  = "SIM_SOLF_OUT.mif"
	OutEOLFFile  = "SIM_EOLF_OUT.mif"
)

// Runner executes one simulation session against a fresh pipeline.
type Runner struct {
	pipeline *lfblur.Pipeline
	session  uuid.UUID
}

// Result holds everything captured during a run.
type Result struct {
	Session uuid.UUID
	Kernel  lfblur.Kernel
	Cycles  int
	Outputs []lfblur.Output
	Frames  []*lfblur.FrameBuffer
}

// NewRunner builds a runner for the given kernel size.
func NewRunner(size lfblur.KernelSize) (*Runner, error) {
	p, err := lfblur.NewPipeline(size)
	if err != nil {
		return nil, err
	}
	return &Runner{pipeline: p, session: uuid.New()}, nil
}

// Session returns the unique id tagging this run's artifacts.
func (r *Runner) Session() uuid.UUID { return r.session }

// Run drives the pipeline one tick per sample, then keeps ticking idle
// cycles until the drain and the output register are flushed. Every output
// tick is captured, including invalid ones, so the trace stays cycle-exact.
func (r *Runner) Run(samples []lfblur.Sample) *Result {
	kernel := r.pipeline.Kernel()
	slog.Info("Starting simulation run",
		"session", r.session,
		"kernel", kernel.Size(),
		"cycles", len(samples))

	res := &Result{Session: r.session, Kernel: kernel}
	collector := lfblur.NewCollector()

	feed := func(s lfblur.Sample) {
		out := r.pipeline.Tick(s)
		res.Outputs = append(res.Outputs, out)
		collector.Feed(out)
		res.Cycles++
	}

	for _, s := range samples {
		feed(s)
	}
	for i := 0; i <= kernel.Lag()+1; i++ {
		feed(lfblur.Sample{})
	}

	res.Frames = collector.Frames()
	slog.Info("Simulation run complete",
		"session", r.session,
		"cycles", res.Cycles,
		"frames", len(res.Frames))
	return res
}

// WriteVectors writes the captured output streams as vector files into dir.
func (res *Result) WriteVectors(dir string) error {
	files := map[string]*mif.File{
		OutRedFile:   mif.New(24),
		OutGreenFile: mif.New(24),
		OutBlueFile:  mif.New(24),
		OutValidFile: mif.New(1),
		OutSOCFile:   mif.New(1),
		OutEOCFile:   mif.New(1),
		OutSOLFFile:  mif.New(1),
		OutEOLFFile:  mif.New(1),
	}
	for _, o := range res.Outputs {
		files[OutRedFile].Append(o.R)
		files[OutGreenFile].Append(o.G)
		files[OutBlueFile].Append(o.B)
		files[OutValidFile].Append(bit(o.Valid))
		files[OutSOCFile].Append(bit(o.SOC))
		files[OutEOCFile].Append(bit(o.EOC))
		files[OutSOLFFile].Append(bit(o.SOLF))
		files[OutEOLFFile].Append(bit(o.EOLF))
	}
	for name, f := range files {
		if err := f.WriteFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
