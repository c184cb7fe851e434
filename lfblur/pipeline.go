package lfblur

// Pipeline is the top-level integration around the filter core: it owns the
// kernel configuration (selected externally, fixed for the duration of a
// capture) and provides the single-producer/single-consumer host boundary.
type Pipeline struct {
	kernel Kernel
	filter *Filter
}

// NewPipeline validates the kernel selector and builds the pipeline.
func NewPipeline(size KernelSize) (*Pipeline, error) {
	k, err := NewKernel(size)
	if err != nil {
		return nil, err
	}
	return &Pipeline{kernel: k, filter: NewFilter(k)}, nil
}

// NewPipelineFromSwitches builds a pipeline from the two physical
// kernel-select switch positions.
func NewPipelineFromSwitches(sw1, sw0 bool) *Pipeline {
	// The switch mapping covers exactly the four legal sizes, so the
	// selector cannot fail validation here.
	p, _ := NewPipeline(KernelFromSwitches(sw1, sw0))
	return p
}

// Kernel returns the configured kernel.
func (p *Pipeline) Kernel() Kernel { return p.kernel }

// Tick advances the pipeline by one clock cycle.
func (p *Pipeline) Tick(in Sample) Output {
	return p.filter.Tick(in)
}

// Run consumes samples from a channel in strict arrival order and produces
// one output per tick on the returned channel. The pipeline is driven by a
// single goroutine and performs no concurrent mutation; the caller owns
// delivery order. When the input channel closes, the pipeline is ticked
// with idle cycles until any in-flight drain completes, then the output
// channel closes. The filter is left in a valid, resumable state.
func (p *Pipeline) Run(in <-chan Sample) <-chan Output {
	out := make(chan Output, FrameWidth)

	go func() {
		defer close(out)
		for s := range in {
			out <- p.filter.Tick(s)
		}
		// Flush: at most one full lag of drain ticks, bounded so a
		// stream truncated mid-capture cannot spin forever.
		for i := 0; i <= p.kernel.Lag() && !p.filter.Idle(); i++ {
			out <- p.filter.Tick(Sample{})
		}
		// One more tick empties the output register.
		out <- p.filter.Tick(Sample{})
	}()

	return out
}
