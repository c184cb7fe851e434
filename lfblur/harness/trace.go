package harness

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// WriteTrace emits a human-readable waveform trace of the run: one line per
// cycle with the output flags and pixel words. Idle stretches (no valid
// output, no pulses) are collapsed into a single marker line.
func (res *Result) WriteTrace(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# go-lfblur waveform trace\n")
	fmt.Fprintf(bw, "# session: %s\n", res.Session)
	fmt.Fprintf(bw, "# kernel: %dx%d  lag: %d  cycles: %d\n",
		res.Kernel.Size(), res.Kernel.Size(), res.Kernel.Lag(), res.Cycles)
	fmt.Fprintf(bw, "#  cycle  v soc eoc solf eolf        red      green       blue\n")

	idle := 0
	for i, o := range res.Outputs {
		if !o.Valid && !o.SOC && !o.EOC {
			idle++
			continue
		}
		if idle > 0 {
			fmt.Fprintf(bw, "  ...    %d idle cycles\n", idle)
			idle = 0
		}
		fmt.Fprintf(bw, "%8d  %d  %d   %d   %d    %d    0x%06X   0x%06X   0x%06X\n",
			i, bit(o.Valid), bit(o.SOC), bit(o.EOC), bit(o.SOLF), bit(o.EOLF),
			o.R, o.G, o.B)
	}
	if idle > 0 {
		fmt.Fprintf(bw, "  ...    %d idle cycles\n", idle)
	}
	return bw.Flush()
}

// WriteTraceFile writes the waveform trace to the given path.
func (res *Result) WriteTraceFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create trace file")
	}
	defer f.Close()

	if err := res.WriteTrace(f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
