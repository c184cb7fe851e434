// genvectors converts a folder of 64x64 capture PNGs into the six
// cycle-aligned simulation vector streams consumed by the lfblur harness,
// injecting reproducible invalid gap cycles to imitate real sensor timing.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/mberva/go-lfblur/lfblur"
	"github.com/mberva/go-lfblur/lfblur/harness"
)

// captureOrder is the streaming order of the light-field captures: the
// cross layout is streamed as four vertical views, the full horizontal
// row, then the remaining vertical views. v_04 duplicates h_04 and is
// skipped.
var captureOrder = []string{
	"v_00.png", "v_01.png", "v_02.png", "v_03.png",
	"h_00.png", "h_01.png", "h_02.png", "h_03.png", "h_04.png",
	"h_05.png", "h_06.png", "h_07.png", "h_08.png",
	"v_05.png", "v_06.png", "v_07.png", "v_08.png",
}

func main() {
	var (
		inputDir string
		outDir   string
		seed     int64
		maxGap   int
	)
	flag.StringVar(&inputDir, "input", "", "Folder with the capture PNGs (v_00..v_08, h_00..h_08)")
	flag.StringVar(&outDir, "out", "input_data", "Output folder for the six vector files")
	flag.Int64Var(&seed, "seed", 12345, "RNG seed for gap injection")
	flag.IntVar(&maxGap, "max-gap", 16, "Extra between-capture gap cycles on top of the pipeline lag")
	flag.Parse()

	if inputDir == "" {
		fmt.Fprintln(os.Stderr, "error: -input folder is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(inputDir, outDir, seed, maxGap); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(inputDir, outDir string, seed int64, maxGap int) error {
	var frames []*harness.RawFrame
	for _, name := range captureOrder {
		frame, err := loadCapture(filepath.Join(inputDir, name))
		if err != nil {
			return err
		}
		frames = append(frames, frame)
	}

	gaps := harness.DefaultGaps()
	gaps.Seed = seed
	gaps.BetweenMax = gaps.BetweenMin + maxGap

	samples := harness.Synthesize(frames, gaps)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output folder: %v", err)
	}
	if err := harness.VectorSetFromSamples(samples).WriteDir(outDir); err != nil {
		return err
	}

	fmt.Printf("Wrote 6 vector files to %s (%d captures, %d cycles)\n",
		outDir, len(frames), len(samples))
	return nil
}

// loadCapture reads a PNG and center-crops it to 64x64; smaller images are
// centered on a black canvas.
func loadCapture(path string) (*harness.RawFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture %s: %v", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", path, err)
	}

	bounds := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, lfblur.FrameWidth, lfblur.FrameHeight))
	offX := (bounds.Dx() - lfblur.FrameWidth) / 2
	offY := (bounds.Dy() - lfblur.FrameHeight) / 2
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min.Add(image.Pt(offX, offY)), draw.Src)

	var frame harness.RawFrame
	for y := 0; y < lfblur.FrameHeight; y++ {
		for x := 0; x < lfblur.FrameWidth; x++ {
			r, g, b, _ := canvas.At(x, y).RGBA()
			i := y*lfblur.FrameWidth + x
			frame.R[i] = uint8(r >> 8)
			frame.G[i] = uint8(g >> 8)
			frame.B[i] = uint8(b >> 8)
		}
	}
	return &frame, nil
}
