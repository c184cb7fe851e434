package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mberva/go-lfblur/lfblur"
)

// FrameToImage converts a Q12.12 output frame to an 8-bit RGBA image.
func FrameToImage(frame *lfblur.FrameBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, lfblur.FrameWidth, lfblur.FrameHeight))
	for y := 0; y < lfblur.FrameHeight; y++ {
		for x := 0; x < lfblur.FrameWidth; x++ {
			r, g, b := frame.RGBA8(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return img
}

// SaveFramePNG saves one output frame as a timestamped PNG in directory.
// An empty directory means the current working directory.
func SaveFramePNG(frame *lfblur.FrameBuffer, baseName, directory string) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %v", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %v", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, FrameToImage(frame)); err != nil {
		return fmt.Errorf("failed to encode PNG: %v", err)
	}

	slog.Info("Snapshot saved", "path", filePath,
		"size", fmt.Sprintf("%dx%d", lfblur.FrameWidth, lfblur.FrameHeight))
	return nil
}
