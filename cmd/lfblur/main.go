package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/mberva/go-lfblur/lfblur"
	"github.com/mberva/go-lfblur/lfblur/harness"
	"github.com/mberva/go-lfblur/lfblur/render"
)

func main() {
	app := cli.NewApp()
	app.Name = "lfblur"
	app.Description = "A streaming low-pass filter for 64x64 light-field pixel captures"
	app.Usage = "lfblur [options] <vector directory>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "vectors",
			Usage: "Directory with the six SIM_*.mif input vector streams",
		},
		cli.IntFlag{
			Name:  "kernel",
			Usage: "Blur kernel size (1, 3, 5 or 7)",
			Value: 3,
		},
		cli.StringFlag{
			Name:  "trace-dir",
			Usage: "Directory to write output vectors and the waveform trace (disabled if empty)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save a PNG of every Nth output frame (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "terminal",
			Usage: "View the filtered frames in the terminal after the run",
		},
	}
	app.Action = runPipeline

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running pipeline", "error", err)
		os.Exit(1)
	}
}

func runPipeline(c *cli.Context) error {
	vectorDir := c.String("vectors")
	if vectorDir == "" {
		if c.NArg() > 0 {
			vectorDir = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no vector directory provided")
		}
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	vs, err := harness.LoadVectorSet(vectorDir)
	if err != nil {
		return err
	}
	slog.Info("Loaded vector set", "dir", vectorDir, "cycles", vs.Depth())

	runner, err := harness.NewRunner(lfblur.KernelSize(c.Int("kernel")))
	if err != nil {
		return err
	}
	result := runner.Run(vs.Samples())

	if traceDir := c.String("trace-dir"); traceDir != "" {
		if err := os.MkdirAll(traceDir, 0755); err != nil {
			return fmt.Errorf("failed to create trace directory: %v", err)
		}
		if err := result.WriteVectors(traceDir); err != nil {
			return err
		}
		tracePath := traceDir + "/" + result.Session.String() + ".trace"
		if err := result.WriteTraceFile(tracePath); err != nil {
			return err
		}
		slog.Info("Wrote output vectors and trace", "dir", traceDir)
	}

	if interval := c.Int("snapshot-interval"); interval > 0 {
		snapshotDir := c.String("snapshot-dir")
		if snapshotDir == "" {
			snapshotDir, err = os.MkdirTemp("", "lfblur-snapshots-*")
			if err != nil {
				return fmt.Errorf("failed to create snapshot directory: %v", err)
			}
		} else if err := os.MkdirAll(snapshotDir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %v", err)
		}

		for i, frame := range result.Frames {
			if i%interval != 0 {
				continue
			}
			name := fmt.Sprintf("lfblur_k%d_frame%03d", c.Int("kernel"), i)
			if err := render.SaveFramePNG(frame, name, snapshotDir); err != nil {
				return err
			}
		}
	}

	if c.Bool("terminal") {
		viewer, err := render.NewTerminalViewer(result.Frames)
		if err != nil {
			return err
		}
		return viewer.Run()
	}

	return nil
}
