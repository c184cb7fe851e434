package render

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mberva/go-lfblur/lfblur"
)

const frameTime = 500 * time.Millisecond

// TerminalViewer steps through filtered output frames in the terminal,
// drawing two pixel rows per text row with half-block cells.
type TerminalViewer struct {
	screen  tcell.Screen
	frames  []*lfblur.FrameBuffer
	running bool
}

// NewTerminalViewer initializes a tcell screen for the given frames.
func NewTerminalViewer(frames []*lfblur.FrameBuffer) (*TerminalViewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}

	return &TerminalViewer{
		screen:  screen,
		frames:  frames,
		running: true,
	}, nil
}

// Run cycles through the frames until the user quits or a signal arrives.
func (t *TerminalViewer) Run() error {
	defer func() {
		slog.Info("Finishing terminal viewer")
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	current := 0
	for t.running {
		select {
		case <-ticker.C:
			if len(t.frames) == 0 {
				continue
			}
			t.render(t.frames[current], current)
			t.screen.Show()
			current = (current + 1) % len(t.frames)
		case <-signals:
			t.running = false
			slog.Info("Received signal to stop")
			return nil
		}
	}

	return nil
}

func (t *TerminalViewer) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
				t.running = false
			case ev.Rune() == 'q':
				t.running = false
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// render draws one 64x64 frame as 64x32 half-block cells: the glyph
// foreground carries the top pixel, the background the bottom pixel.
func (t *TerminalViewer) render(frame *lfblur.FrameBuffer, index int) {
	for y := 0; y < lfblur.FrameHeight; y += 2 {
		for x := 0; x < lfblur.FrameWidth; x++ {
			tr, tg, tb := frame.RGBA8(x, y)
			br, bg, bb := frame.RGBA8(x, y+1)

			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
				Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			t.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	label := fmt.Sprintf(" frame %d/%d  (q to quit) ", index+1, len(t.frames))
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range label {
		t.screen.SetContent(i, lfblur.FrameHeight/2, r, nil, style)
	}
}
