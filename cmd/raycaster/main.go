package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/raycaster/audio"
	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/engine"
	"github.com/lixenwraith/raycaster/physics"
	"github.com/lixenwraith/raycaster/render"
	"github.com/lixenwraith/raycaster/terminal"
)

// pauseKey freezes the frame clock, it takes precedence over any keymap binding
const pauseKey = "p"

var (
	configFlag = flag.String("config", "", "TOML config file, built-in defaults when empty")
	logFlag    = flag.String("log", "", "append logs to this file, discarded when empty")
	muteFlag   = flag.Bool("mute", false, "disable the collision sound")
	statusFlag = flag.Bool("status", false, "show position and heading on the bottom row")
)

func main() {
	flag.Parse()

	logFile, err := setupLogging(*logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}
	loop, err := cfg.NewLoop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}
	keymap, err := cfg.BuildKeymap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}

	pres, err := terminal.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	if err := pres.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer pres.Fini()

	// Panic Recovery: restore the terminal before printing the stack
	defer func() {
		if r := recover(); r != nil {
			pres.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRAYCASTER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if cfg.Audio.Enabled && !*muteFlag {
		cue := audio.NewCue()
		if err := cue.Init(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer cue.Close()
			loop.OnCollide = func(physics.Result) { cue.Bump() }
		}
	}

	src := terminal.NewSource(keymap, cfg.Motion.KeyHold)
	src.OnResize = func(cols, rows int) {
		log.Printf("terminal resized to %dx%d", cols, rows)
		pres.Screen().Sync()
	}
	clock := engine.NewPausableClock(nil)
	src.Toggles = map[string]func(){pauseKey: func() {
		log.Printf("paused: %v", clock.Toggle())
	}}
	go src.Listen(pres.Screen())

	var dst engine.Presenter = pres
	if *statusFlag {
		dst = engine.PresenterFunc(func(buf *render.PixelBuffer) error {
			s := loop.State()
			text := fmt.Sprintf(" x %.0f  y %.0f  yaw %d  tilt %d  frame %d",
				s.X(), s.Y(), s.Yaw.Int(), s.Tilt.Int(), loop.Frame())
			if clock.IsPaused() {
				text += "  [paused]"
			}
			pres.SetStatus(text)
			return pres.Present(buf)
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, h, _ := cfg.Size()
	log.Printf("rendering %dx%d at %v per frame", w, h, cfg.FramePeriod())
	if err := loop.Run(ctx, src, dst, clock, cfg.FramePeriod()); err != nil {
		log.Printf("run: %v", err)
		pres.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log.Printf("exit after %d frames", loop.Frame())
}

// setupLogging sends the standard logger to path, or discards it
// The terminal belongs to the presenter, so nothing may log to stderr while running
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}
