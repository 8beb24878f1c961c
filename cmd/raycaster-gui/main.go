package main

import (
	"flag"
	"log"

	"github.com/lixenwraith/raycaster/audio"
	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/parameter"
	"github.com/lixenwraith/raycaster/physics"
	"github.com/lixenwraith/raycaster/window"
)

var (
	configFlag = flag.String("config", "", "TOML config file, built-in defaults when empty")
	muteFlag   = flag.Bool("mute", false, "disable the collision sound")
	tpsFlag    = flag.Int("tps", parameter.WindowTPS, "simulation ticks per second")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	loop, err := cfg.NewLoop()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	keymap, err := cfg.BuildKeymap()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.Audio.Enabled && !*muteFlag {
		cue := audio.NewCue()
		if err := cue.Init(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer cue.Close()
			loop.OnCollide = func(physics.Result) { cue.Bump() }
		}
	}

	_, _, scale := cfg.Size()
	game := window.NewGame(loop, keymap, *tpsFlag)
	if err := window.Run(game, "raycaster", scale); err != nil {
		log.Printf("%v", err)
	}
	log.Printf("exit after %d frames", loop.Frame())
}
