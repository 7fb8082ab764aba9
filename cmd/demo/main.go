package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/topdown/internal/application/game"
	"github.com/younwookim/topdown/internal/application/replay"
	"github.com/younwookim/topdown/internal/application/scene/room"
	"github.com/younwookim/topdown/internal/application/world"
	"github.com/younwookim/topdown/internal/infrastructure/config"
	"github.com/younwookim/topdown/internal/infrastructure/mask"
)

func main() {
	sceneFlag := flag.String("scene", "demo", "Scene to load from configs/scenes")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	headlessFlag := flag.Bool("headless", false, "With -replay, simulate without opening a window")
	flag.Parse()

	loader, err := newLoader(configFS)
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	display, err := loader.LoadDisplay()
	if err != nil {
		log.Fatalf("Failed to load display config: %v", err)
	}

	build, err := newBuilder(loader, *sceneFlag, display)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	var replayer *replay.Replayer
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if data.Scene != *sceneFlag {
			log.Printf("Replay was recorded in %q, playing in %q", data.Scene, *sceneFlag)
		}
		replayer = replay.NewReplayer(*data)
	}

	if *headlessFlag {
		if replayer == nil {
			log.Fatalf("-headless needs -replay")
		}
		if err := runHeadless(build, replayer); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	opts := room.Options{Name: *sceneFlag, RecordPath: *recordFlag}
	if opts.Background, err = world.ParseHexColor(display.Background); err != nil {
		log.Fatalf("Failed to parse background: %v", err)
	}
	if replayer != nil {
		opts.Input = replayer
		opts.QuitWhenDone = true
	}

	r, err := room.New(build, opts)
	if err != nil {
		log.Fatalf("Failed to build room: %v", err)
	}
	g := game.New(r, display.ScreenWidth, display.ScreenHeight)

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Top-down collision demo")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func newLoader(embedded fs.FS) (*config.Loader, error) {
	fsys, err := fs.Sub(embedded, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// newBuilder reads the scene and its assets once; the returned builder
// creates a fresh world from them on every call.
func newBuilder(loader *config.Loader, name string, display *config.DisplayConfig) (room.Builder, error) {
	cfg, err := loader.LoadScene(name)
	if err != nil {
		return nil, err
	}
	assets, err := world.LoadAssets(cfg, loader.FS())
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}

	opts := world.Options{Framerate: display.Framerate, MaxSteps: display.MaxSteps}
	return func() (*world.World, error) {
		return world.FromScene(cfg, assets, mask.Builder{}, opts)
	}, nil
}

func runHeadless(build room.Builder, replayer *replay.Replayer) error {
	w, err := build()
	if err != nil {
		return err
	}

	result := replay.Simulate(w, replayer)
	log.Printf("Replayed %d of %d frames", result.Frames, replayer.TotalFrames())
	for _, m := range w.Movers() {
		pos := result.Final[m.ID()]
		log.Printf("Mover %d at (%d, %d), %d contacts", m.ID(), pos.X, pos.Y, result.Contacts[m.ID()])
	}
	return nil
}
