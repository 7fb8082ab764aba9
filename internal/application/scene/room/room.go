// Package room provides the scene that runs one world: it feeds frame
// input into the simulation, records it, detects the player being caught
// and renders every entity surface.
package room

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/topdown/internal/application/replay"
	"github.com/younwookim/topdown/internal/application/scene"
	"github.com/younwookim/topdown/internal/application/state"
	"github.com/younwookim/topdown/internal/application/system"
	"github.com/younwookim/topdown/internal/application/world"
	"github.com/younwookim/topdown/internal/domain/entity"
)

// PlayerName is the scene entity name the room treats as the player
const PlayerName = "player"

var (
	colorBounds  = color.RGBA{255, 255, 0, 160}
	colorPicked  = color.RGBA{0, 200, 255, 255}
	colorOverlay = color.RGBA{0, 0, 0, 128}
	colorCaught  = color.RGBA{100, 0, 0, 180}
)

// InputSource yields one frame of input per call. ok is false once the
// source is exhausted.
type InputSource interface {
	GetInput() (input system.InputState, ok bool)
}

// Keyboard is the live InputSource polling the window
type Keyboard struct {
	input *system.InputSystem
}

// NewKeyboard creates a live input source
func NewKeyboard() *Keyboard {
	return &Keyboard{input: system.NewInputSystem(nil)}
}

// GetInput never runs out
func (k *Keyboard) GetInput() (system.InputState, bool) {
	return k.input.GetInput(), true
}

// Controls are the room-level keys that never reach the world
type Controls struct {
	Pause   bool
	Restart bool
	Debug   bool
	Save    bool
}

func pollControls() Controls {
	return Controls{
		Pause:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Debug:   inpututil.IsKeyJustPressed(ebiten.KeyTab),
		Save:    inpututil.IsKeyJustPressed(ebiten.KeyF5),
	}
}

// Builder creates a fresh world; it runs on start and on every restart
type Builder func() (*world.World, error)

// Options configures a Room
type Options struct {
	Name       string
	Background color.Color
	// Input defaults to the keyboard
	Input InputSource
	// RecordPath enables input recording, saved on exit. Empty disables it.
	RecordPath string
	// QuitWhenDone ends the loop once Input is exhausted
	QuitWhenDone bool
}

type cachedImage struct {
	src *image.NRGBA
	img *ebiten.Image
}

// Room is the scene running a single world
type Room struct {
	name       string
	build      Builder
	world      *world.World
	state      state.RoomState
	input      InputSource
	controls   func() Controls
	background color.Color

	recorder   *replay.Recorder
	recordPath string
	quitDone   bool

	picked entity.EntityID
	debug  bool
	images map[entity.EntityID]cachedImage
}

// New creates a room and builds its first world
func New(build Builder, opts Options) (*Room, error) {
	w, err := build()
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", opts.Name, err)
	}

	r := &Room{
		name:       opts.Name,
		build:      build,
		world:      w,
		state:      state.StatePlaying,
		input:      opts.Input,
		controls:   pollControls,
		background: opts.Background,
		recordPath: opts.RecordPath,
		quitDone:   opts.QuitWhenDone,
		images:     make(map[entity.EntityID]cachedImage),
	}
	if r.input == nil {
		r.input = NewKeyboard()
	}
	if r.background == nil {
		r.background = color.Black
	}
	if r.recordPath != "" {
		r.recorder = replay.NewRecorder(r.name)
		log.Printf("Recording enabled: %s", r.recordPath)
	}
	return r, nil
}

// World returns the world being simulated
func (r *Room) World() *world.World {
	return r.world
}

// State returns what the room is doing
func (r *Room) State() state.RoomState {
	return r.state
}

// Picked returns the entity last selected with a click
func (r *Room) Picked() (*entity.Entity, bool) {
	return r.world.Get(r.picked)
}

// Recorder returns the active recorder, nil when not recording
func (r *Room) Recorder() *replay.Recorder {
	return r.recorder
}

// Update proceeds the room state (implements scene.Scene)
func (r *Room) Update() (scene.Scene, error) {
	return r.update(r.controls())
}

func (r *Room) update(c Controls) (scene.Scene, error) {
	if c.Debug {
		r.debug = !r.debug
	}

	switch r.state {
	case state.StatePlaying:
		if c.Pause {
			r.state = state.StatePaused
			return nil, nil
		}
		if c.Save {
			r.saveRecording()
		}
		input, ok := r.input.GetInput()
		if !ok {
			r.finish()
			if r.quitDone {
				return nil, scene.ErrQuit
			}
			return nil, nil
		}
		r.Advance(input)

	case state.StatePaused:
		if c.Pause {
			r.state = state.StatePlaying
		}

	case state.StateCaught:
		if c.Restart {
			if err := r.Restart(); err != nil {
				return nil, err
			}
		}

	case state.StateFinished:
		if r.quitDone {
			return nil, scene.ErrQuit
		}
	}

	return nil, nil
}

// Advance runs one frame of the world with input
func (r *Room) Advance(input system.InputState) world.Contacts {
	if r.recorder != nil {
		r.recorder.RecordFrame(input)
	}

	if input.MouseClick {
		r.pick(input.MouseX, input.MouseY)
	}

	contacts := r.world.Step(input)
	if Caught(r.world, contacts) {
		r.state = state.StateCaught
		log.Printf("Caught at frame %d", r.world.Frame())
	}
	return contacts
}

func (r *Room) pick(x, y int) {
	e, ok := r.world.Pick(x, y)
	if !ok {
		r.picked = 0
		return
	}
	r.picked = e.ID()
	log.Printf("Picked %s %d at (%d, %d)", e.Variant(), e.ID(), e.X, e.Y)
}

func (r *Room) finish() {
	r.state = state.StateFinished
	log.Printf("Input finished after %d frames", r.world.Frame())
	if player, ok := r.world.Named(PlayerName); ok {
		log.Printf("Player at (%d, %d)", player.X, player.Y)
	}
}

// Restart rebuilds the world and, when recording, starts a new recording
func (r *Room) Restart() error {
	w, err := r.build()
	if err != nil {
		return fmt.Errorf("room %s: %w", r.name, err)
	}

	for _, c := range r.images {
		c.img.Deallocate()
	}
	r.images = make(map[entity.EntityID]cachedImage)
	r.world = w
	r.picked = 0
	r.state = state.StatePlaying

	if r.recorder != nil {
		r.saveRecording()
		r.recorder = replay.NewRecorder(r.name)
		log.Printf("Recording restarted")
	}
	return nil
}

// Caught reports whether a chasing mover touched the player this frame,
// from either side of the contact.
func Caught(w *world.World, contacts world.Contacts) bool {
	player, ok := w.Named(PlayerName)
	if !ok {
		return false
	}

	for id, struck := range contacts {
		if id == player.ID() {
			for _, other := range struck {
				if isChaser(other) {
					return true
				}
			}
			continue
		}
		chaser, ok := w.Get(id)
		if !ok || !isChaser(chaser) {
			continue
		}
		for _, other := range struck {
			if other.ID() == player.ID() {
				return true
			}
		}
	}
	return false
}

func isChaser(e *entity.Entity) bool {
	return e.Mover != nil && e.Mover.Control == entity.ControlChase
}

// saveRecording saves the current recording to file
func (r *Room) saveRecording() {
	if r.recorder == nil {
		return
	}

	filename := r.recordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := r.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, r.recorder.FrameCount())
	}
}

// Draw renders the world, later spawns on top
func (r *Room) Draw(screen *ebiten.Image) {
	screen.Fill(r.background)

	for _, e := range r.world.Entities() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(e.X), float64(e.Y))
		screen.DrawImage(r.image(e), op)
	}

	if picked, ok := r.Picked(); ok {
		strokeBounds(screen, picked.Bounds(), colorPicked)
	}
	if r.debug {
		r.drawDebug(screen)
	}

	switch r.state {
	case state.StatePaused:
		r.drawOverlay(screen, colorOverlay, "PAUSED\n\nPress ESC to resume")
	case state.StateCaught:
		r.drawOverlay(screen, colorCaught, "CAUGHT\n\nPress R to restart")
	}
}

// image returns the GPU copy of e's surface, re-uploading when the pose
// produced a new surface
func (r *Room) image(e *entity.Entity) *ebiten.Image {
	src := e.Surface()
	if c, ok := r.images[e.ID()]; ok && c.src == src {
		return c.img
	}
	if c, ok := r.images[e.ID()]; ok {
		c.img.Deallocate()
	}

	img := ebiten.NewImageFromImage(src)
	r.images[e.ID()] = cachedImage{src: src, img: img}
	return img
}

func (r *Room) drawDebug(screen *ebiten.Image) {
	for _, m := range r.world.Movers() {
		strokeBounds(screen, m.Bounds(), colorBounds)
	}

	text := fmt.Sprintf("%s | frame %d | entities %d | %s", r.name, r.world.Frame(), r.world.Len(), r.state)
	if player, ok := r.world.Named(PlayerName); ok && player.Mover != nil {
		text += fmt.Sprintf("\nplayer (%d, %d) v=(%.1f, %.1f) sitting=%t", player.X, player.Y, player.VX, player.VY, player.Mover.IsSitting)
	}
	if r.recorder != nil {
		text += fmt.Sprintf("\nrecording %d frames", r.recorder.FrameCount())
	}
	ebitenutil.DebugPrint(screen, text)
}

func (r *Room) drawOverlay(screen *ebiten.Image, c color.Color, text string) {
	size := screen.Bounds().Size()
	vector.DrawFilledRect(screen, 0, 0, float32(size.X), float32(size.Y), c, false)
	ebitenutil.DebugPrintAt(screen, text, size.X/2-50, size.Y/2-20)
}

func strokeBounds(screen *ebiten.Image, b image.Rectangle, c color.Color) {
	vector.StrokeRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), 1, c, false)
}

// OnEnter is called when entering this scene
func (r *Room) OnEnter() {
	log.Printf("Entered %s: %d entities, %d movers", r.name, r.world.Len(), len(r.world.Movers()))
}

// OnExit saves any recording in progress
func (r *Room) OnExit() {
	r.saveRecording()
}
