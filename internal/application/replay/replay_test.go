package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/topdown/internal/application/system"
	"github.com/younwookim/topdown/internal/application/world"
	"github.com/younwookim/topdown/internal/infrastructure/config"
	"github.com/younwookim/topdown/internal/infrastructure/mask"
)

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Scene:   "test",
		Frames: []FrameInput{
			{F: 0, L: true, MX: 100, MY: 100},
			{F: 1, R: true, S: true, MX: 110, MY: 95},
			{F: 2, Sh: true, MC: true, MX: 120, MY: 90},
		},
	}

	replayer := NewReplayer(data)
	assert.Equal(t, 3, replayer.TotalFrames())
	assert.Equal(t, "test", replayer.Scene())

	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Left)
	assert.False(t, input.Right)
	assert.Equal(t, 100, input.MouseX)

	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Right)
	assert.True(t, input.Sit)
	assert.Equal(t, 95, input.MouseY)

	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Shift)
	assert.True(t, input.MouseClick)

	_, ok = replayer.GetInput()
	assert.False(t, ok, "no input past the end")
	assert.Equal(t, 3, replayer.CurrentFrame())
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(5, FrameInput{R: true}))

	for i := 0; i < 3; i++ {
		replayer.GetInput()
	}
	assert.Equal(t, 3, replayer.CurrentFrame())

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Right)
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder("demo")
	assert.True(t, rec.IsRecording())

	rec.RecordFrame(system.InputState{Up: true})
	rec.Stop()
	rec.RecordFrame(system.InputState{Down: true})

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 1, rec.FrameCount())
	assert.Equal(t, "demo", rec.Data().Scene)
	assert.True(t, rec.Data().Frames[0].U)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder("demo")

	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))

	assert.ErrorIs(t, err, ErrEmptyRecording)
}

func TestRecorderAndReplayer(t *testing.T) {
	inputs := []system.InputState{
		{Up: true, MouseX: 10, MouseY: 20},
		{Up: true, Right: true, Shift: true},
		{Sit: true},
		{Left: true, MouseClick: true, MouseX: 300, MouseY: 200},
	}

	rec := NewRecorder("demo")
	for _, in := range inputs {
		rec.RecordFrame(in)
	}
	assert.Equal(t, len(inputs), rec.FrameCount())

	path := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, rec.Save(path))
	_, err := os.Stat(path)
	require.NoError(t, err)

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "demo", data.Scene)
	require.Len(t, data.Frames, len(inputs))
	assert.Equal(t, 3, data.Frames[3].F)

	replayer := NewReplayer(*data)
	for i, want := range inputs {
		got, ok := replayer.GetInput()
		require.True(t, ok)
		assert.Equal(t, want, got, "frame %d", i)
	}
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{frames"), 0o644))
	_, err = LoadReplay(bad)
	assert.ErrorContains(t, err, "failed to decode replay")
}

func loadDemoWorld(t *testing.T) *world.World {
	t.Helper()
	loader := config.NewLoader("../../../cmd/demo/configs")
	cfg, err := loader.LoadScene("demo")
	require.NoError(t, err)
	assets, err := world.LoadAssets(cfg, loader.FS())
	require.NoError(t, err)
	w, err := world.FromScene(cfg, assets, mask.Builder{}, world.Options{MaxSteps: 16})
	require.NoError(t, err)
	return w
}

func TestSimulate_Deterministic(t *testing.T) {
	data := CreateTestReplayData(30, FrameInput{R: true, D: true})
	data.Frames[10].S = true
	data.Frames[20].S = true

	first := Simulate(loadDemoWorld(t), NewReplayer(data))
	second := Simulate(loadDemoWorld(t), NewReplayer(data))

	assert.Equal(t, 30, first.Frames)
	assert.Equal(t, first.Final, second.Final)
	assert.Equal(t, first.Contacts, second.Contacts)
}

func TestSimulate_EnemyChases(t *testing.T) {
	w := loadDemoWorld(t)
	enemy := w.Movers()[1]
	startX, startY := enemy.X, enemy.Y

	result := Simulate(w, NewReplayer(CreateTestReplayData(10, FrameInput{})))

	assert.Equal(t, 10, result.Frames)
	end := result.Final[enemy.ID()]
	assert.Equal(t, startX-10, end.X)
	assert.Equal(t, startY-10, end.Y)
}
