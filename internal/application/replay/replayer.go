package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/topdown/internal/application/system"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return system.InputState{
		Up:         fi.U,
		Down:       fi.D,
		Left:       fi.L,
		Right:      fi.R,
		Shift:      fi.Sh,
		Sit:        fi.S,
		MouseX:     fi.MX,
		MouseY:     fi.MY,
		MouseClick: fi.MC,
	}, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Scene returns the scene the replay was recorded in
func (r *Replayer) Scene() string {
	return r.data.Scene
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data holding frames of the same input
func CreateTestReplayData(frames int, input FrameInput) ReplayData {
	data := ReplayData{
		Version: Version,
		Scene:   "test",
		Frames:  make([]FrameInput, frames),
	}

	for i := range data.Frames {
		fi := input
		fi.F = i
		data.Frames[i] = fi
	}

	return data
}
