package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomState_String(t *testing.T) {
	tests := []struct {
		state    RoomState
		expected string
	}{
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateCaught, "Caught"},
		{StateFinished, "Finished"},
		{RoomState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}
