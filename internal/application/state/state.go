package state

// RoomState represents what a room scene is currently doing
type RoomState int

const (
	StatePlaying RoomState = iota
	StatePaused
	StateCaught
	StateFinished
)

// String returns the string representation of the room state
func (s RoomState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateCaught:
		return "Caught"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}
