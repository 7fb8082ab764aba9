// Package replay records per-frame input and plays it back, so a scene can
// be re-run headless with identical results.
package replay

// Version is the format version written by Recorder
const Version = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	U  bool `json:"u,omitempty"`  // Up
	D  bool `json:"d,omitempty"`  // Down
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	Sh bool `json:"sh,omitempty"` // Shift
	S  bool `json:"s,omitempty"`  // Sit toggle
	MX int  `json:"mx"`           // MouseX
	MY int  `json:"my"`           // MouseY
	MC bool `json:"mc,omitempty"` // MouseClick
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Scene     string       `json:"scene"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
