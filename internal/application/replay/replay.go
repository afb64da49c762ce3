// Package replay records runs as input sequences with periodic snapshot
// checkpoints, persists them in per-level slots, and plays them back as a
// render-only ghost.
package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/application/sim"
	"github.com/pmellweg/ninja/internal/application/snapshot"
	"github.com/pmellweg/ninja/internal/domain/entity"
)

// FormatVersion is bumped whenever the recording layout changes.
const FormatVersion = 1

// SnapshotInterval is the number of frames between full checkpoints.
const SnapshotInterval = 60

// VisualFrame is the per-frame sample a ghost needs to render: position,
// facing and the animation pose.
type VisualFrame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Flip   bool    `json:"flip"`
	Action string  `json:"action"`
	Anim   int     `json:"anim"`
}

// InputEvent stores the input set held on one frame. Frames with no input
// are omitted from the recording.
type InputEvent struct {
	Tick   int      `json:"tick"`
	Inputs []string `json:"inputs"`
}

// Recording is the persisted form of one run.
type Recording struct {
	Version        int                          `json:"version"`
	Level          int                          `json:"level"`
	Skin           int                          `json:"skin"`
	GunEquipped    bool                         `json:"gun_equipped"`
	Seed           uint64                       `json:"seed"`
	DurationFrames int                          `json:"duration_frames"`
	Inputs         []InputEvent                 `json:"inputs"`
	Snapshots      map[string]snapshot.Snapshot `json:"snapshots"`
	VisualFrames   []VisualFrame                `json:"visual_frames"`
}

// ReadFile loads a recording from an explicit path, outside the slot
// store. Used by the verify command.
func ReadFile(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode replay %s: %w", path, err)
	}
	return &rec, nil
}

// WriteFile saves a recording to an explicit path.
func WriteFile(path string, rec *Recording) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode replay: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write replay %s: %w", path, err)
	}
	return nil
}

// InputAt returns the input set recorded for one frame index.
func (r *Recording) InputAt(frame int) (input.Frame, error) {
	for _, ev := range r.Inputs {
		if ev.Tick == frame {
			return input.FrameFromStrings(ev.Inputs)
		}
	}
	return input.Frame{}, nil
}

func sampleVisual(p *entity.Player) VisualFrame {
	return VisualFrame{
		X:      p.Pos.X,
		Y:      p.Pos.Y,
		Flip:   p.Flip,
		Action: string(p.Action),
		Anim:   p.Anim.Frame,
	}
}

// Recorder captures a run while it is being played. It wraps the
// simulation step so that every frame is sampled exactly once; the frame
// index it keeps is its own, independent of the simulation tick, which
// resets on respawn.
type Recorder struct {
	rec   *Recording
	frame int
}

// NewRecorder starts a recording for one run. The gun flag is part of
// the recording because player shots draw from the shared RNG; a verify
// run must equip the same loadout to stay on the recorded stream.
func NewRecorder(level, skin int, seed uint64, gunEquipped bool) *Recorder {
	return &Recorder{
		rec: &Recording{
			Version:     FormatVersion,
			Level:       level,
			Skin:        skin,
			GunEquipped: gunEquipped,
			Seed:        seed,
			Snapshots:   map[string]snapshot.Snapshot{},
		},
	}
}

// Step advances the simulation one frame and records it: a checkpoint
// every SnapshotInterval frames (captured before the step, so replaying
// from it reproduces this frame), the input set when non-empty, and the
// post-step visual sample.
func (r *Recorder) Step(s *sim.Simulation, frame input.Frame) sim.StepEvents {
	if r.frame%SnapshotInterval == 0 {
		r.rec.Snapshots[strconv.Itoa(r.frame)] = snapshot.Capture(s)
	}
	if !frame.Empty() {
		r.rec.Inputs = append(r.rec.Inputs, InputEvent{Tick: r.frame, Inputs: frame.Strings()})
	}
	ev := s.Step(frame)
	r.rec.VisualFrames = append(r.rec.VisualFrames, sampleVisual(s.Player()))
	r.frame++
	return ev
}

// Frames returns how many frames have been recorded so far.
func (r *Recorder) Frames() int { return r.frame }

// Finish seals the recording and returns it.
func (r *Recorder) Finish() *Recording {
	r.rec.DurationFrames = r.frame
	return r.rec
}
