package replay

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/application/sim"
	"github.com/pmellweg/ninja/internal/application/snapshot"
)

// Verify re-simulates a recording segment by segment and checks that the
// simulation is still deterministic: for every checkpoint it restores the
// snapshot, replays the recorded inputs up to the next checkpoint, and
// compares each resulting visual frame against the recorded one. The
// simulation must already have the recording's level loaded.
func Verify(s *sim.Simulation, rec *Recording) error {
	if rec.Version != FormatVersion {
		return fmt.Errorf("unsupported replay version %d", rec.Version)
	}
	if len(rec.VisualFrames) != rec.DurationFrames {
		return fmt.Errorf("recording is truncated: %d visual frames for %d frames", len(rec.VisualFrames), rec.DurationFrames)
	}

	inputs := make(map[int]input.Frame, len(rec.Inputs))
	for _, ev := range rec.Inputs {
		frame, err := input.FrameFromStrings(ev.Inputs)
		if err != nil {
			return fmt.Errorf("frame %d: %w", ev.Tick, err)
		}
		inputs[ev.Tick] = frame
	}

	checkpoints := make([]int, 0, len(rec.Snapshots))
	for key := range rec.Snapshots {
		t, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("bad snapshot key %q: %w", key, err)
		}
		checkpoints = append(checkpoints, t)
	}
	sort.Ints(checkpoints)
	if len(checkpoints) == 0 || checkpoints[0] != 0 {
		return fmt.Errorf("recording has no starting checkpoint")
	}

	for i, start := range checkpoints {
		end := rec.DurationFrames
		if i+1 < len(checkpoints) {
			end = checkpoints[i+1]
		}
		if err := verifySegment(s, rec, inputs, start, end); err != nil {
			return err
		}
	}
	return nil
}

func verifySegment(s *sim.Simulation, rec *Recording, inputs map[int]input.Frame, start, end int) error {
	snap := rec.Snapshots[strconv.Itoa(start)]
	if err := snapshot.Restore(s, snap); err != nil {
		return fmt.Errorf("checkpoint %d: %w", start, err)
	}
	for f := start; f < end; f++ {
		s.Step(inputs[f])
		got := sampleVisual(s.Player())
		want := rec.VisualFrames[f]
		if !visualEqual(got, want) {
			return fmt.Errorf("frame %d diverged: got (%.4f, %.4f) %s, recorded (%.4f, %.4f) %s",
				f, got.X, got.Y, got.Action, want.X, want.Y, want.Action)
		}
	}
	return nil
}

// visualEqual compares samples with a tiny positional tolerance so that a
// recording survives float formatting through JSON.
func visualEqual(a, b VisualFrame) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps &&
		math.Abs(a.Y-b.Y) < eps &&
		a.Flip == b.Flip &&
		a.Action == b.Action &&
		a.Anim == b.Anim
}
