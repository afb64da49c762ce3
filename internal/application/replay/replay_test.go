package replay

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/application/sim"
	"github.com/pmellweg/ninja/internal/domain/tilemap"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
	"github.com/pmellweg/ninja/internal/infrastructure/rng"
	"github.com/pmellweg/ninja/internal/infrastructure/store"
)

func createTestSim(t *testing.T, seed uint64) *sim.Simulation {
	t.Helper()
	tm := tilemap.New(16)
	for x := 0; x < 40; x++ {
		tm.Set(tilemap.Tile{Kind: tilemap.KindGrass, Pos: tilemap.GridPos{X: x, Y: 5}})
	}
	tm.Set(tilemap.Tile{Kind: tilemap.KindSpawners, Variant: 0, Pos: tilemap.GridPos{X: 2, Y: 4}})
	tm.Set(tilemap.Tile{Kind: tilemap.KindSpawners, Variant: 1, Pos: tilemap.GridPos{X: 30, Y: 4}})

	logger := log.New(io.Discard)
	s := sim.New(sim.Options{
		Logger:       logger,
		Tuning:       config.DefaultTuning(),
		Rand:         rng.New(seed),
		Collectables: store.LoadCollectables(store.NewJSONStore(t.TempDir()), logger),
	})
	require.NoError(t, s.LoadLevel(&tilemap.LevelData{Level: 0, Tiles: tm}))
	return s
}

// recordTestRun plays a short scripted run and returns the sealed
// recording along with the simulation it ran on.
func recordTestRun(t *testing.T, seed uint64, frames int) (*Recording, *sim.Simulation) {
	t.Helper()
	s := createTestSim(t, seed)
	r := NewRecorder(0, 1, seed, false)
	for i := 0; i < frames; i++ {
		frame := input.Frame{Right: true}
		if i%45 == 0 {
			frame.Jump = true
		}
		r.Step(s, frame)
	}
	return r.Finish(), s
}

func TestRecorderSamplesEveryFrame(t *testing.T) {
	rec, s := recordTestRun(t, 9, 150)

	assert.Equal(t, FormatVersion, rec.Version)
	assert.Equal(t, 150, rec.DurationFrames)
	assert.Len(t, rec.VisualFrames, 150)
	assert.Len(t, rec.Snapshots, 3) // checkpoints at 0, 60 and 120
	assert.Contains(t, rec.Snapshots, "0")
	assert.Contains(t, rec.Snapshots, "120")

	// Every frame held an input, so none were elided.
	assert.Len(t, rec.Inputs, 150)

	last := rec.VisualFrames[149]
	assert.Equal(t, s.Player().Pos.X, last.X)
}

func TestRecorderElidesEmptyFrames(t *testing.T) {
	s := createTestSim(t, 9)
	r := NewRecorder(0, 0, 9, false)
	r.Step(s, input.Frame{})
	r.Step(s, input.Frame{Right: true})
	r.Step(s, input.Frame{})
	rec := r.Finish()

	require.Len(t, rec.Inputs, 1)
	assert.Equal(t, 1, rec.Inputs[0].Tick)
	assert.Equal(t, []string{"right"}, rec.Inputs[0].Inputs)

	frame, err := rec.InputAt(1)
	require.NoError(t, err)
	assert.Equal(t, input.Frame{Right: true}, frame)
	frame, err = rec.InputAt(2)
	require.NoError(t, err)
	assert.True(t, frame.Empty())
}

func TestVerifyAcceptsOwnRecording(t *testing.T) {
	rec, s := recordTestRun(t, 21, 200)
	assert.NoError(t, Verify(s, rec))
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec, s := recordTestRun(t, 21, 100)
	rec.VisualFrames[70].X += 1

	err := Verify(s, rec)
	assert.ErrorContains(t, err, "frame 70 diverged")
}

func TestVerifyRejectsBrokenRecordings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(rec *Recording)
		wantErr string
	}{
		{
			name:    "wrong version",
			mutate:  func(rec *Recording) { rec.Version = 99 },
			wantErr: "version",
		},
		{
			name:    "truncated frames",
			mutate:  func(rec *Recording) { rec.VisualFrames = rec.VisualFrames[:10] },
			wantErr: "truncated",
		},
		{
			name:    "missing start checkpoint",
			mutate:  func(rec *Recording) { delete(rec.Snapshots, "0") },
			wantErr: "checkpoint",
		},
		{
			name: "unknown input name",
			mutate: func(rec *Recording) {
				rec.Inputs[0].Inputs = []string{"teleport"}
			},
			wantErr: "teleport",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, s := recordTestRun(t, 5, 70)
			tt.mutate(rec)
			err := Verify(s, rec)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func createTestManager(t *testing.T) *Manager {
	t.Helper()
	logger := log.New(io.Discard)
	js := store.NewJSONStore(t.TempDir())
	return NewManager(js, store.LoadBestTimes(js, logger), logger)
}

func TestManagerSlots(t *testing.T) {
	m := createTestManager(t)

	slow, _ := recordTestRun(t, 2, 120)
	assert.True(t, m.CommitRun(slow), "first clear always sets a best")

	slower, _ := recordTestRun(t, 3, 150)
	assert.False(t, m.CommitRun(slower), "slower run must not replace the best")

	last, err := m.Last(0)
	require.NoError(t, err)
	assert.Equal(t, 150, last.DurationFrames, "last slot follows every run")

	best, err := m.Best(0)
	require.NoError(t, err)
	assert.Equal(t, 120, best.DurationFrames, "best slot keeps the faster run")

	faster, _ := recordTestRun(t, 4, 90)
	assert.True(t, m.CommitRun(faster))
	best, err = m.Best(0)
	require.NoError(t, err)
	assert.Equal(t, 90, best.DurationFrames)
}

func TestManagerMissingSlots(t *testing.T) {
	m := createTestManager(t)
	_, err := m.Last(7)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Nil(t, m.Ghost(7))
}

func TestGhostPrefersLastOverBest(t *testing.T) {
	m := createTestManager(t)

	fast, _ := recordTestRun(t, 2, 80)
	require.True(t, m.CommitRun(fast))
	slow, _ := recordTestRun(t, 3, 140)
	require.False(t, m.CommitRun(slow))

	g := m.Ghost(0)
	require.NotNil(t, g)

	frames := 0
	for !g.Done() {
		_, ok := g.Advance()
		require.True(t, ok)
		frames++
	}
	assert.Equal(t, 140, frames, "ghost should come from the last run")
}

func TestGhostPlayback(t *testing.T) {
	rec, _ := recordTestRun(t, 6, 30)
	g := NewGhost(rec)

	assert.Equal(t, 1, g.Skin())

	first, ok := g.Advance()
	require.True(t, ok)
	assert.Equal(t, rec.VisualFrames[0], first)

	for !g.Done() {
		g.Advance()
	}
	_, ok = g.Advance()
	assert.False(t, ok)

	g.Reset()
	again, ok := g.Advance()
	require.True(t, ok)
	assert.Equal(t, first, again)
}
