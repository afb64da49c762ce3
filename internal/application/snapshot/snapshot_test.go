package snapshot

import (
	"encoding/json"
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
	for x := 0; x < 30; x++ {
		tm.Set(tilemap.Tile{Kind: tilemap.KindGrass, Pos: tilemap.GridPos{X: x, Y: 5}})
	}
	tm.Set(tilemap.Tile{Kind: tilemap.KindSpawners, Variant: 0, Pos: tilemap.GridPos{X: 2, Y: 4}})
	tm.Set(tilemap.Tile{Kind: tilemap.KindSpawners, Variant: 1, Pos: tilemap.GridPos{X: 14, Y: 4}})

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

func runFrames(s *sim.Simulation, n int) {
	frame := input.Frame{Right: true}
	for i := 0; i < n; i++ {
		s.Step(frame)
	}
}

func TestCaptureCopiesLiveState(t *testing.T) {
	s := createTestSim(t, 7)
	runFrames(s, 90)

	snap := Capture(s)

	assert.Equal(t, s.Tick(), snap.Tick)
	require.Len(t, snap.Players, 1)
	assert.Equal(t, s.Player().Pos.X, snap.Players[0].Pos[0])
	assert.Equal(t, s.Player().Lives, snap.Players[0].Lives)
	require.Len(t, snap.Enemies, 1)
	assert.Equal(t, "scripted", snap.Enemies[0].Policy)
	assert.NotEmpty(t, snap.RNGState)

	// The snapshot is a value copy: mutating the sim must not change it.
	before := snap.Players[0].Pos[0]
	runFrames(s, 10)
	assert.Equal(t, before, snap.Players[0].Pos[0])
}

func TestRestoreRewindsSimulation(t *testing.T) {
	s := createTestSim(t, 7)
	runFrames(s, 60)
	snap := Capture(s)

	// Run ahead, recording the trajectory after the capture point.
	var wantX []float64
	for i := 0; i < 120; i++ {
		s.Step(input.Frame{Right: true})
		wantX = append(wantX, s.Player().Pos.X)
	}

	require.NoError(t, Restore(s, snap))
	assert.Equal(t, snap.Tick, s.Tick())
	assert.Equal(t, snap.Players[0].Pos[0], s.Player().Pos.X)

	// With the RNG state restored, replaying the same inputs reproduces
	// the exact same trajectory.
	for i := 0; i < 120; i++ {
		s.Step(input.Frame{Right: true})
		assert.Equal(t, wantX[i], s.Player().Pos.X, "tick %d", i)
	}
}

func TestRestoreAcrossJSON(t *testing.T) {
	s := createTestSim(t, 11)
	runFrames(s, 45)
	snap := Capture(s)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))

	other := createTestSim(t, 1)
	require.NoError(t, Restore(other, decoded))

	assert.Equal(t, s.Tick(), other.Tick())
	assert.Equal(t, s.Player().Pos, other.Player().Pos)
	require.Len(t, other.Enemies(), 1)
	assert.Equal(t, s.Enemies()[0].Enemy.Pos, other.Enemies()[0].Enemy.Pos)

	// Both sims now tick in lockstep.
	s.Step(input.Frame{})
	other.Step(input.Frame{})
	assert.Equal(t, s.Player().Pos, other.Player().Pos)
}

func TestRestoreRejectsUnknownPolicy(t *testing.T) {
	s := createTestSim(t, 3)
	snap := Capture(s)
	snap.Enemies[0].Policy = "berserk"

	err := Restore(s, snap)
	assert.ErrorContains(t, err, "berserk")
}

// createWallSim builds a pit with a tall wall on the right, so the player
// can fall into a wall slide by holding Right.
func createWallSim(t *testing.T, seed uint64) *sim.Simulation {
	t.Helper()
	tm := tilemap.New(16)
	for x := 0; x < 10; x++ {
		tm.Set(tilemap.Tile{Kind: tilemap.KindGrass, Pos: tilemap.GridPos{X: x, Y: 5}})
	}
	for y := -2; y < 5; y++ {
		tm.Set(tilemap.Tile{Kind: tilemap.KindGrass, Pos: tilemap.GridPos{X: 4, Y: y}})
	}
	tm.Set(tilemap.Tile{Kind: tilemap.KindSpawners, Variant: 0, Pos: tilemap.GridPos{X: 2, Y: 0}})

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

func TestRestoreMidWallSlideKeepsWallJump(t *testing.T) {
	s := createWallSim(t, 7)

	// Fall rightward into the wall until the slide is established.
	slid := false
	for i := 0; i < 240; i++ {
		s.Step(input.Frame{Right: true})
		if s.Player().WallSlide {
			slid = true
			break
		}
	}
	require.True(t, slid, "player never reached a wall slide")

	snap := Capture(s)
	require.Positive(t, snap.Players[0].LastMovement[0],
		"captured player must still be pushing into the wall")

	// Wall-jumping on the very first frame after a restore must behave
	// exactly like the uninterrupted run.
	jumpFrame := input.Frame{Right: true, Jump: true}
	s.Step(jumpFrame)

	other := createWallSim(t, 1)
	require.NoError(t, Restore(other, snap))
	other.Step(jumpFrame)

	assert.Negative(t, other.Player().Velocity.X, "restored player must kick off the wall")
	assert.Equal(t, s.Player().Velocity, other.Player().Velocity)
	assert.Equal(t, s.Player().Pos, other.Player().Pos)
}

func TestRestoreScore(t *testing.T) {
	s := createTestSim(t, 3)
	s.Collectables().AddCoins(5)
	snap := Capture(s)
	require.Equal(t, 5, snap.Score)

	s.Collectables().AddCoins(3)
	require.NoError(t, Restore(s, snap))
	assert.Equal(t, 5, s.Collectables().Coins)
}
