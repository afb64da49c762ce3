package tilemap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmellweg/ninja/internal/domain/geom"
)

func createTestTilemap() *Tilemap {
	tm := New(16)
	// Flat floor at row 5 with a single stone pillar.
	for x := 0; x < 6; x++ {
		tm.Set(Tile{Kind: KindGrass, Pos: GridPos{X: x, Y: 5}})
	}
	tm.Set(Tile{Kind: KindStone, Pos: GridPos{X: 3, Y: 4}})
	return tm
}

func TestKindRoundTrip(t *testing.T) {
	for kind, name := range kindNames {
		got, err := KindFromName(name)
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	_, err := KindFromName("lava")
	assert.Error(t, err)
}

func TestTilesAround(t *testing.T) {
	tm := createTestTilemap()

	// Position inside cell (3,4): neighborhood covers the pillar and the
	// three floor tiles below it.
	tiles := tm.TilesAround(geom.Vec2{X: 3 * 16, Y: 4 * 16})
	assert.Len(t, tiles, 4)

	// Far away from everything.
	assert.Empty(t, tm.TilesAround(geom.Vec2{X: 500, Y: 500}))
}

func TestTilesAroundNegativeCoordinates(t *testing.T) {
	tm := New(16)
	tm.Set(Tile{Kind: KindGrass, Pos: GridPos{X: -1, Y: -1}})

	// -0.5 must floor to cell -1, not truncate to cell 0.
	tiles := tm.TilesAround(geom.Vec2{X: -0.5, Y: -0.5})
	require.Len(t, tiles, 1)
	assert.Equal(t, GridPos{X: -1, Y: -1}, tiles[0].Pos)
}

func TestSolidCheck(t *testing.T) {
	tm := createTestTilemap()
	tm.Set(Tile{Kind: KindDecor, Pos: GridPos{X: 0, Y: 0}})

	tests := []struct {
		name  string
		pos   geom.Vec2
		solid bool
	}{
		{"grass floor", geom.Vec2{X: 8, Y: 5*16 + 8}, true},
		{"stone pillar", geom.Vec2{X: 3*16 + 1, Y: 4*16 + 1}, true},
		{"decor is not solid", geom.Vec2{X: 8, Y: 8}, false},
		{"empty cell", geom.Vec2{X: 200, Y: 200}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tm.SolidCheck(tt.pos)
			assert.Equal(t, tt.solid, ok)
		})
	}
}

func TestPhysicsRectsAround(t *testing.T) {
	tm := createTestTilemap()
	tm.Set(Tile{Kind: KindDecor, Pos: GridPos{X: 2, Y: 4}})

	rects := tm.PhysicsRectsAround(geom.Vec2{X: 3 * 16, Y: 4 * 16})
	// Pillar plus three floor tiles; the decor neighbor contributes nothing.
	require.Len(t, rects, 4)
	for _, r := range rects {
		assert.Equal(t, 16.0, r.W)
		assert.Equal(t, 16.0, r.H)
	}
}

func TestExtractRemoves(t *testing.T) {
	tm := createTestTilemap()
	tm.Set(Tile{Kind: KindSpawners, Variant: 0, Pos: GridPos{X: 1, Y: 3}})
	tm.Set(Tile{Kind: KindSpawners, Variant: 1, Pos: GridPos{X: 4, Y: 3}})
	tm.Set(Tile{Kind: KindSpawners, Variant: 1, Pos: GridPos{X: 2, Y: 3}})

	got := tm.Extract([]KindVariant{{KindSpawners, 0}, {KindSpawners, 1}}, false)
	require.Len(t, got, 3)
	// Extraction order is row-major regardless of insertion order.
	assert.Equal(t, geom.Vec2{X: 16, Y: 48}, got[0].Pos)
	assert.Equal(t, geom.Vec2{X: 32, Y: 48}, got[1].Pos)
	assert.Equal(t, geom.Vec2{X: 64, Y: 48}, got[2].Pos)

	// Destructive: a second pass finds nothing.
	assert.Empty(t, tm.Extract([]KindVariant{{KindSpawners, 0}, {KindSpawners, 1}}, false))
}

func TestExtractKeep(t *testing.T) {
	tm := New(16)
	tm.AddOffgrid(OffgridTile{Kind: KindLargeDecor, Variant: 2, Pos: geom.Vec2{X: 100, Y: 40}})
	tm.AddOffgrid(OffgridTile{Kind: KindDecor, Variant: 0, Pos: geom.Vec2{X: 10, Y: 10}})

	got := tm.Extract([]KindVariant{{KindLargeDecor, 2}}, true)
	require.Len(t, got, 1)
	assert.Equal(t, geom.Vec2{X: 100, Y: 40}, got[0].Pos)

	// Non-destructive: the tile is still there.
	assert.Len(t, tm.Extract([]KindVariant{{KindLargeDecor, 2}}, true), 1)
	assert.Len(t, tm.Offgrid(), 2)
}

func TestAutotile(t *testing.T) {
	tm := New(16)
	// 3x1 grass strip: left end, middle, right end.
	for x := 0; x < 3; x++ {
		tm.Set(Tile{Kind: KindGrass, Variant: 99, Pos: GridPos{X: x, Y: 0}})
	}
	// Stone below the middle tile: different kind, must not count as a
	// neighbor for grass.
	tm.Set(Tile{Kind: KindStone, Variant: 99, Pos: GridPos{X: 1, Y: 1}})

	tm.Autotile()

	left, _ := tm.TileAt(GridPos{X: 0, Y: 0})
	mid, _ := tm.TileAt(GridPos{X: 1, Y: 0})
	right, _ := tm.TileAt(GridPos{X: 2, Y: 0})
	stone, _ := tm.TileAt(GridPos{X: 1, Y: 1})

	// None of these masks (right only, left only, left+right, none) are
	// tabulated, so every variant stays untouched.
	assert.Equal(t, 99, left.Variant)
	assert.Equal(t, 99, mid.Variant)
	assert.Equal(t, 99, right.Variant)
	assert.Equal(t, 99, stone.Variant)
}

func TestAutotileCorners(t *testing.T) {
	tm := New(16)
	// 3x3 grass block exercises corners, edges and the interior.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			tm.Set(Tile{Kind: KindGrass, Variant: 99, Pos: GridPos{X: x, Y: y}})
		}
	}

	tm.Autotile()

	tests := []struct {
		name    string
		pos     GridPos
		variant int
	}{
		{"top left", GridPos{0, 0}, 0},
		{"top edge", GridPos{1, 0}, 1},
		{"top right", GridPos{2, 0}, 2},
		{"right edge", GridPos{2, 1}, 3},
		{"bottom right", GridPos{2, 2}, 4},
		{"bottom edge", GridPos{1, 2}, 5},
		{"bottom left", GridPos{0, 2}, 6},
		{"left edge", GridPos{0, 1}, 7},
		{"interior", GridPos{1, 1}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile, ok := tm.TileAt(tt.pos)
			require.True(t, ok)
			assert.Equal(t, tt.variant, tile.Variant)
		})
	}

	// Idempotent: a second pass changes nothing.
	tm.Autotile()
	tile, _ := tm.TileAt(GridPos{1, 1})
	assert.Equal(t, 8, tile.Variant)
}

func TestLevelRoundTrip(t *testing.T) {
	tm := createTestTilemap()
	tm.AddOffgrid(OffgridTile{Kind: KindLargeDecor, Variant: 2, Pos: geom.Vec2{X: 100.5, Y: 40.25}})
	data := &LevelData{
		Level: 3,
		Players: []PlayerRecord{{
			ID:         0,
			Pos:        [2]float64{50, 30},
			AirTime:    4,
			Action:     "run",
			Flip:       true,
			Alive:      true,
			Lives:      3,
			RespawnPos: [2]float64{50, 30},
		}},
		Enemies: []EnemyRecord{{ID: 1, Pos: [2]float64{80, 64}, Alive: true}},
		Tiles:   tm,
	}

	var buf bytes.Buffer
	require.NoError(t, data.Save(&buf))

	// On-disk grid keys use the "x;y" form.
	assert.Contains(t, buf.String(), `"3;4"`)

	got, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level)
	require.Len(t, got.Players, 1)
	assert.Equal(t, data.Players[0], got.Players[0])
	assert.Equal(t, data.Enemies, got.Enemies)
	assert.Equal(t, tm.Len(), got.Tiles.Len())
	require.Len(t, got.Tiles.Offgrid(), 1)
	assert.Equal(t, geom.Vec2{X: 100.5, Y: 40.25}, got.Tiles.Offgrid()[0].Pos)

	pillar, ok := got.Tiles.TileAt(GridPos{X: 3, Y: 4})
	require.True(t, ok)
	assert.Equal(t, KindStone, pillar.Kind)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{nope"},
		{"zero tile size", `{"map_data":{"tilemap":{},"tile_size":0,"offgrid":[]}}`},
		{"bad grid key", `{"map_data":{"tilemap":{"a,b":{"type":"grass","variant":0,"pos":[0,0]}},"tile_size":16,"offgrid":[]}}`},
		{"unknown kind", `{"map_data":{"tilemap":{"0;0":{"type":"lava","variant":0,"pos":[0,0]}},"tile_size":16,"offgrid":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.data))
			assert.Error(t, err)
		})
	}
}
