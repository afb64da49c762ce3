// Package tilemap implements the sparse tile index the simulation collides
// against: grid-aligned tiles keyed by cell coordinate plus free-form
// decorative tiles at arbitrary world positions.
package tilemap

import (
	"fmt"
	"math"
	"sort"

	"github.com/pmellweg/ninja/internal/domain/geom"
)

// Kind identifies a tile category.
type Kind uint8

const (
	KindGrass Kind = iota
	KindStone
	KindDecor
	KindLargeDecor
	KindSpawners
	KindCoin
	KindFlag
)

var kindNames = map[Kind]string{
	KindGrass:      "grass",
	KindStone:      "stone",
	KindDecor:      "decor",
	KindLargeDecor: "large_decor",
	KindSpawners:   "spawners",
	KindCoin:       "coin",
	KindFlag:       "flag",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

// String returns the save-format name of the kind.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", k)
}

// KindFromName resolves a save-format name. Unknown names are a data error.
func KindFromName(name string) (Kind, error) {
	k, ok := kindByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown tile kind %q", name)
	}
	return k, nil
}

// Solid reports whether entities collide with this kind.
func (k Kind) Solid() bool {
	return k == KindGrass || k == KindStone
}

// autotileEligible reports whether Autotile may rewrite this kind's variant.
func (k Kind) autotileEligible() bool {
	return k == KindGrass || k == KindStone
}

// GridPos is an integer tile-grid coordinate.
type GridPos struct {
	X, Y int
}

// Tile is one grid-aligned cell.
type Tile struct {
	Kind    Kind
	Variant int
	Pos     GridPos
}

// OffgridTile is a decorative tile placed at an arbitrary world position.
// Off-grid tiles have no key and may overlap.
type OffgridTile struct {
	Kind    Kind
	Variant int
	Pos     geom.Vec2
}

// KindVariant selects tiles for Extract.
type KindVariant struct {
	Kind    Kind
	Variant int
}

// Extracted is a tile pulled out of the index, with its position converted
// to world coordinates.
type Extracted struct {
	Kind    Kind
	Variant int
	Pos     geom.Vec2
}

// neighborOffsets is the 3x3 neighborhood (center included) used for
// narrow-phase collision queries.
var neighborOffsets = [9]GridPos{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {0, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// Tilemap owns the two tile stores. A grid key maps to at most one tile.
type Tilemap struct {
	tileSize int
	tiles    map[GridPos]*Tile
	offgrid  []*OffgridTile
}

// New creates an empty tilemap with the given tile edge length in pixels.
func New(tileSize int) *Tilemap {
	return &Tilemap{
		tileSize: tileSize,
		tiles:    make(map[GridPos]*Tile),
	}
}

// TileSize returns the tile edge length in pixels.
func (t *Tilemap) TileSize() int { return t.tileSize }

// Len returns the number of grid tiles.
func (t *Tilemap) Len() int { return len(t.tiles) }

// TileAt returns the tile occupying a grid cell, if any.
func (t *Tilemap) TileAt(p GridPos) (*Tile, bool) {
	tile, ok := t.tiles[p]
	return tile, ok
}

// Set places a tile at its grid position, replacing any occupant.
func (t *Tilemap) Set(tile Tile) {
	cp := tile
	t.tiles[tile.Pos] = &cp
}

// Remove deletes the tile at a grid cell.
func (t *Tilemap) Remove(p GridPos) {
	delete(t.tiles, p)
}

// AddOffgrid appends a free-form tile.
func (t *Tilemap) AddOffgrid(tile OffgridTile) {
	cp := tile
	t.offgrid = append(t.offgrid, &cp)
}

// Offgrid returns the off-grid tiles in placement order.
func (t *Tilemap) Offgrid() []*OffgridTile { return t.offgrid }

// Clone returns a deep copy of the tilemap.
func (t *Tilemap) Clone() *Tilemap {
	cp := New(t.tileSize)
	for pos, tile := range t.tiles {
		c := *tile
		cp.tiles[pos] = &c
	}
	for _, og := range t.offgrid {
		c := *og
		cp.offgrid = append(cp.offgrid, &c)
	}
	return cp
}

// cellOf returns the grid cell containing a world position.
func (t *Tilemap) cellOf(pos geom.Vec2) GridPos {
	return GridPos{
		X: int(math.Floor(pos.X / float64(t.tileSize))),
		Y: int(math.Floor(pos.Y / float64(t.tileSize))),
	}
}

// TilesAround returns the grid tiles in the 3x3 neighborhood of the cell
// containing pos.
func (t *Tilemap) TilesAround(pos geom.Vec2) []*Tile {
	var tiles []*Tile
	center := t.cellOf(pos)
	for _, off := range neighborOffsets {
		if tile, ok := t.tiles[GridPos{center.X + off.X, center.Y + off.Y}]; ok {
			tiles = append(tiles, tile)
		}
	}
	return tiles
}

// SolidCheck returns the tile occupying the cell under pos when that tile
// is physics-blocking.
func (t *Tilemap) SolidCheck(pos geom.Vec2) (*Tile, bool) {
	tile, ok := t.tiles[t.cellOf(pos)]
	if !ok || !tile.Kind.Solid() {
		return nil, false
	}
	return tile, true
}

// PhysicsRectsAround returns world-space rectangles for the solid tiles in
// the 3x3 neighborhood of pos.
func (t *Tilemap) PhysicsRectsAround(pos geom.Vec2) []geom.Rect {
	var rects []geom.Rect
	size := float64(t.tileSize)
	for _, tile := range t.TilesAround(pos) {
		if !tile.Kind.Solid() {
			continue
		}
		rects = append(rects, geom.Rect{
			X: float64(tile.Pos.X) * size,
			Y: float64(tile.Pos.Y) * size,
			W: size,
			H: size,
		})
	}
	return rects
}

// Extract pulls out all tiles matching one of the given kind/variant pairs,
// converting grid positions to world coordinates. When keep is false the
// matches are removed from the index, so a second call returns nothing;
// this is what turns spawner markers into live entities exactly once.
func (t *Tilemap) Extract(pairs []KindVariant, keep bool) []Extracted {
	match := func(k Kind, v int) bool {
		for _, p := range pairs {
			if p.Kind == k && p.Variant == v {
				return true
			}
		}
		return false
	}

	var matches []Extracted

	kept := t.offgrid[:0:0]
	for _, tile := range t.offgrid {
		if match(tile.Kind, tile.Variant) {
			matches = append(matches, Extracted{Kind: tile.Kind, Variant: tile.Variant, Pos: tile.Pos})
			if keep {
				kept = append(kept, tile)
			}
		} else {
			kept = append(kept, tile)
		}
	}
	t.offgrid = kept

	var gridMatches []*Tile
	for _, tile := range t.tiles {
		if match(tile.Kind, tile.Variant) {
			gridMatches = append(gridMatches, tile)
		}
	}
	// Map iteration order is random; sort so extraction (and therefore
	// entity spawn order) is reproducible.
	sort.Slice(gridMatches, func(i, j int) bool {
		if gridMatches[i].Pos.Y != gridMatches[j].Pos.Y {
			return gridMatches[i].Pos.Y < gridMatches[j].Pos.Y
		}
		return gridMatches[i].Pos.X < gridMatches[j].Pos.X
	})
	size := float64(t.tileSize)
	for _, tile := range gridMatches {
		matches = append(matches, Extracted{
			Kind:    tile.Kind,
			Variant: tile.Variant,
			Pos:     geom.Vec2{X: float64(tile.Pos.X) * size, Y: float64(tile.Pos.Y) * size},
		})
		if !keep {
			delete(t.tiles, tile.Pos)
		}
	}
	return matches
}
