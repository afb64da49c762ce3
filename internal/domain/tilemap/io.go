package tilemap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pmellweg/ninja/internal/domain/geom"
)

// PlayerRecord is the persisted player portion of a level file.
type PlayerRecord struct {
	ID         int        `json:"id"`
	Pos        [2]float64 `json:"pos"`
	Velocity   [2]float64 `json:"velocity"`
	AirTime    int        `json:"air_time"`
	Action     string     `json:"action"`
	Flip       bool       `json:"flip"`
	Alive      bool       `json:"alive"`
	Lives      int        `json:"lifes"`
	RespawnPos [2]float64 `json:"respawn_pos"`
}

// EnemyRecord is the persisted enemy portion of a level file.
type EnemyRecord struct {
	ID       int        `json:"id"`
	Pos      [2]float64 `json:"pos"`
	Velocity [2]float64 `json:"velocity"`
	Alive    bool       `json:"alive"`
}

// LevelData is a fully decoded level file.
type LevelData struct {
	Level   int
	Players []PlayerRecord
	Enemies []EnemyRecord
	Tiles   *Tilemap
}

// Clone returns a deep copy, so a level can be re-applied after the live
// tilemap has been consumed by spawner extraction.
func (d *LevelData) Clone() *LevelData {
	return &LevelData{
		Level:   d.Level,
		Players: append([]PlayerRecord(nil), d.Players...),
		Enemies: append([]EnemyRecord(nil), d.Enemies...),
		Tiles:   d.Tiles.Clone(),
	}
}

type timerRecord struct {
	CurrentTime string `json:"current_time"`
	StartTime   string `json:"start_time"`
}

type metaRecord struct {
	Map   int         `json:"map"`
	Timer timerRecord `json:"timer"`
}

type entitiesRecord struct {
	Players []PlayerRecord `json:"players"`
	Enemies []EnemyRecord  `json:"enemies"`
}

type tileRecord struct {
	Type    string `json:"type"`
	Variant int    `json:"variant"`
	Pos     [2]int `json:"pos"`
}

type offgridRecord struct {
	Type    string     `json:"type"`
	Variant int        `json:"variant"`
	Pos     [2]float64 `json:"pos"`
}

type mapRecord struct {
	Tilemap  map[string]tileRecord `json:"tilemap"`
	TileSize int                   `json:"tile_size"`
	Offgrid  []offgridRecord       `json:"offgrid"`
}

type levelRecord struct {
	Meta     metaRecord     `json:"meta_data"`
	Entities entitiesRecord `json:"entities_data"`
	Map      mapRecord      `json:"map_data"`
}

// gridKey renders a cell coordinate in the on-disk "x;y" form.
func gridKey(p GridPos) string {
	return strconv.Itoa(p.X) + ";" + strconv.Itoa(p.Y)
}

func parseGridKey(key string) (GridPos, error) {
	parts := strings.SplitN(key, ";", 2)
	if len(parts) != 2 {
		return GridPos{}, fmt.Errorf("malformed tile key %q", key)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return GridPos{}, fmt.Errorf("malformed tile key %q: %w", key, err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return GridPos{}, fmt.Errorf("malformed tile key %q: %w", key, err)
	}
	return GridPos{X: x, Y: y}, nil
}

// Load decodes a level file.
func Load(r io.Reader) (*LevelData, error) {
	var rec levelRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	if rec.Map.TileSize <= 0 {
		return nil, fmt.Errorf("decode level: invalid tile size %d", rec.Map.TileSize)
	}

	tm := New(rec.Map.TileSize)
	for key, tr := range rec.Map.Tilemap {
		pos, err := parseGridKey(key)
		if err != nil {
			return nil, fmt.Errorf("decode level: %w", err)
		}
		kind, err := KindFromName(tr.Type)
		if err != nil {
			return nil, fmt.Errorf("decode level: %w", err)
		}
		tm.Set(Tile{Kind: kind, Variant: tr.Variant, Pos: pos})
	}
	for _, or := range rec.Map.Offgrid {
		kind, err := KindFromName(or.Type)
		if err != nil {
			return nil, fmt.Errorf("decode level: %w", err)
		}
		tm.AddOffgrid(OffgridTile{Kind: kind, Variant: or.Variant, Pos: geom.Vec2{X: or.Pos[0], Y: or.Pos[1]}})
	}

	return &LevelData{
		Level:   rec.Meta.Map,
		Players: rec.Entities.Players,
		Enemies: rec.Entities.Enemies,
		Tiles:   tm,
	}, nil
}

// LoadFile decodes the level file at path.
func LoadFile(path string) (*LevelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Save encodes the level in the on-disk format.
func (d *LevelData) Save(w io.Writer) error {
	rec := levelRecord{
		Meta: metaRecord{
			Map:   d.Level,
			Timer: timerRecord{CurrentTime: "00:00:00", StartTime: "00:00:00"},
		},
		Entities: entitiesRecord{
			Players: d.Players,
			Enemies: d.Enemies,
		},
		Map: mapRecord{
			Tilemap:  make(map[string]tileRecord, d.Tiles.Len()),
			TileSize: d.Tiles.TileSize(),
		},
	}
	for pos, tile := range d.Tiles.tiles {
		rec.Map.Tilemap[gridKey(pos)] = tileRecord{
			Type:    tile.Kind.String(),
			Variant: tile.Variant,
			Pos:     [2]int{pos.X, pos.Y},
		}
	}
	for _, tile := range d.Tiles.offgrid {
		rec.Map.Offgrid = append(rec.Map.Offgrid, offgridRecord{
			Type:    tile.Kind.String(),
			Variant: tile.Variant,
			Pos:     [2]float64{tile.Pos.X, tile.Pos.Y},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode level: %w", err)
	}
	return nil
}

// SaveFile writes the level to path.
func (d *LevelData) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create level file: %w", err)
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close level file: %w", err)
	}
	return nil
}
