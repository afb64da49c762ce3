package tilemap

// Neighbor direction bits for the autotile lookup.
const (
	adjRight = 1 << iota
	adjLeft
	adjUp
	adjDown
)

var adjacencyOffsets = [4]struct {
	off GridPos
	bit int
}{
	{GridPos{1, 0}, adjRight},
	{GridPos{-1, 0}, adjLeft},
	{GridPos{0, -1}, adjUp},
	{GridPos{0, 1}, adjDown},
}

// autotileVariants maps a same-kind adjacency mask to the variant index of
// the matching edge sprite. The table is deliberately partial: masks that
// do not appear (isolated tiles, thin bridges) keep whatever variant the
// tile already had.
var autotileVariants = map[int]int{
	adjRight | adjDown:                     0,
	adjRight | adjDown | adjLeft:           1,
	adjLeft | adjDown:                      2,
	adjLeft | adjUp | adjDown:              3,
	adjLeft | adjUp:                        4,
	adjLeft | adjUp | adjRight:             5,
	adjRight | adjUp:                       6,
	adjRight | adjUp | adjDown:             7,
	adjRight | adjLeft | adjUp | adjDown:   8,
}

// Autotile rewrites the variant of every terrain tile from its same-kind
// four-neighborhood. Adjacency depends only on tile kinds, so the result
// is independent of visit order and the pass is idempotent.
func (t *Tilemap) Autotile() {
	for pos, tile := range t.tiles {
		if !tile.Kind.autotileEligible() {
			continue
		}
		mask := 0
		for _, a := range adjacencyOffsets {
			n, ok := t.tiles[GridPos{pos.X + a.off.X, pos.Y + a.off.Y}]
			if ok && n.Kind == tile.Kind {
				mask |= a.bit
			}
		}
		if variant, ok := autotileVariants[mask]; ok {
			tile.Variant = variant
		}
	}
}
