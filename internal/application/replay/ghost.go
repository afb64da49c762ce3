package replay

// Ghost plays a recording back one visual sample per frame. It is
// render-only: nothing it does feeds back into the live simulation.
type Ghost struct {
	frames []VisualFrame
	skin   int
	cursor int
}

func NewGhost(rec *Recording) *Ghost {
	return &Ghost{frames: rec.VisualFrames, skin: rec.Skin}
}

// Skin identifies which sprite set the recorded run was played with.
func (g *Ghost) Skin() int { return g.skin }

// Done reports whether the recording has run out of samples.
func (g *Ghost) Done() bool { return g.cursor >= len(g.frames) }

// Advance consumes and returns the next visual sample. Once the recording
// is exhausted it reports false and the ghost should no longer be drawn.
func (g *Ghost) Advance() (VisualFrame, bool) {
	if g.Done() {
		return VisualFrame{}, false
	}
	f := g.frames[g.cursor]
	g.cursor++
	return f, true
}

// Reset rewinds the ghost to the start of the recording.
func (g *Ghost) Reset() { g.cursor = 0 }
