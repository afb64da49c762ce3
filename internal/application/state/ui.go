package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Shared palette for placeholder rendering and menu screens.
var (
	colorSky     = color.RGBA{14, 19, 44, 255}
	colorMenuBG  = color.RGBA{26, 26, 46, 255}
	colorOverlay = color.RGBA{0, 0, 0, 140}
	colorGrass   = color.RGBA{84, 140, 70, 255}
	colorStone   = color.RGBA{110, 110, 120, 255}
	colorDecor   = color.RGBA{60, 90, 60, 255}
	colorPlayer  = color.RGBA{100, 200, 100, 255}
	colorGhost   = color.RGBA{140, 140, 220, 110}
	colorEnemy   = color.RGBA{200, 100, 100, 255}
	colorBolt    = color.RGBA{255, 230, 120, 255}
	colorCoin    = color.RGBA{255, 215, 0, 255}
	colorFlag    = color.RGBA{240, 240, 240, 255}
	colorSparkFX = color.RGBA{255, 255, 255, 255}
	colorDust    = color.RGBA{180, 180, 190, 200}
	colorLeaf    = color.RGBA{120, 180, 90, 220}
)

// drawOverlay darkens the whole screen beneath a menu overlay.
func drawOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, ScreenW, ScreenH, colorOverlay)
}

// ListWidget is the shared vertical menu: a title, items, and a cursor
// that wraps at both ends.
type ListWidget struct {
	Title string
	Items []string
	Index int
}

func (l *ListWidget) MoveUp() {
	if len(l.Items) == 0 {
		return
	}
	l.Index = (l.Index - 1 + len(l.Items)) % len(l.Items)
}

func (l *ListWidget) MoveDown() {
	if len(l.Items) == 0 {
		return
	}
	l.Index = (l.Index + 1) % len(l.Items)
}

// Selected returns the current item, or "" for an empty list.
func (l *ListWidget) Selected() string {
	if l.Index < 0 || l.Index >= len(l.Items) {
		return ""
	}
	return l.Items[l.Index]
}

// Draw renders the list with a cursor marker at the given origin.
func (l *ListWidget) Draw(screen *ebiten.Image, x, y int) {
	ebitenutil.DebugPrintAt(screen, l.Title, x, y)
	for i, item := range l.Items {
		cursor := "  "
		if i == l.Index {
			cursor = "> "
		}
		ebitenutil.DebugPrintAt(screen, cursor+item, x, y+16+i*14)
	}
}
