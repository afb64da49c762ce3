package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/pmellweg/ninja/internal/application/input"
)

// Levels lists the level files on disk; locked levels are shown but
// cannot be entered.
type Levels struct {
	app  *App
	list ListWidget
}

func NewLevels(app *App) *Levels {
	l := &Levels{app: app, list: ListWidget{Title: "LEVELS"}}
	l.refresh()
	return l
}

func (l *Levels) refresh() {
	count := l.app.LevelCount()
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		label := fmt.Sprintf("Level %d", i)
		if !l.app.Settings.IsUnlocked(i) {
			label += "  (locked)"
		} else if best, ok := l.app.BestTimes.Best(i); ok {
			label += fmt.Sprintf("  best %5.1fs", float64(best)/60)
		}
		items = append(items, label)
	}
	l.list.Items = items
	if l.app.Settings.SelectedLevel < len(items) {
		l.list.Index = l.app.Settings.SelectedLevel
	}
}

func (l *Levels) Name() string { return "levels" }

func (l *Levels) OnEnter(State) {}

func (l *Levels) OnExit(State) {}

func (l *Levels) HandleActions(actions []input.Action) {
	for _, a := range actions {
		switch a {
		case input.ActionMenuUp:
			l.list.MoveUp()
		case input.ActionMenuDown:
			l.list.MoveDown()
		case input.ActionMenuSelect:
			l.enter(l.list.Index)
			return
		case input.ActionMenuBack:
			l.app.States.Pop()
			return
		}
	}
}

func (l *Levels) enter(level int) {
	if !l.app.Settings.IsUnlocked(level) {
		return
	}
	l.app.Settings.SetSelectedLevel(level)
	g, err := NewGame(l.app, level)
	if err != nil {
		l.app.Log.Error("failed to start level", "level", level, "err", err)
		return
	}
	l.app.States.Set(g)
}

func (l *Levels) Update(float64) {}

func (l *Levels) Draw(screen *ebiten.Image) {
	screen.Fill(colorMenuBG)
	l.list.Draw(screen, 24, 32)
	ebitenutil.DebugPrintAt(screen, "Enter: play   Esc: back", 24, ScreenH-24)
}
