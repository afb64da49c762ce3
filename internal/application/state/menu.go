package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/pmellweg/ninja/internal/application/input"
)

// Menu is the root screen.
type Menu struct {
	app  *App
	list ListWidget
}

func NewMenu(app *App) *Menu {
	return &Menu{
		app: app,
		list: ListWidget{
			Title: "NINJA",
			Items: []string{"Play", "Levels", "Store", "Accessories", "Options", "Quit"},
		},
	}
}

func (m *Menu) Name() string { return "menu" }

func (m *Menu) OnEnter(State) {}

func (m *Menu) OnExit(State) {}

func (m *Menu) HandleActions(actions []input.Action) {
	for _, a := range actions {
		switch a {
		case input.ActionMenuUp:
			m.list.MoveUp()
		case input.ActionMenuDown:
			m.list.MoveDown()
		case input.ActionMenuSelect:
			m.selectItem()
		case input.ActionMenuQuit:
			m.app.Quit()
		}
	}
}

func (m *Menu) selectItem() {
	switch m.list.Selected() {
	case "Play":
		g, err := NewGame(m.app, m.app.Settings.SelectedLevel)
		if err != nil {
			m.app.Log.Error("failed to start level", "level", m.app.Settings.SelectedLevel, "err", err)
			return
		}
		m.app.States.Set(g)
	case "Levels":
		m.app.States.Push(NewLevels(m.app))
	case "Store":
		m.app.States.Push(NewStore(m.app))
	case "Accessories":
		m.app.States.Push(NewAccessories(m.app))
	case "Options":
		m.app.States.Push(NewOptions(m.app))
	case "Quit":
		m.app.Quit()
	}
}

func (m *Menu) Update(float64) {}

func (m *Menu) Draw(screen *ebiten.Image) {
	screen.Fill(colorMenuBG)
	m.list.Draw(screen, 24, 32)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Coins: %d", m.app.Collectables.Coins), 24, ScreenH-24)
}
