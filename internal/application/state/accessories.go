package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/infrastructure/store"
)

// Accessories equips owned weapons and skins. The switch action flips
// between the two rows; select equips the highlighted entry.
type Accessories struct {
	app      *App
	row      int // 0 weapons, 1 skins
	weapons  ListWidget
	skins    ListWidget
	message  string
}

func NewAccessories(app *App) *Accessories {
	a := &Accessories{
		app:     app,
		weapons: ListWidget{Title: "WEAPONS", Items: store.Weapons},
		skins:   ListWidget{Title: "SKINS", Items: store.Skins},
	}
	a.weapons.Index = app.Settings.SelectedWeapon
	a.skins.Index = app.Settings.SelectedSkin
	return a
}

func (a *Accessories) active() *ListWidget {
	if a.row == 0 {
		return &a.weapons
	}
	return &a.skins
}

// owned reports whether the highlighted entry may be equipped. Index 0 is
// the free default in both rows.
func (a *Accessories) owned(row, idx int) bool {
	if idx == 0 {
		return true
	}
	if row == 0 {
		return a.app.Collectables.Gun
	}
	return a.app.Collectables.Amount(store.Skins[idx]) > 0
}

func (a *Accessories) Name() string { return "accessories" }

func (a *Accessories) OnEnter(State) {}

func (a *Accessories) OnExit(State) {}

func (a *Accessories) HandleActions(actions []input.Action) {
	for _, act := range actions {
		switch act {
		case input.ActionAccessoriesSwitch:
			a.row = 1 - a.row
		case input.ActionMenuUp:
			a.active().MoveUp()
		case input.ActionMenuDown:
			a.active().MoveDown()
		case input.ActionMenuSelect:
			a.equip()
		case input.ActionMenuBack:
			a.app.States.Pop()
			return
		}
	}
}

func (a *Accessories) equip() {
	idx := a.active().Index
	if !a.owned(a.row, idx) {
		a.message = "not owned"
		return
	}
	if a.row == 0 {
		a.app.Settings.SetSelectedWeapon(idx)
		a.message = fmt.Sprintf("equipped %s", store.Weapons[idx])
	} else {
		a.app.Settings.SetSelectedSkin(idx)
		a.message = fmt.Sprintf("equipped %s", store.Skins[idx])
	}
}

func (a *Accessories) Update(float64) {}

func (a *Accessories) Draw(screen *ebiten.Image) {
	screen.Fill(colorMenuBG)
	a.weapons.Draw(screen, 24, 32)
	a.skins.Draw(screen, 160, 32)

	marker := "WEAPONS"
	if a.row == 1 {
		marker = "SKINS"
	}
	ebitenutil.DebugPrintAt(screen, "Tab: switch row  ("+marker+")", 24, ScreenH-38)
	if a.message != "" {
		ebitenutil.DebugPrintAt(screen, a.message, 24, ScreenH-24)
	}
}
