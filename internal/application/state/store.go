package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/infrastructure/store"
)

// storeItems is the fixed order the shop lists its wares in.
var storeItems = []string{"Gun", "Ammo", "Red"}

// Store sells items from the price table against the coin ledger.
type Store struct {
	app     *App
	list    ListWidget
	message string
}

func NewStore(app *App) *Store {
	s := &Store{app: app, list: ListWidget{Title: "STORE"}}
	s.refresh()
	return s
}

func (s *Store) refresh() {
	items := make([]string, 0, len(storeItems))
	for _, name := range storeItems {
		label := fmt.Sprintf("%-5s %4d coins", name, store.Prices[name])
		if owned := s.app.Collectables.Amount(name); owned > 0 {
			label += fmt.Sprintf("  (owned %d)", owned)
		}
		items = append(items, label)
	}
	s.list.Items = items
}

func (s *Store) Name() string { return "store" }

func (s *Store) OnEnter(State) {}

func (s *Store) OnExit(State) {}

func (s *Store) HandleActions(actions []input.Action) {
	for _, a := range actions {
		switch a {
		case input.ActionMenuUp:
			s.list.MoveUp()
		case input.ActionMenuDown:
			s.list.MoveDown()
		case input.ActionMenuSelect:
			s.buy(storeItems[s.list.Index])
		case input.ActionMenuBack:
			s.app.States.Pop()
			return
		}
	}
}

func (s *Store) buy(name string) {
	result := s.app.Collectables.Buy(name)
	s.message = fmt.Sprintf("%s: %s", name, result)
	s.app.Log.Debug("store purchase", "item", name, "result", result)
	s.refresh()
}

func (s *Store) Update(float64) {}

func (s *Store) Draw(screen *ebiten.Image) {
	screen.Fill(colorMenuBG)
	s.list.Draw(screen, 24, 32)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Coins: %d", s.app.Collectables.Coins), 24, ScreenH-38)
	if s.message != "" {
		ebitenutil.DebugPrintAt(screen, s.message, 24, ScreenH-24)
	}
}
