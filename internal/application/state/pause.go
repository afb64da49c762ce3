package state

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pmellweg/ninja/internal/application/input"
)

// Pause overlays the state it was pushed on top of. The underlying state
// keeps drawing its last frame beneath a dark overlay, but its Update is
// never called, which is what freezes the game.
type Pause struct {
	app   *App
	under State
	list  ListWidget
}

func NewPause(app *App) *Pause {
	return &Pause{
		app: app,
		list: ListWidget{
			Title: "PAUSED",
			Items: []string{"Resume", "Menu"},
		},
	}
}

func (p *Pause) Name() string { return "pause" }

func (p *Pause) OnEnter(prev State) { p.under = prev }

func (p *Pause) OnExit(State) {}

func (p *Pause) HandleActions(actions []input.Action) {
	for _, a := range actions {
		switch a {
		case input.ActionPauseClose:
			p.app.States.Pop()
			return
		case input.ActionPauseMenu:
			p.app.States.Set(NewMenu(p.app))
			return
		case input.ActionMenuUp:
			p.list.MoveUp()
		case input.ActionMenuDown:
			p.list.MoveDown()
		case input.ActionMenuSelect:
			switch p.list.Selected() {
			case "Resume":
				p.app.States.Pop()
			case "Menu":
				p.app.States.Set(NewMenu(p.app))
			}
			return
		}
	}
}

func (p *Pause) Update(float64) {}

func (p *Pause) Draw(screen *ebiten.Image) {
	if p.under != nil {
		p.under.Draw(screen)
	}
	drawOverlay(screen)
	p.list.Draw(screen, ScreenW/2-40, ScreenH/2-30)
}
