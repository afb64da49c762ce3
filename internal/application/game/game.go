// Package game is the ebiten driver: it polls the keyboard, routes
// actions to the state stack and paces the fixed-step simulation.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/application/state"
)

// keyByName maps the binding file's key names onto ebiten keys. A name
// missing here simply never triggers.
var keyByName = map[string]ebiten.Key{
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"A":          ebiten.KeyA,
	"D":          ebiten.KeyD,
	"S":          ebiten.KeyS,
	"W":          ebiten.KeyW,
	"X":          ebiten.KeyX,
	"R":          ebiten.KeyR,
	"M":          ebiten.KeyM,
	"Space":      ebiten.KeySpace,
	"Escape":     ebiten.KeyEscape,
	"Enter":      ebiten.KeyEnter,
	"KPEnter":    ebiten.KeyNumpadEnter,
	"Backspace":  ebiten.KeyBackspace,
	"Tab":        ebiten.KeyTab,
}

// Game implements ebiten.Game on top of the state stack.
type Game struct {
	app  *state.App
	dt   float64
	quit bool
}

// New wires the keyboard into the router, installs the quit hook and
// pushes the menu as the root state.
func New(app *state.App) *Game {
	g := &Game{app: app, dt: 1.0 / 60.0}

	app.Router.Held = func(name string) bool {
		k, ok := keyByName[name]
		return ok && ebiten.IsKeyPressed(k)
	}
	app.Router.JustPressed = func(name string) bool {
		k, ok := keyByName[name]
		return ok && inpututil.IsKeyJustPressed(k)
	}
	app.Quit = func() { g.quit = true }

	app.States.Push(state.NewMenu(app))
	return g
}

// contextFor selects the input rule table for the active state.
func contextFor(top state.State) input.Context {
	if top == nil {
		return input.ContextMenu
	}
	switch top.Name() {
	case "game":
		return input.ContextGameplay
	case "pause":
		return input.ContextPause
	default:
		return input.ContextMenu
	}
}

func (g *Game) Update() error {
	actions := g.app.Router.Actions(contextFor(g.app.States.Top()))
	g.app.States.HandleActions(actions)
	g.app.States.Update(g.dt)

	if g.quit || g.app.States.Top() == nil {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.app.States.Draw(screen)
}

func (g *Game) Layout(int, int) (int, int) {
	return state.ScreenW, state.ScreenH
}
