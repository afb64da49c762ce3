package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/pmellweg/ninja/internal/application/input"
)

// Options edits the persisted user preferences: volumes and the ghost
// toggle. Left/right adjust the highlighted row; changes flush at once.
type Options struct {
	app  *App
	list ListWidget
}

func NewOptions(app *App) *Options {
	o := &Options{app: app, list: ListWidget{Title: "OPTIONS"}}
	o.refresh()
	return o
}

func (o *Options) refresh() {
	ghost := "off"
	if o.app.Settings.GhostEnabled {
		ghost = "on"
	}
	o.list.Items = []string{
		fmt.Sprintf("Music volume  %3.0f%%", o.app.Settings.MusicVolume*100),
		fmt.Sprintf("Sound volume  %3.0f%%", o.app.Settings.SoundVolume*100),
		fmt.Sprintf("Ghost         %s", ghost),
	}
}

func (o *Options) Name() string { return "options" }

func (o *Options) OnEnter(State) {}

func (o *Options) OnExit(State) {}

func (o *Options) HandleActions(actions []input.Action) {
	for _, a := range actions {
		switch a {
		case input.ActionMenuUp:
			o.list.MoveUp()
		case input.ActionMenuDown:
			o.list.MoveDown()
		case input.ActionOptionsLeft:
			o.adjust(-1)
		case input.ActionOptionsRight:
			o.adjust(1)
		case input.ActionMenuSelect:
			if o.list.Index == 2 {
				o.adjust(1)
			}
		case input.ActionMenuBack:
			o.app.States.Pop()
			return
		}
	}
}

func (o *Options) adjust(dir int) {
	s := o.app.Settings
	switch o.list.Index {
	case 0:
		s.SetMusicVolume(s.MusicVolume + 0.1*float64(dir))
	case 1:
		s.SetSoundVolume(s.SoundVolume + 0.1*float64(dir))
	case 2:
		s.SetGhostEnabled(!s.GhostEnabled)
	}
	o.refresh()
}

func (o *Options) Update(float64) {}

func (o *Options) Draw(screen *ebiten.Image) {
	screen.Fill(colorMenuBG)
	o.list.Draw(screen, 24, 32)
	ebitenutil.DebugPrintAt(screen, "Left/Right: adjust   Esc: back", 24, ScreenH-24)
}
