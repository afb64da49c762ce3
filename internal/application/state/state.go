// Package state implements the game's screens as a stack of states. The
// stack makes overlays natural: Pause pushes on top of Game, freezes it,
// and popping resumes exactly where play stopped.
package state

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pmellweg/ninja/internal/application/input"
)

// State is one screen: menu, gameplay, pause overlay and so on. Only the
// top of the stack receives actions and update ticks.
type State interface {
	Name() string
	// OnEnter is called when the state becomes top of the stack; prev is
	// the state that was on top before, or nil for the first state.
	OnEnter(prev State)
	// OnExit is called when the state leaves the stack; next is the state
	// that follows it, or nil when the stack empties.
	OnExit(next State)
	HandleActions(actions []input.Action)
	Update(dt float64)
	Draw(screen *ebiten.Image)
}

// Manager is the state stack.
type Manager struct {
	log   *log.Logger
	stack []State
}

func NewManager(logger *log.Logger) *Manager {
	return &Manager{log: logger}
}

// Top returns the active state, or nil when the stack is empty.
func (m *Manager) Top() State {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns the number of stacked states.
func (m *Manager) Depth() int { return len(m.stack) }

// Push puts a state on top without disturbing the one beneath.
func (m *Manager) Push(s State) {
	prev := m.Top()
	m.stack = append(m.stack, s)
	m.log.Debug("state push", "state", s.Name())
	s.OnEnter(prev)
}

// Pop removes and exits the top state, revealing the one beneath. It
// returns the popped state, or nil when the stack was empty.
func (m *Manager) Pop() State {
	top := m.Top()
	if top == nil {
		return nil
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.log.Debug("state pop", "state", top.Name())
	top.OnExit(m.Top())
	return top
}

// Set exits every stacked state in top-to-bottom order, each being told
// the incoming state follows it, then pushes s as the new root. Used for
// transitions where nothing beneath should resume.
func (m *Manager) Set(s State) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		m.stack[i].OnExit(s)
	}
	prev := m.Top()
	m.stack = m.stack[:0]
	m.stack = append(m.stack, s)
	m.log.Debug("state set", "state", s.Name())
	s.OnEnter(prev)
}

// HandleActions dispatches semantic input actions to the top state.
func (m *Manager) HandleActions(actions []input.Action) {
	if top := m.Top(); top != nil && len(actions) > 0 {
		top.HandleActions(actions)
	}
}

// Update ticks the top state only; everything beneath stays frozen.
func (m *Manager) Update(dt float64) {
	if top := m.Top(); top != nil {
		top.Update(dt)
	}
}

// Draw renders the top state. States that overlay another (Pause) draw
// the underlying frame themselves.
func (m *Manager) Draw(screen *ebiten.Image) {
	if top := m.Top(); top != nil {
		top.Draw(screen)
	}
}
