package state

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmellweg/ninja/internal/application/input"
)

// mockState is a test double recording lifecycle calls.
type mockState struct {
	name          string
	updateCalled  int
	drawCalled    int
	enteredFrom   State
	exitedTo      State
	onEnterCalled int
	onExitCalled  int
	onExitOrder   *[]string
}

func (m *mockState) Name() string { return m.name }

func (m *mockState) OnEnter(prev State) {
	m.onEnterCalled++
	m.enteredFrom = prev
}

func (m *mockState) OnExit(next State) {
	m.onExitCalled++
	m.exitedTo = next
	if m.onExitOrder != nil {
		*m.onExitOrder = append(*m.onExitOrder, m.name)
	}
}

func (m *mockState) HandleActions([]input.Action) {}

func (m *mockState) Update(float64) { m.updateCalled++ }

func (m *mockState) Draw(*ebiten.Image) { m.drawCalled++ }

func createTestManager() *Manager {
	return NewManager(log.New(io.Discard))
}

func TestManagerPushEntersWithPrevious(t *testing.T) {
	m := createTestManager()
	first := &mockState{name: "first"}
	second := &mockState{name: "second"}

	m.Push(first)
	assert.Equal(t, 1, first.onEnterCalled)
	assert.Nil(t, first.enteredFrom, "first state has no predecessor")

	m.Push(second)
	assert.Same(t, first, second.enteredFrom)
	assert.Same(t, second, m.Top())
	assert.Equal(t, 2, m.Depth())
}

func TestManagerPopRevealsStateBeneath(t *testing.T) {
	m := createTestManager()
	under := &mockState{name: "under"}
	top := &mockState{name: "top"}
	m.Push(under)
	m.Push(top)

	popped := m.Pop()
	assert.Same(t, top, popped)
	assert.Equal(t, 1, top.onExitCalled)
	assert.Same(t, under, top.exitedTo)
	assert.Same(t, under, m.Top())

	// Popping the last state tells it nothing follows.
	m.Pop()
	assert.Nil(t, under.exitedTo)
	assert.Nil(t, m.Top())
	assert.Nil(t, m.Pop(), "pop on an empty stack is a no-op")
}

func TestManagerSetExitsTopToBottom(t *testing.T) {
	m := createTestManager()
	var order []string
	bottom := &mockState{name: "bottom", onExitOrder: &order}
	middle := &mockState{name: "middle", onExitOrder: &order}
	top := &mockState{name: "top", onExitOrder: &order}
	m.Push(bottom)
	m.Push(middle)
	m.Push(top)

	root := &mockState{name: "root"}
	m.Set(root)

	assert.Equal(t, []string{"top", "middle", "bottom"}, order)
	assert.Same(t, root, bottom.exitedTo, "every exiting state is told what follows")
	assert.Equal(t, 1, m.Depth())
	assert.Same(t, root, m.Top())
	assert.Same(t, top, root.enteredFrom)
}

func TestManagerDispatchesOnlyToTop(t *testing.T) {
	m := createTestManager()
	under := &mockState{name: "under"}
	top := &mockState{name: "top"}
	m.Push(under)
	m.Push(top)

	m.Update(1.0 / 60)
	m.Update(1.0 / 60)
	assert.Equal(t, 2, top.updateCalled)
	assert.Equal(t, 0, under.updateCalled, "states beneath the top stay frozen")

	m.Draw(ebiten.NewImage(ScreenW, ScreenH))
	assert.Equal(t, 1, top.drawCalled)
	assert.Equal(t, 0, under.drawCalled)
}

func TestPauseFreezesUnderlyingState(t *testing.T) {
	m := createTestManager()
	app := &App{Log: log.New(io.Discard), States: nil}
	app.States = m

	game := &mockState{name: "game"}
	m.Push(game)
	pause := NewPause(app)
	m.Push(pause)

	require.Same(t, game, pause.under)

	// The frozen state renders beneath the overlay but never updates.
	m.Update(1.0 / 60)
	m.Update(1.0 / 60)
	assert.Equal(t, 0, game.updateCalled)

	m.Draw(ebiten.NewImage(ScreenW, ScreenH))
	assert.Equal(t, 1, game.drawCalled, "pause draws the underlying frame")

	// pause_close pops back to the game.
	pause.HandleActions([]input.Action{input.ActionPauseClose})
	assert.Same(t, game, m.Top())

	m.Update(1.0 / 60)
	assert.Equal(t, 1, game.updateCalled)
}

func TestListWidgetWraps(t *testing.T) {
	l := ListWidget{Items: []string{"a", "b", "c"}}

	l.MoveUp()
	assert.Equal(t, 2, l.Index, "moving up from the top wraps to the bottom")
	l.MoveDown()
	assert.Equal(t, 0, l.Index)
	l.MoveDown()
	assert.Equal(t, "b", l.Selected())

	empty := ListWidget{}
	empty.MoveDown()
	assert.Equal(t, "", empty.Selected())
}
