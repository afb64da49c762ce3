package input

// Context selects which rule table routes keys to actions.
type Context uint8

const (
	ContextMenu Context = iota
	ContextGameplay
	ContextPause
)

// KeyState reports whether a named key is active. The driver supplies the
// real keyboard; tests supply fakes.
type KeyState func(key string) bool

// Router turns key state into actions and gameplay frames.
type Router struct {
	bindings *Bindings

	// Held reports keys currently down; JustPressed only on the first
	// frame of a press.
	Held        KeyState
	JustPressed KeyState
}

// NewRouter creates a router over the given bindings. Both key state
// functions must be set before use.
func NewRouter(b *Bindings) *Router {
	return &Router{bindings: b}
}

func (r *Router) anyHeld(keys []string) bool {
	for _, k := range keys {
		if r.Held(k) {
			return true
		}
	}
	return false
}

func (r *Router) anyJustPressed(keys []string) bool {
	for _, k := range keys {
		if r.JustPressed(k) {
			return true
		}
	}
	return false
}

// GameplayFrame samples the simulation input for this tick. Movement is
// level-triggered; jump, dash and shoot are edge-triggered.
func (r *Router) GameplayFrame() Frame {
	g := r.bindings.Gameplay
	return Frame{
		Left:  r.anyHeld(g.Left),
		Right: r.anyHeld(g.Right),
		Jump:  r.anyJustPressed(g.Jump),
		Dash:  r.anyJustPressed(g.Dash),
		Shoot: r.anyJustPressed(g.Shoot),
	}
}

type rule struct {
	keys   []string
	action Action
}

// Actions returns this frame's edge-triggered actions for a context,
// de-duplicated in rule order.
func (r *Router) Actions(ctx Context) []Action {
	var rules []rule
	switch ctx {
	case ContextMenu:
		m := r.bindings.Menu
		rules = []rule{
			{m.Up, ActionMenuUp},
			{m.Down, ActionMenuDown},
			{m.Select, ActionMenuSelect},
			{m.Back, ActionMenuBack},
			{m.Quit, ActionMenuQuit},
			{m.Left, ActionOptionsLeft},
			{m.Right, ActionOptionsRight},
			{m.Switch, ActionAccessoriesSwitch},
		}
	case ContextGameplay:
		g := r.bindings.Gameplay
		rules = []rule{
			{g.Pause, ActionPauseToggle},
			{g.Restart, ActionRestart},
		}
	case ContextPause:
		p := r.bindings.Pause
		rules = []rule{
			{p.Close, ActionPauseClose},
			{p.Menu, ActionPauseMenu},
			{p.Up, ActionMenuUp},
			{p.Down, ActionMenuDown},
			{p.Select, ActionMenuSelect},
		}
	}

	var actions []Action
	seen := make(map[Action]bool)
	for _, ru := range rules {
		if !seen[ru.action] && r.anyJustPressed(ru.keys) {
			seen[ru.action] = true
			actions = append(actions, ru.action)
		}
	}
	return actions
}
