package entity

// Action names an animation state. Transitions are driven by collision
// flags and timers inside the entity update, never set externally.
type Action string

const (
	ActionIdle      Action = "idle"
	ActionRun       Action = "run"
	ActionJump      Action = "jump"
	ActionSlide     Action = "slide"
	ActionWallSlide Action = "wall_slide"
)

// AnimSpec describes one animation strip: how many images it has and how
// many simulation ticks each image is held for.
type AnimSpec struct {
	Frames   int
	Duration int
	Loop     bool
}

// Anim is the per-entity animation clock. Frame counts ticks, not images.
type Anim struct {
	Spec  AnimSpec
	Frame int
	Done  bool
}

// Update advances the clock by one tick.
func (a *Anim) Update() {
	total := a.Spec.Duration * a.Spec.Frames
	if a.Spec.Loop {
		a.Frame = (a.Frame + 1) % total
		return
	}
	a.Frame = min(a.Frame+1, total-1)
	if a.Frame >= total-1 {
		a.Done = true
	}
}

// ImageIndex returns the index of the image currently shown.
func (a *Anim) ImageIndex() int {
	return min(a.Frame/a.Spec.Duration, a.Spec.Frames-1)
}

var animSpecs = map[Type]map[Action]AnimSpec{
	TypePlayer: {
		ActionIdle:      {Frames: 22, Duration: 6, Loop: true},
		ActionRun:       {Frames: 8, Duration: 4, Loop: true},
		ActionJump:      {Frames: 1, Duration: 5, Loop: true},
		ActionSlide:     {Frames: 1, Duration: 5, Loop: true},
		ActionWallSlide: {Frames: 1, Duration: 5, Loop: true},
	},
	TypeEnemy: {
		ActionIdle: {Frames: 8, Duration: 6, Loop: true},
		ActionRun:  {Frames: 8, Duration: 4, Loop: true},
	},
}

// SpecFor returns the animation spec for an entity type and action. Every
// action an entity can enter has a spec; a miss is a programming error.
func SpecFor(t Type, a Action) AnimSpec {
	spec, ok := animSpecs[t][a]
	if !ok {
		panic("entity: no animation spec for " + t.String() + "/" + string(a))
	}
	return spec
}
