package config

// Tuning holds all gameplay constants. Values are per-frame quantities at
// the fixed 60 Hz simulation rate; positions and speeds are in pixels.
type Tuning struct {
	Physics    PhysicsTuning    `json:"physics"`
	Dash       DashTuning       `json:"dash"`
	Enemy      EnemyTuning      `json:"enemy"`
	Projectile ProjectileTuning `json:"projectile"`
	Effects    EffectsTuning    `json:"effects"`
	Flow       FlowTuning       `json:"flow"`
}

// PhysicsTuning covers the shared entity physics step.
type PhysicsTuning struct {
	Gravity           float64 `json:"gravity"`
	MaxFallSpeed      float64 `json:"max_fall_speed"`
	Friction          float64 `json:"friction"`
	WallSlideMaxSpeed float64 `json:"wall_slide_max_speed"`
	JumpVelocity      float64 `json:"jump_velocity"`
	WallJumpVX        float64 `json:"wall_jump_vx"`
	WallJumpVY        float64 `json:"wall_jump_vy"`
	AirTimeFatal      int     `json:"air_time_fatal"`
}

// DashTuning covers the player dash timeline. The timer counts down from
// Duration; the dash is "active" while its magnitude exceeds ActiveThreshold,
// and cosmetic bursts fire when the magnitude crosses Duration and
// ActiveThreshold exactly.
type DashTuning struct {
	Duration         int     `json:"duration"`
	ActiveThreshold  int     `json:"active_threshold"`
	DecelTrigger     int     `json:"decel_trigger"`
	Speed            float64 `json:"speed"`
	FirstTickDamping float64 `json:"first_tick_damping"`
	TrailSpeed       float64 `json:"trail_speed"`
}

// EnemyTuning covers enemy movement and the line-of-sight shot.
type EnemyTuning struct {
	DirectionBase   float64 `json:"direction_base"`
	DirectionScale  float64 `json:"direction_scale"`
	ShootBase       float64 `json:"shoot_base"`
	ShootScale      float64 `json:"shoot_scale"`
	ShootBandY      float64 `json:"shoot_band_y"`
	WalkStartChance float64 `json:"walk_start_chance"`
	WalkMinFrames   int     `json:"walk_min_frames"`
	WalkMaxFrames   int     `json:"walk_max_frames"`
	ShooterChance   float64 `json:"shooter_chance"`
	ShooterRangeX   float64 `json:"shooter_range_x"`
	ShooterRangeY   float64 `json:"shooter_range_y"`
}

// ProjectileTuning covers the straight-line bolts.
type ProjectileTuning struct {
	MaxAge          int     `json:"max_age"`
	ShootCooldown   int     `json:"shoot_cooldown"`
	PlayerShotSpeed float64 `json:"player_shot_speed"`
}

// EffectsTuning covers cosmetic particle and spark behavior.
type EffectsTuning struct {
	HitSparkCount        int     `json:"hit_spark_count"`
	ImpactSparkCount     int     `json:"impact_spark_count"`
	SparkDecay           float64 `json:"spark_decay"`
	SparkSpeedMax        float64 `json:"spark_speed_max"`
	LeafSpawnScale       float64 `json:"leaf_spawn_scale"`
	DashBurstCount       int     `json:"dash_burst_count"`
	DashBurstSpeedMin    float64 `json:"dash_burst_speed_min"`
	DashBurstSpeedSpread float64 `json:"dash_burst_speed_spread"`
}

// FlowTuning covers death, respawn and level-transition pacing.
type FlowTuning struct {
	DeadFadeStart    int `json:"dead_fade_start"`
	RespawnThreshold int `json:"respawn_threshold"`
	TransitionStart  int `json:"transition_start"`
	TransitionMax    int `json:"transition_max"`
	StartLives       int `json:"start_lives"`
}

// DefaultTuning returns the shipped gameplay constants.
func DefaultTuning() *Tuning {
	return &Tuning{
		Physics: PhysicsTuning{
			Gravity:           0.1,
			MaxFallSpeed:      5.0,
			Friction:          0.1,
			WallSlideMaxSpeed: 0.5,
			JumpVelocity:      -3.0,
			WallJumpVX:        3.5,
			WallJumpVY:        -2.5,
			AirTimeFatal:      420,
		},
		Dash: DashTuning{
			Duration:         60,
			ActiveThreshold:  50,
			DecelTrigger:     51,
			Speed:            8.0,
			FirstTickDamping: 0.1,
			TrailSpeed:       3.0,
		},
		Enemy: EnemyTuning{
			DirectionBase:   0.5,
			DirectionScale:  0.25,
			ShootBase:       1.5,
			ShootScale:      0.25,
			ShootBandY:      15,
			WalkStartChance: 0.01,
			WalkMinFrames:   30,
			WalkMaxFrames:   120,
			ShooterChance:   0.02,
			ShooterRangeX:   200,
			ShooterRangeY:   30,
		},
		Projectile: ProjectileTuning{
			MaxAge:          360,
			ShootCooldown:   10,
			PlayerShotSpeed: 3.0,
		},
		Effects: EffectsTuning{
			HitSparkCount:        30,
			ImpactSparkCount:     4,
			SparkDecay:           0.1,
			SparkSpeedMax:        5.0,
			LeafSpawnScale:       49999,
			DashBurstCount:       20,
			DashBurstSpeedMin:    0.5,
			DashBurstSpeedSpread: 0.5,
		},
		Flow: FlowTuning{
			DeadFadeStart:    10,
			RespawnThreshold: 40,
			TransitionStart:  -30,
			TransitionMax:    30,
			StartLives:       3,
		},
	}
}
