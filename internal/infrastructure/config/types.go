package config

// PhysicsConfig is the root config for physics.json.
// Speeds are pixels per fixed tick, durations are milliseconds.
type PhysicsConfig struct {
	Display         DisplayConfig         `json:"display"`
	Physics         PhysicsSettings       `json:"physics"`
	Movement        MovementConfig        `json:"movement"`
	Jump            JumpConfig            `json:"jump"`
	GroundPound     GroundPoundConfig     `json:"groundPound"`
	FallingPlatform FallingPlatformConfig `json:"fallingPlatform"`
	Feedback        FeedbackConfig        `json:"feedback"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

type PhysicsSettings struct {
	TickMs       float64 `json:"tickMs"`
	MaxSteps     int     `json:"maxSteps"` // cap on fixed steps per frame
	Gravity      float64 `json:"gravity"`
	MaxFallSpeed float64 `json:"maxFallSpeed"`
}

type MovementConfig struct {
	WalkSpeed        float64 `json:"walkSpeed"`
	RunSpeed         float64 `json:"runSpeed"`
	Acceleration     float64 `json:"acceleration"`
	Friction         float64 `json:"friction"`
	IceFriction      float64 `json:"iceFriction"`
	StopThreshold    float64 `json:"stopThreshold"`
	CoffeeMultiplier float64 `json:"coffeeMultiplier"`
	PoundDamping     float64 `json:"poundDamping"` // vx multiplier during windup and recovery
}

type JumpConfig struct {
	Force             float64 `json:"force"`
	CoyoteTime        float64 `json:"coyoteTime"`
	JumpBuffer        float64 `json:"jumpBuffer"`
	MaxHold           float64 `json:"maxHold"`
	HoldMultiplier    float64 `json:"holdMultiplier"`
	ReleaseMultiplier float64 `json:"releaseMultiplier"`
	BounceMultiplier  float64 `json:"bounceMultiplier"`
	SpringBoost       float64 `json:"springBoost"`
	SnapDistance      float64 `json:"snapDistance"`
}

type GroundPoundConfig struct {
	WindupMs       float64 `json:"windupMs"`
	RecoveryMs     float64 `json:"recoveryMs"`
	FallSpeed      float64 `json:"fallSpeed"`
	HorizontalMult float64 `json:"horizontalMult"`
	ImpactRadius   float64 `json:"impactRadius"`
}

type FallingPlatformConfig struct {
	MinContactMs float64 `json:"minContactMs"`
	ArmMs        float64 `json:"armMs"`
	FallMs       float64 `json:"fallMs"`
	RespawnMs    float64 `json:"respawnMs"`
	FallDistance float64 `json:"fallDistance"`
}

type FeedbackConfig struct {
	ScreenShake ScreenShakeConfig `json:"screenShake"`
}

type ScreenShakeConfig struct {
	Enabled    bool    `json:"enabled"`
	DurationMs float64 `json:"durationMs"`
	Magnitude  float64 `json:"magnitude"`
}

// DefaultPhysics returns the stock tuning, identical to configs/physics.json
func DefaultPhysics() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 180,
			Scale:        3,
			Framerate:    60,
		},
		Physics: PhysicsSettings{
			TickMs:       1000.0 / 60.0,
			MaxSteps:     5,
			Gravity:      0.5,
			MaxFallSpeed: 10,
		},
		Movement: MovementConfig{
			WalkSpeed:        2,
			RunSpeed:         3.5,
			Acceleration:     0.3,
			Friction:         0.85,
			IceFriction:      0.96,
			StopThreshold:    0.1,
			CoffeeMultiplier: 1.5,
			PoundDamping:     0.8,
		},
		Jump: JumpConfig{
			Force:             -8,
			CoyoteTime:        100,
			JumpBuffer:        100,
			MaxHold:           150,
			HoldMultiplier:    0.9,
			ReleaseMultiplier: 0.5,
			BounceMultiplier:  0.6,
			SpringBoost:       -13,
			SnapDistance:      2,
		},
		GroundPound: GroundPoundConfig{
			WindupMs:       120,
			RecoveryMs:     150,
			FallSpeed:      12,
			HorizontalMult: 0.3,
			ImpactRadius:   40,
		},
		FallingPlatform: FallingPlatformConfig{
			MinContactMs: 150,
			ArmMs:        250,
			FallMs:       300,
			RespawnMs:    1200,
			FallDistance: 12,
		},
		Feedback: FeedbackConfig{
			ScreenShake: ScreenShakeConfig{
				Enabled:    true,
				DurationMs: 150,
				Magnitude:  4,
			},
		},
	}
}
