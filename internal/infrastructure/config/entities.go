package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player PlayerConfig `json:"player"`
	Minion MinionConfig `json:"minion"`
	Boss   BossConfig   `json:"boss"`
	Rules  RulesConfig  `json:"rules"`
}

type PlayerConfig struct {
	Width                  float64 `json:"width"`
	Height                 float64 `json:"height"`
	RespawnInvincibilityMs float64 `json:"respawnInvincibilityMs"`
	HelmetInvincibilityMs  float64 `json:"helmetInvincibilityMs"`
	CoffeeDurationMs       float64 `json:"coffeeDurationMs"`
	DeathTimerMs           float64 `json:"deathTimerMs"`
	DeathBounce            float64 `json:"deathBounce"`
}

type MinionConfig struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Speed       float64 `json:"speed"`
	GravityMult float64 `json:"gravityMult"`
	DeathMs     float64 `json:"deathMs"`
	WallProbe   float64 `json:"wallProbe"`
	LedgeProbe  float64 `json:"ledgeProbe"`
}

type BossConfig struct {
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	Health           int     `json:"health"`
	Speed            float64 `json:"speed"`
	GravityMult      float64 `json:"gravityMult"`
	HurtMs           float64 `json:"hurtMs"`
	DeathMs          float64 `json:"deathMs"`
	ArenaMinX        float64 `json:"arenaMinX"`
	ArenaMaxX        float64 `json:"arenaMaxX"`
	AttackRange      float64 `json:"attackRange"`
	ProjectileSpeed  float64 `json:"projectileSpeed"`
	AttackCooldownMs float64 `json:"attackCooldownMs"`
	GapRow           int     `json:"gapRow"`
	GapDurationMs    float64 `json:"gapDurationMs"`
}

type RulesConfig struct {
	StartingLives    int     `json:"startingLives"`
	LevelTimeSeconds float64 `json:"levelTimeSeconds"`
	CoinScore        int     `json:"coinScore"`
	EnemyScore       int     `json:"enemyScore"`
	BlockScore       int     `json:"blockScore"`
	BossScore        int     `json:"bossScore"`
	TimeBonusPerSec  int     `json:"timeBonusPerSec"`
	CoinsPerLife     int     `json:"coinsPerLife"`
	DeathDelayMs     float64 `json:"deathDelayMs"`
	FlagActivatingMs float64 `json:"flagActivatingMs"`
	CollectibleRise  float64 `json:"collectibleRise"`
	BootMs           float64 `json:"bootMs"`
	BossIntroMs      float64 `json:"bossIntroMs"`
	LevelClearMs     float64 `json:"levelClearMs"`
	GameOverMs       float64 `json:"gameOverMs"`
	EndingMs         float64 `json:"endingMs"`
}

// DefaultEntities returns the stock entity tuning, identical to configs/entities.json
func DefaultEntities() *EntitiesConfig {
	return &EntitiesConfig{
		Player: PlayerConfig{
			Width:                  14,
			Height:                 24,
			RespawnInvincibilityMs: 2000,
			HelmetInvincibilityMs:  1000,
			CoffeeDurationMs:       10000,
			DeathTimerMs:           600,
			DeathBounce:            -8,
		},
		Minion: MinionConfig{
			Width:       16,
			Height:      19,
			Speed:       0.8,
			GravityMult: 0.5,
			DeathMs:     300,
			WallProbe:   2,
			LedgeProbe:  4,
		},
		Boss: BossConfig{
			Width:            32,
			Height:           40,
			Health:           3,
			Speed:            1.2,
			GravityMult:      0.7,
			HurtMs:           800,
			DeathMs:          3000,
			ArenaMinX:        32,
			ArenaMaxX:        560,
			AttackRange:      100,
			ProjectileSpeed:  3,
			AttackCooldownMs: 800,
			GapRow:           9,
			GapDurationMs:    3000,
		},
		Rules: RulesConfig{
			StartingLives:    3,
			LevelTimeSeconds: 200,
			CoinScore:        100,
			EnemyScore:       200,
			BlockScore:       50,
			BossScore:        1000,
			TimeBonusPerSec:  10,
			CoinsPerLife:     100,
			DeathDelayMs:     1500,
			FlagActivatingMs: 450,
			CollectibleRise:  1,
			BootMs:           1500,
			BossIntroMs:      2000,
			LevelClearMs:     3000,
			GameOverMs:       3000,
			EndingMs:         5000,
		},
	}
}
