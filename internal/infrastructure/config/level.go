package config

// LevelConfig is the root config for levels/*.yaml.
// Tiles are drawn as rows of glyphs resolved through Legend.
type LevelConfig struct {
	ID           string            `yaml:"id" json:"id"`
	Name         string            `yaml:"name" json:"name"`
	TimeLimit    float64           `yaml:"timeLimit,omitempty" json:"timeLimit,omitempty"`
	Boss         bool              `yaml:"boss,omitempty" json:"boss,omitempty"`
	Theme        map[string]string `yaml:"theme,omitempty" json:"theme,omitempty"`
	Legend       map[string]string `yaml:"legend,omitempty" json:"legend,omitempty"`
	Rows         []string          `yaml:"rows" json:"rows"`
	Spawn        PointConfig       `yaml:"spawn" json:"spawn"`
	Goal         PointConfig       `yaml:"goal" json:"goal"`
	Checkpoints  []PointConfig     `yaml:"checkpoints,omitempty" json:"checkpoints,omitempty"`
	Enemies      []SpawnConfig     `yaml:"enemies,omitempty" json:"enemies,omitempty"`
	Collectibles []SpawnConfig     `yaml:"collectibles,omitempty" json:"collectibles,omitempty"`
}

type PointConfig struct {
	Col int `yaml:"col" json:"col"`
	Row int `yaml:"row" json:"row"`
}

type SpawnConfig struct {
	Kind string `yaml:"kind" json:"kind"`
	Col  int    `yaml:"col" json:"col"`
	Row  int    `yaml:"row" json:"row"`
}

// ManifestConfig orders the campaign. Entries are file names under levels/
// without extension.
type ManifestConfig struct {
	Levels []string `yaml:"levels"`
}

// DefaultLegend maps row glyphs to tile names when a level declares none.
var DefaultLegend = map[string]string{
	".": "empty",
	"#": "ground",
	"B": "brick",
	"-": "platform",
	"^": "spike",
	"K": "checkpoint",
	"F": "flag",
	"o": "coin",
	"c": "powerup_coffee",
	"h": "powerup_helmet",
	"b": "brick_breakable",
	"C": "powerup_block_coffee",
	"H": "powerup_block_helmet",
	"U": "block_used",
	"S": "spring",
	"I": "ice",
	"=": "platform_falling",
	"L": "lava_top",
	"l": "lava_fill",
	"?": "hidden_block",
}

// LegendFor returns the level's legend with defaults filled in for
// glyphs it does not override.
func (c *LevelConfig) LegendFor() map[string]string {
	legend := make(map[string]string, len(DefaultLegend)+len(c.Legend))
	for k, v := range DefaultLegend {
		legend[k] = v
	}
	for k, v := range c.Legend {
		legend[k] = v
	}
	return legend
}
