package entity

// EnemyKind identifies an enemy archetype
type EnemyKind string

const (
	EnemyMinion EnemyKind = "minion"
	EnemyBoss   EnemyKind = "boss"
)

// CollectibleKind identifies a pickup
type CollectibleKind string

const (
	CollectibleCoin   CollectibleKind = "coin"
	CollectibleCoffee CollectibleKind = "coffee"
	CollectibleHelmet CollectibleKind = "helmet"
)

// EnemySpawn places an enemy on a tile
type EnemySpawn struct {
	Kind EnemyKind `yaml:"kind" json:"kind"`
	Pos  Point     `yaml:"pos" json:"pos"`
}

// CollectibleSpawn places a pickup on a tile
type CollectibleSpawn struct {
	Kind CollectibleKind `yaml:"kind" json:"kind"`
	Pos  Point           `yaml:"pos" json:"pos"`
}

// LevelData is a fully materialized level record.
// Tiles are row-major: Tiles[row][col].
type LevelData struct {
	ID           string
	Name         string
	Width        int
	Height       int
	Tiles        [][]TileType
	PlayerSpawn  Point
	Enemies      []EnemySpawn
	Collectibles []CollectibleSpawn
	Checkpoints  []Point
	Goal         Point
	TimeLimit    float64 // seconds
	BossLevel    bool
	Theme        map[string]string
}

// Clone returns a deep copy so the original record survives in-game mutation
func (d *LevelData) Clone() *LevelData {
	c := *d
	c.Tiles = make([][]TileType, len(d.Tiles))
	for i, row := range d.Tiles {
		c.Tiles[i] = append([]TileType(nil), row...)
	}
	c.Enemies = append([]EnemySpawn(nil), d.Enemies...)
	c.Collectibles = append([]CollectibleSpawn(nil), d.Collectibles...)
	c.Checkpoints = append([]Point(nil), d.Checkpoints...)
	if d.Theme != nil {
		c.Theme = make(map[string]string, len(d.Theme))
		for k, v := range d.Theme {
			c.Theme[k] = v
		}
	}
	return &c
}

// InBounds reports whether p lies on the grid. A ragged or short grid
// only counts the cells it actually stores.
func (d *LevelData) InBounds(p Point) bool {
	return p.Col >= 0 && p.Col < d.Width && p.Row >= 0 && p.Row < d.Height &&
		p.Row < len(d.Tiles) && p.Col < len(d.Tiles[p.Row])
}

// TileAt returns the stored tile at p, EMPTY off the grid
func (d *LevelData) TileAt(p Point) TileType {
	if !d.InBounds(p) {
		return TileEmpty
	}
	return d.Tiles[p.Row][p.Col]
}
