package config

import (
	"fmt"
	"io/fs"
	"math"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Layer and object group names read from Tiled maps.
const (
	TMXTileLayer   = "tiles"
	TMXEntityGroup = "entities"
)

// tileNamesByID follows the numeric tile encoding used by level files.
var tileNamesByID = []string{
	"empty", "ground", "brick", "platform", "spike", "checkpoint", "flag",
	"coin", "powerup_coffee", "powerup_helmet", "brick_breakable",
	"powerup_block_coffee", "powerup_block_helmet", "block_used", "spring",
	"ice", "platform_falling", "lava_top", "lava_fill", "hidden_block",
}

// LoadTMX converts a Tiled map into a LevelConfig. Tiles come from the
// "tiles" layer; a tileset tile may name its type with a "tile" property,
// otherwise its local ID is taken as the numeric tile type. Objects in the
// "entities" group are matched by class (or type, or name): spawn, goal,
// checkpoint, minion, boss, coin, coffee, helmet.
func LoadTMX(fsys fs.FS, path, id string) (*LevelConfig, error) {
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", path, err)
	}

	glyphs := glyphsByName()
	cfg := &LevelConfig{
		ID:   id,
		Name: strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], ".tmx"),
	}

	var layer *tiled.Layer
	for _, l := range levelMap.Layers {
		if l.Name == TMXTileLayer {
			layer = l
			break
		}
	}
	if layer == nil {
		return nil, fmt.Errorf("TMX %s: no %q layer", path, TMXTileLayer)
	}

	for y := 0; y < levelMap.Height; y++ {
		var row strings.Builder
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[y*levelMap.Width+x]
			if tile.IsNil() {
				row.WriteString(glyphs["empty"])
				continue
			}

			name := ""
			if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
				name = tilesetTile.Properties.GetString("tile")
			}
			if name == "" {
				if int(tile.ID) >= len(tileNamesByID) {
					return nil, fmt.Errorf("TMX %s: tile id %d at (%d,%d) out of range", path, tile.ID, x, y)
				}
				name = tileNamesByID[tile.ID]
			}

			g, ok := glyphs[name]
			if !ok {
				return nil, fmt.Errorf("TMX %s: unknown tile %q at (%d,%d)", path, name, x, y)
			}
			row.WriteString(g)
		}
		cfg.Rows = append(cfg.Rows, row.String())
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, og := range levelMap.ObjectGroups {
		if og.Name != TMXEntityGroup {
			continue
		}
		for _, o := range og.Objects {
			kind := o.Class
			if kind == "" {
				kind = o.Type //nolint:staticcheck // older maps use type=
			}
			if kind == "" {
				kind = o.Name
			}

			// Objects are anchored at their bottom edge, so the cell they
			// stand on is the one containing their feet.
			p := PointConfig{
				Col: int(math.Floor((o.X + o.Width/2) / tileW)),
				Row: int(math.Floor((o.Y + o.Height) / tileH)),
			}

			switch strings.ToLower(kind) {
			case "spawn":
				cfg.Spawn = p
			case "goal":
				cfg.Goal = p
			case "checkpoint":
				cfg.Checkpoints = append(cfg.Checkpoints, p)
			case "minion", "boss":
				cfg.Enemies = append(cfg.Enemies, SpawnConfig{Kind: strings.ToLower(kind), Col: p.Col, Row: p.Row})
				if strings.EqualFold(kind, "boss") {
					cfg.Boss = true
				}
			case "coin", "coffee", "helmet":
				cfg.Collectibles = append(cfg.Collectibles, SpawnConfig{Kind: strings.ToLower(kind), Col: p.Col, Row: p.Row})
			default:
				return nil, fmt.Errorf("TMX %s: unknown entity %q", path, kind)
			}
		}
	}

	sort.Slice(cfg.Checkpoints, func(i, j int) bool {
		return cfg.Checkpoints[i].Col < cfg.Checkpoints[j].Col
	})

	return cfg, nil
}

func glyphsByName() map[string]string {
	out := make(map[string]string, len(DefaultLegend))
	for g, name := range DefaultLegend {
		out[name] = g
	}
	return out
}
