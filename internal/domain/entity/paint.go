package entity

// PaintTool is one entry of the level-editing palette. It is a closed set:
// only the types in this file implement it.
type PaintTool interface {
	// Apply paints the tool onto the level at the given cell
	Apply(d *LevelData, at Point) bool
	isPaintTool()
}

// PaintTile writes a tile value
type PaintTile struct {
	Tile TileType
}

func (PaintTile) isPaintTool() {}

func (p PaintTile) Apply(d *LevelData, at Point) bool {
	if !d.InBounds(at) || !p.Tile.IsValid() {
		return false
	}
	d.Tiles[at.Row][at.Col] = p.Tile
	return true
}

// PaintEnemy places an enemy spawn, replacing any spawn on the same cell
type PaintEnemy struct {
	Kind EnemyKind
}

func (PaintEnemy) isPaintTool() {}

func (p PaintEnemy) Apply(d *LevelData, at Point) bool {
	if !d.InBounds(at) {
		return false
	}
	for i, e := range d.Enemies {
		if e.Pos == at {
			d.Enemies[i].Kind = p.Kind
			return true
		}
	}
	d.Enemies = append(d.Enemies, EnemySpawn{Kind: p.Kind, Pos: at})
	return true
}

// PaintCollectible places a pickup, replacing any pickup on the same cell
type PaintCollectible struct {
	Kind CollectibleKind
}

func (PaintCollectible) isPaintTool() {}

func (p PaintCollectible) Apply(d *LevelData, at Point) bool {
	if !d.InBounds(at) {
		return false
	}
	for i, c := range d.Collectibles {
		if c.Pos == at {
			d.Collectibles[i].Kind = p.Kind
			return true
		}
	}
	d.Collectibles = append(d.Collectibles, CollectibleSpawn{Kind: p.Kind, Pos: at})
	return true
}

// PaintSpawn moves the player spawn
type PaintSpawn struct{}

func (PaintSpawn) isPaintTool() {}

func (PaintSpawn) Apply(d *LevelData, at Point) bool {
	if !d.InBounds(at) {
		return false
	}
	d.PlayerSpawn = at
	return true
}

// PaintEraser clears the tile and removes any spawn markers on the cell
type PaintEraser struct{}

func (PaintEraser) isPaintTool() {}

func (PaintEraser) Apply(d *LevelData, at Point) bool {
	if !d.InBounds(at) {
		return false
	}
	d.Tiles[at.Row][at.Col] = TileEmpty

	enemies := d.Enemies[:0]
	for _, e := range d.Enemies {
		if e.Pos != at {
			enemies = append(enemies, e)
		}
	}
	d.Enemies = enemies

	items := d.Collectibles[:0]
	for _, c := range d.Collectibles {
		if c.Pos != at {
			items = append(items, c)
		}
	}
	d.Collectibles = items
	return true
}
