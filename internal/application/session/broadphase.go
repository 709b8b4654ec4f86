package session

import (
	"github.com/solarlune/resolv"

	"github.com/torbware/fekagaps/internal/domain/entity"
)

const (
	tagCollectible = "collectible"
	tagPlayer      = "player"
)

// pickupSpace indexes live collectibles in a resolv space so the player
// only tests the items in its own cells.
type pickupSpace struct {
	space *resolv.Space
	probe *resolv.Object
	items map[*entity.Collectible]*resolv.Object
}

func newPickupSpace(pixelW, pixelH float64, player entity.Rect) *pickupSpace {
	space := resolv.NewSpace(int(pixelW), int(pixelH), entity.TileSize, entity.TileSize)

	probe := resolv.NewObject(player.X, player.Y, player.W, player.H, tagPlayer)
	probe.SetShape(resolv.NewRectangle(0, 0, player.W, player.H))
	space.Add(probe)

	return &pickupSpace{
		space: space,
		probe: probe,
		items: make(map[*entity.Collectible]*resolv.Object),
	}
}

// Add registers a collectible
func (s *pickupSpace) Add(c *entity.Collectible) {
	obj := resolv.NewObject(c.X, c.Y, entity.CollectibleSize, entity.CollectibleSize, tagCollectible)
	obj.SetShape(resolv.NewRectangle(0, 0, entity.CollectibleSize, entity.CollectibleSize))
	obj.Data = c
	s.space.Add(obj)
	s.items[c] = obj
}

// Sync moves the indexed box of a collectible that changed position
func (s *pickupSpace) Sync(c *entity.Collectible) {
	obj, ok := s.items[c]
	if !ok {
		return
	}
	obj.X = c.X
	obj.Y = c.Y
	obj.Update()
}

// Remove drops a collectible from the index
func (s *pickupSpace) Remove(c *entity.Collectible) {
	obj, ok := s.items[c]
	if !ok {
		return
	}
	s.space.Remove(obj)
	delete(s.items, c)
}

// Len returns the number of indexed collectibles
func (s *pickupSpace) Len() int {
	return len(s.items)
}

// Touching returns the live collectibles overlapping the player box
func (s *pickupSpace) Touching(player entity.Rect) []*entity.Collectible {
	s.probe.X = player.X
	s.probe.Y = player.Y
	s.probe.Update()

	check := s.probe.Check(0, 0, tagCollectible)
	if check == nil {
		return nil
	}

	var hits []*entity.Collectible
	for _, obj := range check.ObjectsByTags(tagCollectible) {
		c, ok := obj.Data.(*entity.Collectible)
		if !ok || c.Collected || !c.Active {
			continue
		}
		// Cells are coarse; confirm with the exact boxes
		if c.Rect().Intersects(player) {
			hits = append(hits, c)
		}
	}
	return hits
}
