package replay

import (
	"github.com/torbware/fekagaps/internal/application/session"
	"github.com/torbware/fekagaps/internal/application/state"
	"github.com/torbware/fekagaps/internal/domain/entity"
)

// Result summarizes a headless run
type Result struct {
	Frames        int
	State         state.GameState
	LevelIndex    int
	LevelsCleared int
	Score         int
	Lives         int
	Coins         int
	Deaths        int
	RunTimeMs     float64
}

// Run plays data against levels without a window. The campaign starts at
// the recorded level exactly as the recorded run did, so the same levels,
// seed and frames always give the same result.
func Run(levels []*entity.LevelData, data ReplayData, opts session.Options) (Result, error) {
	c := session.NewCampaign(levels, data.Seed, nil, opts)
	if err := c.StartAt(data.Level); err != nil {
		return Result{}, err
	}

	var res Result
	r := NewReplayer(data)
	for {
		in, ok := r.Next()
		if !ok {
			break
		}
		for _, e := range c.Update(in) {
			if _, died := e.(session.PlayerDiedEvent); died {
				res.Deaths++
			}
		}
	}

	p := c.Progress()
	res.Frames = r.Position()
	res.State = c.State()
	res.LevelIndex = c.LevelIndex()
	res.LevelsCleared = c.LevelsCleared()
	res.Score = p.Score
	res.Lives = p.Lives
	res.Coins = p.Coins
	res.RunTimeMs = c.RunTimeMs()
	return res, nil
}
