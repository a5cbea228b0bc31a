// Package simulator draws synthetic live-match snapshots for the monitored
// superteams. Every call is an independent draw; nothing carries over
// between batches.
package simulator

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/comeback-scout/internal/comeback"
	"github.com/albapepper/comeback-scout/internal/model"
	"github.com/albapepper/comeback-scout/internal/roster"
)

// DefaultBatchSize is the number of matches generated per call.
const DefaultBatchSize = 4

// Minute range for a live snapshot.
const (
	minMinute = 15
	maxMinute = 85
)

// ErrMatchNotFound is returned by Find when the id is not in the drawn batch.
var ErrMatchNotFound = errors.New("match not found")

// Generator produces batches of match snapshots.
type Generator struct {
	roster *roster.Roster
	batch  int
	now    func() time.Time

	mu  sync.Mutex // guards rng; *rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithBatchSize overrides DefaultBatchSize. Values < 1 are ignored.
func WithBatchSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.batch = n
		}
	}
}

// WithRand sets the random source, mainly for reproducible tests.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// New creates a Generator over the given roster. The default random source
// is unseeded.
func New(r *roster.Roster, opts ...Option) *Generator {
	g := &Generator{
		roster: r,
		batch:  DefaultBatchSize,
		now:    time.Now,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BatchSize returns the number of matches per Generate call, capped by the
// number of superteams in the roster.
func (g *Generator) BatchSize() int {
	return min(g.batch, len(g.roster.Superteams))
}

// Generate draws one snapshot per superteam, in roster order.
func (g *Generator) Generate() []model.MatchSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.BatchSize()
	matches := make([]model.MatchSnapshot, 0, n)
	for _, team := range g.roster.Superteams[:n] {
		matches = append(matches, g.draw(team))
	}
	return matches
}

// Find draws a fresh batch and returns the snapshot with the given id.
// Since ids are regenerated on every draw, a previously seen id is normally
// absent and ErrMatchNotFound is returned.
func (g *Generator) Find(id string) (model.MatchSnapshot, error) {
	for _, m := range g.Generate() {
		if m.ID == id {
			return m, nil
		}
	}
	return model.MatchSnapshot{}, ErrMatchNotFound
}

func (g *Generator) draw(team model.SuperteamProfile) model.MatchSnapshot {
	opponent := g.roster.Opponents[g.rng.IntN(len(g.roster.Opponents))]
	minute := g.between(minMinute, maxMinute)
	trailing := g.rng.Float64() > 0.5

	snap := model.MatchSnapshot{
		ID:        uuid.NewString(),
		Minute:    minute,
		Status:    model.StatusLive,
		Timestamp: g.now().UTC(),
	}

	if trailing {
		goals := g.between(0, 1)
		snap.HomeTeam, snap.AwayTeam = g.trailingStats(team, opponent, goals, goals+1)

		p, _ := comeback.Evaluate(snap.HomeTeam, snap.AwayTeam, true, team.ComebackRate)
		snap.ComebackProbability = p
		snap.IsComebackScenario = comeback.IsScenario(p)
		name := team.Name
		snap.LosingTeam = &name
		return snap
	}

	goals := g.between(1, 3)
	snap.HomeTeam, snap.AwayTeam = g.leadingStats(team, opponent, goals, g.between(0, goals))
	return snap
}

// trailingStats builds the pressure-but-behind picture: the superteam
// dominates every count while trailing by one goal.
func (g *Generator) trailingStats(team model.SuperteamProfile, opp model.Opponent, teamGoals, oppGoals int) (model.TeamStats, model.TeamStats) {
	home := model.TeamStats{
		Name:             team.Name,
		Logo:             team.Logo,
		Score:            teamGoals,
		XG:               g.xg(1.5, 2.8),
		Possession:       g.between(58, 72),
		Shots:            g.between(12, 20),
		ShotsOnTarget:    g.between(5, 10),
		Corners:          g.between(6, 12),
		DangerousAttacks: g.between(45, 75),
	}
	away := model.TeamStats{
		Name:             opp.Name,
		Logo:             opp.Logo,
		Score:            oppGoals,
		XG:               g.xg(0.5, 1.2),
		Possession:       100 - home.Possession,
		Shots:            g.between(4, 8),
		ShotsOnTarget:    g.between(2, 4),
		Corners:          g.between(2, 5),
		DangerousAttacks: g.between(15, 30),
	}
	return home, away
}

func (g *Generator) leadingStats(team model.SuperteamProfile, opp model.Opponent, teamGoals, oppGoals int) (model.TeamStats, model.TeamStats) {
	home := model.TeamStats{
		Name:             team.Name,
		Logo:             team.Logo,
		Score:            teamGoals,
		XG:               g.xg(1.2, 2.5),
		Possession:       g.between(52, 68),
		Shots:            g.between(10, 18),
		ShotsOnTarget:    g.between(4, 9),
		Corners:          g.between(5, 10),
		DangerousAttacks: g.between(35, 60),
	}
	away := model.TeamStats{
		Name:             opp.Name,
		Logo:             opp.Logo,
		Score:            oppGoals,
		XG:               g.xg(0.4, 1.5),
		Possession:       100 - home.Possession,
		Shots:            g.between(5, 10),
		ShotsOnTarget:    g.between(2, 5),
		Corners:          g.between(3, 7),
		DangerousAttacks: g.between(20, 40),
	}
	return home, away
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// xg returns a uniform value in [lo, hi] rounded to one decimal.
func (g *Generator) xg(lo, hi float64) float64 {
	return math.Round((lo+g.rng.Float64()*(hi-lo))*10) / 10
}
