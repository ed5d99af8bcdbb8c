package sim

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/LegendaryTyan/VKR/internal/auth"
	"github.com/LegendaryTyan/VKR/internal/content"
	"github.com/LegendaryTyan/VKR/internal/progression"
)

// Player drives the real stores with synthetic gameplay so the client UI
// can be demoed without a device: it signs in with the given credentials
// and then completes a random game with a random score on every tick.
type Player struct {
	sessions *auth.Store
	progress *progression.Store
	games    *content.GameCatalog
	interval time.Duration
	rng      *rand.Rand
	log      zerolog.Logger

	username string
	password string
}

func NewPlayer(sessions *auth.Store, progress *progression.Store, games *content.GameCatalog, username, password string, interval time.Duration, log zerolog.Logger) *Player {
	return &Player{
		sessions: sessions,
		progress: progress,
		games:    games,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		username: username,
		password: password,
		log:      log,
	}
}

// Run blocks until ctx is cancelled. Login failures end the run; a demo
// without a bound identity has nothing to drive.
func (p *Player) Run(ctx context.Context) {
	if _, err := p.sessions.Login(ctx, p.username, p.password, false); err != nil {
		p.log.Error().Err(err).Str("username", p.username).Msg("demo login failed")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.playOnce()
		}
	}
}

// playOnce mirrors the producer contract the client honors: pick a game,
// finish it with a score in [0,100], convert to XP, apply the grant and
// the completion.
func (p *Player) playOnce() {
	games := p.games.All()
	if len(games) == 0 {
		return
	}
	game := games[p.rng.Intn(len(games))]
	score := 40 + p.rng.Intn(61)

	earned := int(math.Round(float64(game.XP) * float64(score) / 100))
	p.progress.AddXP(earned)
	p.progress.CompleteGame(game.ID)

	p.log.Info().
		Str("game", game.ID).
		Int("score", score).
		Int("xp", earned).
		Msg("demo game completed")
}
