package deck

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"trackline/internal/game"
)

// Source supplies raw songs for deck building. An implementation that has
// nothing to offer returns an error; the Builder degrades to an empty
// deck rather than propagating it.
type Source interface {
	Fetch(ctx context.Context) ([]game.Song, error)
}

const (
	// poolTTL is how long a fetched song pool is reused before the next
	// deck build refreshes it. Keeps game creation fast.
	poolTTL = 30 * time.Minute
	// songsPerDecade caps each decade's share of a deck so games span
	// eras instead of clustering.
	songsPerDecade = 15
)

// Builder turns a Source into game decks. The fetched pool is process-wide
// state shared by all rooms, guarded by its own mutex and refreshed on TTL
// expiry; rooms only ever read from it, so no room lock is involved here.
type Builder struct {
	source Source

	mu      sync.Mutex
	pool    []game.Song
	builtAt time.Time
}

func NewBuilder(source Source) *Builder {
	return &Builder{source: source}
}

// BuildDeck returns a shuffled, decade-balanced deck. On total source
// failure it returns an empty slice; the state machine surfaces that as
// "no songs in deck" when someone tries to start.
func (b *Builder) BuildDeck(ctx context.Context) []game.Song {
	pool := b.songPool(ctx)
	if len(pool) == 0 {
		return []game.Song{}
	}

	shuffled := append([]game.Song(nil), pool...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	perDecade := make(map[int]int)
	deck := make([]game.Song, 0, len(shuffled))
	for _, s := range shuffled {
		decade := s.Year / 10 * 10
		if perDecade[decade] >= songsPerDecade {
			continue
		}
		perDecade[decade]++
		deck = append(deck, s)
	}
	rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

func (b *Builder) songPool(ctx context.Context) []game.Song {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pool != nil && time.Since(b.builtAt) < poolTTL {
		return b.pool
	}
	songs, err := b.source.Fetch(ctx)
	if err != nil || len(songs) == 0 {
		log.Warn().Err(err).Msg("song pool fetch failed")
		if b.pool != nil {
			// keep serving the stale pool rather than none at all
			return b.pool
		}
		return nil
	}
	b.pool = songs
	b.builtAt = time.Now()
	log.Info().Int("songs", len(songs)).Msg("song pool refreshed")
	return b.pool
}
