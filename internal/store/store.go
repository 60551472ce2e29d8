package store

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trackline/internal/game"
)

const (
	codeLength      = 4
	codeGenAttempts = 10
	// No lookalike characters, codes get typed from a phone.
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// MemoryStore is the authoritative room store. Rooms are deep-copied on
// every load and save, so a mutation that fails mid-way never leaks
// partial state: the stored record stays whatever the last successful
// Save wrote.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*game.Room
}

func New() *MemoryStore {
	return &MemoryStore{rooms: make(map[string]*game.Room)}
}

// Load returns a private copy of the room.
func (s *MemoryStore) Load(code string) (*game.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room := s.rooms[normalize(code)]
	if room == nil {
		return nil, game.ErrRoomNotFound
	}
	return room.Clone(), nil
}

// Save replaces the stored record wholesale.
func (s *MemoryStore) Save(room *game.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[normalize(room.Code)]; !ok {
		return game.ErrRoomNotFound
	}
	s.rooms[normalize(room.Code)] = room.Clone()
	return nil
}

// CreateRoom allocates a fresh room with its host player and the given
// deck. Room codes are generated with bounded retry; the code space is
// sized so collisions stay rare.
func (s *MemoryStore) CreateRoom(hostName string, deck []game.Song) (*game.Room, *game.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := ""
	for i := 0; i < codeGenAttempts; i++ {
		c := randomCode(codeLength)
		if _, taken := s.rooms[c]; !taken {
			code = c
			break
		}
	}
	if code == "" {
		return nil, nil, game.ErrCodeSpaceExhausted
	}

	host := &game.Player{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(hostName),
		Color:    game.PlayerColors[0],
		Tokens:   game.StartingTokens,
		Timeline: []game.PlacedCard{},
		IsHost:   true,
		JoinedAt: time.Now().UTC(),
	}
	room := &game.Room{
		ID:           uuid.NewString(),
		Code:         code,
		Status:       game.StatusWaiting,
		Phase:        game.PhaseLobby,
		Players:      []*game.Player{host},
		Deck:         append([]game.Song(nil), deck...),
		HostPlayerID: host.ID,
		CreatedAt:    time.Now().UTC(),
	}
	s.rooms[code] = room.Clone()
	log.Info().Str("room", code).Str("host", host.Name).Int("deck", len(deck)).Msg("room created")
	return room, host, nil
}

// AddPlayer joins a player to a waiting room and assigns the first unused
// palette color.
func (s *MemoryStore) AddPlayer(code, name string) (*game.Player, *game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.rooms[normalize(code)]
	if room == nil {
		return nil, nil, game.ErrRoomNotFound
	}
	if room.Status != game.StatusWaiting {
		return nil, nil, game.ErrGameStarted
	}
	if len(room.Players) >= game.MaxPlayers {
		return nil, nil, game.ErrRoomFull
	}
	name = strings.TrimSpace(name)
	for _, p := range room.Players {
		if strings.EqualFold(p.Name, name) {
			return nil, nil, game.ErrNameTaken
		}
	}

	used := make(map[string]bool, len(room.Players))
	for _, p := range room.Players {
		used[p.Color] = true
	}
	color := game.PlayerColors[0]
	for _, c := range game.PlayerColors {
		if !used[c] {
			color = c
			break
		}
	}

	player := &game.Player{
		ID:       uuid.NewString(),
		Name:     name,
		Color:    color,
		Tokens:   game.StartingTokens,
		Timeline: []game.PlacedCard{},
		IsHost:   false,
		JoinedAt: time.Now().UTC(),
	}
	room.Players = append(room.Players, player)
	log.Info().Str("room", room.Code).Str("player", name).Msg("player joined")
	return player, room.Clone(), nil
}

// Delete drops a room record. Player records go with it.
func (s *MemoryStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, normalize(code))
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func randomCode(n int) string {
	letters := []rune(codeAlphabet)
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
