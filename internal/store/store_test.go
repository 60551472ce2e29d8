package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackline/internal/game"
)

func someDeck() []game.Song {
	return []game.Song{
		{ID: "a", Title: "A", Artist: "X", Year: 1970},
		{ID: "b", Title: "B", Artist: "Y", Year: 1995},
	}
}

func TestCreateRoom(t *testing.T) {
	s := New()
	room, host, err := s.CreateRoom("Alice", someDeck())
	require.NoError(t, err)

	assert.Len(t, room.Code, 4)
	assert.Equal(t, game.StatusWaiting, room.Status)
	assert.Equal(t, game.PhaseLobby, room.Phase)
	assert.Equal(t, host.ID, room.HostPlayerID)
	assert.True(t, host.IsHost)
	assert.Equal(t, game.PlayerColors[0], host.Color)
	assert.Equal(t, game.StartingTokens, host.Tokens)
	assert.Len(t, room.Deck, 2)

	loaded, err := s.Load(room.Code)
	require.NoError(t, err)
	assert.Equal(t, room.Code, loaded.Code)
}

func TestRoomCodesAreUnique(t *testing.T) {
	s := New()
	codes := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room, _, err := s.CreateRoom("host", nil)
		require.NoError(t, err)
		assert.False(t, codes[room.Code], "code %s allocated twice", room.Code)
		codes[room.Code] = true
	}
}

func TestLoadIsCaseInsensitive(t *testing.T) {
	s := New()
	room, _, err := s.CreateRoom("Alice", nil)
	require.NoError(t, err)

	loaded, err := s.Load(strings.ToLower(room.Code))
	require.NoError(t, err)
	assert.Equal(t, room.Code, loaded.Code)
}

func TestLoadUnknownRoom(t *testing.T) {
	s := New()
	_, err := s.Load("ZZZZ")
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

func TestLoadReturnsIsolatedCopy(t *testing.T) {
	s := New()
	room, _, err := s.CreateRoom("Alice", someDeck())
	require.NoError(t, err)

	loaded, err := s.Load(room.Code)
	require.NoError(t, err)
	loaded.Players[0].Tokens = 0
	loaded.Deck = nil
	loaded.Status = game.StatusFinished

	again, err := s.Load(room.Code)
	require.NoError(t, err)
	assert.Equal(t, game.StartingTokens, again.Players[0].Tokens, "mutating a loaded copy must not touch the store")
	assert.Len(t, again.Deck, 2)
	assert.Equal(t, game.StatusWaiting, again.Status)
}

func TestSaveUnknownRoom(t *testing.T) {
	s := New()
	err := s.Save(&game.Room{Code: "ZZZZ"})
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

func TestAddPlayer(t *testing.T) {
	s := New()
	room, _, err := s.CreateRoom("Alice", nil)
	require.NoError(t, err)

	bob, updated, err := s.AddPlayer(room.Code, " Bob ")
	require.NoError(t, err)
	assert.Equal(t, "Bob", bob.Name, "names are trimmed")
	assert.False(t, bob.IsHost)
	assert.Equal(t, game.PlayerColors[1], bob.Color, "first unused palette color")
	assert.Len(t, updated.Players, 2)
}

func TestAddPlayerRejectsDuplicateName(t *testing.T) {
	s := New()
	room, _, err := s.CreateRoom("Alice", nil)
	require.NoError(t, err)

	_, _, err = s.AddPlayer(room.Code, "alice")
	assert.ErrorIs(t, err, game.ErrNameTaken, "names are case-insensitive")
}

func TestAddPlayerRejectsStartedGame(t *testing.T) {
	s := New()
	room, _, err := s.CreateRoom("Alice", nil)
	require.NoError(t, err)

	loaded, _ := s.Load(room.Code)
	loaded.Status = game.StatusPlaying
	require.NoError(t, s.Save(loaded))

	_, _, err = s.AddPlayer(room.Code, "Bob")
	assert.ErrorIs(t, err, game.ErrGameStarted)
}

func TestAddPlayerRejectsFullRoom(t *testing.T) {
	s := New()
	room, _, err := s.CreateRoom("p0", nil)
	require.NoError(t, err)

	for i := 1; i < game.MaxPlayers; i++ {
		_, _, err := s.AddPlayer(room.Code, "p"+string(rune('0'+i)))
		require.NoError(t, err)
	}
	_, _, err = s.AddPlayer(room.Code, "straggler")
	assert.ErrorIs(t, err, game.ErrRoomFull)
}

func TestAddPlayerUnknownRoom(t *testing.T) {
	s := New()
	_, _, err := s.AddPlayer("ZZZZ", "Bob")
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

func TestDelete(t *testing.T) {
	s := New()
	room, _, err := s.CreateRoom("Alice", nil)
	require.NoError(t, err)

	s.Delete(room.Code)
	_, err = s.Load(room.Code)
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}
