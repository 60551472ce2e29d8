package game

import (
    "time"
)

type Phase string

const (
    PhaseLobby       Phase = "LOBBY"
    PhasePlayingSong Phase = "PLAYING_SONG"
    PhasePlacingCard Phase = "PLACING_CARD"
    PhaseChallenge   Phase = "CHALLENGE"
    PhaseReveal      Phase = "REVEAL"
    PhaseGameOver    Phase = "GAME_OVER"
)

type Status string

const (
    StatusWaiting  Status = "waiting"
    StatusPlaying  Status = "playing"
    StatusFinished Status = "finished"
)

const (
    // MaxPlayers is the room size cap enforced on join.
    MaxPlayers = 10
    // WinThreshold is the timeline length that ends the game.
    WinThreshold = 10
    // StartingTokens is every player's token balance on join.
    StartingTokens = 3
)

// PlayerColors is the fixed palette; each player in a room gets the first
// unused entry.
var PlayerColors = []string{
    "#EF4444", // red
    "#3B82F6", // blue
    "#22C55E", // green
    "#F59E0B", // amber
    "#8B5CF6", // purple
    "#EC4899", // pink
    "#14B8A6", // teal
    "#F97316", // orange
    "#6366F1", // indigo
    "#84CC16", // lime
}

// Song is an immutable playable track produced by the deck builder.
type Song struct {
    ID          string `json:"id"`
    Title       string `json:"title"`
    Artist      string `json:"artist"`
    Year        int    `json:"year"`
    AlbumArt    string `json:"albumArt,omitempty"`
    PlaybackURI string `json:"playbackUri,omitempty"`
}

// PlacedCard is a Song that made it into a timeline. Timelines are kept in
// insertion order; the insert position guarantees chronological order.
type PlacedCard struct {
    Song
    PlacedAt int64 `json:"placedAt"` // unix millis
}

type Player struct {
    ID       string       `json:"id"`
    Name     string       `json:"name"`
    Color    string       `json:"color"`
    Tokens   int          `json:"tokens"`
    Timeline []PlacedCard `json:"timeline"`
    IsHost   bool         `json:"isHost"`
    JoinedAt time.Time    `json:"joinedAt"`
}

// PendingPlacement is the turn player's declared position, held while the
// challenge window is open.
type PendingPlacement struct {
    PlayerID string `json:"playerId"`
    Position int    `json:"position"`
}

// Room is the authoritative record for one game session. It is mutated only
// by the Engine, under the per-room lock.
type Room struct {
    ID                 string            `json:"id"`
    Code               string            `json:"roomCode"`
    Status             Status            `json:"status"`
    Phase              Phase             `json:"phase"`
    Players            []*Player         `json:"players"`
    CurrentPlayerIndex int               `json:"currentPlayerIndex"`
    CurrentDjIndex     int               `json:"currentDjIndex"`
    Deck               []Song            `json:"-"`
    CurrentCard        *Song             `json:"currentCard"`
    Pending            *PendingPlacement `json:"-"`
    HostPlayerID       string            `json:"hostPlayerId"`
    CreatedAt          time.Time         `json:"createdAt"`
}

func (r *Room) Finished() bool {
    return r.Status == StatusFinished
}

func (r *Room) PlayerByID(id string) *Player {
    for _, p := range r.Players {
        if p.ID == id {
            return p
        }
    }
    return nil
}

func (r *Room) CurrentPlayer() *Player {
    if len(r.Players) == 0 || r.CurrentPlayerIndex >= len(r.Players) {
        return nil
    }
    return r.Players[r.CurrentPlayerIndex]
}

// DrawCard pops a song off the deck tail. ok is false on an empty deck.
func (r *Room) DrawCard() (Song, bool) {
    if len(r.Deck) == 0 {
        return Song{}, false
    }
    s := r.Deck[len(r.Deck)-1]
    r.Deck = r.Deck[:len(r.Deck)-1]
    return s, true
}

// Snapshot is the full state pushed to every room subscriber. The deck
// contents stay server-side; clients only see the remaining count.
type Snapshot struct {
    ID                 string    `json:"id"`
    Code               string    `json:"roomCode"`
    Status             Status    `json:"status"`
    Phase              Phase     `json:"phase"`
    Players            []Player  `json:"players"`
    CurrentPlayerIndex int       `json:"currentPlayerIndex"`
    CurrentDjIndex     int       `json:"currentDjIndex"`
    CurrentCard        *Song     `json:"currentCard"`
    DeckCount          int       `json:"deckCount"`
    HostPlayerID       string    `json:"hostPlayerId"`
    CreatedAt          time.Time `json:"createdAt"`
}

// TakeSnapshot copies the room into a broadcast-safe view.
func (r *Room) TakeSnapshot() *Snapshot {
    players := make([]Player, 0, len(r.Players))
    for _, p := range r.Players {
        cp := *p
        cp.Timeline = append([]PlacedCard(nil), p.Timeline...)
        players = append(players, cp)
    }
    var card *Song
    if r.CurrentCard != nil {
        c := *r.CurrentCard
        card = &c
    }
    return &Snapshot{
        ID:                 r.ID,
        Code:               r.Code,
        Status:             r.Status,
        Phase:              r.Phase,
        Players:            players,
        CurrentPlayerIndex: r.CurrentPlayerIndex,
        CurrentDjIndex:     r.CurrentDjIndex,
        CurrentCard:        card,
        DeckCount:          len(r.Deck),
        HostPlayerID:       r.HostPlayerID,
        CreatedAt:          r.CreatedAt,
    }
}

// Clone deep-copies a room so store reads and writes never alias live state.
func (r *Room) Clone() *Room {
    cp := *r
    cp.Players = make([]*Player, 0, len(r.Players))
    for _, p := range r.Players {
        pc := *p
        pc.Timeline = append([]PlacedCard(nil), p.Timeline...)
        cp.Players = append(cp.Players, &pc)
    }
    cp.Deck = append([]Song(nil), r.Deck...)
    if r.CurrentCard != nil {
        c := *r.CurrentCard
        cp.CurrentCard = &c
    }
    if r.Pending != nil {
        pp := *r.Pending
        cp.Pending = &pp
    }
    return &cp
}
