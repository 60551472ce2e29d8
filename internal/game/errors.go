package game

import "errors"

// Every rejection a trigger can report back to its caller. The messages are
// shown verbatim to players.
var (
    ErrRoomNotFound       = errors.New("Game not found")
    ErrPlayerNotFound     = errors.New("Player not found")
    ErrGameStarted        = errors.New("Game has already started")
    ErrGameFinished       = errors.New("Game is over")
    ErrRoomFull           = errors.New("Game is full (max 10 players)")
    ErrNameTaken          = errors.New("Player name already taken")
    ErrNotEnoughPlayers   = errors.New("Need at least 2 players to start")
    ErrEmptyDeck          = errors.New("No songs in deck")
    ErrDeckExhausted      = errors.New("No more cards in deck")
    ErrNoCurrentCard      = errors.New("No current card")
    ErrCardInPlay         = errors.New("A card is already in play")
    ErrWrongPhase         = errors.New("Cannot do that right now")
    ErrCannotChallenge    = errors.New("Cannot challenge now")
    ErrSelfChallenge      = errors.New("Cannot challenge your own placement")
    ErrNotYourTurn        = errors.New("Not your turn")
    ErrNotEnoughTokens    = errors.New("Not enough tokens")
    ErrCodeSpaceExhausted = errors.New("Failed to generate room code")
)

// errStaleTimer marks a timer that fired after its phase was already
// advanced by a faster trigger. Never surfaced to callers.
var errStaleTimer = errors.New("stale timer")
