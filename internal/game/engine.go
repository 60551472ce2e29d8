package game

import (
    "errors"
    "sync"
    "time"

    "github.com/rs/zerolog/log"
)

// Default gameplay windows. The challenge window is how long other players
// get to contest a placement; the reveal window is how long the round
// result stays on screen.
const (
    DefaultChallengeWindow = 5 * time.Second
    DefaultRevealWindow    = 3 * time.Second

    // DefaultRoomRetention is how long a finished room stays readable
    // before it is dropped.
    DefaultRoomRetention = time.Hour
)

// Store is the engine's read-modify-write dependency. Saves are
// all-or-nothing for a room's record.
type Store interface {
    Load(code string) (*Room, error)
    Save(room *Room) error
    Delete(code string)
}

// Engine drives every phase transition. All triggers, player and
// timer-fired alike, funnel through mutate, which holds the room's lock
// from load until the save has completed and the snapshot is emitted.
// Rooms are fully independent; a slow room never stalls another.
type Engine struct {
    store Store

    challengeWindow time.Duration
    revealWindow    time.Duration
    retention       time.Duration

    onChange func(*Snapshot)
    now      func() time.Time

    mu    sync.Mutex
    locks map[string]*sync.Mutex // pruned by DropRoom
}

func NewEngine(store Store) *Engine {
    return &Engine{
        store:           store,
        challengeWindow: DefaultChallengeWindow,
        revealWindow:    DefaultRevealWindow,
        retention:       DefaultRoomRetention,
        now:             time.Now,
        locks:           make(map[string]*sync.Mutex),
    }
}

// SetWindows overrides the gameplay timers. Tests use millisecond windows.
func (e *Engine) SetWindows(challenge, reveal time.Duration) {
    e.challengeWindow = challenge
    e.revealWindow = reveal
}

// OnChange registers the broadcast hook. It is called with a fresh
// snapshot after every successful mutation, still under the room's lock,
// so subscribers observe a linear history per room.
func (e *Engine) OnChange(fn func(*Snapshot)) {
    e.onChange = fn
}

func (e *Engine) roomLock(code string) *sync.Mutex {
    e.mu.Lock()
    defer e.mu.Unlock()
    l := e.locks[code]
    if l == nil {
        l = &sync.Mutex{}
        e.locks[code] = l
    }
    return l
}

func (e *Engine) mutate(code string, fn func(*Room) error) error {
    l := e.roomLock(code)
    l.Lock()
    defer l.Unlock()

    room, err := e.store.Load(code)
    if err != nil {
        return err
    }
    if err := fn(room); err != nil {
        return err
    }
    if err := e.store.Save(room); err != nil {
        return err
    }
    if e.onChange != nil {
        e.onChange(room.TakeSnapshot())
    }
    return nil
}

// Snapshot returns the current state of a room, for join-time sync and the
// REST read path.
func (e *Engine) Snapshot(code string) (*Snapshot, error) {
    l := e.roomLock(code)
    l.Lock()
    defer l.Unlock()
    room, err := e.store.Load(code)
    if err != nil {
        return nil, err
    }
    return room.TakeSnapshot(), nil
}

// StartGame deals one starting card to every player and begins play.
func (e *Engine) StartGame(code string) error {
    return e.mutate(code, func(r *Room) error {
        if r.Finished() {
            return ErrGameFinished
        }
        if r.Status != StatusWaiting {
            return ErrGameStarted
        }
        if len(r.Players) < 2 {
            return ErrNotEnoughPlayers
        }
        if len(r.Deck) == 0 {
            return ErrEmptyDeck
        }
        for _, p := range r.Players {
            card, ok := r.DrawCard()
            if !ok {
                break
            }
            e.insertCard(p, card, len(p.Timeline))
        }
        r.Status = StatusPlaying
        r.Phase = PhasePlayingSong
        r.CurrentPlayerIndex = 0
        r.CurrentDjIndex = 0
        log.Info().Str("room", r.Code).Int("players", len(r.Players)).Msg("game started")
        return nil
    })
}

// PlaySong draws the next card for the DJ to play.
func (e *Engine) PlaySong(code string) error {
    return e.mutate(code, func(r *Room) error {
        if r.Finished() {
            return ErrGameFinished
        }
        if r.Phase != PhasePlayingSong {
            return ErrWrongPhase
        }
        if r.CurrentCard != nil {
            return ErrCardInPlay
        }
        card, ok := r.DrawCard()
        if !ok {
            return ErrDeckExhausted
        }
        r.CurrentCard = &card
        return nil
    })
}

// SongPlayed is the DJ signalling playback is done; the turn player may
// now place the card.
func (e *Engine) SongPlayed(code string) error {
    return e.mutate(code, func(r *Room) error {
        if r.Finished() {
            return ErrGameFinished
        }
        if r.Phase != PhasePlayingSong {
            return ErrWrongPhase
        }
        if r.CurrentCard == nil {
            return ErrNoCurrentCard
        }
        r.Phase = PhasePlacingCard
        return nil
    })
}

// PlaceCard records the turn player's placement intent and opens the
// challenge window. The actual insertion happens when the window closes
// uncontested.
func (e *Engine) PlaceCard(code, playerID string, position int) error {
    err := e.mutate(code, func(r *Room) error {
        if r.Finished() {
            return ErrGameFinished
        }
        if r.Phase != PhasePlacingCard && r.Phase != PhasePlayingSong {
            return ErrWrongPhase
        }
        if r.CurrentCard == nil {
            return ErrNoCurrentCard
        }
        cp := r.CurrentPlayer()
        if cp == nil || cp.ID != playerID {
            return ErrNotYourTurn
        }
        r.Pending = &PendingPlacement{PlayerID: playerID, Position: position}
        r.Phase = PhaseChallenge
        return nil
    })
    if err != nil {
        return err
    }
    e.schedule(code, e.challengeWindow, e.resolveChallengeWindow)
    return nil
}

// resolveChallengeWindow fires when the challenge window expires. If a
// challenge already advanced the phase, the recheck turns this into a
// no-op.
func (e *Engine) resolveChallengeWindow(code string) {
    scheduleReveal := false
    err := e.mutate(code, func(r *Room) error {
        if r.Finished() || r.Phase != PhaseChallenge || r.Pending == nil {
            return errStaleTimer
        }
        p := r.PlayerByID(r.Pending.PlayerID)
        if p != nil && r.CurrentCard != nil && IsValidPlacement(p.Timeline, *r.CurrentCard, r.Pending.Position) {
            e.insertCard(p, *r.CurrentCard, r.Pending.Position)
        }
        r.Pending = nil
        if p != nil && HasWon(len(p.Timeline)) {
            e.finish(r)
            return nil
        }
        e.advanceToReveal(r)
        scheduleReveal = true
        return nil
    })
    if errors.Is(err, errStaleTimer) {
        return
    }
    if err != nil {
        log.Error().Err(err).Str("room", code).Msg("challenge window resolution failed")
        return
    }
    if scheduleReveal {
        e.schedule(code, e.revealWindow, e.endReveal)
    }
}

// Challenge lets a non-turn player spend a token to claim the card into
// their own timeline. The first challenge in the window wins; later ones
// hit the phase precondition. The token is spent even when the
// challenger's placement turns out to be wrong.
func (e *Engine) Challenge(code, challengerID string, position int) error {
    scheduleReveal := false
    err := e.mutate(code, func(r *Room) error {
        if r.Finished() {
            return ErrGameFinished
        }
        if r.Phase != PhaseChallenge {
            return ErrCannotChallenge
        }
        ch := r.PlayerByID(challengerID)
        if ch == nil {
            return ErrPlayerNotFound
        }
        if cp := r.CurrentPlayer(); cp != nil && cp.ID == challengerID {
            return ErrSelfChallenge
        }
        if !CanAfford(ch.Tokens, ActionChallenge) {
            return ErrNotEnoughTokens
        }
        if r.CurrentCard == nil {
            return ErrNoCurrentCard
        }
        ch.Tokens -= TokenCost(ActionChallenge)
        if IsValidPlacement(ch.Timeline, *r.CurrentCard, position) {
            e.insertCard(ch, *r.CurrentCard, position)
        }
        // the turn player's pending placement is superseded
        r.Pending = nil
        log.Info().Str("room", r.Code).Str("challenger", challengerID).Msg("challenge resolved")
        if HasWon(len(ch.Timeline)) {
            e.finish(r)
            return nil
        }
        e.advanceToReveal(r)
        scheduleReveal = true
        return nil
    })
    if err != nil {
        return err
    }
    if scheduleReveal {
        e.schedule(code, e.revealWindow, e.endReveal)
    }
    return nil
}

// endReveal closes the reveal window and hands the room back to the DJ.
func (e *Engine) endReveal(code string) {
    err := e.mutate(code, func(r *Room) error {
        if r.Finished() || r.Phase != PhaseReveal {
            return errStaleTimer
        }
        r.CurrentCard = nil
        r.Phase = PhasePlayingSong
        return nil
    })
    if err != nil && !errors.Is(err, errStaleTimer) {
        log.Error().Err(err).Str("room", code).Msg("reveal window resolution failed")
    }
}

// SkipTurn spends a token to pass without placing. The card in play is
// discarded; the turn does not rotate.
func (e *Engine) SkipTurn(code, playerID string) error {
    return e.mutate(code, func(r *Room) error {
        if r.Finished() {
            return ErrGameFinished
        }
        cp := r.CurrentPlayer()
        if cp == nil || cp.ID != playerID {
            return ErrNotYourTurn
        }
        if !CanAfford(cp.Tokens, ActionSkip) {
            return ErrNotEnoughTokens
        }
        cp.Tokens -= TokenCost(ActionSkip)
        r.CurrentCard = nil
        r.Pending = nil
        r.Phase = PhasePlayingSong
        return nil
    })
}

// FreeCard spends three tokens to auto-place the current card at the
// first valid position, no guessing involved.
func (e *Engine) FreeCard(code, playerID string) error {
    return e.mutate(code, func(r *Room) error {
        if r.Finished() {
            return ErrGameFinished
        }
        cp := r.CurrentPlayer()
        if cp == nil || cp.ID != playerID {
            return ErrNotYourTurn
        }
        if !CanAfford(cp.Tokens, ActionFreeCard) {
            return ErrNotEnoughTokens
        }
        if r.CurrentCard == nil {
            return ErrNoCurrentCard
        }
        cp.Tokens -= TokenCost(ActionFreeCard)
        positions := ValidPositions(cp.Timeline, r.CurrentCard.Year)
        e.insertCard(cp, *r.CurrentCard, positions[0])
        if HasWon(len(cp.Timeline)) {
            e.finish(r)
            return nil
        }
        e.advanceTurn(r)
        r.CurrentCard = nil
        r.Pending = nil
        r.Phase = PhasePlayingSong
        return nil
    })
}

// SkipSong discards a broken card and draws a replacement, no penalty.
func (e *Engine) SkipSong(code string) error {
    return e.mutate(code, func(r *Room) error {
        if r.Finished() {
            return ErrGameFinished
        }
        if r.CurrentCard == nil {
            return ErrNoCurrentCard
        }
        card, ok := r.DrawCard()
        if !ok {
            return ErrDeckExhausted
        }
        r.CurrentCard = &card
        r.Phase = PhasePlayingSong
        return nil
    })
}

// NextTurn is the manual recovery path: rotate the turn and clear the
// table regardless of phase.
func (e *Engine) NextTurn(code string) error {
    return e.mutate(code, func(r *Room) error {
        if r.Finished() {
            return ErrGameFinished
        }
        e.advanceTurn(r)
        r.CurrentCard = nil
        r.Pending = nil
        r.Phase = PhasePlayingSong
        return nil
    })
}

func (e *Engine) insertCard(p *Player, s Song, position int) {
    card := PlacedCard{Song: s, PlacedAt: e.now().UnixMilli()}
    p.Timeline = append(p.Timeline, PlacedCard{})
    copy(p.Timeline[position+1:], p.Timeline[position:])
    p.Timeline[position] = card
}

func (e *Engine) advanceTurn(r *Room) {
    n := len(r.Players)
    if n == 0 {
        return
    }
    r.CurrentPlayerIndex = NextPlayerIndex(r.CurrentPlayerIndex, n)
    r.CurrentDjIndex = NextDjIndex(r.CurrentDjIndex, n)
}

func (e *Engine) advanceToReveal(r *Room) {
    e.advanceTurn(r)
    r.CurrentCard = nil
    r.Phase = PhaseReveal
}

func (e *Engine) finish(r *Room) {
    r.Phase = PhaseGameOver
    r.Status = StatusFinished
    r.CurrentCard = nil
    r.Pending = nil
    log.Info().Str("room", r.Code).Msg("game over")
    e.schedule(r.Code, e.retention, e.dropFinished)
}

func (e *Engine) dropFinished(code string) {
    if err := e.DropRoom(code); err != nil && !errors.Is(err, ErrRoomNotFound) {
        log.Error().Err(err).Str("room", code).Msg("room cleanup failed")
    }
}

// DropRoom deletes a room's record and releases its lock entry. Finished
// rooms are dropped automatically once the retention window passes.
func (e *Engine) DropRoom(code string) error {
    l := e.roomLock(code)
    l.Lock()
    defer l.Unlock()
    if _, err := e.store.Load(code); err != nil {
        return err
    }
    e.store.Delete(code)
    e.mu.Lock()
    delete(e.locks, code)
    e.mu.Unlock()
    log.Info().Str("room", code).Msg("room dropped")
    return nil
}

func (e *Engine) schedule(code string, d time.Duration, fn func(string)) {
    time.AfterFunc(d, func() { fn(code) })
}
