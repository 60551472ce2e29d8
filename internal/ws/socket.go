package ws

import (
    "net/http"
    "sync"

    "github.com/gin-gonic/gin"
    socketio "github.com/googollee/go-socket.io"
    "github.com/rs/zerolog/log"

    "trackline/internal/game"
)

// ConnCtx is the per-connection association: which room this socket
// subscribes to and which player it speaks for. It is never a source of
// truth for game data.
type ConnCtx struct {
    Code     string
    PlayerID string
}

type Server struct {
    engine *game.Engine

    mu      sync.RWMutex
    members map[string]map[string]socketio.Conn // roomCode -> socketID -> Conn
}

func New(engine *game.Engine) *Server {
    srv := &Server{engine: engine, members: make(map[string]map[string]socketio.Conn)}
    engine.OnChange(srv.broadcast)
    return srv
}

// Mount attaches the Socket.IO server with all game event handlers to the
// given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
    io := socketio.NewServer(nil)

    io.OnConnect("/", func(s socketio.Conn) error {
        s.SetContext(&ConnCtx{})
        log.Info().Str("sid", s.ID()).Msg("socket connected")
        return nil
    })

    io.OnEvent("/", "join-room", srv.handleJoin)

    io.OnEvent("/", "leave-room", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
    }) {
        s.Leave(payload.RoomCode)
        srv.removeMember(payload.RoomCode, s)
        s.SetContext(&ConnCtx{})
        log.Info().Str("sid", s.ID()).Str("room", payload.RoomCode).Msg("leave-room")
    })

    io.OnEvent("/", "start-game", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
    }) {
        if err := srv.engine.StartGame(payload.RoomCode); err != nil {
            srv.err(s, err)
        }
    })

    io.OnEvent("/", "play-song", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
    }) {
        if err := srv.engine.PlaySong(payload.RoomCode); err != nil {
            srv.err(s, err)
        }
    })

    io.OnEvent("/", "song-played", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
    }) {
        if err := srv.engine.SongPlayed(payload.RoomCode); err != nil {
            srv.err(s, err)
        }
    })

    io.OnEvent("/", "place-card", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
        PlayerID string `json:"playerId"`
        Position int    `json:"position"`
    }) {
        if err := srv.engine.PlaceCard(payload.RoomCode, payload.PlayerID, payload.Position); err != nil {
            srv.err(s, err)
        }
    })

    io.OnEvent("/", "challenge", func(s socketio.Conn, payload struct {
        RoomCode     string `json:"roomCode"`
        ChallengerID string `json:"challengerId"`
        Position     int    `json:"position"`
    }) {
        if err := srv.engine.Challenge(payload.RoomCode, payload.ChallengerID, payload.Position); err != nil {
            srv.err(s, err)
        }
    })

    io.OnEvent("/", "skip-turn", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
        PlayerID string `json:"playerId"`
    }) {
        if err := srv.engine.SkipTurn(payload.RoomCode, payload.PlayerID); err != nil {
            srv.err(s, err)
        }
    })

    io.OnEvent("/", "free-card", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
        PlayerID string `json:"playerId"`
    }) {
        if err := srv.engine.FreeCard(payload.RoomCode, payload.PlayerID); err != nil {
            srv.err(s, err)
        }
    })

    io.OnEvent("/", "skip-song", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
    }) {
        if err := srv.engine.SkipSong(payload.RoomCode); err != nil {
            srv.err(s, err)
        }
    })

    io.OnEvent("/", "next-turn", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
    }) {
        if err := srv.engine.NextTurn(payload.RoomCode); err != nil {
            srv.err(s, err)
        }
    })

    io.OnError("/", func(s socketio.Conn, e error) {
        log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
    })
    io.OnDisconnect("/", func(s socketio.Conn, reason string) {
        if ctx, ok := s.Context().(*ConnCtx); ok && ctx.Code != "" {
            srv.removeMember(ctx.Code, s)
        }
        log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
    })

    go io.Serve()

    r.GET("/socket.io/*any", gin.WrapH(io))
    r.POST("/socket.io/*any", gin.WrapH(io))
    r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
        c.Header("Access-Control-Allow-Origin", "*")
        c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
        c.Header("Access-Control-Allow-Headers", "Content-Type")
        c.Status(http.StatusNoContent)
    })

    return io
}

type joinPayload struct {
    RoomCode string `json:"roomCode"`
    PlayerID string `json:"playerId"`
}

// handleJoin subscribes a connection to a room and pushes the current
// state to every subscriber, not just the joiner, so players already in
// the room see the roster change. Joins via the REST surface become
// visible here, once the new client's socket arrives.
func (srv *Server) handleJoin(s socketio.Conn, payload joinPayload) {
    snap, err := srv.engine.Snapshot(payload.RoomCode)
    if err != nil {
        srv.err(s, err)
        return
    }
    s.SetContext(&ConnCtx{Code: snap.Code, PlayerID: payload.PlayerID})
    s.Join(snap.Code)
    srv.addMember(snap.Code, s)
    log.Info().Str("sid", s.ID()).Str("room", snap.Code).Str("player", payload.PlayerID).Msg("join-room")
    srv.broadcast(snap)
}

// broadcast pushes a room snapshot to every subscriber of that room. It is
// the engine's OnChange hook, called under the room lock, so each room's
// subscribers see a linear history.
func (srv *Server) broadcast(snap *game.Snapshot) {
    srv.mu.RLock()
    conns := make([]socketio.Conn, 0, len(srv.members[snap.Code]))
    for _, c := range srv.members[snap.Code] {
        conns = append(conns, c)
    }
    srv.mu.RUnlock()
    for _, c := range conns {
        c.Emit("game-state", snap)
    }
}

func (srv *Server) addMember(code string, c socketio.Conn) {
    srv.mu.Lock()
    defer srv.mu.Unlock()
    if srv.members[code] == nil {
        srv.members[code] = make(map[string]socketio.Conn)
    }
    srv.members[code][c.ID()] = c
}

func (srv *Server) removeMember(code string, c socketio.Conn) {
    srv.mu.Lock()
    defer srv.mu.Unlock()
    if m := srv.members[code]; m != nil {
        delete(m, c.ID())
    }
}

// err sends exactly one error notification to the triggering connection.
// Rejections never mutate state and never broadcast.
func (srv *Server) err(s socketio.Conn, e error) {
    s.Emit("error", map[string]any{"message": e.Error()})
}
