package ws

import (
    "net"
    "net/http"
    "net/url"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "trackline/internal/game"
    "trackline/internal/store"
)

// fakeConn records emitted events so tests can observe what a client
// would receive.
type fakeConn struct {
    id  string
    ctx interface{}

    mu     sync.Mutex
    events []emittedEvent
}

type emittedEvent struct {
    name string
    args []interface{}
}

func (c *fakeConn) Close() error               { return nil }
func (c *fakeConn) Context() interface{}       { return c.ctx }
func (c *fakeConn) SetContext(ctx interface{}) { c.ctx = ctx }
func (c *fakeConn) Namespace() string          { return "/" }
func (c *fakeConn) Join(room string)           {}
func (c *fakeConn) Leave(room string)          {}
func (c *fakeConn) LeaveAll()                  {}
func (c *fakeConn) Rooms() []string            { return nil }
func (c *fakeConn) ID() string                 { return c.id }
func (c *fakeConn) URL() url.URL               { return url.URL{} }
func (c *fakeConn) LocalAddr() net.Addr        { return nil }
func (c *fakeConn) RemoteAddr() net.Addr       { return nil }
func (c *fakeConn) RemoteHeader() http.Header  { return nil }

func (c *fakeConn) Emit(eventName string, v ...interface{}) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.events = append(c.events, emittedEvent{name: eventName, args: v})
}

func (c *fakeConn) received(eventName string) []emittedEvent {
    c.mu.Lock()
    defer c.mu.Unlock()
    out := []emittedEvent{}
    for _, e := range c.events {
        if e.name == eventName {
            out = append(out, e)
        }
    }
    return out
}

func TestJoinRoomBroadcastsToRoom(t *testing.T) {
    st := store.New()
    room, host, err := st.CreateRoom("Alice", nil)
    require.NoError(t, err)
    srv := New(game.NewEngine(st))

    a := &fakeConn{id: "conn-a"}
    srv.handleJoin(a, joinPayload{RoomCode: room.Code, PlayerID: host.ID})
    require.Len(t, a.received("game-state"), 1)
    require.IsType(t, &ConnCtx{}, a.ctx)
    assert.Equal(t, room.Code, a.ctx.(*ConnCtx).Code)

    // Bob joins over REST, then his socket arrives
    bob, _, err := st.AddPlayer(room.Code, "Bob")
    require.NoError(t, err)
    b := &fakeConn{id: "conn-b"}
    srv.handleJoin(b, joinPayload{RoomCode: room.Code, PlayerID: bob.ID})

    states := a.received("game-state")
    require.Len(t, states, 2, "subscribers already in the room see the join")
    snap := states[1].args[0].(*game.Snapshot)
    assert.Len(t, snap.Players, 2)

    require.Len(t, b.received("game-state"), 1)
}

func TestJoinUnknownRoomErrorsCallerOnly(t *testing.T) {
    st := store.New()
    room, host, err := st.CreateRoom("Alice", nil)
    require.NoError(t, err)
    srv := New(game.NewEngine(st))

    a := &fakeConn{id: "conn-a"}
    srv.handleJoin(a, joinPayload{RoomCode: room.Code, PlayerID: host.ID})

    b := &fakeConn{id: "conn-b"}
    srv.handleJoin(b, joinPayload{RoomCode: "ZZZZ", PlayerID: "nobody"})

    assert.Len(t, b.received("error"), 1)
    assert.Empty(t, b.received("game-state"))
    assert.Len(t, a.received("game-state"), 1, "failed joins broadcast nothing")
}
