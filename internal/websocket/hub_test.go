package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub) *Client {
	c := NewClient(hub, nil)
	hub.Register(c)
	return c
}

func recvRaw(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	default:
		t.Fatal("expected pending event, queue is empty")
		return nil
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("unexpected event: %s", data)
	default:
	}
}

func TestJoinRoomRequiresRegistration(t *testing.T) {
	hub := NewHub()
	c := NewClient(hub, nil)

	assert.False(t, hub.JoinRoom("team", c))
	assert.Equal(t, 0, hub.RoomCount("team"))

	hub.Register(c)
	assert.True(t, hub.JoinRoom("team", c))
	assert.Equal(t, 1, hub.RoomCount("team"))
}

func TestJoinRoomAfterUnregisterIsRefused(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub)

	// Соединение закрылось, пока шла аутентификация
	hub.Unregister(c)

	assert.False(t, hub.JoinRoom("team", c))
	assert.Equal(t, 0, hub.RoomCount("team"))
}

func TestSingleRoomMembership(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub)

	require.True(t, hub.JoinRoom("team", c))
	require.True(t, hub.JoinRoom("other", c))

	assert.Equal(t, 0, hub.RoomCount("team"))
	assert.Equal(t, 1, hub.RoomCount("other"))

	room, ok := hub.Room(c.ID)
	require.True(t, ok)
	assert.Equal(t, "other", room)
}

func TestBroadcastExcludesSender(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	require.True(t, hub.JoinRoom("team", a))
	require.True(t, hub.JoinRoom("team", b))

	hub.Broadcast("team", []byte("hello"), a.ID)

	assertNoEvent(t, a)
	assert.Equal(t, []byte("hello"), recvRaw(t, b))
}

func TestBroadcastAllIncludesSender(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	require.True(t, hub.JoinRoom("team", a))
	require.True(t, hub.JoinRoom("team", b))

	hub.BroadcastAll("team", []byte("hello"))

	assert.Equal(t, []byte("hello"), recvRaw(t, a))
	assert.Equal(t, []byte("hello"), recvRaw(t, b))
}

func TestBroadcastDoesNotCrossRooms(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	require.True(t, hub.JoinRoom("team", a))
	require.True(t, hub.JoinRoom("other", b))

	hub.BroadcastAll("team", []byte("hello"))

	assert.Equal(t, []byte("hello"), recvRaw(t, a))
	assertNoEvent(t, b)
}

func TestBroadcastPreservesOrderPerMember(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	require.True(t, hub.JoinRoom("team", a))
	require.True(t, hub.JoinRoom("team", b))

	hub.BroadcastAll("team", []byte("first"))
	hub.BroadcastAll("team", []byte("second"))

	for _, c := range []*Client{a, b} {
		assert.Equal(t, []byte("first"), recvRaw(t, c))
		assert.Equal(t, []byte("second"), recvRaw(t, c))
	}
}

func TestFullQueueDoesNotAbortDelivery(t *testing.T) {
	hub := NewHub()
	full := NewClient(hub, nil)
	full.Send = make(chan []byte) // без буфера и без читателя
	hub.Register(full)
	b := newTestClient(hub)
	require.True(t, hub.JoinRoom("team", full))
	require.True(t, hub.JoinRoom("team", b))

	hub.BroadcastAll("team", []byte("hello"))

	assert.Equal(t, []byte("hello"), recvRaw(t, b))
}

func TestLeaveRoomPrunesEmptyRoom(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub)
	require.True(t, hub.JoinRoom("team", c))

	hub.LeaveRoom(c)

	assert.Equal(t, 0, hub.RoomCount("team"))
	_, ok := hub.Room(c.ID)
	assert.False(t, ok)

	// Повторный Leave безопасен
	hub.LeaveRoom(c)
}

func TestUnregisterRemovesMembershipAndClosesSend(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	require.True(t, hub.JoinRoom("team", a))
	require.True(t, hub.JoinRoom("team", b))

	hub.Unregister(a)

	assert.Equal(t, 1, hub.RoomCount("team"))
	_, open := <-a.Send
	assert.False(t, open)

	// Повторный Unregister не паникует на закрытом канале
	hub.Unregister(a)
}

func TestCloseRoom(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	require.True(t, hub.JoinRoom("team", a))
	require.True(t, hub.JoinRoom("team", b))

	ids := hub.CloseRoom("team", []byte("bye"))

	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, ids)
	assert.Equal(t, []byte("bye"), recvRaw(t, a))
	assert.Equal(t, []byte("bye"), recvRaw(t, b))
	assert.Equal(t, 0, hub.RoomCount("team"))

	// Соединения остаются зарегистрированными и могут войти снова
	assert.True(t, hub.JoinRoom("other", a))

	assert.Nil(t, hub.CloseRoom("team", []byte("bye")))
}

func TestRenameRoomMovesMembers(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	require.True(t, hub.JoinRoom("team", a))
	require.True(t, hub.JoinRoom("team", b))

	hub.RenameRoom("team", "squad")

	assert.Equal(t, 0, hub.RoomCount("team"))
	assert.Equal(t, 2, hub.RoomCount("squad"))

	hub.BroadcastAll("squad", []byte("hello"))
	assert.Equal(t, []byte("hello"), recvRaw(t, a))
	assert.Equal(t, []byte("hello"), recvRaw(t, b))

	room, ok := hub.Room(a.ID)
	require.True(t, ok)
	assert.Equal(t, "squad", room)
}

func TestMarshalEventRoundTrip(t *testing.T) {
	data, err := MarshalEvent(EventJoinError, "Invalid group name or password")
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, EventJoinError, env.Event)

	var msg string
	require.NoError(t, env.DecodeData(&msg))
	assert.Equal(t, "Invalid group name or password", msg)
}
