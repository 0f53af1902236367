package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventHandler struct {
	accessErr    error
	sendCalls    []SendMessagePayload
	readCalls    []MarkReadPayload
	typingCalls  []bool
	typingChatID string
}

func (f *fakeEventHandler) CanAccessChat(ctx context.Context, userID, chatID string) error {
	return f.accessErr
}

func (f *fakeEventHandler) HandleSendMessage(ctx context.Context, client *Client, payload SendMessagePayload) {
	f.sendCalls = append(f.sendCalls, payload)
}

func (f *fakeEventHandler) HandleMarkMessageRead(ctx context.Context, client *Client, payload MarkReadPayload) {
	f.readCalls = append(f.readCalls, payload)
}

func (f *fakeEventHandler) HandleTyping(ctx context.Context, client *Client, chatID string, isTyping bool) {
	f.typingChatID = chatID
	f.typingCalls = append(f.typingCalls, isTyping)
}

func newTestClient(userID, username string) *Client {
	return &Client{
		UserID:   userID,
		Username: username,
		Send:     make(chan []byte, 16),
	}
}

func drainEvent(t *testing.T, c *Client) OutboundEvent {
	t.Helper()

	select {
	case raw := <-c.Send:
		var event OutboundEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	default:
		t.Fatal("expected an event but send buffer is empty")
		return OutboundEvent{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()

	select {
	case raw := <-c.Send:
		t.Fatalf("expected no event, got: %s", raw)
	default:
	}
}

func TestMemoryRegistry(t *testing.T) {
	registry := NewMemoryRegistry()
	c1 := newTestClient("u1", "alice")
	c2 := newTestClient("u2", "bob")

	registry.Join("room-a", c1)
	registry.Join("room-a", c2)
	registry.Join("room-b", c1)

	assert.Len(t, registry.Members("room-a"), 2)
	assert.Len(t, registry.Members("room-b"), 1)
	assert.Empty(t, registry.Members("room-c"))

	registry.Leave("room-a", c1)
	assert.Len(t, registry.Members("room-a"), 1)

	registry.DropAll(c2)
	assert.Empty(t, registry.Members("room-a"))
	assert.Len(t, registry.Members("room-b"), 1)
}

func TestBroadcastToRoom(t *testing.T) {
	registry := NewMemoryRegistry()
	m := NewManager(registry)

	c1 := newTestClient("u1", "alice")
	c2 := newTestClient("u2", "bob")
	c3 := newTestClient("u3", "carol")

	registry.Join("chat-1", c1)
	registry.Join("chat-1", c2)

	m.BroadcastToRoom("chat-1", NewEvent(EventNewMessage, map[string]string{"hello": "world"}))

	assert.Equal(t, EventNewMessage, drainEvent(t, c1).Type)
	assert.Equal(t, EventNewMessage, drainEvent(t, c2).Type)
	assertNoEvent(t, c3)
}

func TestBroadcastToRoomExcept(t *testing.T) {
	registry := NewMemoryRegistry()
	m := NewManager(registry)

	c1 := newTestClient("u1", "alice")
	c2 := newTestClient("u2", "bob")

	registry.Join("chat-1", c1)
	registry.Join("chat-1", c2)

	m.BroadcastToRoomExcept("chat-1", "u1", NewEvent(EventUserTyping, UserTypingPayload{UserID: "u1", Username: "alice", IsTyping: true}))

	assertNoEvent(t, c1)
	assert.Equal(t, EventUserTyping, drainEvent(t, c2).Type)
}

func TestAddClientJoinsPrivateRoomAndBroadcastsPresence(t *testing.T) {
	registry := NewMemoryRegistry()
	m := NewManager(registry)

	c1 := newTestClient("u1", "alice")
	m.addClient(c1)

	// Own private room, so notifications reach the user anywhere.
	assert.Len(t, registry.Members("u1"), 1)
	assertNoEvent(t, c1)

	c2 := newTestClient("u2", "bob")
	m.addClient(c2)

	event := drainEvent(t, c1)
	assert.Equal(t, EventUserStatus, event.Type)

	data, _ := json.Marshal(event.Data)
	var status UserStatusPayload
	require.NoError(t, json.Unmarshal(data, &status))
	assert.Equal(t, "u2", status.UserID)
	assert.Equal(t, "online", status.Status)

	// The connecting client does not see its own presence event.
	assertNoEvent(t, c2)
}

func TestRemoveClientBroadcastsOfflineAndDropsRooms(t *testing.T) {
	registry := NewMemoryRegistry()
	m := NewManager(registry)

	c1 := newTestClient("u1", "alice")
	c2 := newTestClient("u2", "bob")
	m.addClient(c1)
	m.addClient(c2)
	drainEvent(t, c1) // online event for u2

	registry.Join("chat-1", c2)

	m.removeClient(c2)

	assert.Empty(t, registry.Members("chat-1"))
	assert.Empty(t, registry.Members("u2"))

	event := drainEvent(t, c1)
	assert.Equal(t, EventUserStatus, event.Type)

	data, _ := json.Marshal(event.Data)
	var status UserStatusPayload
	require.NoError(t, json.Unmarshal(data, &status))
	assert.Equal(t, "offline", status.Status)

	// Send channel is closed so the write pump terminates.
	_, open := <-c2.Send
	assert.False(t, open)
}

func TestRemoveClientTwiceIsNoop(t *testing.T) {
	m := NewManager(NewMemoryRegistry())

	c := newTestClient("u1", "alice")
	m.addClient(c)
	m.removeClient(c)

	assert.NotPanics(t, func() {
		m.removeClient(c)
	})
}

func TestHandleClientMessageJoinChat(t *testing.T) {
	registry := NewMemoryRegistry()
	m := NewManager(registry)
	h := &fakeEventHandler{}
	m.SetEventHandler(h)

	c := newTestClient("u1", "alice")

	m.HandleClientMessage(c, []byte(`{"type":"join_chat","data":{"chat_id":"chat-1"}}`))

	assert.Len(t, registry.Members("chat-1"), 1)
	assertNoEvent(t, c)
}

func TestHandleClientMessageJoinChatDenied(t *testing.T) {
	registry := NewMemoryRegistry()
	m := NewManager(registry)
	h := &fakeEventHandler{accessErr: assert.AnError}
	m.SetEventHandler(h)

	c := newTestClient("u1", "alice")

	m.HandleClientMessage(c, []byte(`{"type":"join_chat","data":{"chat_id":"chat-1"}}`))

	assert.Empty(t, registry.Members("chat-1"))
	assert.Equal(t, EventError, drainEvent(t, c).Type)
}

func TestHandleClientMessageLeaveChat(t *testing.T) {
	registry := NewMemoryRegistry()
	m := NewManager(registry)
	m.SetEventHandler(&fakeEventHandler{})

	c := newTestClient("u1", "alice")
	registry.Join("chat-1", c)

	m.HandleClientMessage(c, []byte(`{"type":"leave_chat","data":{"chat_id":"chat-1"}}`))

	assert.Empty(t, registry.Members("chat-1"))
}

func TestHandleClientMessageDispatch(t *testing.T) {
	m := NewManager(NewMemoryRegistry())
	h := &fakeEventHandler{}
	m.SetEventHandler(h)

	c := newTestClient("u1", "alice")

	m.HandleClientMessage(c, []byte(`{"type":"send_message","data":{"chat_id":"chat-1","content":"hi"}}`))
	require.Len(t, h.sendCalls, 1)
	assert.Equal(t, "chat-1", h.sendCalls[0].ChatID)
	assert.Equal(t, "hi", h.sendCalls[0].Content)

	m.HandleClientMessage(c, []byte(`{"type":"mark_message_read","data":{"chat_id":"chat-1","message_id":"msg-1"}}`))
	require.Len(t, h.readCalls, 1)
	assert.Equal(t, "msg-1", h.readCalls[0].MessageID)

	m.HandleClientMessage(c, []byte(`{"type":"typing_start","data":{"chat_id":"chat-1"}}`))
	m.HandleClientMessage(c, []byte(`{"type":"typing_stop","data":{"chat_id":"chat-1"}}`))
	assert.Equal(t, []bool{true, false}, h.typingCalls)
	assert.Equal(t, "chat-1", h.typingChatID)
}

func TestHandleClientMessageInvalid(t *testing.T) {
	m := NewManager(NewMemoryRegistry())
	m.SetEventHandler(&fakeEventHandler{})

	c := newTestClient("u1", "alice")

	m.HandleClientMessage(c, []byte(`not json`))
	assert.Equal(t, EventError, drainEvent(t, c).Type)

	m.HandleClientMessage(c, []byte(`{"type":"no_such_event"}`))
	assert.Equal(t, EventError, drainEvent(t, c).Type)

	m.HandleClientMessage(c, []byte(`{"type":"mark_message_read","data":{"chat_id":"chat-1"}}`))
	assert.Equal(t, EventError, drainEvent(t, c).Type)
}

func TestSendToDisconnectedClientDoesNotPanic(t *testing.T) {
	registry := NewMemoryRegistry()
	m := NewManager(registry)

	c := newTestClient("u1", "alice")
	m.addClient(c)
	registry.Join("chat-1", c)

	// A broadcaster may snapshot the room before the client unregisters
	// and deliver after. That delivery must be a silent drop.
	snapshot := registry.Members("chat-1")
	m.removeClient(c)

	assert.NotPanics(t, func() {
		for _, member := range snapshot {
			m.SendToClient(member, NewEvent(EventNewMessage, map[string]string{"late": "delivery"}))
		}
	})
}

func TestConcurrentBroadcastAndUnregister(t *testing.T) {
	registry := NewMemoryRegistry()
	m := NewManager(registry)

	clients := make([]*Client, 8)
	for i := range clients {
		clients[i] = newTestClient("u1", "alice")
		m.addClient(clients[i])
		registry.Join("chat-1", clients[i])
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			m.BroadcastToRoom("chat-1", NewEvent(EventUserTyping, UserTypingPayload{UserID: "u1"}))
		}
	}()

	for _, c := range clients {
		go func(c *Client) {
			for range c.Send {
			}
		}(c)
		m.removeClient(c)
	}

	<-done
}

func TestSendDropsWhenBufferFull(t *testing.T) {
	m := NewManager(NewMemoryRegistry())

	c := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	c.Send <- []byte("occupied")

	assert.NotPanics(t, func() {
		m.SendError(c, "dropped")
	})
	assert.Len(t, c.Send, 1)
}
