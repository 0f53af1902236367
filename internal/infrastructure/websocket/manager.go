package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"devconnect/pkg/errors"
	"devconnect/pkg/logger"
)

// EventHandler receives the domain-level chat events parsed off a
// connection. Implemented by the chat use case.
type EventHandler interface {
	CanAccessChat(ctx context.Context, userID, chatID string) error
	HandleSendMessage(ctx context.Context, client *Client, payload SendMessagePayload)
	HandleMarkMessageRead(ctx context.Context, client *Client, payload MarkReadPayload)
	HandleTyping(ctx context.Context, client *Client, chatID string, isTyping bool)
}

// Manager owns the set of live connections and the room registry, and fans
// events out to them. Room state is process-local and vanishes on restart.
type Manager struct {
	clients    map[*Client]struct{}
	rooms      RoomRegistry
	handler    EventHandler
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager(rooms RoomRegistry) *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		rooms:      rooms,
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// SetEventHandler wires the domain handler after construction; the chat use
// case needs the manager to broadcast, so the two are connected in main.
func (m *Manager) SetEventHandler(h EventHandler) {
	m.handler = h
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.addClient(client)

			case client := <-m.Unregister:
				m.removeClient(client)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) addClient(client *Client) {
	m.mutex.Lock()
	m.clients[client] = struct{}{}
	m.mutex.Unlock()

	// Private room named by the user id, used for out-of-band notifications.
	m.rooms.Join(client.UserID, client)

	m.broadcastToAllExcept(client, NewEvent(EventUserStatus, UserStatusPayload{
		UserID: client.UserID,
		Status: "online",
	}))

	logger.Info("Client connected: %s (%s)", client.Username, client.UserID)
}

func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	_, ok := m.clients[client]
	if ok {
		delete(m.clients, client)
	}
	m.mutex.Unlock()

	if !ok {
		return
	}

	m.rooms.DropAll(client)
	client.closeSend()

	m.broadcastToAllExcept(client, NewEvent(EventUserStatus, UserStatusPayload{
		UserID: client.UserID,
		Status: "offline",
	}))

	logger.Info("Client disconnected: %s (%s)", client.Username, client.UserID)
}

// HandleClientMessage parses one inbound event and dispatches it.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		logger.Warn("Invalid event from %s: %v", client.UserID, err)
		m.SendError(client, "Invalid event format")
		return
	}

	ctx := context.Background()

	switch event.Type {
	case EventJoinChat:
		var payload JoinChatPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil || payload.ChatID == "" {
			m.SendError(client, "Missing chat_id")
			return
		}
		if err := m.handler.CanAccessChat(ctx, client.UserID, payload.ChatID); err != nil {
			m.SendError(client, errors.Message(err, "Cannot join chat"))
			return
		}
		m.rooms.Join(payload.ChatID, client)
		logger.Debug("Client %s joined chat room %s", client.UserID, payload.ChatID)

	case EventLeaveChat:
		var payload JoinChatPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil || payload.ChatID == "" {
			m.SendError(client, "Missing chat_id")
			return
		}
		m.rooms.Leave(payload.ChatID, client)
		logger.Debug("Client %s left chat room %s", client.UserID, payload.ChatID)

	case EventSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			m.SendError(client, "Invalid send_message payload")
			return
		}
		m.handler.HandleSendMessage(ctx, client, payload)

	case EventTypingStart, EventTypingStop:
		var payload TypingPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil || payload.ChatID == "" {
			m.SendError(client, "Missing chat_id")
			return
		}
		m.handler.HandleTyping(ctx, client, payload.ChatID, event.Type == EventTypingStart)

	case EventMarkMessageRead:
		var payload MarkReadPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil || payload.ChatID == "" || payload.MessageID == "" {
			m.SendError(client, "Missing chat_id or message_id")
			return
		}
		m.handler.HandleMarkMessageRead(ctx, client, payload)

	case EventUserOnline:
		m.broadcastToAllExcept(client, NewEvent(EventUserStatus, UserStatusPayload{
			UserID: client.UserID,
			Status: "online",
		}))

	default:
		logger.Warn("Unknown event type %q from client %s", event.Type, client.UserID)
		m.SendError(client, "Unknown event type")
	}
}

// BroadcastToRoom sends the event to every client in the room.
func (m *Manager) BroadcastToRoom(room string, event OutboundEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	for _, client := range m.rooms.Members(room) {
		m.send(client, payload)
	}
}

// BroadcastToRoomExcept sends the event to every client in the room except
// connections belonging to exceptUserID.
func (m *Manager) BroadcastToRoomExcept(room, exceptUserID string, event OutboundEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	for _, client := range m.rooms.Members(room) {
		if client.UserID == exceptUserID {
			continue
		}
		m.send(client, payload)
	}
}

// SendToUser delivers the event to the user's private room.
func (m *Manager) SendToUser(userID string, event OutboundEvent) {
	m.BroadcastToRoom(userID, event)
}

// SendToClient delivers the event to a single connection.
func (m *Manager) SendToClient(client *Client, event OutboundEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal %s event: %v", event.Type, err)
		return
	}
	m.send(client, payload)
}

// SendError emits an error event to the failing connection only.
func (m *Manager) SendError(client *Client, message string) {
	m.SendToClient(client, NewEvent(EventError, ErrorPayload{Message: message}))
}

func (m *Manager) broadcastToAllExcept(except *Client, event OutboundEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	m.mutex.RLock()
	clients := make([]*Client, 0, len(m.clients))
	for client := range m.clients {
		if client != except {
			clients = append(clients, client)
		}
	}
	m.mutex.RUnlock()

	for _, client := range clients {
		m.send(client, payload)
	}
}

// send never blocks; a client that is gone or whose send buffer is full
// loses the event. There is no delivery guarantee or retry at this layer.
func (m *Manager) send(client *Client, payload []byte) {
	if !client.trySend(payload) {
		logger.Warn("Dropping event for client %s (disconnected or buffer full)", client.UserID)
	}
}
