package websocket

import "sync"

// RoomRegistry maps room names to the set of live clients subscribed to
// them. It is injected into the Manager so a shared external registry can
// replace the in-memory one in a multi-process deployment.
type RoomRegistry interface {
	Join(room string, c *Client)
	Leave(room string, c *Client)
	Members(room string) []*Client
	DropAll(c *Client)
}

type memoryRegistry struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewMemoryRegistry() RoomRegistry {
	return &memoryRegistry{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

func (r *memoryRegistry) Join(room string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		r.rooms[room] = members
	}
	members[c] = struct{}{}
}

func (r *memoryRegistry) Leave(room string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}

func (r *memoryRegistry) Members(room string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[room]
	result := make([]*Client, 0, len(members))
	for c := range members {
		result = append(result, c)
	}
	return result
}

func (r *memoryRegistry) DropAll(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room, members := range r.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
}
