package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventNewNotification = "new_notification"
	EventUnreadCount     = "unread_count"
	EventJoined          = "joined"
)

// Frame is the envelope for every message on the push channel.
type Frame struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Registry maps a user id to the set of that user's active push channels.
// It is the one piece of shared mutable state in the subsystem: connect
// handlers, disconnect handlers and dispatch all touch it concurrently.
type Registry struct {
	mu       sync.RWMutex
	clients  map[uuid.UUID]map[*Client]struct{}
	byClient map[*Client]uuid.UUID

	sendTimeout time.Duration
}

func NewRegistry(sendTimeout time.Duration) *Registry {
	if sendTimeout <= 0 {
		sendTimeout = 2 * time.Second
	}
	return &Registry{
		clients:     make(map[uuid.UUID]map[*Client]struct{}),
		byClient:    make(map[*Client]uuid.UUID),
		sendTimeout: sendTimeout,
	}
}

// Join registers a channel under a user's logical group. Re-joining with the
// same user is a no-op; joining as a different user moves the channel.
func (r *Registry) Join(userID uuid.UUID, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.byClient[c]; ok {
		if current == userID {
			return
		}
		r.removeLocked(c)
	}

	group, ok := r.clients[userID]
	if !ok {
		group = make(map[*Client]struct{})
		r.clients[userID] = group
	}
	group[c] = struct{}{}
	r.byClient[c] = userID
}

// Leave removes a channel from whichever group holds it and closes it.
func (r *Registry) Leave(c *Client) {
	r.mu.Lock()
	r.removeLocked(c)
	r.mu.Unlock()

	c.close()
}

func (r *Registry) removeLocked(c *Client) {
	userID, ok := r.byClient[c]
	if !ok {
		return
	}
	delete(r.byClient, c)
	if group, ok := r.clients[userID]; ok {
		delete(group, c)
		if len(group) == 0 {
			delete(r.clients, userID)
		}
	}
}

// Broadcast fans an event out to every channel registered for the user and
// returns the number of successful sends. A user with no channels is a
// silent no-op. Channels that fail to accept the frame within the send
// timeout are pruned, so the registry heals itself around dead connections.
func (r *Registry) Broadcast(userID uuid.UUID, event string, payload interface{}) int {
	msg, err := json.Marshal(Frame{Event: event, Payload: payload})
	if err != nil {
		log.Printf("realtime: marshal %s frame: %v", event, err)
		return 0
	}

	r.mu.RLock()
	targets := make([]*Client, 0, len(r.clients[userID]))
	for c := range r.clients[userID] {
		targets = append(targets, c)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if c.enqueue(msg, r.sendTimeout) {
			delivered++
			continue
		}
		log.Printf("realtime: pruning dead channel for user %s", userID)
		r.Leave(c)
	}
	return delivered
}

// CountChannels reports how many channels a user currently has registered.
func (r *Registry) CountChannels(userID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients[userID])
}
