package sse

import (
	"context"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// session is one connected event-stream client: an outbound message
// channel plus a context that ends when the stream closes. Sessions
// share nothing with each other; the dispatcher beneath them is
// stateless.
type session struct {
	id     string
	ch     chan []byte
	ctx    context.Context
	cancel context.CancelFunc
}

func newSession(parent context.Context) *session {
	id, _ := gonanoid.New()
	ctx, cancel := context.WithCancel(parent)
	return &session{
		id:     id,
		ch:     make(chan []byte, 16),
		ctx:    ctx,
		cancel: cancel,
	}
}

// push queues a message for the stream writer. It returns false when
// the session is already gone. The closed-session check comes first so
// a cancelled session never wins the buffered-channel race.
func (s *session) push(msg []byte) bool {
	select {
	case <-s.ctx.Done():
		return false
	default:
	}

	select {
	case s.ch <- msg:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// sessionRegistry tracks live sessions by ID.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

func (r *sessionRegistry) add(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.cancel()
		delete(r.sessions, id)
	}
}

func (r *sessionRegistry) get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *sessionRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.cancel()
		delete(r.sessions, id)
	}
}

func (r *sessionRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
