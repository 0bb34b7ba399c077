package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"neuroscreen-backend/internal/model"
)

// SessionRepository is the in-memory store for active screening sessions.
// Persistence beyond the live process is deliberately out of scope; the
// interface keeps the storage swappable anyway.
type SessionRepository interface {
	Create() *model.Session
	Get(id string) (*model.Session, error)
	Delete(id string)
	PurgeExpired(timeout time.Duration) int
	Count() int
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{sessions: make(map[string]*model.Session)}
}

func (r *sessionRepository) Create() *model.Session {
	sess := model.NewSession(uuid.New().String())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID] = sess
	return sess
}

func (r *sessionRepository) Get(id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, model.ErrUnknownSession
	}
	return sess, nil
}

func (r *sessionRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// PurgeExpired drops sessions idle for longer than timeout and returns how
// many were removed.
func (r *sessionRepository) PurgeExpired(timeout time.Duration) int {
	cutoff := time.Now().Add(-timeout)
	r.mu.Lock()
	defer r.mu.Unlock()
	purged := 0
	for id, sess := range r.sessions {
		if sess.LastActive.Before(cutoff) {
			delete(r.sessions, id)
			purged++
		}
	}
	return purged
}

func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
