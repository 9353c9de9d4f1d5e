package conversation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ShumBox/shumdev/internal/logger"
	"github.com/ShumBox/shumdev/internal/order"
)

// Session is the live dialog state of one user.
type Session struct {
	UserID    int64
	Step      Step
	Draft     order.Draft
	UpdatedAt time.Time
}

// Manager owns all sessions. At most one session exists per user; starting a
// new one overwrites the old. Abandoned sessions are evicted after the TTL so
// the map stays bounded.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	ttl      time.Duration

	now func() time.Time
}

// NewManager creates a Manager. A non-positive ttl disables eviction.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Begin creates a fresh session at the first step, discarding any previous
// session of the same user.
func (m *Manager) Begin(userID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := &Session{UserID: userID, Step: StepShopType, UpdatedAt: m.now()}
	m.sessions[userID] = sess
	return *sess
}

// Get returns a snapshot of the user's session. Expired sessions are removed
// on access and reported as absent.
func (m *Manager) Get(userID int64) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return Session{}, false
	}
	if m.expired(sess) {
		delete(m.sessions, userID)
		return Session{}, false
	}
	return *sess, true
}

// Set records the step and draft of an in-progress session and refreshes its
// eviction deadline.
func (m *Manager) Set(userID int64, step Step, d order.Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{UserID: userID}
		m.sessions[userID] = sess
	}
	sess.Step = step
	sess.Draft = d
	sess.UpdatedAt = m.now()
}

// End destroys the user's session, if any.
func (m *Manager) End(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes all expired sessions and returns how many were evicted.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, sess := range m.sessions {
		if m.expired(sess) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps expired sessions on the given interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := m.Sweep(); evicted > 0 {
				logger.BOT.Debug("sessions evicted",
					slog.String("event", "session.sweep"),
					slog.Int("count", evicted),
					slog.Int("remaining", m.Len()),
				)
			}
		}
	}
}

func (m *Manager) expired(sess *Session) bool {
	return m.ttl > 0 && m.now().Sub(sess.UpdatedAt) > m.ttl
}
