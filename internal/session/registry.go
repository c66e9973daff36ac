// Package session keeps one cart store per shopper session. Sessions live in
// memory only and are dropped after a period of inactivity.
package session

import (
	"context"
	"sync"
	"time"
	"treadmill-storefront/internal/cart"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type entry struct {
	store    *cart.Store
	lastSeen time.Time
}

type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	idleTimeout time.Duration
	now         func() time.Time
	newStore    func() *cart.Store
	logger      *zap.Logger
}

func NewRegistry(idleTimeout time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		sessions:    make(map[string]*entry),
		idleTimeout: idleTimeout,
		now:         time.Now,
		newStore:    func() *cart.Store { return cart.NewStore() },
		logger:      logger,
	}
}

// Open returns the store for id, creating a fresh session with a new id when
// id is blank or unknown. The returned id is the one the caller should keep.
func (r *Registry) Open(id string) (string, *cart.Store) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.sessions[id]; ok && id != "" {
		e.lastSeen = now
		return id, e.store
	}

	id = uuid.NewString()
	e := &entry{store: r.newStore(), lastSeen: now}
	r.sessions[id] = e
	r.logger.Debug("session opened", zap.String("session_id", id))
	return id, e.store
}

// Get returns the store of a live session and marks it as active.
func (r *Registry) Get(id string) (*cart.Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.store, true
}

func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the timeout and reports how many
// were removed. A non-positive timeout disables expiry.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTimeout <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.idleTimeout {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is cancelled. A non-positive interval
// disables the sweeper.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		r.logger.Warn("session sweeper disabled", zap.Duration("interval", interval))
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				r.logger.Info("expired idle sessions", zap.Int("count", n))
			}
		}
	}
}
