// Package session keeps per-browser cue card state in server-side sessions.
package session

import (
	"context"
	"encoding/gob"
	"net/http"
	"sync"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/joestump/cuecard/internal/cuecard"
)

const (
	idKey       = "sid"
	snapshotKey = "cuecard"
	apiKeyKey   = "llm_api_key"
)

func init() {
	gob.Register(Snapshot{})
}

// NewManager creates an SCS session manager backed by the application DB.
// The driver parameter selects the appropriate store: "mysql", "postgres", or
// "sqlite3" (default).
func NewManager(db *sqlx.DB, driver string, lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	switch driver {
	case "mysql":
		sm.Store = mysqlstore.New(db.DB)
	case "postgres":
		sm.Store = postgresstore.New(db.DB)
	default: // sqlite3
		sm.Store = sqlite3store.New(db.DB)
	}
	sm.Lifetime = lifetime
	sm.Cookie.Name = "cuecard_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	return sm
}

// Snapshot is everything the page needs to redraw a session's last cycle.
// It is replaced as a whole; never mutate a loaded snapshot in place and
// expect it to persist.
type Snapshot struct {
	State     cuecard.State
	Request   cuecard.Request
	Card      *cuecard.Card
	Error     string
	UpdatedAt time.Time
}

// Store wraps the session manager with typed accessors and a per-session
// in-flight guard.
type Store struct {
	sm *scs.SessionManager

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewStore creates a Store on top of sm.
func NewStore(sm *scs.SessionManager) *Store {
	return &Store{sm: sm, inflight: make(map[string]struct{})}
}

// Manager returns the underlying session manager for use as middleware.
func (s *Store) Manager() *scs.SessionManager { return s.sm }

// ID returns a stable identifier for the current session, creating one on first use.
func (s *Store) ID(ctx context.Context) string {
	id := s.sm.GetString(ctx, idKey)
	if id == "" {
		id = uuid.New().String()
		s.sm.Put(ctx, idKey, id)
	}
	return id
}

// Load returns the session's last snapshot, or an idle one.
func (s *Store) Load(ctx context.Context) Snapshot {
	snap, ok := s.sm.Get(ctx, snapshotKey).(Snapshot)
	if !ok {
		return Snapshot{State: cuecard.StateIdle}
	}
	return snap
}

// Save replaces the session's snapshot.
func (s *Store) Save(ctx context.Context, snap Snapshot) {
	snap.UpdatedAt = time.Now().UTC()
	s.sm.Put(ctx, snapshotKey, snap)
}

// APIKey returns a model API key the user entered for this session.
func (s *Store) APIKey(ctx context.Context) string {
	return s.sm.GetString(ctx, apiKeyKey)
}

// SetAPIKey stores key for the session and rotates the session token.
func (s *Store) SetAPIKey(ctx context.Context, key string) error {
	if err := s.sm.RenewToken(ctx); err != nil {
		return err
	}
	s.sm.Put(ctx, apiKeyKey, key)
	return nil
}

// ClearAPIKey removes the session's API key.
func (s *Store) ClearAPIKey(ctx context.Context) {
	s.sm.Remove(ctx, apiKeyKey)
}

// Acquire marks the session as having a submission in flight. It returns
// cuecard.ErrBusy if one is already running; otherwise the caller must call
// release when done.
func (s *Store) Acquire(ctx context.Context) (release func(), err error) {
	id := s.ID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return nil, cuecard.ErrBusy
	}
	s.inflight[id] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}, nil
}
