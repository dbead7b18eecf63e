package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	notificationsapp "github.com/Apurer/go-gin-storefront/internal/domains/notifications/application"
	notificationports "github.com/Apurer/go-gin-storefront/internal/domains/notifications/ports"
	prefapp "github.com/Apurer/go-gin-storefront/internal/domains/preferences/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/sessions/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
	storageports "github.com/Apurer/go-gin-storefront/internal/domains/storage/ports"
)

const (
	DefaultTTL           = 30 * 24 * time.Hour
	DefaultIdleTimeout   = 30 * time.Minute
	DefaultTouchInterval = time.Minute
)

// Workspace is the state one browser session works with.
type Workspace struct {
	ID            string
	Storage       storageports.LocalStorage
	Cart          cartports.Store
	Notifications notificationports.Queue
	Preferences   *prefapp.Preferences
}

// Close releases in-process resources. Persisted state is untouched.
func (w *Workspace) Close() {
	if w != nil && w.Notifications != nil {
		w.Notifications.ClearAll()
	}
}

// WorkspaceBuilder assembles the stores of a session. It runs once per session per process.
type WorkspaceBuilder func(ctx context.Context, sessionID string, storage storageports.LocalStorage) *Workspace

// DefaultWorkspace builds undecorated stores.
func DefaultWorkspace(ctx context.Context, sessionID string, storage storageports.LocalStorage) *Workspace {
	return &Workspace{
		ID:            sessionID,
		Storage:       storage,
		Cart:          cartapp.NewStore(ctx, storage),
		Notifications: notificationsapp.NewQueue(),
		Preferences:   prefapp.New(storage),
	}
}

type entry struct {
	workspace *Workspace
	lastSeen  time.Time
	touchedAt time.Time
}

// Manager resolves browser sessions to workspaces, caching them in memory while in use.
type Manager struct {
	sessions      ports.SessionStore
	storage       storageports.Provider
	build         WorkspaceBuilder
	ttl           time.Duration
	idle          time.Duration
	touchInterval time.Duration
	now           func() time.Time
	logger        *slog.Logger
	onActive      func(int)

	group      singleflight.Group
	mu         sync.Mutex
	workspaces map[string]*entry
}

// Option configures the Manager.
type Option func(*Manager)

func WithWorkspaceBuilder(build WorkspaceBuilder) Option {
	return func(m *Manager) {
		if build != nil {
			m.build = build
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

func WithIdleTimeout(idle time.Duration) Option {
	return func(m *Manager) {
		if idle > 0 {
			m.idle = idle
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithActiveObserver reports the number of cached workspaces after every change.
func WithActiveObserver(fn func(int)) Option {
	return func(m *Manager) {
		m.onActive = fn
	}
}

// NewManager wires the session registry and storage provider.
func NewManager(sessions ports.SessionStore, storage storageports.Provider, opts ...Option) *Manager {
	m := &Manager{
		sessions:      sessions,
		storage:       storage,
		build:         DefaultWorkspace,
		ttl:           DefaultTTL,
		idle:          DefaultIdleTimeout,
		touchInterval: DefaultTouchInterval,
		now:           time.Now,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		workspaces:    map[string]*entry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// TTL is the sliding lifetime of a session.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Resolve returns the workspace for rawID. Unknown, malformed, or expired ids get a fresh session;
// created reports when that happened so callers can reissue the cookie.
func (m *Manager) Resolve(ctx context.Context, rawID string) (ws *Workspace, created bool, err error) {
	id, parseErr := domain.ParseID(rawID)
	if parseErr == nil {
		ws, err := m.resume(ctx, id)
		if err == nil {
			return ws, false, nil
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return nil, false, err
		}
	}
	ws, err = m.create(ctx)
	if err != nil {
		return nil, false, err
	}
	return ws, true, nil
}

func (m *Manager) resume(ctx context.Context, id string) (*Workspace, error) {
	now := m.now()
	if ws, ok, err := m.cached(ctx, id, now); ok || err != nil {
		return ws, err
	}
	value, err, _ := m.group.Do(id, func() (any, error) {
		if ws, ok, err := m.cached(ctx, id, now); ok || err != nil {
			return ws, err
		}
		session, err := m.sessions.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if session.Expired(now) {
			return nil, ports.ErrNotFound
		}
		if err := m.sessions.Touch(ctx, id, now, now.Add(m.ttl)); err != nil {
			return nil, err
		}
		ws := m.build(ctx, id, m.storage.Namespace(id))
		m.store(id, ws, now)
		return ws, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*Workspace), nil
}

func (m *Manager) cached(ctx context.Context, id string, now time.Time) (*Workspace, bool, error) {
	m.mu.Lock()
	e, ok := m.workspaces[id]
	if !ok {
		m.mu.Unlock()
		return nil, false, nil
	}
	e.lastSeen = now
	needsTouch := now.Sub(e.touchedAt) >= m.touchInterval
	if needsTouch {
		e.touchedAt = now
	}
	ws := e.workspace
	m.mu.Unlock()

	if needsTouch {
		err := m.sessions.Touch(ctx, id, now, now.Add(m.ttl))
		switch {
		case errors.Is(err, ports.ErrNotFound):
			// Purged elsewhere: the cached workspace belongs to a dead session.
			m.evict(id)
			return nil, false, err
		case err != nil:
			m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to extend session", slog.String("session.id", id), slog.String("error", err.Error()))
		}
	}
	return ws, true, nil
}

func (m *Manager) create(ctx context.Context) (*Workspace, error) {
	now := m.now()
	session := domain.NewSession(now, m.ttl)
	if err := m.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	ws := m.build(ctx, session.ID, m.storage.Namespace(session.ID))
	m.store(session.ID, ws, now)
	m.logger.LogAttrs(ctx, slog.LevelDebug, "browser session created", slog.String("session.id", session.ID))
	return ws, nil
}

func (m *Manager) store(id string, ws *Workspace, now time.Time) {
	m.mu.Lock()
	m.workspaces[id] = &entry{workspace: ws, lastSeen: now, touchedAt: now}
	count := len(m.workspaces)
	m.mu.Unlock()
	m.reportActive(count)
}

func (m *Manager) evict(id string) {
	m.mu.Lock()
	e, ok := m.workspaces[id]
	delete(m.workspaces, id)
	count := len(m.workspaces)
	m.mu.Unlock()
	if ok {
		e.workspace.Close()
		m.reportActive(count)
	}
}

// Sweep drops workspaces idle for longer than the idle timeout. Their state rehydrates from
// storage on the next request; pending notifications are discarded.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.idle)
	m.mu.Lock()
	var stale []*Workspace
	for id, e := range m.workspaces {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.workspace)
			delete(m.workspaces, id)
		}
	}
	count := len(m.workspaces)
	m.mu.Unlock()

	for _, ws := range stale {
		ws.Close()
	}
	if len(stale) > 0 {
		m.reportActive(count)
	}
	return len(stale)
}

// Purge deletes expired sessions with their storage and evicts their workspaces.
func (m *Manager) Purge(ctx context.Context) (int, error) {
	ids, err := m.sessions.PurgeExpired(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	var dropErr error
	for _, id := range ids {
		m.evict(id)
		dropErr = errors.Join(dropErr, m.storage.Drop(ctx, id))
	}
	if len(ids) > 0 {
		m.logger.LogAttrs(ctx, slog.LevelInfo, "expired sessions purged", slog.Int("count", len(ids)))
	}
	return len(ids), dropErr
}

// ActiveCount reports the number of cached workspaces.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}

func (m *Manager) reportActive(count int) {
	if m.onActive != nil {
		m.onActive(count)
	}
}
