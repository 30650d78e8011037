// Package state persists resume positions in a sqlite database.
package state

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/mediakit/internal/db"
)

const (
	appName      = "mediakit"
	dbFileName   = "state.db"
	saveDebounce = 500 * time.Millisecond
)

// Position is a saved playback position.
type Position struct {
	URL       string
	Time      time.Duration
	Duration  time.Duration // 0 when unknown
	UpdatedAt time.Time
}

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("state store closed")

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]*Position // nil value: forget the url
	now       func() time.Time

	// flushMu is held from taking the pending writes until they are
	// committed, and by Close around closing the database.
	flushMu sync.Mutex
	closed  bool
}

// Open opens the database at $XDG_DATA_HOME/mediakit/state.db.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at dbPath, creating it when missing.
func OpenPath(dbPath string) (*Manager, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Manager{
		db:      conn,
		pending: make(map[string]*Position),
		now:     time.Now,
	}, nil
}

// Close flushes pending writes and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveMu.Unlock()

	m.flushMu.Lock()
	defer m.flushMu.Unlock()
	if m.closed {
		return nil
	}
	flushErr := m.flushLocked()
	m.closed = true
	return errors.Join(flushErr, m.db.Close())
}

// Position returns the saved position for url. Pending writes are visible.
func (m *Manager) Position(url string) (Position, bool, error) {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()
	if m.closed {
		return Position{}, false, ErrClosed
	}

	m.saveMu.Lock()
	p, pending := m.pending[url]
	m.saveMu.Unlock()
	if pending {
		if p == nil {
			return Position{}, false, nil
		}
		return *p, true, nil
	}
	return getPosition(m.db, url)
}

// SavePosition records the position for url. Writes are batched.
func (m *Manager) SavePosition(url string, at, duration time.Duration) {
	m.schedule(url, &Position{URL: url, Time: at, Duration: duration, UpdatedAt: m.now()})
}

// Forget removes the saved position for url.
func (m *Manager) Forget(url string) {
	m.schedule(url, nil)
}

func (m *Manager) schedule(url string, p *Position) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[url] = p

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		_ = m.Flush()
	})
}

// Flush writes pending changes in a single transaction.
func (m *Manager) Flush() error {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return m.flushLocked()
}

func (m *Manager) flushLocked() error {
	m.saveMu.Lock()
	pending := m.pending
	m.pending = make(map[string]*Position)
	m.saveMu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	return db.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		for url, p := range pending {
			var err error
			if p == nil {
				err = deletePosition(tx, url)
			} else {
				err = savePosition(tx, *p)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
