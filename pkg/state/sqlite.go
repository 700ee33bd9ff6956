package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store using SQLite for persistence.
// It is suitable for single-instance deployments (and the CLI) where access
// point state must survive process restarts.
//
// SQLiteStore uses a write-ahead log (WAL) for better concurrent performance.
// Per-id serialization is done in-process with keyed mutexes, the same way
// MemoryStore does it; SQLite itself only sees one writer.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	logger *slog.Logger

	// mu guards the locks map.
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	closeOnce sync.Once

	// preparedStatements contains pre-compiled SQL statements for reuse
	addStmt  *sql.Stmt
	getStmt  *sql.Stmt
	listStmt *sql.Stmt
}

// SQLiteStoreConfig configures the SQLite store.
type SQLiteStoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// Logger receives store events. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewSQLiteStore creates a SQLite store with default settings.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteStoreConfig{DBPath: dbPath})
}

// NewSQLiteStoreWithConfig creates a SQLite store with custom configuration.
func NewSQLiteStoreWithConfig(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{
		db:     db,
		dbPath: cfg.DBPath,
		locks:  make(map[string]*sync.Mutex),
		logger: cfg.Logger.With("component", "state.sqlite"),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return store, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS access_points (
		id TEXT NOT NULL PRIMARY KEY,
		channel INTEGER NOT NULL,
		power_db INTEGER NOT NULL,
		last_change_minutes INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.addStmt, err = s.db.Prepare(`
		INSERT INTO access_points (id, channel, power_db, last_change_minutes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			channel = excluded.channel,
			power_db = excluded.power_db,
			last_change_minutes = excluded.last_change_minutes
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare add statement: %w", err)
	}

	s.getStmt, err = s.db.Prepare(`
		SELECT id, channel, power_db, last_change_minutes
		FROM access_points
		WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare get statement: %w", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT id, channel, power_db, last_change_minutes
		FROM access_points
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	return nil
}

// Add inserts or replaces the record for ap.ID.
func (s *SQLiteStore) Add(ctx context.Context, ap *AccessPoint) error {
	if ap == nil {
		return fmt.Errorf("access point cannot be nil")
	}
	if ap.ID == "" {
		return fmt.Errorf("access point id cannot be empty")
	}

	_, err := s.addStmt.ExecContext(ctx, ap.ID, ap.Channel, ap.PowerDB, ap.LastChangeMinutes)
	if err != nil {
		return fmt.Errorf("failed to add access point: %w", err)
	}

	s.logger.Info("state added",
		"ap_id", ap.ID,
		"channel", ap.Channel,
		"power_db", ap.PowerDB,
	)
	return nil
}

// Get returns a copy of the current record for id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*AccessPoint, error) {
	if id == "" {
		return nil, fmt.Errorf("access point id cannot be empty")
	}

	ap := &AccessPoint{}
	err := s.getStmt.QueryRowContext(ctx, id).Scan(
		&ap.ID, &ap.Channel, &ap.PowerDB, &ap.LastChangeMinutes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load access point: %w", err)
	}
	return ap, nil
}

// Update runs fn against the record for id inside the per-id critical section.
func (s *SQLiteStore) Update(ctx context.Context, id string, fn func(ap *AccessPoint) error) error {
	if id == "" {
		return fmt.Errorf("access point id cannot be empty")
	}

	keyLock := s.keyLock(id)
	keyLock.Lock()
	defer keyLock.Unlock()

	ap, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := fn(ap); err != nil {
		return err
	}

	_, err = s.addStmt.ExecContext(ctx, ap.ID, ap.Channel, ap.PowerDB, ap.LastChangeMinutes)
	if err != nil {
		return fmt.Errorf("failed to persist access point: %w", err)
	}
	return nil
}

// List returns all records.
func (s *SQLiteStore) List(ctx context.Context) ([]*AccessPoint, error) {
	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list access points: %w", err)
	}
	defer rows.Close()

	var aps []*AccessPoint
	for rows.Next() {
		ap := &AccessPoint{}
		if err := rows.Scan(&ap.ID, &ap.Channel, &ap.PowerDB, &ap.LastChangeMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan access point: %w", err)
		}
		aps = append(aps, ap)
	}
	return aps, rows.Err()
}

// Close closes the database. The store must not be used after Close.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.addStmt, s.getStmt, s.listStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}

// keyLock returns the mutex for id, creating it on first use.
func (s *SQLiteStore) keyLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}
