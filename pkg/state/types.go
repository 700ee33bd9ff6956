package state

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("access point not found")

// AccessPoint is the stored record for one managed radio unit.
type AccessPoint struct {
	// ID uniquely identifies the access point (primary key in the store).
	ID string `yaml:"id"`

	// Channel is the current operating channel number.
	Channel int `yaml:"channel"`

	// PowerDB is the current transmit power in dB.
	PowerDB int `yaml:"power_db"`

	// LastChangeMinutes is the timestamp, in minutes since an arbitrary
	// epoch, of the most recent applied mutation. It only advances when an
	// accepted request actually alters channel or power. New records start
	// at the sentinel set by NewAccessPoint so the first real request is
	// never blocked by the change budget.
	LastChangeMinutes int `yaml:"last_change_minutes"`
}

// NewAccessPoint creates a record with the initial last-change sentinel.
// The sentinel is -budgetMinutes-1, which guarantees a request at t=0
// already satisfies the change budget.
func NewAccessPoint(id string, channel, powerDB, budgetMinutes int) *AccessPoint {
	return &AccessPoint{
		ID:                id,
		Channel:           channel,
		PowerDB:           powerDB,
		LastChangeMinutes: -budgetMinutes - 1,
	}
}

// Clone returns a copy of the record.
func (ap *AccessPoint) Clone() *AccessPoint {
	cp := *ap
	return &cp
}

// Store is the interface for access-point state persistence.
// Implementations must be thread-safe and must serialize Update calls
// for the same id while leaving different ids independent.
type Store interface {
	// Add inserts or replaces the record for ap.ID. It always succeeds
	// barring a backend failure; field ranges are not validated.
	Add(ctx context.Context, ap *AccessPoint) error

	// Get returns a copy of the current record for id.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, id string) (*AccessPoint, error)

	// Update runs fn against the record for id inside the per-id critical
	// section and persists the (possibly mutated) record when fn returns
	// nil. If fn returns an error the record is left untouched and the
	// error is returned. Returns ErrNotFound if no record exists.
	Update(ctx context.Context, id string, fn func(ap *AccessPoint) error) error

	// List returns copies of all records, in no particular order.
	List(ctx context.Context) ([]*AccessPoint, error)

	// Close releases any resources held by the store.
	Close() error
}
