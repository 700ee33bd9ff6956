package state

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func newTestSQLiteStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStoreWithConfig(SQLiteStoreConfig{
		DBPath: path,
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	return store
}

func TestSQLiteStore_RequiresPath(t *testing.T) {
	if _, err := NewSQLiteStoreWithConfig(SQLiteStoreConfig{}); err == nil {
		t.Error("expected error for empty db path")
	}
}

func TestSQLiteStore_AddGetUpdate(t *testing.T) {
	store := newTestSQLiteStore(t, filepath.Join(t.TempDir(), "warden.db"))
	defer store.Close()
	ctx := context.Background()

	if err := store.Add(ctx, NewAccessPoint("AP-001", 6, 20, 240)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := store.Get(ctx, "AP-001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Channel != 6 || got.PowerDB != 20 || got.LastChangeMinutes != -241 {
		t.Errorf("unexpected record: %+v", got)
	}

	err = store.Update(ctx, "AP-001", func(ap *AccessPoint) error {
		ap.Channel = 11
		ap.LastChangeMinutes = 250
		return nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ = store.Get(ctx, "AP-001")
	if got.Channel != 11 || got.LastChangeMinutes != 250 {
		t.Errorf("expected (11, 250), got (%d, %d)", got.Channel, got.LastChangeMinutes)
	}
}

func TestSQLiteStore_NotFound(t *testing.T) {
	store := newTestSQLiteStore(t, filepath.Join(t.TempDir(), "warden.db"))
	defer store.Close()
	ctx := context.Background()

	if _, err := store.Get(ctx, "AP-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from Get, got %v", err)
	}

	err := store.Update(ctx, "AP-missing", func(ap *AccessPoint) error {
		t.Error("callback must not run for a missing record")
		return nil
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from Update, got %v", err)
	}
}

func TestSQLiteStore_UpdateErrorLeavesRecord(t *testing.T) {
	store := newTestSQLiteStore(t, filepath.Join(t.TempDir(), "warden.db"))
	defer store.Close()
	ctx := context.Background()

	if err := store.Add(ctx, NewAccessPoint("AP-001", 6, 20, 240)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	wantErr := errors.New("rejected")
	if err := store.Update(ctx, "AP-001", func(ap *AccessPoint) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected callback error, got %v", err)
	}

	got, _ := store.Get(ctx, "AP-001")
	if got.Channel != 6 {
		t.Errorf("failed update leaked into the store: channel %d", got.Channel)
	}
}

// TestSQLiteStore_SurvivesReopen: records persist across close and reopen.
func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warden.db")
	ctx := context.Background()

	store := newTestSQLiteStore(t, path)
	if err := store.Add(ctx, NewAccessPoint("AP-001", 6, 20, 240)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := newTestSQLiteStore(t, path)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "AP-001")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.Channel != 6 || got.PowerDB != 20 {
		t.Errorf("expected persisted record (6, 20), got (%d, %d)", got.Channel, got.PowerDB)
	}
}

func TestSQLiteStore_List(t *testing.T) {
	store := newTestSQLiteStore(t, filepath.Join(t.TempDir(), "warden.db"))
	defer store.Close()
	ctx := context.Background()

	for _, id := range []string{"AP-001", "AP-002"} {
		if err := store.Add(ctx, NewAccessPoint(id, 6, 20, 240)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	aps, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(aps) != 2 {
		t.Errorf("expected 2 records, got %d", len(aps))
	}
}

func TestSQLiteStore_ConcurrentUpdates(t *testing.T) {
	store := newTestSQLiteStore(t, filepath.Join(t.TempDir(), "warden.db"))
	defer store.Close()
	ctx := context.Background()

	if err := store.Add(ctx, NewAccessPoint("AP-001", 0, 20, 240)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, "AP-001", func(ap *AccessPoint) error {
				ap.Channel++
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := store.Get(ctx, "AP-001")
	if got.Channel != n {
		t.Errorf("expected %d serialized increments, got %d", n, got.Channel)
	}
}

func TestSQLiteStore_CloseTwice(t *testing.T) {
	store := newTestSQLiteStore(t, filepath.Join(t.TempDir(), "warden.db"))

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
