package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/cursor-chat-export/testutil"
)

func storagePathsFor(base string) StoragePaths {
	return StoragePaths{
		Base:             base,
		WorkspaceStorage: filepath.Join(base, "workspaceStorage"),
		GlobalStorage:    filepath.Join(base, "globalStorage"),
	}
}

func TestDiscoverStoresAll(t *testing.T) {
	base := testutil.StorageTree(t, "hash1", "hash2")
	reader := NewStoreReader(storagePathsFor(base))

	stores, err := reader.DiscoverStores(false)
	if err != nil {
		t.Fatalf("DiscoverStores() error = %v", err)
	}
	if len(stores) != 2 {
		t.Fatalf("got %d stores, want 2", len(stores))
	}
	if !strings.Contains(stores[0], "hash1") || !strings.Contains(stores[1], "hash2") {
		t.Errorf("stores not in sorted order: %v", stores)
	}
}

func TestDiscoverStoresIncludesGlobal(t *testing.T) {
	base := testutil.StorageTree(t, "hash1")
	globalDir := filepath.Join(base, "globalStorage")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	testutil.CreateStoreDB(t, filepath.Join(globalDir, "state.vscdb"))

	reader := NewStoreReader(storagePathsFor(base))
	stores, err := reader.DiscoverStores(false)
	if err != nil {
		t.Fatalf("DiscoverStores() error = %v", err)
	}
	if len(stores) != 2 {
		t.Fatalf("got %d stores, want workspace plus global", len(stores))
	}
	if !strings.Contains(stores[len(stores)-1], "globalStorage") {
		t.Errorf("global store not last: %v", stores)
	}
}

func TestDiscoverStoresCurrentIncludesGlobal(t *testing.T) {
	base := testutil.StorageTree(t, "hash1")
	globalDir := filepath.Join(base, "globalStorage")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	testutil.CreateStoreDB(t, filepath.Join(globalDir, "state.vscdb"))

	reader := NewStoreReader(storagePathsFor(base))
	stores, err := reader.DiscoverStores(true)
	if err != nil {
		t.Fatalf("DiscoverStores() error = %v", err)
	}
	if len(stores) != 2 {
		t.Fatalf("got %d stores, want workspace plus global", len(stores))
	}
	if !strings.Contains(stores[0], "hash1") {
		t.Errorf("workspace store not first: %v", stores)
	}
	if !strings.Contains(stores[1], "globalStorage") {
		t.Errorf("global store missing from current-mode discovery: %v", stores)
	}
}

func TestDiscoverStoresGlobalOnly(t *testing.T) {
	// No workspaceStorage at all, composer data lives in the global store
	base := t.TempDir()
	globalDir := filepath.Join(base, "globalStorage")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	testutil.CreateStoreDB(t, filepath.Join(globalDir, "state.vscdb"))

	reader := NewStoreReader(storagePathsFor(base))

	for _, currentOnly := range []bool{false, true} {
		stores, err := reader.DiscoverStores(currentOnly)
		if err != nil {
			t.Fatalf("DiscoverStores(%v) error = %v", currentOnly, err)
		}
		if len(stores) != 1 || !strings.Contains(stores[0], "globalStorage") {
			t.Errorf("DiscoverStores(%v) = %v, want the global store", currentOnly, stores)
		}
	}
}

func TestDiscoverStoresCurrentUsesStorageJSON(t *testing.T) {
	base := testutil.StorageTree(t, "hash1", "hash2")
	testutil.WriteStorageJSON(t, base, "hash1")

	reader := NewStoreReader(storagePathsFor(base))
	stores, err := reader.DiscoverStores(true)
	if err != nil {
		t.Fatalf("DiscoverStores() error = %v", err)
	}
	if len(stores) != 1 {
		t.Fatalf("got %d stores, want 1", len(stores))
	}
	if !strings.Contains(stores[0], "hash1") {
		t.Errorf("picked %q, want the storage.json workspace", stores[0])
	}
}

func TestDiscoverStoresCurrentFallsBackToNewest(t *testing.T) {
	base := testutil.StorageTree(t, "hash1", "hash2")

	older := filepath.Join(base, "workspaceStorage", "hash1", "state.vscdb")
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	reader := NewStoreReader(storagePathsFor(base))
	stores, err := reader.DiscoverStores(true)
	if err != nil {
		t.Fatalf("DiscoverStores() error = %v", err)
	}
	if !strings.Contains(stores[0], "hash2") {
		t.Errorf("picked %q, want the most recently modified store", stores[0])
	}
}

func TestDiscoverStoresMissingStorage(t *testing.T) {
	reader := NewStoreReader(storagePathsFor(filepath.Join(t.TempDir(), "nope")))

	_, err := reader.DiscoverStores(false)
	var notFound *StoreNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want StoreNotFoundError", err)
	}
}

func TestDiscoverStoresSkipsImagesDir(t *testing.T) {
	base := testutil.StorageTree(t, "hash1")
	imagesDir := filepath.Join(base, "workspaceStorage", "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	testutil.CreateStoreDB(t, filepath.Join(imagesDir, "state.vscdb"))

	reader := NewStoreReader(storagePathsFor(base))
	stores, err := reader.DiscoverStores(false)
	if err != nil {
		t.Fatalf("DiscoverStores() error = %v", err)
	}
	if len(stores) != 1 {
		t.Errorf("got %d stores, want images dir skipped", len(stores))
	}
}

func TestReadRecords(t *testing.T) {
	base := testutil.StorageTree(t, "hash1")
	store := filepath.Join(base, "workspaceStorage", "hash1", "state.vscdb")

	db := testutil.CreateStoreDB(t, store)
	testutil.InsertRecord(t, db, "cursorDiskKV", "composerData:a",
		testutil.ComposerRecord(t, "a", "First", []map[string]interface{}{
			{"role": 1, "content": "hi"},
		}))
	testutil.InsertRecord(t, db, "ItemTable", aichatKey,
		testutil.AichatRecord(t, "tab1", "Legacy", []map[string]interface{}{
			{"type": "user", "text": "hello"},
		}))
	db.Close()

	reader := NewStoreReader(storagePathsFor(base))
	records := reader.ReadRecords([]string{store})

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.Store != store {
			t.Errorf("record %s tagged with store %q", rec.Key, rec.Store)
		}
	}
}

func TestReadRecordsSkipsUndecodable(t *testing.T) {
	base := testutil.StorageTree(t, "hash1")
	store := filepath.Join(base, "workspaceStorage", "hash1", "state.vscdb")

	db := testutil.CreateStoreDB(t, store)
	testutil.InsertRecord(t, db, "cursorDiskKV", "composerData:bad", `{not json`)
	testutil.InsertRecord(t, db, "cursorDiskKV", "composerData:good",
		testutil.ComposerRecord(t, "good", "Ok", []map[string]interface{}{
			{"role": 1, "content": "hi"},
		}))
	db.Close()

	reader := NewStoreReader(storagePathsFor(base))
	records := reader.ReadRecords([]string{store})

	if len(records) != 1 {
		t.Fatalf("got %d records, want the undecodable one skipped", len(records))
	}
	if records[0].Key != "composerData:good" {
		t.Errorf("kept %q, want composerData:good", records[0].Key)
	}
}

func TestReadRecordsSkipsUnopenableStore(t *testing.T) {
	base := testutil.StorageTree(t, "hash1")
	store := filepath.Join(base, "workspaceStorage", "hash1", "state.vscdb")

	reader := NewStoreReader(storagePathsFor(base))
	records := reader.ReadRecords([]string{store, filepath.Join(base, "missing.vscdb")})

	if len(records) != 0 {
		t.Errorf("got %d records from empty stores, want 0", len(records))
	}
}
