package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

const (
	// composerKeyPrefix marks composer-era chat records in cursorDiskKV.
	composerKeyPrefix = "composerData:"

	// aichatKey is the legacy chat pane state stored in ItemTable.
	aichatKey = "workbench.panel.aichat.view.aichat.chatdata"

	kvTableName   = "cursorDiskKV"
	itemTableName = "ItemTable"
)

// WorkspaceRecord is one decoded chat record pulled out of a store,
// tagged with the store path it came from.
type WorkspaceRecord struct {
	Key   string
	Value Value
	Store string
}

// StoreReader discovers Cursor state databases and reads chat records
// out of them. It never writes to the stores.
type StoreReader struct {
	paths StoragePaths
}

// NewStoreReader creates a StoreReader over the given storage layout
func NewStoreReader(paths StoragePaths) *StoreReader {
	return &StoreReader{paths: paths}
}

// DiscoverStores finds the state.vscdb files to read. When currentOnly
// is set only the active workspace store is considered, otherwise every
// workspace store in sorted order. The global store is always included
// when present, newer Cursor versions keep composer data there.
func (r *StoreReader) DiscoverStores(currentOnly bool) ([]string, error) {
	workspaces, err := r.workspaceStores()
	if err != nil {
		return nil, err
	}

	var stores []string
	if currentOnly {
		if store, ok := r.currentWorkspaceStore(workspaces); ok {
			stores = append(stores, store)
		}
	} else {
		sort.Strings(workspaces)
		stores = workspaces
	}

	global := r.paths.GlobalStoreDB()
	if _, err := os.Stat(global); err == nil {
		stores = append(stores, global)
	}

	if len(stores) == 0 {
		return nil, &StoreNotFoundError{SearchPath: r.paths.Base}
	}

	return stores, nil
}

// workspaceStores lists every workspace state.vscdb under
// workspaceStorage. A missing directory is an empty list, not an
// error: global-only installs have no workspaceStorage at all.
func (r *StoreReader) workspaceStores() ([]string, error) {
	entries, err := os.ReadDir(r.paths.WorkspaceStorage)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var stores []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == "images" {
			continue
		}
		store := filepath.Join(r.paths.WorkspaceStorage, entry.Name(), "state.vscdb")
		if _, err := os.Stat(store); err != nil {
			continue
		}
		stores = append(stores, store)
	}

	return stores, nil
}

// currentWorkspaceStore picks the active workspace store. The hash
// recorded in storage.json wins, falling back to the most recently
// modified store when the hash is absent or stale.
func (r *StoreReader) currentWorkspaceStore(stores []string) (string, bool) {
	if len(stores) == 0 {
		return "", false
	}

	if hash := r.currentWorkspaceHash(); hash != "" {
		want := filepath.Join(r.paths.WorkspaceStorage, hash, "state.vscdb")
		for _, store := range stores {
			if store == want {
				return store, true
			}
		}
		LogWarn("active workspace %s has no store, falling back to newest", hash)
	}

	newest := stores[0]
	var newestTime int64
	for _, store := range stores {
		info, err := os.Stat(store)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixMilli(); mod > newestTime {
			newestTime = mod
			newest = store
		}
	}
	return newest, true
}

// currentWorkspaceHash reads the lastActiveWorkspace hash from
// storage.json, returning "" when it cannot be determined
func (r *StoreReader) currentWorkspaceHash() string {
	data, err := os.ReadFile(r.paths.StorageJSON())
	if err != nil {
		LogDebug("no storage.json: %v", err)
		return ""
	}

	var meta struct {
		LastActiveWorkspace struct {
			Folder string `json:"folder"`
			Hash   string `json:"hash"`
		} `json:"lastActiveWorkspace"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		LogWarn("failed to parse storage.json: %v", err)
		return ""
	}

	return meta.LastActiveWorkspace.Hash
}

// ReadRecords reads and decodes every chat record from the given
// stores. Stores that fail to open and records that fail to decode are
// logged and skipped rather than aborting the export.
func (r *StoreReader) ReadRecords(stores []string) []WorkspaceRecord {
	var records []WorkspaceRecord
	for _, store := range stores {
		recs, err := r.readStore(store)
		if err != nil {
			LogWarn("skipping store %s: %v", store, err)
			continue
		}
		records = append(records, recs...)
	}
	return records
}

func (r *StoreReader) readStore(store string) ([]WorkspaceRecord, error) {
	db, err := OpenStoreDB(store)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var raw []rawRecord

	hasKV, err := tableExists(db, kvTableName)
	if err != nil {
		return nil, err
	}
	if hasKV {
		recs, err := queryKV(db, kvTableName, composerKeyPrefix+"%")
		if err != nil {
			return nil, err
		}
		raw = append(raw, recs...)
	}

	hasItems, err := tableExists(db, itemTableName)
	if err != nil {
		return nil, err
	}
	if hasItems {
		rec, ok, err := queryItem(db, itemTableName, aichatKey)
		if err != nil {
			return nil, err
		}
		if ok {
			raw = append(raw, rec)
		}
	}

	LogDebug("store %s: %d raw records", store, len(raw))

	records := make([]WorkspaceRecord, 0, len(raw))
	for _, rec := range raw {
		value, err := DecodeValue([]byte(rec.Value))
		if err != nil {
			LogWarn("%v", &DecodeError{Store: store, Key: rec.Key, Err: err})
			continue
		}
		records = append(records, WorkspaceRecord{Key: rec.Key, Value: value, Store: store})
	}

	return records, nil
}
