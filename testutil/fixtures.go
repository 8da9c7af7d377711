package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// ComposerRecord builds a composerData JSON value with the given
// conversation entries
func ComposerRecord(t *testing.T, id, title string, conversation []map[string]interface{}) string {
	t.Helper()
	record := map[string]interface{}{
		"composerId":    id,
		"title":         title,
		"createdAt":     1000,
		"lastUpdatedAt": 2000,
		"conversation":  conversation,
	}
	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Failed to marshal composer record: %v", err)
	}
	return string(data)
}

// AichatRecord builds a legacy chat pane JSON value with one tab
// holding the given bubbles
func AichatRecord(t *testing.T, tabID, title string, bubbles []map[string]interface{}) string {
	t.Helper()
	record := map[string]interface{}{
		"tabs": []map[string]interface{}{
			{
				"tabId":     tabID,
				"chatTitle": title,
				"bubbles":   bubbles,
			},
		},
	}
	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Failed to marshal aichat record: %v", err)
	}
	return string(data)
}

// StorageTree builds a Cursor storage layout under a temp dir with the
// given workspace hashes, each holding an empty state.vscdb ready for
// records. It returns the base User directory.
func StorageTree(t *testing.T, hashes ...string) string {
	t.Helper()
	base := t.TempDir()

	for _, hash := range hashes {
		dir := filepath.Join(base, "workspaceStorage", hash)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create workspace dir: %v", err)
		}
		db := CreateStoreDB(t, filepath.Join(dir, "state.vscdb"))
		db.Close()
	}

	return base
}

// WriteStorageJSON records the active workspace hash the way Cursor
// does in workspaceStorage/storage.json
func WriteStorageJSON(t *testing.T, base, hash string) {
	t.Helper()
	meta := map[string]interface{}{
		"lastActiveWorkspace": map[string]interface{}{
			"folder": "file:///tmp/project",
			"hash":   hash,
		},
	}
	data, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("Failed to marshal storage.json: %v", err)
	}
	path := filepath.Join(base, "workspaceStorage", "storage.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write storage.json: %v", err)
	}
}
