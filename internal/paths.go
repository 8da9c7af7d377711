package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// StoragePaths holds the resolved locations of Cursor chat storage.
type StoragePaths struct {
	Base             string // Cursor User directory
	WorkspaceStorage string // workspaceStorage directory
	GlobalStorage    string // globalStorage directory
}

// platform holds OS-detection functions that can be overridden in tests.
var platform = struct {
	goos    func() string
	homeDir func() (string, error)
}{
	goos:    func() string { return runtime.GOOS },
	homeDir: os.UserHomeDir,
}

// DefaultStorageDir returns the platform default Cursor User directory.
//
// macOS: ~/Library/Application Support/Cursor/User
// Linux: ~/.config/Cursor/User
func DefaultStorageDir() (string, error) {
	home, err := platform.homeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch platform.goos() {
	case "darwin":
		return filepath.Join(home, "Library/Application Support/Cursor/User"), nil
	case "linux":
		return filepath.Join(home, ".config/Cursor/User"), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s (only macOS and Linux are supported)", platform.goos())
	}
}

// ResolveStoragePaths resolves storage locations, preferring the override
// when given.
func ResolveStoragePaths(override string) (StoragePaths, error) {
	base := override
	if base == "" {
		var err error
		base, err = DefaultStorageDir()
		if err != nil {
			return StoragePaths{}, err
		}
	}

	return StoragePaths{
		Base:             base,
		WorkspaceStorage: filepath.Join(base, "workspaceStorage"),
		GlobalStorage:    filepath.Join(base, "globalStorage"),
	}, nil
}

// GlobalStoreDB returns the path to the globalStorage state.vscdb file.
func (sp StoragePaths) GlobalStoreDB() string {
	return filepath.Join(sp.GlobalStorage, "state.vscdb")
}

// StorageJSON returns the path to the workspaceStorage state file that
// tracks the last active workspace.
func (sp StoragePaths) StorageJSON() string {
	return filepath.Join(sp.WorkspaceStorage, "storage.json")
}

// DefaultExportDir returns the default output directory for exports.
func DefaultExportDir() (string, error) {
	home, err := platform.homeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Downloads", "cursor-chat-history", "export"), nil
}
