package internal

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func stubPlatform(t *testing.T, goos, home string, homeErr error) {
	t.Helper()
	saved := platform
	platform.goos = func() string { return goos }
	platform.homeDir = func() (string, error) { return home, homeErr }
	t.Cleanup(func() { platform = saved })
}

func TestDefaultStorageDir(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		want    string
		wantErr bool
	}{
		{
			name: "darwin",
			goos: "darwin",
			want: "/home/u/Library/Application Support/Cursor/User",
		},
		{
			name: "linux",
			goos: "linux",
			want: "/home/u/.config/Cursor/User",
		},
		{
			name:    "windows unsupported",
			goos:    "windows",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPlatform(t, tt.goos, "/home/u", nil)

			got, err := DefaultStorageDir()
			if (err != nil) != tt.wantErr {
				t.Fatalf("DefaultStorageDir() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != filepath.FromSlash(tt.want) {
				t.Errorf("DefaultStorageDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultStorageDirNoHome(t *testing.T) {
	stubPlatform(t, "linux", "", errors.New("no home"))

	if _, err := DefaultStorageDir(); err == nil {
		t.Fatal("DefaultStorageDir() with no home dir did not fail")
	}
}

func TestResolveStoragePathsOverride(t *testing.T) {
	stubPlatform(t, "windows", "", errors.New("unused"))

	paths, err := ResolveStoragePaths("/custom/cursor")
	if err != nil {
		t.Fatalf("ResolveStoragePaths() error = %v", err)
	}
	if paths.Base != "/custom/cursor" {
		t.Errorf("Base = %q", paths.Base)
	}
	if !strings.HasSuffix(paths.WorkspaceStorage, "workspaceStorage") {
		t.Errorf("WorkspaceStorage = %q", paths.WorkspaceStorage)
	}
	if !strings.HasSuffix(paths.GlobalStorage, "globalStorage") {
		t.Errorf("GlobalStorage = %q", paths.GlobalStorage)
	}
}

func TestResolveStoragePathsDefault(t *testing.T) {
	stubPlatform(t, "linux", "/home/u", nil)

	paths, err := ResolveStoragePaths("")
	if err != nil {
		t.Fatalf("ResolveStoragePaths() error = %v", err)
	}
	want := filepath.FromSlash("/home/u/.config/Cursor/User")
	if paths.Base != want {
		t.Errorf("Base = %q, want %q", paths.Base, want)
	}
}

func TestStoragePathsHelpers(t *testing.T) {
	paths, err := ResolveStoragePaths("/base")
	if err != nil {
		t.Fatalf("ResolveStoragePaths() error = %v", err)
	}

	if got := paths.GlobalStoreDB(); got != filepath.FromSlash("/base/globalStorage/state.vscdb") {
		t.Errorf("GlobalStoreDB() = %q", got)
	}
	if got := paths.StorageJSON(); got != filepath.FromSlash("/base/workspaceStorage/storage.json") {
		t.Errorf("StorageJSON() = %q", got)
	}
}

func TestDefaultExportDir(t *testing.T) {
	stubPlatform(t, "linux", "/home/u", nil)

	got, err := DefaultExportDir()
	if err != nil {
		t.Fatalf("DefaultExportDir() error = %v", err)
	}
	want := filepath.Join("/home/u", "Downloads", "cursor-chat-history", "export")
	if got != want {
		t.Errorf("DefaultExportDir() = %q, want %q", got, want)
	}
}
