package internal

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const manifestFileName = "export-manifest.yaml"

// ManifestEntry records one completed export
type ManifestEntry struct {
	Mode      string    `yaml:"mode"`
	File      string    `yaml:"file"`
	Sessions  int       `yaml:"sessions"`
	Dialogues int       `yaml:"dialogues"`
	Questions int       `yaml:"questions"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Manifest is the running log of exports kept next to the output files
type Manifest struct {
	Exports []ManifestEntry `yaml:"exports"`
}

// AppendManifest adds an entry to the export manifest in dir. A
// manifest that fails to parse is replaced rather than blocking the
// export.
func AppendManifest(dir string, entry ManifestEntry) error {
	path := filepath.Join(dir, manifestFileName)

	var manifest Manifest
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			LogWarn("failed to parse manifest %s, starting fresh: %v", path, err)
			manifest = Manifest{}
		}
	}

	manifest.Exports = append(manifest.Exports, entry)

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
