package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configDirName  = "cursor-chat-export"
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CURSOR_CHAT_EXPORT"

	cfgKeyExportDir  = "export_dir"
	cfgKeyStorageDir = "storage_dir"
	cfgKeyVerbose    = "verbose"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# cursor-chat-export configuration

# Output directory for exported HTML files.
# Default: ~/Downloads/cursor-chat-history/export
# export_dir:

# Cursor User directory override (the directory containing
# workspaceStorage and globalStorage). Default is resolved per OS.
# storage_dir:

# Enable debug logging.
verbose: false
`

// Config carries the resolved settings for one invocation.
type Config struct {
	ExportDir  string
	StorageDir string
	Verbose    bool
}

// LoadConfig reads config.yaml from the user config directory, creating
// the directory and a default config.yaml on first run. Environment
// variables prefixed with CURSOR_CHAT_EXPORT_ override file values. A
// missing config file is not an error.
func LoadConfig() (Config, error) {
	dir, err := configDir()
	if err != nil {
		LogDebug("No config directory available: %v", err)
		dir = ""
	}
	return loadConfigFrom(dir)
}

func loadConfigFrom(dir string) (Config, error) {
	if dir != "" {
		if err := ensureDefaultConfigFile(dir); err != nil {
			LogDebug("Could not create default config: %v", err)
		}
	}

	v := viper.New()
	v.SetDefault(cfgKeyExportDir, "")
	v.SetDefault(cfgKeyStorageDir, "")
	v.SetDefault(cfgKeyVerbose, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		ExportDir:  v.GetString(cfgKeyExportDir),
		StorageDir: v.GetString(cfgKeyStorageDir),
		Verbose:    v.GetBool(cfgKeyVerbose),
	}

	if cfg.ExportDir == "" {
		exportDir, err := DefaultExportDir()
		if err != nil {
			return Config{}, err
		}
		cfg.ExportDir = exportDir
	}

	return cfg, nil
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName), nil
}

// ensureDefaultConfigFile creates the config directory and a commented
// default config.yaml when the file does not exist yet.
func ensureDefaultConfigFile(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
