// Package config provides configuration loading for kubesh.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the directories kubesh reads and writes.
type Paths struct {
	// ConfigDir holds config.yaml (~/.config/kubesh).
	ConfigDir string

	// DataDir holds the history database (~/.local/share/kubesh).
	DataDir string
}

// DefaultPaths resolves directories per the XDG Base Directory spec, with
// an APPDATA fallback on Windows.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, "kubesh"),
			DataDir:   filepath.Join(localAppData, "kubesh"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "kubesh"),
		DataDir:   filepath.Join(dataHome, "kubesh"),
	}
}

// ConfigFile returns the path of the YAML config file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// HistoryDB returns the path of the history database.
func (p *Paths) HistoryDB() string {
	return filepath.Join(p.DataDir, "history.db")
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
